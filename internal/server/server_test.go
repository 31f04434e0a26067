package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linqs/GAIA-sub004/pkg/graph"
)

type apiResponse struct {
	Message     string          `json:"message"`
	ID          string          `json:"id"`
	Item        json.RawMessage `json:"item"`
	Items       []itemView      `json:"items"`
	MergedNodes []string        `json:"merged_nodes"`
	Components  [][]string      `json:"components"`
}

type itemView struct {
	ID       string                     `json:"id"`
	Schema   string                     `json:"schema"`
	Kind     string                     `json:"kind"`
	Features map[string]json.RawMessage `json:"features"`
	Nodes    []string                   `json:"nodes"`
}

func do(t *testing.T, e *echo.Echo, method, path, body, token string) (int, apiResponse, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp apiResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec.Code, resp, rec.Body.String()
}

func seedPeople(t *testing.T, e *echo.Echo, token string) {
	t.Helper()
	code, _, raw := do(t, e, http.MethodPost, "/api/graphs", `{"schema_id":"social","object_id":"g1"}`, token)
	require.Equal(t, http.StatusCreated, code, raw)

	code, _, raw = do(t, e, http.MethodPost, "/api/graphs/social.g1/schemas",
		`{"id":"people","kind":"node","features":[{"id":"name","type":"string"},{"id":"status","type":"categ","params":{"categories":"active,inactive","default":"active"}}]}`, token)
	require.Equal(t, http.StatusCreated, code, raw)
	code, _, raw = do(t, e, http.MethodPost, "/api/graphs/social.g1/schemas", `{"id":"knows","kind":"undirected"}`, token)
	require.Equal(t, http.StatusCreated, code, raw)
	code, _, raw = do(t, e, http.MethodPost, "/api/graphs/social.g1/schemas", `{"id":"sameas","kind":"undirected"}`, token)
	require.Equal(t, http.StatusCreated, code, raw)

	for _, name := range []string{"a", "b", "c"} {
		code, _, raw = do(t, e, http.MethodPost, "/api/graphs/social.g1/nodes",
			`{"schema_id":"people","object_id":"`+name+`","features":{"name":{"kind":"string","text":"`+name+`"}}}`, token)
		require.Equal(t, http.StatusCreated, code, raw)
	}
}

func TestHealth(t *testing.T) {
	e := New(graph.NewRegistry(), Config{})
	code, _, raw := do(t, e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", raw)
}

func TestGraphLifecycle(t *testing.T) {
	registry := graph.NewRegistry()
	e := New(registry, Config{})
	seedPeople(t, e, "")

	code, _, raw := do(t, e, http.MethodPost, "/api/graphs/social.g1/edges",
		`{"schema_id":"knows","object_id":"ac","nodes":["social.g1.people.a","social.g1.people.c"]}`, "")
	require.Equal(t, http.StatusCreated, code, raw)

	code, resp, raw := do(t, e, http.MethodGet, "/api/items/social.g1.people.a", "", "")
	require.Equal(t, http.StatusOK, code, raw)
	var item itemView
	require.NoError(t, json.Unmarshal(resp.Item, &item))
	assert.Equal(t, "node", item.Kind)
	assert.JSONEq(t, `{"kind":"categ","category":"active"}`, string(item.Features["status"]))

	code, _, raw = do(t, e, http.MethodPut, "/api/items/social.g1.people.a/features/status", `{"kind":"categ","category":"banned"}`, "")
	assert.Equal(t, http.StatusBadRequest, code, raw)
	code, _, raw = do(t, e, http.MethodPut, "/api/items/social.g1.people.a/features/status", `{kind: 'categ', category: 'inactive'}`, "")
	assert.Equal(t, http.StatusOK, code, raw)

	code, resp, raw = do(t, e, http.MethodGet, "/api/graphs/social.g1/items?schema=people", "", "")
	require.Equal(t, http.StatusOK, code, raw)
	assert.Len(t, resp.Items, 3)

	code, _, raw = do(t, e, http.MethodGet, "/api/graphs/social.g1/schemas/people", "", "")
	require.Equal(t, http.StatusOK, code, raw)
	assert.Contains(t, raw, "inactive")

	code, _, _ = do(t, e, http.MethodPost, "/api/graphs/social.g1/nodes", `{"schema_id":"people","object_id":"a"}`, "")
	assert.Equal(t, http.StatusConflict, code)
	code, _, _ = do(t, e, http.MethodGet, "/api/items/social.g1.people.zz", "", "")
	assert.Equal(t, http.StatusNotFound, code)
	code, _, _ = do(t, e, http.MethodGet, "/api/items/not-an-id", "", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _, raw = do(t, e, http.MethodDelete, "/api/items/social.g1.people.a", "", "")
	require.Equal(t, http.StatusOK, code, raw)
	code, resp, _ = do(t, e, http.MethodGet, "/api/graphs/social.g1/items", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Items, 2)

	code, _, _ = do(t, e, http.MethodDelete, "/api/graphs/social.g1", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, registry.IDs())
	code, _, _ = do(t, e, http.MethodGet, "/api/graphs/social.g1/items", "", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestMergeEndpoint(t *testing.T) {
	e := New(graph.NewRegistry(), Config{})
	seedPeople(t, e, "")
	code, _, raw := do(t, e, http.MethodPost, "/api/graphs/social.g1/edges",
		`{"schema_id":"sameas","nodes":["social.g1.people.a","social.g1.people.b"]}`, "")
	require.Equal(t, http.StatusCreated, code, raw)

	code, resp, raw := do(t, e, http.MethodPost, "/api/graphs/social.g1/merge", `{
		"ref_schema": "people",
		"edge_schema": "sameas",
		"provenance": "provenance",
		"feature_merger": {"tag": "concat", "params": {"separator": "+"}},
		"edge_merger": {"tag": "union"}
	}`, "")
	require.Equal(t, http.StatusOK, code, raw)
	require.Len(t, resp.MergedNodes, 1)
	assert.Equal(t, [][]string{{"social.g1.people.a", "social.g1.people.b"}}, resp.Components)

	code, resp, raw = do(t, e, http.MethodGet, "/api/items/"+resp.MergedNodes[0], "", "")
	require.Equal(t, http.StatusOK, code, raw)
	var item itemView
	require.NoError(t, json.Unmarshal(resp.Item, &item))
	assert.JSONEq(t, `{"kind":"string","text":"a+b"}`, string(item.Features["name"]))
	assert.JSONEq(t, `{"kind":"multiid","ids":["social.g1.people.a","social.g1.people.b"]}`, string(item.Features["provenance"]))

	code, _, _ = do(t, e, http.MethodPost, "/api/graphs/social.g1/merge",
		`{"ref_schema":"people","edge_schema":"sameas","feature_merger":{"tag":"average"},"edge_merger":{"tag":"union"}}`, "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func signed(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func TestAuth(t *testing.T) {
	secret := []byte("test-secret")
	e := New(graph.NewRegistry(), Config{Secret: secret, MasterAPIKey: "master"})
	exp := time.Now().Add(time.Hour).Unix()

	code, _, _ := do(t, e, http.MethodPost, "/api/graphs", `{"schema_id":"s","object_id":"o"}`, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _, _ = do(t, e, http.MethodPost, "/api/graphs", `{"schema_id":"s","object_id":"o"}`, "wrong")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _, _ = do(t, e, http.MethodPost, "/api/graphs", `{"schema_id":"s","object_id":"o"}`, "master")
	assert.Equal(t, http.StatusCreated, code)

	reader := signed(t, secret, jwt.MapClaims{"sub": "u1", "exp": exp, "permissions": []string{"graph.read"}})
	code, _, _ = do(t, e, http.MethodGet, "/api/graphs/s.o/items", "", reader)
	assert.Equal(t, http.StatusOK, code)
	code, _, _ = do(t, e, http.MethodPost, "/api/graphs", `{"schema_id":"s","object_id":"p"}`, reader)
	assert.Equal(t, http.StatusForbidden, code)

	admin := signed(t, secret, jwt.MapClaims{"sub": "u2", "exp": exp, "role": "admin"})
	code, _, _ = do(t, e, http.MethodPost, "/api/graphs", `{"schema_id":"s","object_id":"p"}`, admin)
	assert.Equal(t, http.StatusCreated, code)

	forged := signed(t, []byte("other"), jwt.MapClaims{"sub": "u3", "exp": exp, "role": "admin"})
	code, _, _ = do(t, e, http.MethodGet, "/api/graphs/s.o/items", "", forged)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _, _ = do(t, e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, code)
}
