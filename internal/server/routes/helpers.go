package routes

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/linqs/GAIA-sub004/internal/server/middleware"
	"github.com/linqs/GAIA-sub004/internal/util"
	"github.com/linqs/GAIA-sub004/pkg/common"
	"github.com/linqs/GAIA-sub004/pkg/graph"
	"github.com/linqs/GAIA-sub004/pkg/graphid"
	"github.com/linqs/GAIA-sub004/pkg/logger"
)

type messageResponse struct {
	Message string `json:"message"`
}

var errNotFound = errors.New("not found")

// lockApp serializes the request against every other request.
func lockApp(c echo.Context) (*middleware.App, func()) {
	app := c.(*middleware.AppContext).App
	app.Lock()
	return app, app.Unlock
}

// bindBody decodes a JSON body leniently, then binds path parameters and
// validates the result.
func bindBody(c echo.Context, out any) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	if err := util.UnmarshalFlexible(body, out); err != nil {
		return err
	}
	return bindParams(c, out)
}

func bindParams(c echo.Context, out any) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindPathParams(c, out); err != nil {
		return err
	}
	if err := binder.BindQueryParams(c, out); err != nil {
		return err
	}
	return c.Validate(out)
}

func invalidRequest(c echo.Context, what string) error {
	return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request " + what})
}

// failure maps store errors onto HTTP statuses.
func failure(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrConfiguration),
		errors.Is(err, common.ErrInvalidAssignment),
		errors.Is(err, common.ErrUnsupportedType):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrInvalidOperation),
		errors.Is(err, common.ErrInvalidState):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		logger.Error("[Server] Request failed", "path", c.Path(), "err", err)
		return c.JSON(status, messageResponse{Message: "Internal server error"})
	}
	return c.JSON(status, messageResponse{Message: err.Error()})
}

func lookupGraph(app *middleware.App, raw string) (*graph.Graph, error) {
	id, err := graphid.ParseGraphID(raw)
	if err != nil {
		return nil, err
	}
	g, ok := app.Graphs.Graph(id)
	if !ok {
		return nil, errors.Join(errNotFound, common.InvalidOperationf("graph %s not registered", id))
	}
	return g, nil
}

func lookupItem(app *middleware.App, raw string) (*graph.Graph, graph.Item, error) {
	id, err := graphid.ParseGraphItemID(raw)
	if err != nil {
		return nil, nil, err
	}
	g, ok := app.Graphs.Graph(id)
	if !ok {
		return nil, nil, errors.Join(errNotFound, common.InvalidOperationf("graph %s not registered", id.GraphID))
	}
	it := g.GraphItem(id)
	if it == nil {
		return nil, nil, errors.Join(errNotFound, common.InvalidStatef("item %s not in graph", id))
	}
	return g, it, nil
}

func parseItemIDs(raw []string) ([]graphid.GraphItemID, error) {
	ids := make([]graphid.GraphItemID, 0, len(raw))
	for _, s := range raw {
		id, err := graphid.ParseGraphItemID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

type itemJSON struct {
	ID       string               `json:"id"`
	Schema   string               `json:"schema"`
	Kind     string               `json:"kind"`
	Features map[string]valueJSON `json:"features"`
	Sources  []string             `json:"sources,omitempty"`
	Targets  []string             `json:"targets,omitempty"`
	Nodes    []string             `json:"nodes,omitempty"`
}

func encodeItem(g *graph.Graph, it graph.Item) (itemJSON, error) {
	values, err := g.FeatureValues(it)
	if err != nil {
		return itemJSON{}, err
	}
	out := itemJSON{
		ID:       it.ID().String(),
		Schema:   it.SchemaID(),
		Kind:     it.Kind().String(),
		Features: make(map[string]valueJSON, len(values)),
	}
	for fid, v := range values {
		out.Features[fid] = encodeValue(v)
	}
	if e, ok := it.(*graph.Edge); ok {
		if e.IsDirected() {
			out.Sources = nodeIDs(e.Sources())
			out.Targets = nodeIDs(e.Targets())
		} else {
			out.Nodes = nodeIDs(e.Nodes())
		}
	}
	return out, nil
}

func nodeIDs(nodes []*graph.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID().String()
	}
	return out
}

// setFeatures applies decoded values to a freshly created item.
func setFeatures(it graph.Item, raw map[string]valueJSON) error {
	for fid, rv := range raw {
		v, err := decodeValue(rv)
		if err != nil {
			return err
		}
		if err := it.SetFeatureValue(fid, v); err != nil {
			return err
		}
	}
	return nil
}
