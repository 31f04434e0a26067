package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/linqs/GAIA-sub004/internal/util"
	"github.com/linqs/GAIA-sub004/pkg/common"
	"github.com/linqs/GAIA-sub004/pkg/feature"
	"github.com/linqs/GAIA-sub004/pkg/graphid"
	"github.com/linqs/GAIA-sub004/pkg/logger"
	"github.com/linqs/GAIA-sub004/pkg/schema"
)

// CreateGraphHandler creates and registers an empty graph.
func CreateGraphHandler(c echo.Context) error {
	type createGraphBody struct {
		SchemaID string `json:"schema_id" validate:"required"`
		ObjectID string `json:"object_id" validate:"required"`
	}

	type createGraphResponse struct {
		Message string `json:"message"`
		ID      string `json:"id,omitempty"`
	}

	data := new(createGraphBody)
	if err := bindBody(c, data); err != nil {
		return invalidRequest(c, "body")
	}

	app, unlock := lockApp(c)
	defer unlock()

	id, err := graphid.NewGraphID(data.SchemaID, data.ObjectID)
	if err != nil {
		return failure(c, err)
	}
	if _, err := app.Graphs.NewGraph(id); err != nil {
		return failure(c, err)
	}
	logger.Info("[Server] Graph created", "graph", id.String())

	return c.JSON(http.StatusCreated, createGraphResponse{
		Message: "Graph created",
		ID:      id.String(),
	})
}

// DeleteGraphHandler destroys a graph and frees its id.
func DeleteGraphHandler(c echo.Context) error {
	type deleteGraphParams struct {
		GraphID string `param:"gid" validate:"required"`
	}

	params := new(deleteGraphParams)
	if err := bindParams(c, params); err != nil {
		return invalidRequest(c, "params")
	}

	app, unlock := lockApp(c)
	defer unlock()

	g, err := lookupGraph(app, params.GraphID)
	if err != nil {
		return failure(c, err)
	}
	if err := g.Destroy(); err != nil {
		return failure(c, err)
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Graph deleted"})
}

// CreateSchemaHandler declares a schema with explicit features built from the
// feature registry.
func CreateSchemaHandler(c echo.Context) error {
	type featureBody struct {
		ID     string      `json:"id" validate:"required"`
		Type   string      `json:"type" validate:"required"`
		Params util.Params `json:"params"`
	}

	type createSchemaBody struct {
		GraphID  string        `param:"gid" json:"-" validate:"required"`
		ID       string        `json:"id" validate:"required"`
		Kind     string        `json:"kind" validate:"required,oneof=node directed undirected graph"`
		Features []featureBody `json:"features" validate:"dive"`
	}

	data := new(createSchemaBody)
	if err := bindBody(c, data); err != nil {
		return invalidRequest(c, "body")
	}

	app, unlock := lockApp(c)
	defer unlock()

	g, err := lookupGraph(app, data.GraphID)
	if err != nil {
		return failure(c, err)
	}
	kind, ok := schema.ParseItemKind(data.Kind)
	if !ok {
		return failure(c, common.Configurationf("unknown item kind %q", data.Kind))
	}
	s := schema.New(kind)
	for _, fb := range data.Features {
		f, err := feature.New(fb.Type, fb.Params)
		if err != nil {
			return failure(c, err)
		}
		if err := s.AddFeature(fb.ID, f); err != nil {
			return failure(c, err)
		}
	}
	if err := g.AddSchema(data.ID, s); err != nil {
		return failure(c, err)
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "Schema created"})
}

// GetSchemaHandler returns a schema as a JSON Schema document.
func GetSchemaHandler(c echo.Context) error {
	type getSchemaParams struct {
		GraphID  string `param:"gid" validate:"required"`
		SchemaID string `param:"sid" validate:"required"`
	}

	params := new(getSchemaParams)
	if err := bindParams(c, params); err != nil {
		return invalidRequest(c, "params")
	}

	app, unlock := lockApp(c)
	defer unlock()

	g, err := lookupGraph(app, params.GraphID)
	if err != nil {
		return failure(c, err)
	}
	s, err := g.Schema(params.SchemaID)
	if err != nil {
		return c.JSON(http.StatusNotFound, messageResponse{Message: "Schema not found"})
	}

	return c.JSON(http.StatusOK, s.JSONSchema(params.SchemaID))
}
