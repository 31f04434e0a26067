package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/linqs/GAIA-sub004/pkg/common"
	"github.com/linqs/GAIA-sub004/pkg/graph"
	"github.com/linqs/GAIA-sub004/pkg/graphid"
	"github.com/linqs/GAIA-sub004/pkg/schema"
)

type itemResponse struct {
	Message string    `json:"message"`
	Item    *itemJSON `json:"item,omitempty"`
}

func newItemID(g *graph.Graph, schemaID, objectID string) (graphid.GraphItemID, error) {
	if objectID == "" {
		return g.NewItemID(schemaID)
	}
	return graphid.NewGraphItemID(g.ID(), schemaID, objectID)
}

func respondItem(c echo.Context, status int, message string, g *graph.Graph, it graph.Item) error {
	out, err := encodeItem(g, it)
	if err != nil {
		return failure(c, err)
	}
	return c.JSON(status, itemResponse{Message: message, Item: &out})
}

// CreateNodeHandler adds a node. A missing object id is generated.
func CreateNodeHandler(c echo.Context) error {
	type createNodeBody struct {
		GraphID  string               `param:"gid" json:"-" validate:"required"`
		SchemaID string               `json:"schema_id" validate:"required"`
		ObjectID string               `json:"object_id"`
		Features map[string]valueJSON `json:"features"`
	}

	data := new(createNodeBody)
	if err := bindBody(c, data); err != nil {
		return invalidRequest(c, "body")
	}

	app, unlock := lockApp(c)
	defer unlock()

	g, err := lookupGraph(app, data.GraphID)
	if err != nil {
		return failure(c, err)
	}
	id, err := newItemID(g, data.SchemaID, data.ObjectID)
	if err != nil {
		return failure(c, err)
	}
	n, err := g.AddNode(id)
	if err != nil {
		return failure(c, err)
	}
	if err := setFeatures(n, data.Features); err != nil {
		return failure(c, err)
	}

	return respondItem(c, http.StatusCreated, "Node created", g, n)
}

// CreateEdgeHandler adds an edge. The schema kind decides whether sources and
// targets or nodes are read.
func CreateEdgeHandler(c echo.Context) error {
	type createEdgeBody struct {
		GraphID  string               `param:"gid" json:"-" validate:"required"`
		SchemaID string               `json:"schema_id" validate:"required"`
		ObjectID string               `json:"object_id"`
		Sources  []string             `json:"sources"`
		Targets  []string             `json:"targets"`
		Nodes    []string             `json:"nodes"`
		Features map[string]valueJSON `json:"features"`
	}

	data := new(createEdgeBody)
	if err := bindBody(c, data); err != nil {
		return invalidRequest(c, "body")
	}

	app, unlock := lockApp(c)
	defer unlock()

	g, err := lookupGraph(app, data.GraphID)
	if err != nil {
		return failure(c, err)
	}
	s, err := g.Schema(data.SchemaID)
	if err != nil {
		return failure(c, err)
	}
	id, err := newItemID(g, data.SchemaID, data.ObjectID)
	if err != nil {
		return failure(c, err)
	}

	var e *graph.Edge
	switch s.Kind() {
	case schema.DirectedEdge:
		sources, err := parseItemIDs(data.Sources)
		if err != nil {
			return failure(c, err)
		}
		targets, err := parseItemIDs(data.Targets)
		if err != nil {
			return failure(c, err)
		}
		e, err = g.AddDirectedEdge(id, sources, targets)
		if err != nil {
			return failure(c, err)
		}
	case schema.UndirectedEdge:
		nodes, err := parseItemIDs(data.Nodes)
		if err != nil {
			return failure(c, err)
		}
		e, err = g.AddUndirectedEdge(id, nodes)
		if err != nil {
			return failure(c, err)
		}
	default:
		return failure(c, common.InvalidOperationf("schema %q is not an edge schema", data.SchemaID))
	}
	if err := setFeatures(e, data.Features); err != nil {
		return failure(c, err)
	}

	return respondItem(c, http.StatusCreated, "Edge created", g, e)
}

// GetItemsHandler lists the items of a graph, optionally of one schema.
func GetItemsHandler(c echo.Context) error {
	type getItemsParams struct {
		GraphID  string `param:"gid" validate:"required"`
		SchemaID string `query:"schema"`
	}

	type getItemsResponse struct {
		Message string     `json:"message"`
		Items   []itemJSON `json:"items"`
	}

	params := new(getItemsParams)
	if err := bindParams(c, params); err != nil {
		return invalidRequest(c, "params")
	}

	app, unlock := lockApp(c)
	defer unlock()

	g, err := lookupGraph(app, params.GraphID)
	if err != nil {
		return failure(c, err)
	}
	items := make([]itemJSON, 0, g.NumGraphItems(params.SchemaID))
	for it := range g.GraphItems(params.SchemaID) {
		out, err := encodeItem(g, it)
		if err != nil {
			return failure(c, err)
		}
		items = append(items, out)
	}

	return c.JSON(http.StatusOK, getItemsResponse{Message: "OK", Items: items})
}

// GetItemHandler returns one item with its feature values.
func GetItemHandler(c echo.Context) error {
	type getItemParams struct {
		ItemID string `param:"iid" validate:"required"`
	}

	params := new(getItemParams)
	if err := bindParams(c, params); err != nil {
		return invalidRequest(c, "params")
	}

	app, unlock := lockApp(c)
	defer unlock()

	g, it, err := lookupItem(app, params.ItemID)
	if err != nil {
		return failure(c, err)
	}
	return respondItem(c, http.StatusOK, "OK", g, it)
}

// SetFeatureHandler stores one feature value. A value of kind "unknown"
// clears it.
func SetFeatureHandler(c echo.Context) error {
	type setFeatureParams struct {
		ItemID    string `param:"iid" validate:"required"`
		FeatureID string `param:"fid" validate:"required"`
	}

	params := new(setFeatureParams)
	if err := bindParams(c, params); err != nil {
		return invalidRequest(c, "params")
	}
	body := new(valueJSON)
	if err := bindBody(c, body); err != nil {
		return invalidRequest(c, "body")
	}

	app, unlock := lockApp(c)
	defer unlock()

	g, it, err := lookupItem(app, params.ItemID)
	if err != nil {
		return failure(c, err)
	}
	v, err := decodeValue(*body)
	if err != nil {
		return failure(c, err)
	}
	if err := it.SetFeatureValue(params.FeatureID, v); err != nil {
		return failure(c, err)
	}

	return respondItem(c, http.StatusOK, "Feature set", g, it)
}

// DeleteItemHandler removes a node, with its incident edges, or an edge.
func DeleteItemHandler(c echo.Context) error {
	type deleteItemParams struct {
		ItemID string `param:"iid" validate:"required"`
	}

	params := new(deleteItemParams)
	if err := bindParams(c, params); err != nil {
		return invalidRequest(c, "params")
	}

	app, unlock := lockApp(c)
	defer unlock()

	g, it, err := lookupItem(app, params.ItemID)
	if err != nil {
		return failure(c, err)
	}
	if it.Kind() == schema.Node {
		err = g.RemoveNode(it.ID())
	} else {
		err = g.RemoveEdge(it.ID())
	}
	if err != nil {
		return failure(c, err)
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Item deleted"})
}
