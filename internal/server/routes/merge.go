package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/linqs/GAIA-sub004/internal/util"
	"github.com/linqs/GAIA-sub004/pkg/merge"
)

// MergeHandler runs entity-resolution merging on a graph. Mergers are picked
// by tag from the merge policy registries.
func MergeHandler(c echo.Context) error {
	type policyBody struct {
		Tag    string      `json:"tag" validate:"required"`
		Params util.Params `json:"params"`
	}

	type mergeBody struct {
		GraphID       string     `param:"gid" json:"-" validate:"required"`
		RefSchema     string     `json:"ref_schema" validate:"required"`
		EdgeSchema    string     `json:"edge_schema" validate:"required"`
		Provenance    string     `json:"provenance"`
		FeatureMerger policyBody `json:"feature_merger"`
		EdgeMerger    policyBody `json:"edge_merger"`
		RemoveSchema  bool       `json:"remove_schema"`
	}

	type mergeResponse struct {
		Message      string     `json:"message"`
		Components   [][]string `json:"components,omitempty"`
		MergedNodes  []string   `json:"merged_nodes,omitempty"`
		RemovedLinks int        `json:"removed_links"`
	}

	data := new(mergeBody)
	if err := bindBody(c, data); err != nil {
		return invalidRequest(c, "body")
	}

	app, unlock := lockApp(c)
	defer unlock()

	g, err := lookupGraph(app, data.GraphID)
	if err != nil {
		return failure(c, err)
	}
	fm, err := merge.NewFeatureMerger(data.FeatureMerger.Tag, data.FeatureMerger.Params)
	if err != nil {
		return failure(c, err)
	}
	em, err := merge.NewEdgeMerger(data.EdgeMerger.Tag, data.EdgeMerger.Params)
	if err != nil {
		return failure(c, err)
	}

	res, err := merge.MergeUsingERLinks(g, merge.Options{
		RefSchemaID:         data.RefSchema,
		EdgeSchemaID:        data.EdgeSchema,
		ProvenanceFeatureID: data.Provenance,
		FeatureMerger:       fm,
		EdgeMerger:          em,
		RemoveSchema:        data.RemoveSchema,
	})
	if err != nil {
		return failure(c, err)
	}

	out := mergeResponse{Message: "Merge completed", RemovedLinks: res.RemovedLinks}
	for i, members := range res.Components {
		ids := make([]string, len(members))
		for j, id := range members {
			ids[j] = id.String()
		}
		out.Components = append(out.Components, ids)
		out.MergedNodes = append(out.MergedNodes, res.MergedNodes[i].String())
	}
	return c.JSON(http.StatusOK, out)
}
