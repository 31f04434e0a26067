// Package graphid defines the structural identifiers of graphs and graph items
// and their canonical dotted string encoding.
//
// A GraphID names a graph instance by (schema id, object id). A GraphItemID
// names a node or edge within a graph by (owning GraphID, schema id, object id).
// Both are comparable structs, so equality and map hashing compare every
// component.
package graphid

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/linqs/GAIA-sub004/pkg/common"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Delimiter separates the components of an encoded identifier.
const Delimiter = "."

// objectIDAlphabet excludes the delimiter so generated ids always round-trip.
const objectIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_-"

const objectIDLength = 21

// ID is implemented by GraphID and GraphItemID.
type ID interface {
	fmt.Stringer
	// Graph returns the identifier of the graph the id belongs to.
	Graph() GraphID
}

// GraphID uniquely names a graph instance.
type GraphID struct {
	SchemaID string
	ObjectID string
}

// GraphItemID uniquely names a node or edge within its graph.
type GraphItemID struct {
	GraphID  GraphID
	SchemaID string
	ObjectID string
}

// NewGraphID creates a GraphID, rejecting empty components and components
// containing the delimiter.
func NewGraphID(schemaID, objectID string) (GraphID, error) {
	if err := checkComponents(schemaID, objectID); err != nil {
		return GraphID{}, err
	}
	return GraphID{SchemaID: schemaID, ObjectID: objectID}, nil
}

// NewGraphItemID creates a GraphItemID under the given graph.
func NewGraphItemID(graphID GraphID, schemaID, objectID string) (GraphItemID, error) {
	if err := checkComponents(graphID.SchemaID, graphID.ObjectID, schemaID, objectID); err != nil {
		return GraphItemID{}, err
	}
	return GraphItemID{GraphID: graphID, SchemaID: schemaID, ObjectID: objectID}, nil
}

// MustGraphID is like NewGraphID but panics on invalid input.
func MustGraphID(schemaID, objectID string) GraphID {
	id, err := NewGraphID(schemaID, objectID)
	if err != nil {
		panic(err)
	}
	return id
}

// MustGraphItemID is like NewGraphItemID but panics on invalid input.
func MustGraphItemID(graphID GraphID, schemaID, objectID string) GraphItemID {
	id, err := NewGraphItemID(graphID, schemaID, objectID)
	if err != nil {
		panic(err)
	}
	return id
}

func checkComponents(components ...string) error {
	for _, c := range components {
		if c == "" {
			return common.Configurationf("identifier component cannot be empty")
		}
		if strings.Contains(c, Delimiter) {
			return common.Configurationf("identifier component %q contains delimiter %q", c, Delimiter)
		}
	}
	return nil
}

func (id GraphID) String() string {
	return id.SchemaID + Delimiter + id.ObjectID
}

// Graph returns id itself.
func (id GraphID) Graph() GraphID {
	return id
}

// IsZero reports whether id is the zero value.
func (id GraphID) IsZero() bool {
	return id == GraphID{}
}

func (id GraphItemID) String() string {
	return id.GraphID.String() + Delimiter + id.SchemaID + Delimiter + id.ObjectID
}

// Graph returns the identifier of the owning graph.
func (id GraphItemID) Graph() GraphID {
	return id.GraphID
}

// IsZero reports whether id is the zero value.
func (id GraphItemID) IsZero() bool {
	return id == GraphItemID{}
}

// Compare orders item ids by graph, schema and object id.
func Compare(a, b GraphItemID) int {
	return cmp.Or(
		cmp.Compare(a.GraphID.SchemaID, b.GraphID.SchemaID),
		cmp.Compare(a.GraphID.ObjectID, b.GraphID.ObjectID),
		cmp.Compare(a.SchemaID, b.SchemaID),
		cmp.Compare(a.ObjectID, b.ObjectID),
	)
}

// Sort sorts ids in place using Compare.
func Sort(ids []GraphItemID) {
	slices.SortFunc(ids, Compare)
}

// NewObjectID generates a random object id that never contains the delimiter.
func NewObjectID() (string, error) {
	id, err := gonanoid.Generate(objectIDAlphabet, objectIDLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate object id: %w", err)
	}
	return id, nil
}
