package graph

import (
	"fmt"
	"slices"

	"github.com/linqs/GAIA-sub004/pkg/feature"
)

// EventKind names what happened to a graph.
type EventKind int

const (
	NodeAdded EventKind = iota
	NodeRemoved
	EdgeAdded
	EdgeRemoved
	FeatureSet
	// ModelCompleted is emitted by consumers of the graph, never by the store.
	ModelCompleted
	Custom
)

func (k EventKind) String() string {
	switch k {
	case NodeAdded:
		return "node_added"
	case NodeRemoved:
		return "node_removed"
	case EdgeAdded:
		return "edge_added"
	case EdgeRemoved:
		return "edge_removed"
	case FeatureSet:
		return "feature_set"
	case ModelCompleted:
		return "model_completed"
	case Custom:
		return "custom"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event describes a graph change. Item is set for item events; FeatureID,
// Old and New for FeatureSet; Message for Custom and ModelCompleted.
type Event struct {
	Kind      EventKind
	Graph     *Graph
	Item      Item
	FeatureID string
	Old       feature.Value
	New       feature.Value
	Message   string
}

// Listener receives graph events synchronously.
type Listener interface {
	OnEvent(Event) error
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event) error

func (f ListenerFunc) OnEvent(e Event) error { return f(e) }

// ListenerID identifies a registered listener.
type ListenerID uint64

type listenerEntry struct {
	id       ListenerID
	listener Listener
}

// AddListener registers l. Listeners run in registration order.
func (g *Graph) AddListener(l Listener) ListenerID {
	g.nextListener++
	g.listeners = append(g.listeners, listenerEntry{id: g.nextListener, listener: l})
	return g.nextListener
}

// RemoveListener unregisters the listener id. It reports whether one was
// removed.
func (g *Graph) RemoveListener(id ListenerID) bool {
	i := slices.IndexFunc(g.listeners, func(e listenerEntry) bool { return e.id == id })
	if i < 0 {
		return false
	}
	g.listeners = slices.Delete(g.listeners, i, i+1)
	return true
}

// Emit delivers an event raised outside the store, such as ModelCompleted or
// Custom.
func (g *Graph) Emit(e Event) error {
	e.Graph = g
	return g.notify(e)
}

// notify stops at the first failing listener.
func (g *Graph) notify(e Event) error {
	for _, entry := range slices.Clone(g.listeners) {
		if err := entry.listener.OnEvent(e); err != nil {
			return fmt.Errorf("listener %d on %s: %w", entry.id, e.Kind, err)
		}
	}
	return nil
}
