package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type entry struct {
	level   string
	message string
	keyvals []any
}

type recorder struct {
	entries []entry
}

func (r *recorder) add(level, message string, keyvals []any) {
	r.entries = append(r.entries, entry{level, message, keyvals})
}

func (r *recorder) Log(m string, kv ...any)   { r.add("log", m, kv) }
func (r *recorder) Debug(m string, kv ...any) { r.add("debug", m, kv) }
func (r *recorder) Info(m string, kv ...any)  { r.add("info", m, kv) }
func (r *recorder) Warn(m string, kv ...any)  { r.add("warn", m, kv) }
func (r *recorder) Error(m string, kv ...any) { r.add("error", m, kv) }
func (r *recorder) Fatal(m string, kv ...any) { r.add("fatal", m, kv) }

func TestDispatchesToEveryBackend(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	Init(a, b)
	t.Cleanup(func() { Init() })

	Info("[Graph] Node added", "id", "g.1.people.a")
	Log("plain", "k", 1)

	for _, r := range []*recorder{a, b} {
		assert.Equal(t, []entry{
			{"info", "[Graph] Node added", []any{"id", "g.1.people.a"}},
			{"log", "plain", []any{"k", 1}},
		}, r.entries)
	}
}

func TestSilentWithoutBackends(t *testing.T) {
	r := &recorder{}
	Init(r)
	Init()
	Warn("dropped")
	assert.Empty(t, r.entries)
}
