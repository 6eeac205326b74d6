package tracing

import (
	"sort"
	"sync"
)

// CountTracer counts the items moved by each node.
type CountTracer struct {
	lock   sync.Mutex
	counts map[string]map[string]int
}

// NewCountTracer creates a CountTracer.
func NewCountTracer() *CountTracer {
	return &CountTracer{
		counts: make(map[string]map[string]int),
	}
}

// RecordMove adds the moved count.
func (t *CountTracer) RecordMove(m Move) {
	t.lock.Lock()
	defer t.lock.Unlock()

	byKind, ok := t.counts[m.Node]
	if !ok {
		byKind = make(map[string]int)
		t.counts[m.Node] = byKind
	}

	byKind[m.Kind] += m.Count
}

// Nodes returns the names of the nodes that moved anything, sorted.
func (t *CountTracer) Nodes() []string {
	t.lock.Lock()
	defer t.lock.Unlock()

	names := make([]string, 0, len(t.counts))
	for name := range t.counts {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Count returns the number of items the node moved with the given kind.
func (t *CountTracer) Count(node, kind string) int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.counts[node][kind]
}

// Total returns the number of items moved by all nodes.
func (t *CountTracer) Total() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	total := 0
	for _, byKind := range t.counts {
		for _, n := range byKind {
			total += n
		}
	}

	return total
}
