package core

import "hostdeps/internal/types"

// ProbeSequence expands rid into the ordered list of runtime identifiers to
// probe for asset groups: rid itself, its declared fallbacks in order, then
// the fallbacks of each of those, depth-first. Every identifier is emitted
// and expanded at most once, so cyclic graphs still terminate.
func ProbeSequence(rid string, graph types.RuntimeFallbackGraph) []string {
	if rid == "" {
		return nil
	}
	walk := probeWalk{
		graph:    graph,
		emitted:  map[string]struct{}{},
		expanded: map[string]struct{}{},
	}
	walk.emit(rid)
	walk.expand(rid)
	return walk.order
}

type probeWalk struct {
	graph    types.RuntimeFallbackGraph
	order    []string
	emitted  map[string]struct{}
	expanded map[string]struct{}
}

func (w *probeWalk) emit(rid string) {
	if _, ok := w.emitted[rid]; ok {
		return
	}
	w.emitted[rid] = struct{}{}
	w.order = append(w.order, rid)
}

func (w *probeWalk) expand(rid string) {
	if _, ok := w.expanded[rid]; ok {
		return
	}
	w.expanded[rid] = struct{}{}
	fallbacks, ok := w.graph.Fallbacks(rid)
	if !ok {
		return
	}
	for _, fallback := range fallbacks {
		w.emit(fallback)
	}
	for _, fallback := range fallbacks {
		w.expand(fallback)
	}
}
