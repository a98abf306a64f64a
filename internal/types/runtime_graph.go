package types

// RuntimeFallback lists the runtime identifiers to probe, most specific
// first, when no asset group exists for Runtime itself.
type RuntimeFallback struct {
	Runtime   string
	Fallbacks []string
}

// RuntimeFallbackGraph maps a runtime identifier to its fallback chain.
// The zero value is an empty graph.
type RuntimeFallbackGraph struct {
	entries []RuntimeFallback
	index   map[string]int
}

// NewRuntimeFallbackGraph copies entries into a graph. When a runtime
// identifier appears more than once, the first declaration wins.
func NewRuntimeFallbackGraph(entries []RuntimeFallback) RuntimeFallbackGraph {
	graph := RuntimeFallbackGraph{index: make(map[string]int, len(entries))}
	for _, entry := range entries {
		if _, ok := graph.index[entry.Runtime]; ok {
			continue
		}
		graph.index[entry.Runtime] = len(graph.entries)
		graph.entries = append(graph.entries, RuntimeFallback{
			Runtime:   entry.Runtime,
			Fallbacks: append([]string(nil), entry.Fallbacks...),
		})
	}
	return graph
}

// Fallbacks returns a copy of the declared fallback list for rid.
func (g RuntimeFallbackGraph) Fallbacks(rid string) ([]string, bool) {
	idx, ok := g.index[rid]
	if !ok {
		return nil, false
	}
	return append([]string(nil), g.entries[idx].Fallbacks...), true
}

// Runtimes returns a copy of all entries in declaration order.
func (g RuntimeFallbackGraph) Runtimes() []RuntimeFallback {
	out := make([]RuntimeFallback, 0, len(g.entries))
	for _, entry := range g.entries {
		out = append(out, RuntimeFallback{
			Runtime:   entry.Runtime,
			Fallbacks: append([]string(nil), entry.Fallbacks...),
		})
	}
	return out
}

func (g RuntimeFallbackGraph) Len() int {
	return len(g.entries)
}
