package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"hostdeps/internal/types"
)

func TestProbeSequence(t *testing.T) {
	graph := types.NewRuntimeFallbackGraph([]types.RuntimeFallback{
		{Runtime: "linux-x64", Fallbacks: []string{"linux", "unix-x64"}},
		{Runtime: "linux", Fallbacks: []string{"unix"}},
		{Runtime: "unix-x64", Fallbacks: []string{"unix", "any"}},
		{Runtime: "unix", Fallbacks: []string{"any"}},
		{Runtime: "any", Fallbacks: []string{"base"}},
	})
	tests := []struct {
		name string
		rid  string
		want []string
	}{
		{
			name: "declared fallbacks before their expansion",
			rid:  "linux-x64",
			want: []string{"linux-x64", "linux", "unix-x64", "unix", "any", "base"},
		},
		{name: "leaf", rid: "any", want: []string{"any", "base"}},
		{name: "undeclared rid probes itself", rid: "freebsd-x64", want: []string{"freebsd-x64"}},
		{name: "empty rid", rid: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ProbeSequence(tt.rid, graph)); diff != "" {
				t.Fatalf("unexpected probe sequence (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProbeSequenceTerminatesOnCycles(t *testing.T) {
	graph := types.NewRuntimeFallbackGraph([]types.RuntimeFallback{
		{Runtime: "a", Fallbacks: []string{"b"}},
		{Runtime: "b", Fallbacks: []string{"a", "c"}},
		{Runtime: "c", Fallbacks: []string{"c", "a"}},
	})
	got := ProbeSequence("a", graph)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestProbeSequenceEmptyGraph(t *testing.T) {
	assert.Equal(t, []string{"linux-x64"}, ProbeSequence("linux-x64", types.RuntimeFallbackGraph{}))
}
