package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"hostdeps/internal/core"
	"hostdeps/internal/types"
)

// Probe returns the probe sequence of a runtime identifier over the runtime
// graph declared by req.Manifests. Earlier manifests take precedence.
func (s Service) Probe(ctx context.Context, req ProbeRequest) (ProbeResult, error) {
	rid := strings.TrimSpace(req.RuntimeIdentifier)
	if rid == "" {
		return ProbeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("runtime identifier is required")
	}
	var entries []types.RuntimeFallback
	for _, path := range req.Manifests {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		manifest, found, err := s.readManifest(ctx, s.Files, path, path, types.ManifestOriginAdditional)
		if err != nil {
			return ProbeResult{}, err
		}
		if !found {
			return ProbeResult{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("manifest %s not found", path))
		}
		for _, runtime := range manifest.Runtimes {
			entries = append(entries, types.RuntimeFallback{
				Runtime:   runtime.RuntimeIdentifier,
				Fallbacks: runtime.Fallbacks,
			})
		}
	}
	graph := types.NewRuntimeFallbackGraph(entries)
	sequence := core.ProbeSequence(rid, graph)
	log.Ctx(ctx).Debug().
		Str("rid", rid).
		Strs("sequence", sequence).
		Msg("probe sequence computed")
	return ProbeResult{
		RuntimeIdentifier: rid,
		Sequence:          sequence,
		Runtimes:          graph.Len(),
	}, nil
}
