package policies

import (
	"context"

	"github.com/rs/zerolog/log"

	"hostdeps/internal/ports"
	"hostdeps/internal/types"
)

// TargetPolicy selects the target section of a manifest that supplies
// dependency and asset data for a resolution.
type TargetPolicy struct{}

func NewTargetPolicy() TargetPolicy {
	return TargetPolicy{}
}

// Select returns the section named desired. A manifest with exactly one
// section contributes that section regardless of its name; otherwise nothing
// is selected.
func (p TargetPolicy) Select(ctx context.Context, manifest types.Manifest, desired string) (types.TargetSection, bool) {
	if desired != "" {
		if section, ok := manifest.Target(desired); ok {
			log.Ctx(ctx).Debug().
				Str("manifest", manifest.Source).
				Str("target", section.Name).
				Msg("target selected by exact name")
			return section, true
		}
	}
	if len(manifest.Targets) == 1 {
		section := manifest.Targets[0]
		log.Ctx(ctx).Debug().
			Str("manifest", manifest.Source).
			Str("target", section.Name).
			Str("desired", desired).
			Msg("target selected as single section")
		return section, true
	}
	return types.TargetSection{}, false
}

var _ ports.TargetPolicyPort = TargetPolicy{}
