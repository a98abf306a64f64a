package ports

import (
	"context"

	"hostdeps/internal/types"
)

// TargetPolicyPort decides which target section of a manifest contributes to
// a resolution.
type TargetPolicyPort interface {
	Select(ctx context.Context, manifest types.Manifest, desired string) (types.TargetSection, bool)
}
