package app

import (
	"fmt"
	"strings"

	"hostdeps/internal/types"
)

// resolveHints returns advisory messages about a resolve request that
// succeeded but probably did not do what the caller intended.
func resolveHints(req ResolveRequest, dc types.DependencyContext) []string {
	var hints []string
	rid := strings.TrimSpace(req.RuntimeIdentifier)
	if rid != "" && rid == dc.Target.RuntimeIdentifier {
		hints = append(hints, fmt.Sprintf(
			"hint: --rid %s matches the target runtime identifier; you can omit the flag", rid))
	}
	if rid == "" {
		rid = dc.Target.RuntimeIdentifier
	}
	if rid != "" && dc.RuntimeGraph.Len() == 0 {
		hints = append(hints, fmt.Sprintf(
			"hint: no manifest declares runtime fallbacks; only %s and default asset groups are considered", rid))
	}
	if len(req.PackageCaches) == 0 && hasPackages(dc) {
		hints = append(hints,
			"hint: no --package-cache given; package assets resolve against the application directory")
	}
	return hints
}

func hasPackages(dc types.DependencyContext) bool {
	for _, lib := range dc.RuntimeLibraries {
		if lib.Kind == types.LibraryKindPackage && lib.Origin != types.ManifestOriginFramework {
			return true
		}
	}
	return false
}
