package core

import "hostdeps/internal/types"

// SelectAssetGroup picks the group for the first probed runtime identifier
// that has a non-empty tagged group. Without a tagged match the default
// group is used when present.
func SelectAssetGroup(groups []types.AssetGroup, probe []string) (types.AssetGroup, bool) {
	for _, rid := range probe {
		for _, group := range groups {
			if group.RuntimeIdentifier == rid && len(group.Assets) > 0 {
				return group, true
			}
		}
	}
	for _, group := range groups {
		if group.RuntimeIdentifier == "" {
			return group, true
		}
	}
	return types.AssetGroup{}, false
}
