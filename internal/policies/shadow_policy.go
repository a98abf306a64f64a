package policies

import (
	"fmt"
	"path"
	"strings"

	"hostdeps/internal/shared"
	"hostdeps/internal/types"
)

// ShadowPolicy admits assemblies by file name: the first library to offer a
// file name owns it and later offers are dropped.
type ShadowPolicy struct {
	owners map[string]shadowOwner
}

type shadowOwner struct {
	library         string
	assemblyVersion string
}

func NewShadowPolicy() *ShadowPolicy {
	return &ShadowPolicy{owners: map[string]shadowOwner{}}
}

// Admit reports whether asset from lib may be added to the assembly list.
// When it may not, the returned record names the library that owns the file
// name. File names compare case-insensitively.
func (p *ShadowPolicy) Admit(lib types.Library, asset types.AssetFile) (bool, types.ResolutionRecord) {
	name := path.Base(asset.Path)
	key := strings.ToLower(name)
	owner, taken := p.owners[key]
	if !taken {
		p.owners[key] = shadowOwner{
			library:         types.LibraryKey(lib.Name, lib.Version),
			assemblyVersion: asset.AssemblyVersion,
		}
		return true, types.ResolutionRecord{}
	}
	reason := fmt.Sprintf("%s provided by %s", name, owner.library)
	if asset.AssemblyVersion != "" && owner.assemblyVersion != "" &&
		shared.CompareVersions(asset.AssemblyVersion, owner.assemblyVersion) > 0 {
		reason += fmt.Sprintf("; newer assembly version %s shadowed by %s", asset.AssemblyVersion, owner.assemblyVersion)
	}
	return false, types.ResolutionRecord{
		Library: types.LibraryKey(lib.Name, lib.Version),
		Asset:   asset.Path,
		Action:  types.RecordActionShadowed,
		Reason:  reason,
	}
}
