package adapters

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"hostdeps/internal/ports"
	"hostdeps/internal/types"
)

// ProbeRootsAdapter locates the directory a library's assets are relative
// to. Framework libraries live next to the framework manifest, project and
// reference libraries next to the application, and packages in the first
// package cache that holds them.
type ProbeRootsAdapter struct {
	FS            afero.Fs
	AppDir        string
	PackageCaches []string
}

func NewProbeRootsAdapter(fs afero.Fs, appDir string, packageCaches []string) ProbeRootsAdapter {
	return ProbeRootsAdapter{FS: fs, AppDir: appDir, PackageCaches: packageCaches}
}

func (a ProbeRootsAdapter) Root(lib types.RuntimeLibrary) (string, bool) {
	if lib.Kind == types.LibraryKindUnresolved {
		return "", false
	}
	if lib.Origin == types.ManifestOriginFramework && lib.BaseDir != "" {
		return lib.BaseDir, true
	}
	if lib.Kind != types.LibraryKindPackage {
		return a.appRoot()
	}

	candidates := a.packageCandidates(lib.Library)
	for _, candidate := range candidates {
		if a.FS == nil {
			break
		}
		if ok, err := afero.DirExists(a.FS, candidate); err == nil && ok {
			return candidate, true
		}
	}
	if len(candidates) > 0 {
		return candidates[0], true
	}
	return a.appRoot()
}

func (a ProbeRootsAdapter) appRoot() (string, bool) {
	if strings.TrimSpace(a.AppDir) == "" {
		return "", false
	}
	return a.AppDir, true
}

func (a ProbeRootsAdapter) packageCandidates(lib types.Library) []string {
	relative := filepath.FromSlash(strings.TrimSpace(lib.Path))
	if relative == "" {
		relative = filepath.Join(strings.ToLower(lib.Name), strings.ToLower(lib.Version))
	}
	var candidates []string
	for _, cache := range a.PackageCaches {
		cache = strings.TrimSpace(cache)
		if cache == "" {
			continue
		}
		candidates = append(candidates, filepath.Join(cache, relative))
	}
	return candidates
}

var _ ports.RootResolverPort = ProbeRootsAdapter{}
