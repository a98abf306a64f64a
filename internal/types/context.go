package types

import "strings"

// Target identifies a framework moniker with an optional runtime identifier.
type Target struct {
	Framework         string
	RuntimeIdentifier string
}

// Name renders the target-section name: "<framework>/<rid>" or "<framework>".
func (t Target) Name() string {
	if t.RuntimeIdentifier == "" {
		return t.Framework
	}
	return t.Framework + "/" + t.RuntimeIdentifier
}

// ParseTarget splits a target-section name on its last slash.
func ParseTarget(name string) Target {
	name = strings.TrimSpace(name)
	idx := strings.LastIndex(name, "/")
	if idx < 0 {
		return Target{Framework: name}
	}
	return Target{Framework: name[:idx], RuntimeIdentifier: name[idx+1:]}
}

type Dependency struct {
	Name    string
	Version string
}

type Library struct {
	Kind         LibraryKind
	Name         string
	Version      string
	Hash         string
	Serviceable  bool
	Path         string
	HashPath     string
	Dependencies []Dependency

	// Origin and BaseDir describe the first manifest whose selected target
	// section referenced the library.
	Origin  ManifestOrigin
	BaseDir string
}

type AssetFile struct {
	Path            string
	AssemblyVersion string
	FileVersion     string
}

// AssetGroup is an ordered list of files for one runtime identifier. An empty
// RuntimeIdentifier marks the default group.
type AssetGroup struct {
	RuntimeIdentifier string
	Assets            []AssetFile
}

type ResourceAssembly struct {
	Path   string
	Locale string
}

type RuntimeLibrary struct {
	Library
	RuntimeAssetGroups  []AssetGroup
	NativeLibraryGroups []AssetGroup
	ResourceAssemblies  []ResourceAssembly
}

type CompilationLibrary struct {
	Library
	Assemblies []string
}

// DependencyContext is the merged result of one resolution. It is built once
// by the merger and must be treated as read-only afterwards.
type DependencyContext struct {
	Target               Target
	RuntimeLibraries     []RuntimeLibrary
	CompilationLibraries []CompilationLibrary
	RuntimeGraph         RuntimeFallbackGraph
}

// RuntimeLibrary looks up an emitted runtime library by name.
func (c DependencyContext) RuntimeLibrary(name string) (RuntimeLibrary, bool) {
	for _, lib := range c.RuntimeLibraries {
		if lib.Name == name {
			return lib, true
		}
	}
	return RuntimeLibrary{}, false
}
