package app

import "hostdeps/internal/types"

// LoadRequest names the binary to load a dependency context for and the
// secondary manifests merged beneath it.
type LoadRequest struct {
	Identity types.Identity
	// Target overrides the application's runtimeTarget when Framework is set.
	Target types.Target
	// AppManifestPath overrides the manifest location derived from the
	// identity of an entry application.
	AppManifestPath     string
	FrameworkManifests  []string
	AdditionalManifests []string
}

type ResolveRequest struct {
	LoadRequest
	// RuntimeIdentifier overrides the RID used for asset selection.
	RuntimeIdentifier string
	PackageCaches     []string
	OutputDir         string
}

type ResolveResult struct {
	Found        bool
	ManifestPath string
	Target       types.Target
	Paths        types.ResolvedPaths
	OutputDir    string
	Hints        []string
}

type ValidateRequest struct {
	ManifestPath string
}

type ValidateResult struct {
	Source    string
	Targets   []string
	Libraries int
	Issues    []types.ManifestIssue
}

type InspectRequest struct {
	OutputDir string
}

type InspectResult struct {
	Assemblies          []string
	NativeDirectories   []string
	ResourceDirectories []string
	Properties          map[string]string
	ResolutionRecords   []types.ResolutionRecord
	Shadowed            int
	Skipped             int
}

type ProbeRequest struct {
	RuntimeIdentifier string
	Manifests         []string
}

type ProbeResult struct {
	RuntimeIdentifier string
	Sequence          []string
	Runtimes          int
}
