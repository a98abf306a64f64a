package types

// Host property names understood by the launcher.
const (
	PropertyTrustedPlatformAssemblies = "TRUSTED_PLATFORM_ASSEMBLIES"
	PropertyNativeSearchDirectories   = "NATIVE_DLL_SEARCH_DIRECTORIES"
	PropertyResourceRoots             = "PLATFORM_RESOURCE_ROOTS"
)

// ResolvedPaths is the materialized output of a dependency context.
type ResolvedPaths struct {
	Assemblies                []string
	NativeSearchDirectories   []string
	ResourceSearchDirectories []string
	Report                    ResolutionReport
}

type ResolutionRecord struct {
	Library string
	Asset   string
	Action  RecordAction
	Reason  string
}

type ResolutionReport struct {
	Records []ResolutionRecord
}
