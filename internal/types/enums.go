package types

import "strings"

type LibraryKind string

const (
	LibraryKindPackage           LibraryKind = "package"
	LibraryKindProject           LibraryKind = "project"
	LibraryKindReference         LibraryKind = "reference"
	LibraryKindReferenceAssembly LibraryKind = "referenceassembly"
	LibraryKindUnresolved        LibraryKind = "unresolved"
)

var libraryKinds = map[string]LibraryKind{
	string(LibraryKindPackage):           LibraryKindPackage,
	string(LibraryKindProject):           LibraryKindProject,
	string(LibraryKindReference):         LibraryKindReference,
	string(LibraryKindReferenceAssembly): LibraryKindReferenceAssembly,
	string(LibraryKindUnresolved):        LibraryKindUnresolved,
}

// ParseLibraryKind maps a manifest "type" value onto the closed set of
// library kinds. Matching is case-insensitive.
func ParseLibraryKind(value string) (LibraryKind, bool) {
	kind, ok := libraryKinds[strings.ToLower(strings.TrimSpace(value))]
	return kind, ok
}

type AssetType string

const (
	AssetTypeRuntime  AssetType = "runtime"
	AssetTypeNative   AssetType = "native"
	AssetTypeResource AssetType = "resource"
	AssetTypeCompile  AssetType = "compile"
)

// ParseAssetType accepts only the asset types that may carry a runtime
// identifier tag. Compile assets are never platform specific.
func ParseAssetType(value string) (AssetType, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(AssetTypeRuntime):
		return AssetTypeRuntime, true
	case string(AssetTypeNative):
		return AssetTypeNative, true
	case string(AssetTypeResource):
		return AssetTypeResource, true
	default:
		return "", false
	}
}

type ManifestOrigin string

const (
	ManifestOriginApplication ManifestOrigin = "application"
	ManifestOriginFramework   ManifestOrigin = "framework"
	ManifestOriginAdditional  ManifestOrigin = "additional"
)

type RecordAction string

const (
	RecordActionShadowed RecordAction = "shadowed"
	RecordActionSkipped  RecordAction = "skipped"
)

func ParseRecordAction(value string) (RecordAction, bool) {
	switch RecordAction(strings.TrimSpace(value)) {
	case RecordActionShadowed:
		return RecordActionShadowed, true
	case RecordActionSkipped:
		return RecordActionSkipped, true
	default:
		return "", false
	}
}
