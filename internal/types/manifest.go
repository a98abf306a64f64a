package types

// Manifest is the decoded form of a single deps.json document. Every
// collection keeps the order in which keys appear in the document.
type Manifest struct {
	// Source is the path or resource name the manifest was read from.
	Source        string
	Origin        ManifestOrigin
	RuntimeTarget RuntimeTarget
	Targets       []TargetSection
	Libraries     []LibraryEntry
	Runtimes      []RuntimeEntry
}

type RuntimeTarget struct {
	Name      string
	Signature string
}

// TargetSection holds the dependency and asset declarations for one
// framework/runtime combination.
type TargetSection struct {
	Name      string
	Libraries []TargetLibrary
}

type TargetLibrary struct {
	Name         string
	Version      string
	Dependencies []Dependency
	Assets       []AssetReference
	CompileOnly  bool
}

// AssetReference is one file declared by a target library. RuntimeIdentifier
// is empty for plain (platform-agnostic) assets.
type AssetReference struct {
	Path              string
	Type              AssetType
	RuntimeIdentifier string
	AssemblyVersion   string
	FileVersion       string
	Locale            string
}

type LibraryEntry struct {
	Name        string
	Version     string
	Kind        LibraryKind
	Hash        string
	Serviceable bool
	Path        string
	HashPath    string
}

type RuntimeEntry struct {
	RuntimeIdentifier string
	Fallbacks         []string
}

// Target returns the section with the exact given name.
func (m Manifest) Target(name string) (TargetSection, bool) {
	for _, section := range m.Targets {
		if section.Name == name {
			return section, true
		}
	}
	return TargetSection{}, false
}

// Library returns the libraries-index entry for name/version.
func (m Manifest) Library(name string, version string) (LibraryEntry, bool) {
	for _, entry := range m.Libraries {
		if entry.Name == name && entry.Version == version {
			return entry, true
		}
	}
	return LibraryEntry{}, false
}

// LibraryKey renders the "name/version" key used by deps.json documents.
func LibraryKey(name string, version string) string {
	return name + "/" + version
}
