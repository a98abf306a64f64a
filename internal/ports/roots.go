package ports

import "hostdeps/internal/types"

// RootResolverPort supplies the installation root a library's relative asset
// paths are resolved against. It returns false when the library has no
// usable root (for example unresolved libraries).
type RootResolverPort interface {
	Root(lib types.RuntimeLibrary) (string, bool)
}
