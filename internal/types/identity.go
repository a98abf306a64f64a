package types

import "io/fs"

// Identity names the binary whose dependency manifest should be loaded.
type Identity struct {
	// Name is the simple name of the assembly, e.g. "MyApp".
	Name string

	// Location is the path of the binary on disk. The entry application's
	// manifest is expected next to it.
	Location string

	// Entry marks the entry application of the process.
	Entry bool

	// Resources exposes resources embedded in the binary image. Non-entry
	// identities carry their manifest there as "<Name>.deps.json".
	Resources fs.FS
}
