package ports

import "hostdeps/internal/types"

// ManifestParserPort decodes raw manifest bytes.
type ManifestParserPort interface {
	Parse(source string, origin types.ManifestOrigin, data []byte) (types.Manifest, error)
}

// ManifestSourcePort locates manifest bytes. Open reports (nil, false, nil)
// when nothing exists at name; only read failures of an existing manifest
// are errors.
type ManifestSourcePort interface {
	Open(name string) ([]byte, bool, error)
}
