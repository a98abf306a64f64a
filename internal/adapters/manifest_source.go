package adapters

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"

	"hostdeps/internal/ports"
)

// FileManifestSource reads manifests from a filesystem path.
type FileManifestSource struct {
	FS afero.Fs
}

func NewFileManifestSource(fs afero.Fs) FileManifestSource {
	return FileManifestSource{FS: fs}
}

func (s FileManifestSource) Open(name string) ([]byte, bool, error) {
	if strings.TrimSpace(name) == "" || s.FS == nil {
		return nil, false, nil
	}
	info, err := s.FS.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to stat manifest %s", name)).
			WithCause(err)
	}
	if info.IsDir() {
		return nil, false, nil
	}
	data, err := afero.ReadFile(s.FS, name)
	if err != nil {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to read manifest %s", name)).
			WithCause(err)
	}
	return data, true, nil
}

// EmbeddedManifestSource reads manifests embedded in a binary image, exposed
// as an fs.FS keyed by resource name.
type EmbeddedManifestSource struct {
	Resources fs.FS
}

func NewEmbeddedManifestSource(resources fs.FS) EmbeddedManifestSource {
	return EmbeddedManifestSource{Resources: resources}
}

func (s EmbeddedManifestSource) Open(name string) ([]byte, bool, error) {
	if s.Resources == nil || !fs.ValidPath(name) {
		return nil, false, nil
	}
	data, err := fs.ReadFile(s.Resources, path.Clean(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to read embedded manifest %s", name)).
			WithCause(err)
	}
	return data, true, nil
}

var (
	_ ports.ManifestSourcePort = FileManifestSource{}
	_ ports.ManifestSourcePort = EmbeddedManifestSource{}
)
