package adapters

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostdeps/internal/types"
)

func rootLibrary(kind types.LibraryKind, name string, version string) types.RuntimeLibrary {
	return types.RuntimeLibrary{Library: types.Library{
		Kind:    kind,
		Name:    name,
		Version: version,
		Origin:  types.ManifestOriginApplication,
		BaseDir: "/app",
	}}
}

func TestProbeRootsAdapter(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(filepath.Join("/cache-b", "newtonsoft.json", "13.0.1"), 0o755))
	require.NoError(t, fs.MkdirAll(filepath.Join("/cache-a", "custom", "path"), 0o755))
	adapter := NewProbeRootsAdapter(fs, "/app", []string{"/cache-a", "", "/cache-b"})

	pathed := rootLibrary(types.LibraryKindPackage, "Pathed", "1.0.0")
	pathed.Path = "custom/path"
	framework := rootLibrary(types.LibraryKindPackage, "Microsoft.NETCore.App", "8.0.0")
	framework.Origin = types.ManifestOriginFramework
	framework.BaseDir = "/dotnet/shared/Microsoft.NETCore.App/8.0.0"

	tests := []struct {
		name  string
		lib   types.RuntimeLibrary
		want  string
		found bool
	}{
		{name: "package in second cache", lib: rootLibrary(types.LibraryKindPackage, "Newtonsoft.Json", "13.0.1"), want: filepath.Join("/cache-b", "newtonsoft.json", "13.0.1"), found: true},
		{name: "package path from manifest", lib: pathed, want: filepath.Join("/cache-a", "custom", "path"), found: true},
		{name: "package not installed falls back to first cache", lib: rootLibrary(types.LibraryKindPackage, "Absent", "2.0.0"), want: filepath.Join("/cache-a", "absent", "2.0.0"), found: true},
		{name: "project lives in the app dir", lib: rootLibrary(types.LibraryKindProject, "App", "1.0.0"), want: "/app", found: true},
		{name: "reference lives in the app dir", lib: rootLibrary(types.LibraryKindReference, "Ref", "1.0.0"), want: "/app", found: true},
		{name: "framework library uses its manifest dir", lib: framework, want: "/dotnet/shared/Microsoft.NETCore.App/8.0.0", found: true},
		{name: "unresolved has no root", lib: rootLibrary(types.LibraryKindUnresolved, "Ghost", "1.0.0"), found: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, ok := adapter.Root(tt.lib)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, root)
		})
	}
}

func TestProbeRootsAdapterWithoutCaches(t *testing.T) {
	adapter := NewProbeRootsAdapter(afero.NewMemMapFs(), "/app", nil)
	root, ok := adapter.Root(rootLibrary(types.LibraryKindPackage, "Lib", "1.0.0"))
	assert.True(t, ok)
	assert.Equal(t, "/app", root)

	_, ok = NewProbeRootsAdapter(afero.NewMemMapFs(), "", nil).Root(rootLibrary(types.LibraryKindProject, "App", "1.0.0"))
	assert.False(t, ok)
}
