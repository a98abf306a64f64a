package app

import (
	"testing"
	"testing/fstest"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostdeps/internal/core"
	"hostdeps/internal/types"
)

const appDeps = `{
  "runtimeTarget": {"name": "net8.0/linux-x64"},
  "targets": {
    "net8.0": {},
    "net8.0/linux-x64": {
      "App/1.0.0": {"runtime": {"App.dll": {}}},
      "Lib/1.0.0": {
        "runtime": {"lib/Lib.dll": {"assemblyVersion": "1.0.0.0"}},
        "runtimeTargets": {"runtimes/unix/native/liblib.so": {"rid": "unix", "assetType": "native"}}
      }
    }
  },
  "libraries": {
    "App/1.0.0": {"type": "project"},
    "Lib/1.0.0": {"type": "package", "path": "lib/1.0.0"}
  },
  "runtimes": {"linux-x64": ["linux", "unix"]}
}`

const frameworkDeps = `{
  "targets": {
    "net8.0/linux-x64": {
      "Runtime.Core/8.0.0": {
        "runtime": {"System.Runtime.dll": {}, "Lib.dll": {"assemblyVersion": "2.0.0.0"}},
        "native": {"libhostpolicy.so": {}}
      }
    }
  },
  "libraries": {"Runtime.Core/8.0.0": {"type": "package"}}
}`

const extraDeps = `{
  "targets": {"net8.0": {"Plugin/1.0.0": {"runtime": {"Plugin.dll": {}}}}},
  "libraries": {"Plugin/1.0.0": {"type": "project"}}
}`

func newTestService(t *testing.T, files map[string]string) Service {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return NewServiceWithFs(fs)
}

func entryRequest() LoadRequest {
	return LoadRequest{
		Identity:            types.Identity{Name: "App", Location: "/app/App.dll", Entry: true},
		FrameworkManifests:  []string{"/dotnet/shared/Runtime.Core.deps.json"},
		AdditionalManifests: []string{"/extra/Extra.deps.json", "/extra/Missing.deps.json"},
	}
}

func libraryNames(dc *types.DependencyContext) []string {
	var names []string
	for _, lib := range dc.RuntimeLibraries {
		names = append(names, lib.Name)
	}
	return names
}

func TestLoadEntryApplication(t *testing.T) {
	service := newTestService(t, map[string]string{
		"/app/App.deps.json":                    appDeps,
		"/dotnet/shared/Runtime.Core.deps.json": frameworkDeps,
		"/extra/Extra.deps.json":                extraDeps,
	})
	dc, err := service.Load(t.Context(), entryRequest())
	require.NoError(t, err)
	require.NotNil(t, dc)

	assert.Equal(t, types.Target{Framework: "net8.0", RuntimeIdentifier: "linux-x64"}, dc.Target)
	assert.Equal(t, []string{"App", "Lib", "Runtime.Core", "Plugin"}, libraryNames(dc))
	runtimeCore, ok := dc.RuntimeLibrary("Runtime.Core")
	require.True(t, ok)
	assert.Equal(t, types.ManifestOriginFramework, runtimeCore.Origin)
	assert.Equal(t, "/dotnet/shared", runtimeCore.BaseDir)
}

func TestLoadWithoutManifestReturnsNil(t *testing.T) {
	service := newTestService(t, nil)
	dc, err := service.Load(t.Context(), entryRequest())
	require.NoError(t, err)
	assert.Nil(t, dc)

	dc, err = service.Load(t.Context(), LoadRequest{Identity: types.Identity{Name: "Plugin"}})
	require.NoError(t, err)
	assert.Nil(t, dc, "non-entry identity without resources")
}

func TestLoadEmbeddedManifest(t *testing.T) {
	service := newTestService(t, map[string]string{"/extra/Extra.deps.json": extraDeps})
	resources := fstest.MapFS{"Plugin.deps.json": &fstest.MapFile{Data: []byte(appDeps)}}

	dc, err := service.Load(t.Context(), LoadRequest{
		Identity:            types.Identity{Name: "Plugin", Location: "/plugins/Plugin.dll", Resources: resources},
		AdditionalManifests: []string{"/extra/Extra.deps.json"},
	})
	require.NoError(t, err)
	require.NotNil(t, dc)
	assert.Equal(t, []string{"App", "Lib", "Plugin"}, libraryNames(dc))
}

func TestLoadManifestPathOverride(t *testing.T) {
	service := newTestService(t, map[string]string{"/custom/app.json": appDeps})
	dc, err := service.Load(t.Context(), LoadRequest{
		Identity:        types.Identity{Name: "App", Location: "/app/App.dll", Entry: true},
		AppManifestPath: "/custom/app.json",
	})
	require.NoError(t, err)
	require.NotNil(t, dc)
	assert.Len(t, dc.RuntimeLibraries, 2)
}

func TestLoadPropagatesManifestErrors(t *testing.T) {
	service := newTestService(t, map[string]string{"/app/App.deps.json": `{"targets": {}}`})
	_, err := service.Load(t.Context(), entryRequest())
	require.Error(t, err)
	assert.True(t, core.IsMalformedManifest(err))

	service = newTestService(t, map[string]string{"/app/App.deps.json": appDeps})
	_, err = service.Load(t.Context(), LoadRequest{
		Identity: types.Identity{Name: "App", Location: "/app/App.dll", Entry: true},
		Target:   types.Target{Framework: "net6.0"},
	})
	require.Error(t, err)
	assert.True(t, core.IsNoApplicableTarget(err))
}

func TestLoadRereadsManifests(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/app/App.deps.json", []byte(appDeps), 0o644))
	service := NewServiceWithFs(fs)
	request := LoadRequest{Identity: types.Identity{Name: "App", Location: "/app/App.dll", Entry: true}}

	first, err := service.Load(t.Context(), request)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "/app/App.deps.json", []byte(extraDeps), 0o644))
	second, err := service.Load(t.Context(), request)
	require.NoError(t, err)

	assert.Equal(t, []string{"App", "Lib"}, libraryNames(first))
	assert.Equal(t, []string{"Plugin"}, libraryNames(second))
}
