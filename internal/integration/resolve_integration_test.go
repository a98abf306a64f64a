package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostdeps/internal/app"
	"hostdeps/internal/shared"
	"hostdeps/internal/types"
)

// newFixtureService reads the repository fixtures from disk and keeps every
// write in memory.
func newFixtureService() app.Service {
	base := afero.NewReadOnlyFs(afero.NewOsFs())
	return app.NewServiceWithFs(afero.NewCopyOnWriteFs(base, afero.NewMemMapFs()))
}

func fixtureRequest(root string) app.LoadRequest {
	return app.LoadRequest{
		Identity: types.Identity{
			Name:     "App",
			Location: filepath.Join(root, "fixtures", "app", "App.dll"),
			Entry:    true,
		},
		FrameworkManifests: []string{
			filepath.Join(root, "fixtures", "shared", "Microsoft.NETCore.App", "8.0.0", "Microsoft.NETCore.App.deps.json"),
		},
		AdditionalManifests: []string{
			filepath.Join(root, "fixtures", "extra", "Extra.deps.json"),
		},
	}
}

func TestResolveIntegration(t *testing.T) {
	root := repoRoot(t)
	appDir := filepath.Join(root, "fixtures", "app")
	frameworkDir := filepath.Join(root, "fixtures", "shared", "Microsoft.NETCore.App", "8.0.0")
	cache := filepath.Join(root, "fixtures", "packages")
	service := newFixtureService()

	result, err := service.Resolve(t.Context(), app.ResolveRequest{
		LoadRequest:   fixtureRequest(root),
		PackageCaches: []string{cache},
		OutputDir:     filepath.Join(root, "out"),
	})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, types.Target{Framework: ".NETCoreApp,Version=v8.0", RuntimeIdentifier: "linux-x64"}, result.Target)

	wantAssemblies := []string{
		filepath.Join(appDir, "App.dll"),
		filepath.Join(cache, "newtonsoft.json", "13.0.1", "lib", "net8.0", "Newtonsoft.Json.dll"),
		filepath.Join(cache, "system.banana", "1.0.0", "lib", "net8.0", "System.Banana.dll"),
		filepath.Join(frameworkDir, "System.Runtime.dll"),
		filepath.Join(appDir, "Plugin.Core.dll"),
	}
	if diff := cmp.Diff(wantAssemblies, result.Paths.Assemblies); diff != "" {
		t.Fatalf("unexpected assemblies (-want +got):\n%s", diff)
	}
	wantNative := []string{
		filepath.Join(cache, "native.sqlite", "3.0.0", "runtimes", "linux-x64", "native"),
		frameworkDir,
	}
	if diff := cmp.Diff(wantNative, result.Paths.NativeSearchDirectories); diff != "" {
		t.Fatalf("unexpected native directories (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{appDir}, result.Paths.ResourceSearchDirectories)

	require.Len(t, result.Paths.Report.Records, 1)
	record := result.Paths.Report.Records[0]
	assert.Equal(t, "Microsoft.NETCore.App.Runtime.linux-x64/8.0.0", record.Library)
	assert.Equal(t, "System.Banana.dll", record.Asset)
	assert.Contains(t, record.Reason, "newer assembly version 2.0.0.0 shadowed by 1.0.0.0")

	inspected, err := service.Inspect(app.InspectRequest{OutputDir: filepath.Join(root, "out")})
	require.NoError(t, err)
	assert.Equal(t, wantAssemblies, inspected.Assemblies)
	assert.Equal(t, shared.JoinPathList(wantAssemblies), inspected.Properties[types.PropertyTrustedPlatformAssemblies])
	assert.Equal(t, 1, inspected.Shadowed)

	_, err = os.Stat(filepath.Join(root, "out"))
	assert.True(t, os.IsNotExist(err), "outputs stay in the in-memory layer")
}

func TestResolveIntegrationRelativeInputs(t *testing.T) {
	root := repoRoot(t)
	relative := filepath.Join("..", "..")
	service := newFixtureService()

	result, err := service.Resolve(t.Context(), app.ResolveRequest{
		LoadRequest: app.LoadRequest{
			Identity:           types.Identity{Name: "App", Entry: true},
			AppManifestPath:    filepath.Join(relative, "fixtures", "app", "App.deps.json"),
			FrameworkManifests: fixtureRequest(relative).FrameworkManifests,
		},
		PackageCaches: []string{filepath.Join(relative, "fixtures", "packages")},
		OutputDir:     filepath.Join(root, "out-relative"),
	})
	require.NoError(t, err)
	require.True(t, result.Found)
	assert.Equal(t, filepath.Join(root, "fixtures", "app", "App.deps.json"), result.ManifestPath)

	require.NotEmpty(t, result.Paths.Assemblies)
	require.NotEmpty(t, result.Paths.NativeSearchDirectories)
	for _, group := range [][]string{
		result.Paths.Assemblies,
		result.Paths.NativeSearchDirectories,
		result.Paths.ResourceSearchDirectories,
	} {
		for _, path := range group {
			assert.True(t, filepath.IsAbs(path), "path %q is not absolute", path)
		}
	}
	assert.Equal(t, filepath.Join(root, "fixtures", "app", "App.dll"), result.Paths.Assemblies[0])
	assert.Contains(t, result.Paths.Assemblies,
		filepath.Join(root, "fixtures", "shared", "Microsoft.NETCore.App", "8.0.0", "System.Runtime.dll"))
	assert.Contains(t, result.Paths.NativeSearchDirectories,
		filepath.Join(root, "fixtures", "packages", "native.sqlite", "3.0.0", "runtimes", "linux-x64", "native"))

	inspected, err := service.Inspect(app.InspectRequest{OutputDir: filepath.Join(root, "out-relative")})
	require.NoError(t, err)
	for _, path := range shared.SplitPathList(inspected.Properties[types.PropertyTrustedPlatformAssemblies]) {
		assert.True(t, filepath.IsAbs(path), "host property entry %q is not absolute", path)
	}
}

func TestLoadIntegrationCompileOnlyLibraries(t *testing.T) {
	root := repoRoot(t)
	dc, err := newFixtureService().Load(t.Context(), fixtureRequest(root))
	require.NoError(t, err)
	require.NotNil(t, dc)

	_, ok := dc.RuntimeLibrary("Analyzers")
	assert.False(t, ok)
	var compileOnly []string
	for _, lib := range dc.CompilationLibraries {
		if lib.Name == "Analyzers" {
			compileOnly = lib.Assemblies
		}
	}
	assert.Equal(t, []string{"lib/netstandard2.0/Analyzers.dll"}, compileOnly)

	newtonsoft, ok := dc.RuntimeLibrary("Newtonsoft.Json")
	require.True(t, ok)
	assert.Equal(t, "13.0.1", newtonsoft.Version, "the application's version wins over the additional manifest")
	assert.Equal(t, "newtonsoft.json.13.0.1.nupkg.sha512", newtonsoft.HashPath)

	fallbacks, ok := dc.RuntimeGraph.Fallbacks("linux-x64")
	require.True(t, ok)
	assert.Equal(t, []string{"linux", "unix-x64", "unix", "any", "base"}, fallbacks)
	_, ok = dc.RuntimeGraph.Fallbacks("linux-musl-x64")
	assert.True(t, ok)
}

func TestValidateIntegrationFixtures(t *testing.T) {
	root := repoRoot(t)
	service := newFixtureService()
	for _, path := range []string{
		filepath.Join(root, "fixtures", "app", "App.deps.json"),
		filepath.Join(root, "fixtures", "extra", "Extra.deps.json"),
		filepath.Join(root, "fixtures", "shared", "Microsoft.NETCore.App", "8.0.0", "Microsoft.NETCore.App.deps.json"),
	} {
		_, err := service.Validate(t.Context(), app.ValidateRequest{ManifestPath: path})
		require.NoError(t, err, path)
	}
}

func TestProbeIntegration(t *testing.T) {
	root := repoRoot(t)
	result, err := newFixtureService().Probe(t.Context(), app.ProbeRequest{
		RuntimeIdentifier: "linux-musl-x64",
		Manifests: []string{
			filepath.Join(root, "fixtures", "app", "App.deps.json"),
			filepath.Join(root, "fixtures", "shared", "Microsoft.NETCore.App", "8.0.0", "Microsoft.NETCore.App.deps.json"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"linux-musl-x64", "linux-musl", "linux-x64", "linux", "unix-x64", "unix", "any", "base"}, result.Sequence)
}

func repoRoot(t *testing.T) string {
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}
