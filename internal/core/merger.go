package core

import (
	"context"
	"path/filepath"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hostdeps/internal/ports"
	"hostdeps/internal/shared"
	"hostdeps/internal/types"
)

// ContextMerger combines an application manifest with framework and
// additional manifests into a single DependencyContext.
type ContextMerger struct {
	Policy ports.TargetPolicyPort
}

func NewContextMerger(policy ports.TargetPolicyPort) ContextMerger {
	return ContextMerger{Policy: policy}
}

type contribution struct {
	manifest types.Manifest
	section  types.TargetSection
}

type libraryKey struct {
	name    string
	version string
}

// Merge resolves app against target and folds in each secondary manifest in
// the given order. The application always takes precedence: its library
// metadata wins and its libraries are emitted first. A secondary manifest
// without a selectable target section is skipped.
func (m ContextMerger) Merge(ctx context.Context, target types.Target, app types.Manifest, secondary ...types.Manifest) (types.DependencyContext, error) {
	desired := target.Name()
	if target.Framework == "" {
		desired = app.RuntimeTarget.Name
	}
	appSection, ok := m.Policy.Select(ctx, app, desired)
	if !ok {
		return types.DependencyContext{}, NoApplicableTarget(app.Source, desired)
	}
	assert.NotEmpty(ctx, appSection.Name, "selected target section must be named")

	contributions := []contribution{{manifest: app, section: appSection}}
	for _, manifest := range secondary {
		section, ok := m.Policy.Select(ctx, manifest, appSection.Name)
		if !ok {
			log.Ctx(ctx).Debug().
				Str("manifest", manifest.Source).
				Str("target", appSection.Name).
				Msg("manifest has no applicable target, skipping")
			continue
		}
		contributions = append(contributions, contribution{manifest: manifest, section: section})
	}

	var order []libraryKey
	builders := map[libraryKey]*libraryBuilder{}
	for idx, c := range contributions {
		for _, lib := range c.section.Libraries {
			key := libraryKey{name: lib.Name, version: lib.Version}
			builder, ok := builders[key]
			if !ok {
				builder = newLibraryBuilder(lib, c.manifest)
				builders[key] = builder
				order = append(order, key)
			}
			builder.add(idx, lib)
		}
	}

	result := types.DependencyContext{
		Target:       contextTarget(target, desired, appSection.Name),
		RuntimeGraph: mergeRuntimeGraphs(contributions),
	}
	emitted := map[string]libraryKey{}
	for _, key := range order {
		if first, ok := emitted[key.name]; ok {
			level := zerolog.DebugLevel
			if shared.CompareVersions(key.version, first.version) > 0 {
				level = zerolog.WarnLevel
			}
			log.Ctx(ctx).WithLevel(level).
				Str("library", key.name).
				Str("kept", first.version).
				Str("dropped", key.version).
				Msg("library already provided by a higher precedence manifest")
			continue
		}
		emitted[key.name] = key
		builder := builders[key]
		lib := builder.library(lookupMetadata(contributions, key))
		assert.NotEmpty(ctx, lib.Name, "emitted library must be named")
		result.CompilationLibraries = append(result.CompilationLibraries, types.CompilationLibrary{
			Library:    lib,
			Assemblies: append([]string(nil), builder.compile...),
		})
		if builder.compileOnly {
			continue
		}
		result.RuntimeLibraries = append(result.RuntimeLibraries, types.RuntimeLibrary{
			Library:             lib,
			RuntimeAssetGroups:  builder.runtime.snapshot(),
			NativeLibraryGroups: builder.native.snapshot(),
			ResourceAssemblies:  append([]types.ResourceAssembly(nil), builder.resources...),
		})
	}

	log.Ctx(ctx).Debug().
		Str("target", result.Target.Name()).
		Int("manifests", len(contributions)).
		Int("runtime_libraries", len(result.RuntimeLibraries)).
		Int("runtimes", result.RuntimeGraph.Len()).
		Msg("dependency context merged")
	return result, nil
}

func contextTarget(requested types.Target, desired string, selected string) types.Target {
	if requested.Framework != "" {
		return requested
	}
	if desired != "" {
		return types.ParseTarget(desired)
	}
	return types.ParseTarget(selected)
}

func lookupMetadata(contributions []contribution, key libraryKey) (types.LibraryEntry, bool) {
	for _, c := range contributions {
		if entry, ok := c.manifest.Library(key.name, key.version); ok {
			return entry, true
		}
	}
	return types.LibraryEntry{}, false
}

func mergeRuntimeGraphs(contributions []contribution) types.RuntimeFallbackGraph {
	var entries []types.RuntimeFallback
	for _, c := range contributions {
		for _, runtime := range c.manifest.Runtimes {
			entries = append(entries, types.RuntimeFallback{
				Runtime:   runtime.RuntimeIdentifier,
				Fallbacks: runtime.Fallbacks,
			})
		}
	}
	return types.NewRuntimeFallbackGraph(entries)
}

// libraryBuilder accumulates the declarations of one name/version across
// every contributing manifest.
type libraryBuilder struct {
	name         string
	version      string
	origin       types.ManifestOrigin
	baseDir      string
	compileOnly  bool
	dependencies []types.Dependency
	depSeen      map[string]struct{}
	runtime      groupSet
	native       groupSet
	resources    []types.ResourceAssembly
	resourceSeen map[string]struct{}
	compile      []string
	compileSeen  map[string]struct{}
}

func newLibraryBuilder(lib types.TargetLibrary, manifest types.Manifest) *libraryBuilder {
	baseDir := ""
	if manifest.Source != "" {
		baseDir = filepath.Dir(manifest.Source)
	}
	return &libraryBuilder{
		name:         lib.Name,
		version:      lib.Version,
		origin:       manifest.Origin,
		baseDir:      baseDir,
		compileOnly:  lib.CompileOnly,
		depSeen:      map[string]struct{}{},
		runtime:      newGroupSet(),
		native:       newGroupSet(),
		resourceSeen: map[string]struct{}{},
		compileSeen:  map[string]struct{}{},
	}
}

func (b *libraryBuilder) add(contributor int, lib types.TargetLibrary) {
	for _, dep := range lib.Dependencies {
		if _, ok := b.depSeen[dep.Name]; ok {
			continue
		}
		b.depSeen[dep.Name] = struct{}{}
		b.dependencies = append(b.dependencies, dep)
	}
	for _, asset := range lib.Assets {
		switch asset.Type {
		case types.AssetTypeRuntime:
			b.runtime.add(contributor, asset)
		case types.AssetTypeNative:
			b.native.add(contributor, asset)
		case types.AssetTypeResource:
			if _, ok := b.resourceSeen[asset.Path]; ok {
				continue
			}
			b.resourceSeen[asset.Path] = struct{}{}
			b.resources = append(b.resources, types.ResourceAssembly{Path: asset.Path, Locale: asset.Locale})
		case types.AssetTypeCompile:
			if _, ok := b.compileSeen[asset.Path]; ok {
				continue
			}
			b.compileSeen[asset.Path] = struct{}{}
			b.compile = append(b.compile, asset.Path)
		}
	}
}

func (b *libraryBuilder) library(entry types.LibraryEntry, found bool) types.Library {
	lib := types.Library{
		Kind:         types.LibraryKindUnresolved,
		Name:         b.name,
		Version:      b.version,
		Dependencies: append([]types.Dependency(nil), b.dependencies...),
		Origin:       b.origin,
		BaseDir:      b.baseDir,
	}
	if found {
		lib.Kind = entry.Kind
		lib.Hash = entry.Hash
		lib.Serviceable = entry.Serviceable
		lib.Path = entry.Path
		lib.HashPath = entry.HashPath
	}
	return lib
}

// groupSet keeps asset groups in first-seen order, one group per runtime
// identifier. A group belongs to the manifest that declared it first; later
// manifests cannot extend it.
type groupSet struct {
	groups []types.AssetGroup
	index  map[string]int
	owner  map[string]int
	seen   map[string]map[string]struct{}
}

func newGroupSet() groupSet {
	return groupSet{
		index: map[string]int{},
		owner: map[string]int{},
		seen:  map[string]map[string]struct{}{},
	}
}

func (s *groupSet) add(contributor int, asset types.AssetReference) {
	rid := asset.RuntimeIdentifier
	idx, ok := s.index[rid]
	if !ok {
		idx = len(s.groups)
		s.index[rid] = idx
		s.owner[rid] = contributor
		s.seen[rid] = map[string]struct{}{}
		s.groups = append(s.groups, types.AssetGroup{RuntimeIdentifier: rid})
	}
	if s.owner[rid] != contributor {
		return
	}
	if _, dup := s.seen[rid][asset.Path]; dup {
		return
	}
	s.seen[rid][asset.Path] = struct{}{}
	s.groups[idx].Assets = append(s.groups[idx].Assets, types.AssetFile{
		Path:            asset.Path,
		AssemblyVersion: asset.AssemblyVersion,
		FileVersion:     asset.FileVersion,
	})
}

func (s groupSet) snapshot() []types.AssetGroup {
	out := make([]types.AssetGroup, 0, len(s.groups))
	for _, group := range s.groups {
		out = append(out, types.AssetGroup{
			RuntimeIdentifier: group.RuntimeIdentifier,
			Assets:            append([]types.AssetFile(nil), group.Assets...),
		})
	}
	return out
}
