package core

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"hostdeps/internal/policies"
	"hostdeps/internal/ports"
	"hostdeps/internal/types"
)

// PathBuilder turns the selected assets of a dependency context into the
// absolute path lists handed to the host.
type PathBuilder struct {
	Roots ports.RootResolverPort
}

func NewPathBuilder(roots ports.RootResolverPort) PathBuilder {
	return PathBuilder{Roots: roots}
}

// Build walks runtime libraries in emission order. rid overrides the
// context's own runtime identifier when set.
func (b PathBuilder) Build(ctx context.Context, dc types.DependencyContext, rid string) (types.ResolvedPaths, error) {
	if b.Roots == nil {
		return types.ResolvedPaths{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("path builder requires a root resolver")
	}
	if rid == "" {
		rid = dc.Target.RuntimeIdentifier
	}
	probe := ProbeSequence(rid, dc.RuntimeGraph)

	result := types.ResolvedPaths{
		Report: types.ResolutionReport{Records: []types.ResolutionRecord{}},
	}
	shadow := policies.NewShadowPolicy()
	nativeSeen := map[string]struct{}{}
	resourceSeen := map[string]struct{}{}

	for _, lib := range dc.RuntimeLibraries {
		runtimeGroup, hasRuntime := SelectAssetGroup(lib.RuntimeAssetGroups, probe)
		nativeGroup, hasNative := SelectAssetGroup(lib.NativeLibraryGroups, probe)
		hasAssets := (hasRuntime && len(runtimeGroup.Assets) > 0) ||
			(hasNative && len(nativeGroup.Assets) > 0) ||
			len(lib.ResourceAssemblies) > 0
		if !hasAssets {
			continue
		}
		root, ok := b.Roots.Root(lib)
		if !ok {
			result.Report.Records = append(result.Report.Records, types.ResolutionRecord{
				Library: types.LibraryKey(lib.Name, lib.Version),
				Action:  types.RecordActionSkipped,
				Reason:  fmt.Sprintf("no installation root for %s library", lib.Kind),
			})
			log.Ctx(ctx).Warn().
				Str("library", lib.Name).
				Str("kind", string(lib.Kind)).
				Msg("library has assets but no installation root")
			continue
		}

		if hasRuntime {
			for _, asset := range runtimeGroup.Assets {
				admitted, record := shadow.Admit(lib.Library, asset)
				if !admitted {
					result.Report.Records = append(result.Report.Records, record)
					continue
				}
				result.Assemblies = append(result.Assemblies, assetPath(root, asset.Path))
			}
		}
		if hasNative {
			for _, asset := range nativeGroup.Assets {
				dir := filepath.Dir(assetPath(root, asset.Path))
				if _, dup := nativeSeen[dir]; dup {
					continue
				}
				nativeSeen[dir] = struct{}{}
				result.NativeSearchDirectories = append(result.NativeSearchDirectories, dir)
			}
		}
		for _, resource := range lib.ResourceAssemblies {
			dir := resourceRoot(root, resource.Path)
			if _, dup := resourceSeen[dir]; dup {
				continue
			}
			resourceSeen[dir] = struct{}{}
			result.ResourceSearchDirectories = append(result.ResourceSearchDirectories, dir)
		}
	}

	log.Ctx(ctx).Debug().
		Str("rid", rid).
		Strs("probe", probe).
		Int("assemblies", len(result.Assemblies)).
		Int("native_dirs", len(result.NativeSearchDirectories)).
		Msg("asset paths built")
	return result, nil
}

func assetPath(root string, relative string) string {
	return filepath.Join(root, filepath.FromSlash(relative))
}

// resourceRoot returns the directory that contains the locale directory of a
// satellite assembly, e.g. "lib/net5.0/de/App.resources.dll" -> "<root>/lib/net5.0".
func resourceRoot(root string, relative string) string {
	localeDir := path.Dir(relative)
	return filepath.Join(root, filepath.FromSlash(path.Dir(localeDir)))
}
