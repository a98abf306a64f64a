package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"hostdeps/internal/adapters"
	"hostdeps/internal/core"
	"hostdeps/internal/ports"
	"hostdeps/internal/shared"
	"hostdeps/internal/types"
)

// Load builds the dependency context of req.Identity. A binary without a
// manifest has no dependency context: Load then returns nil and no error.
// Every call reads and merges the manifests again.
func (s Service) Load(ctx context.Context, req LoadRequest) (*types.DependencyContext, error) {
	req, err := absoluteLoadRequest(req)
	if err != nil {
		return nil, err
	}
	app, found, err := s.loadApplication(ctx, req)
	if err != nil || !found {
		return nil, err
	}
	var secondary []types.Manifest
	frameworks, err := s.loadSecondary(ctx, req.FrameworkManifests, types.ManifestOriginFramework)
	if err != nil {
		return nil, err
	}
	secondary = append(secondary, frameworks...)
	additional, err := s.loadSecondary(ctx, req.AdditionalManifests, types.ManifestOriginAdditional)
	if err != nil {
		return nil, err
	}
	secondary = append(secondary, additional...)

	merger := core.NewContextMerger(s.Policy)
	dc, err := merger.Merge(ctx, req.Target, app, secondary...)
	if err != nil {
		return nil, err
	}
	return &dc, nil
}

// absoluteLoadRequest anchors every manifest path of req to the working
// directory, so library roots derived from them are absolute.
func absoluteLoadRequest(req LoadRequest) (LoadRequest, error) {
	var err error
	if req.AppManifestPath, err = shared.AbsolutePath(req.AppManifestPath); err != nil {
		return LoadRequest{}, pathError(err)
	}
	if req.Identity.Location, err = shared.AbsolutePath(req.Identity.Location); err != nil {
		return LoadRequest{}, pathError(err)
	}
	if req.FrameworkManifests, err = shared.AbsolutePaths(req.FrameworkManifests); err != nil {
		return LoadRequest{}, pathError(err)
	}
	if req.AdditionalManifests, err = shared.AbsolutePaths(req.AdditionalManifests); err != nil {
		return LoadRequest{}, pathError(err)
	}
	return req, nil
}

func pathError(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to resolve absolute path").
		WithCause(err)
}

// applicationManifestPath returns where the manifest of an entry binary is
// read from, or "" when the manifest comes from embedded resources.
func applicationManifestPath(req LoadRequest) string {
	if path := strings.TrimSpace(req.AppManifestPath); path != "" {
		return path
	}
	if req.Identity.Entry && strings.TrimSpace(req.Identity.Location) != "" {
		return shared.ManifestPathFor(req.Identity.Location)
	}
	return ""
}

func (s Service) loadApplication(ctx context.Context, req LoadRequest) (types.Manifest, bool, error) {
	if path := applicationManifestPath(req); path != "" {
		return s.readManifest(ctx, s.Files, path, path, types.ManifestOriginApplication)
	}
	if req.Identity.Entry {
		log.Ctx(ctx).Debug().Str("identity", req.Identity.Name).Msg("entry identity has no location")
		return types.Manifest{}, false, nil
	}
	name := shared.ManifestResourceName(req.Identity.Name)
	source := adapters.NewEmbeddedManifestSource(req.Identity.Resources)
	return s.readManifest(ctx, source, name, "embedded:"+name, types.ManifestOriginApplication)
}

func (s Service) loadSecondary(ctx context.Context, paths []string, origin types.ManifestOrigin) ([]types.Manifest, error) {
	var manifests []types.Manifest
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		manifest, found, err := s.readManifest(ctx, s.Files, path, path, origin)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		manifests = append(manifests, manifest)
	}
	return manifests, nil
}

func (s Service) readManifest(ctx context.Context, source ports.ManifestSourcePort, name string, label string, origin types.ManifestOrigin) (types.Manifest, bool, error) {
	data, found, err := source.Open(name)
	if err != nil {
		return types.Manifest{}, false, err
	}
	if !found {
		log.Ctx(ctx).Debug().
			Str("manifest", label).
			Str("origin", string(origin)).
			Msg("manifest not found")
		return types.Manifest{}, false, nil
	}
	manifest, err := s.Parser.Parse(label, origin, data)
	if err != nil {
		return types.Manifest{}, false, err
	}
	log.Ctx(ctx).Debug().
		Str("manifest", label).
		Str("origin", string(origin)).
		Int("targets", len(manifest.Targets)).
		Int("libraries", len(manifest.Libraries)).
		Msg("manifest loaded")
	return manifest, true, nil
}
