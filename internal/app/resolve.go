package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"hostdeps/internal/adapters"
	"hostdeps/internal/core"
	"hostdeps/internal/ports"
	"hostdeps/internal/shared"
	"hostdeps/internal/types"
)

// Resolve loads the dependency context, builds the host path lists and
// writes them to req.OutputDir. Nothing is written when the binary has no
// manifest.
func (s Service) Resolve(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	loadReq, err := absoluteLoadRequest(req.LoadRequest)
	if err != nil {
		return ResolveResult{}, err
	}
	req.LoadRequest = loadReq
	if req.PackageCaches, err = shared.AbsolutePaths(req.PackageCaches); err != nil {
		return ResolveResult{}, pathError(err)
	}
	if strings.TrimSpace(req.Identity.Name) == "" && applicationManifestPath(req.LoadRequest) == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("an application manifest or identity is required")
	}

	result := ResolveResult{
		ManifestPath: applicationManifestPath(req.LoadRequest),
		OutputDir:    outputDir,
	}
	dc, err := s.Load(ctx, req.LoadRequest)
	if err != nil {
		return ResolveResult{}, err
	}
	if dc == nil {
		log.Ctx(ctx).Info().
			Str("identity", req.Identity.Name).
			Str("manifest", result.ManifestPath).
			Msg("no dependency manifest, nothing to resolve")
		return result, nil
	}

	roots := adapters.NewProbeRootsAdapter(s.FS, applicationDir(req.LoadRequest), req.PackageCaches)
	paths, err := core.NewPathBuilder(roots).Build(ctx, *dc, req.RuntimeIdentifier)
	if err != nil {
		return ResolveResult{}, err
	}
	if err := writeOutputs(adapters.NewOutputFileAdapter(s.FS, outputDir), paths); err != nil {
		return ResolveResult{}, err
	}

	result.Found = true
	result.Target = dc.Target
	result.Paths = paths
	result.Hints = resolveHints(req, *dc)
	return result, nil
}

func writeOutputs(output ports.OutputPort, paths types.ResolvedPaths) error {
	if err := output.WriteAssemblyList(paths.Assemblies); err != nil {
		return err
	}
	if err := output.WriteNativeDirectories(paths.NativeSearchDirectories); err != nil {
		return err
	}
	if err := output.WriteResourceDirectories(paths.ResourceSearchDirectories); err != nil {
		return err
	}
	if err := output.WriteHostProperties(paths); err != nil {
		return err
	}
	return output.WriteResolutionReport(paths.Report)
}

// applicationDir is the directory project and reference libraries are
// installed in: the directory of the application manifest or binary.
func applicationDir(req LoadRequest) string {
	if path := applicationManifestPath(req); path != "" {
		return filepath.Dir(path)
	}
	if location := strings.TrimSpace(req.Identity.Location); location != "" {
		return filepath.Dir(location)
	}
	return ""
}
