package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"hostdeps/internal/core"
	"hostdeps/internal/types"
)

// Validate parses a single manifest and reports structural issues. The
// issues are returned alongside the error when any has error severity.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	path := strings.TrimSpace(req.ManifestPath)
	if path == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	manifest, found, err := s.readManifest(ctx, s.Files, path, path, types.ManifestOriginApplication)
	if err != nil {
		return ValidateResult{}, err
	}
	if !found {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("manifest %s not found", path))
	}

	result := ValidateResult{Source: manifest.Source, Libraries: len(manifest.Libraries)}
	for _, section := range manifest.Targets {
		result.Targets = append(result.Targets, section.Name)
	}
	issues, err := core.NewManifestValidator().Validate(ctx, manifest)
	result.Issues = issues
	return result, err
}
