package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"hostdeps/internal/shared"
	"hostdeps/internal/types"
)

// ManifestValidator checks a parsed manifest for problems the parser does
// not reject: duplicate keys, dangling references and suspicious runtime
// fallback declarations.
type ManifestValidator struct{}

func NewManifestValidator() ManifestValidator {
	return ManifestValidator{}
}

// Validate returns every issue found. The error is non-nil when at least one
// issue has error severity.
func (v ManifestValidator) Validate(ctx context.Context, manifest types.Manifest) ([]types.ManifestIssue, error) {
	var issues []types.ManifestIssue

	seenLibraries := map[string]struct{}{}
	for _, entry := range manifest.Libraries {
		assert.NotEmpty(ctx, entry.Name, "library entry must be named")
		key := types.LibraryKey(entry.Name, entry.Version)
		if _, dup := seenLibraries[key]; dup {
			issues = append(issues, issue(types.IssueSeverityError, key, "library declared more than once"))
			continue
		}
		seenLibraries[key] = struct{}{}
		if !shared.IsSemanticVersion(entry.Version) {
			issues = append(issues, issue(types.IssueSeverityWarning, key,
				fmt.Sprintf("version %q is not a semantic version", entry.Version)))
		}
	}

	for _, section := range manifest.Targets {
		issues = append(issues, validateSection(section, seenLibraries)...)
	}
	issues = append(issues, validateRuntimes(manifest.Runtimes)...)

	errorCount := 0
	for _, found := range issues {
		if found.Severity == types.IssueSeverityError {
			errorCount++
		}
	}
	log.Ctx(ctx).Debug().
		Str("manifest", manifest.Source).
		Int("issues", len(issues)).
		Int("errors", errorCount).
		Msg("manifest validated")
	if errorCount > 0 {
		return issues, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s %s: %d validation error(s)", malformedManifestPrefix, manifest.Source, errorCount))
	}
	return issues, nil
}

func validateSection(section types.TargetSection, libraries map[string]struct{}) []types.ManifestIssue {
	var issues []types.ManifestIssue
	declared := map[string]struct{}{}
	for _, lib := range section.Libraries {
		key := types.LibraryKey(lib.Name, lib.Version)
		if _, dup := declared[key]; dup {
			issues = append(issues, issue(types.IssueSeverityError, section.Name+" "+key, "library declared more than once in target"))
		}
		declared[lib.Name] = struct{}{}
		declared[key] = struct{}{}
		if _, ok := libraries[key]; !ok {
			issues = append(issues, issue(types.IssueSeverityWarning, section.Name+" "+key,
				"library missing from libraries index; it resolves as unresolved unless another manifest declares it"))
		}
	}
	for _, lib := range section.Libraries {
		for _, dep := range lib.Dependencies {
			if _, ok := declared[dep.Name]; ok {
				continue
			}
			issues = append(issues, issue(types.IssueSeverityWarning, section.Name+" "+types.LibraryKey(lib.Name, lib.Version),
				fmt.Sprintf("dependency %s not declared in target", types.LibraryKey(dep.Name, dep.Version))))
		}
	}
	return issues
}

func validateRuntimes(runtimes []types.RuntimeEntry) []types.ManifestIssue {
	var issues []types.ManifestIssue
	known := map[string][]string{}
	for _, runtime := range runtimes {
		if _, dup := known[runtime.RuntimeIdentifier]; dup {
			issues = append(issues, issue(types.IssueSeverityWarning, runtime.RuntimeIdentifier,
				"runtime declared more than once; the first declaration is used"))
			continue
		}
		known[runtime.RuntimeIdentifier] = runtime.Fallbacks
	}
	for _, rid := range cyclicRuntimes(runtimes, known) {
		issues = append(issues, issue(types.IssueSeverityWarning, rid, "runtime fallback graph contains a cycle"))
	}
	return issues
}

// cyclicRuntimes returns, in declaration order, each runtime identifier that
// can reach itself through its fallbacks.
func cyclicRuntimes(runtimes []types.RuntimeEntry, known map[string][]string) []string {
	var cyclic []string
	reported := map[string]struct{}{}
	for _, runtime := range runtimes {
		rid := runtime.RuntimeIdentifier
		if _, done := reported[rid]; done {
			continue
		}
		if reaches(rid, rid, known, map[string]struct{}{}) {
			reported[rid] = struct{}{}
			cyclic = append(cyclic, rid)
		}
	}
	return cyclic
}

func reaches(from string, target string, known map[string][]string, visited map[string]struct{}) bool {
	for _, next := range known[from] {
		if next == target {
			return true
		}
		if _, ok := visited[next]; ok {
			continue
		}
		visited[next] = struct{}{}
		if reaches(next, target, known, visited) {
			return true
		}
	}
	return false
}

func issue(severity types.IssueSeverity, subject string, message string) types.ManifestIssue {
	return types.ManifestIssue{Severity: severity, Subject: subject, Message: message}
}
