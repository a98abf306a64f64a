// Package shared provides common utility functions used across multiple
// packages in the hostdeps codebase.
package shared

import (
	"os"
	"path/filepath"
	"strings"
)

// ManifestSuffix is appended to an assembly name to form its manifest name.
const ManifestSuffix = ".deps.json"

// ManifestPathFor returns the manifest path that sits next to a binary:
// the binary path with its extension replaced by ".deps.json".
func ManifestPathFor(binaryPath string) string {
	ext := filepath.Ext(binaryPath)
	return strings.TrimSuffix(binaryPath, ext) + ManifestSuffix
}

// ManifestResourceName returns the embedded resource name for an assembly.
func ManifestResourceName(assemblyName string) string {
	return strings.TrimSpace(assemblyName) + ManifestSuffix
}

// JoinPathList joins paths with the platform path-list separator.
func JoinPathList(paths []string) string {
	return strings.Join(paths, string(os.PathListSeparator))
}

// SplitPathList is the inverse of JoinPathList; empty segments are dropped.
func SplitPathList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, string(os.PathListSeparator)) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// AssemblyName returns the simple assembly name of a binary path.
func AssemblyName(binaryPath string) string {
	base := filepath.Base(binaryPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// AbsolutePaths makes every non-empty path absolute against the working
// directory. Empty entries are kept so callers can still skip them.
func AbsolutePaths(paths []string) ([]string, error) {
	if paths == nil {
		return nil, nil
	}
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		abs, err := AbsolutePath(path)
		if err != nil {
			return nil, err
		}
		out = append(out, abs)
	}
	return out, nil
}

// AbsolutePath returns path made absolute, or "" for a blank path.
func AbsolutePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	return filepath.Abs(path)
}
