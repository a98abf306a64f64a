package ports

import "hostdeps/internal/types"

type OutputPort interface {
	WriteAssemblyList(paths []string) error
	WriteNativeDirectories(dirs []string) error
	WriteResourceDirectories(dirs []string) error
	WriteHostProperties(resolved types.ResolvedPaths) error
	WriteResolutionReport(report types.ResolutionReport) error
}
