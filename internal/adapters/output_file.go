package adapters

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"

	"hostdeps/internal/ports"
	"hostdeps/internal/shared"
	"hostdeps/internal/types"
)

// Output file names written by OutputFileAdapter.
const (
	AssemblyListFile       = "tpa.list"
	NativeDirectoriesFile  = "native.dirs"
	ResourceDirectoryFile  = "resource.dirs"
	HostPropertiesFile     = "host.properties"
	ResolutionReportFile   = "resolution.report"
	outputFilePermissions  = 0o644
	outputDirectoryPerms   = 0o755
	resolutionReportFields = 4
)

// OutputFileAdapter writes resolved paths under Dir. Path lists keep their
// resolution order; the order is what the host probes.
type OutputFileAdapter struct {
	FS  afero.Fs
	Dir string
}

func NewOutputFileAdapter(fs afero.Fs, dir string) OutputFileAdapter {
	return OutputFileAdapter{FS: fs, Dir: dir}
}

func (a OutputFileAdapter) WriteAssemblyList(paths []string) error {
	return a.writeLines(AssemblyListFile, paths)
}

func (a OutputFileAdapter) WriteNativeDirectories(dirs []string) error {
	return a.writeLines(NativeDirectoriesFile, dirs)
}

func (a OutputFileAdapter) WriteResourceDirectories(dirs []string) error {
	return a.writeLines(ResourceDirectoryFile, dirs)
}

// WriteHostProperties writes the joined path lists as NAME=value lines.
func (a OutputFileAdapter) WriteHostProperties(resolved types.ResolvedPaths) error {
	lines := []string{
		fmt.Sprintf("%s=%s", types.PropertyTrustedPlatformAssemblies, shared.JoinPathList(resolved.Assemblies)),
		fmt.Sprintf("%s=%s", types.PropertyNativeSearchDirectories, shared.JoinPathList(resolved.NativeSearchDirectories)),
		fmt.Sprintf("%s=%s", types.PropertyResourceRoots, shared.JoinPathList(resolved.ResourceSearchDirectories)),
	}
	return a.writeLines(HostPropertiesFile, lines)
}

func (a OutputFileAdapter) WriteResolutionReport(report types.ResolutionReport) error {
	var lines []string
	for _, record := range report.Records {
		lines = append(lines, fmt.Sprintf(
			"%s,%s,%s,%s",
			record.Library,
			record.Asset,
			record.Action,
			record.Reason,
		))
	}
	return a.writeLines(ResolutionReportFile, lines)
}

func (a OutputFileAdapter) writeLines(filename string, lines []string) error {
	path, err := a.ensurePath(filename)
	if err != nil {
		return err
	}
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := afero.WriteFile(a.FS, path, []byte(content), outputFilePermissions); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to write %s", filename)).
			WithCause(err)
	}
	return nil
}

func (a OutputFileAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	if a.FS == nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output filesystem is not configured")
	}
	if err := a.FS.MkdirAll(a.Dir, outputDirectoryPerms); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

var _ ports.OutputPort = OutputFileAdapter{}
