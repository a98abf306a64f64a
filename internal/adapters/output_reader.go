package adapters

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"

	"hostdeps/internal/ports"
	"hostdeps/internal/types"
)

type OutputReaderAdapter struct {
	FS afero.Fs
}

func NewOutputReaderAdapter(fs afero.Fs) OutputReaderAdapter {
	return OutputReaderAdapter{FS: fs}
}

func (a OutputReaderAdapter) ReadPathList(path string) ([]string, error) {
	lines, err := a.readLines(path)
	if err != nil {
		return nil, err
	}
	var entries []string
	for _, line := range lines {
		entries = append(entries, strings.TrimSpace(line))
	}
	return entries, nil
}

func (a OutputReaderAdapter) ReadHostProperties(path string) (map[string]string, error) {
	lines, err := a.readLines(path)
	if err != nil {
		return nil, err
	}
	properties := map[string]string{}
	for _, line := range lines {
		key, value, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid %s format", filepath.Base(path)))
		}
		properties[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return properties, nil
}

func (a OutputReaderAdapter) ReadResolutionReport(path string) (types.ResolutionReport, error) {
	lines, err := a.readLines(path)
	if err != nil {
		return types.ResolutionReport{}, err
	}
	records := []types.ResolutionRecord{}
	for _, line := range lines {
		parts := strings.SplitN(line, ",", resolutionReportFields)
		if len(parts) != resolutionReportFields {
			return types.ResolutionReport{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid resolution.report format")
		}
		action, ok := types.ParseRecordAction(parts[2])
		if !ok {
			return types.ResolutionReport{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("unknown resolution action %q", parts[2]))
		}
		records = append(records, types.ResolutionRecord{
			Library: strings.TrimSpace(parts[0]),
			Asset:   strings.TrimSpace(parts[1]),
			Action:  action,
			Reason:  strings.TrimSpace(parts[3]),
		})
	}
	return types.ResolutionReport{Records: records}, nil
}

// readLines returns the non-blank lines of path.
func (a OutputReaderAdapter) readLines(path string) ([]string, error) {
	if a.FS == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output filesystem is not configured")
	}
	content, err := afero.ReadFile(a.FS, path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("%s not found", filepath.Base(path))).
			WithCause(err)
	}
	var lines []string
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

var _ ports.OutputReaderPort = OutputReaderAdapter{}
