package app

import (
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"hostdeps/internal/adapters"
	"hostdeps/internal/types"
)

// Inspect reads the outputs of a previous Resolve back from disk.
func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	assemblies, err := s.OutputReader.ReadPathList(filepath.Join(outputDir, adapters.AssemblyListFile))
	if err != nil {
		return InspectResult{}, err
	}
	native, err := s.OutputReader.ReadPathList(filepath.Join(outputDir, adapters.NativeDirectoriesFile))
	if err != nil {
		return InspectResult{}, err
	}
	resources, err := s.OutputReader.ReadPathList(filepath.Join(outputDir, adapters.ResourceDirectoryFile))
	if err != nil {
		return InspectResult{}, err
	}
	properties, err := s.OutputReader.ReadHostProperties(filepath.Join(outputDir, adapters.HostPropertiesFile))
	if err != nil {
		return InspectResult{}, err
	}
	report, err := s.OutputReader.ReadResolutionReport(filepath.Join(outputDir, adapters.ResolutionReportFile))
	if err != nil {
		return InspectResult{}, err
	}

	result := InspectResult{
		Assemblies:          assemblies,
		NativeDirectories:   native,
		ResourceDirectories: resources,
		Properties:          properties,
		ResolutionRecords:   report.Records,
	}
	for _, record := range report.Records {
		switch record.Action {
		case types.RecordActionShadowed:
			result.Shadowed++
		case types.RecordActionSkipped:
			result.Skipped++
		}
	}
	return result, nil
}
