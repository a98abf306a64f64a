package ports

import "hostdeps/internal/types"

type OutputReaderPort interface {
	ReadPathList(path string) ([]string, error)
	ReadHostProperties(path string) (map[string]string, error)
	ReadResolutionReport(path string) (types.ResolutionReport, error)
}
