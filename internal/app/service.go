package app

import (
	"github.com/spf13/afero"

	"hostdeps/internal/adapters"
	"hostdeps/internal/policies"
	"hostdeps/internal/ports"
)

type Service struct {
	FS           afero.Fs
	Parser       ports.ManifestParserPort
	Files        ports.ManifestSourcePort
	Policy       ports.TargetPolicyPort
	OutputReader ports.OutputReaderPort
}

func NewService() Service {
	return NewServiceWithFs(afero.NewOsFs())
}

// NewServiceWithFs wires every filesystem-backed adapter to fs.
func NewServiceWithFs(fs afero.Fs) Service {
	return Service{
		FS:           fs,
		Parser:       adapters.NewManifestParserAdapter(),
		Files:        adapters.NewFileManifestSource(fs),
		Policy:       policies.NewTargetPolicy(),
		OutputReader: adapters.NewOutputReaderAdapter(fs),
	}
}
