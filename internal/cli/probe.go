package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hostdeps/internal/app"
)

type probeOptions struct {
	RID       string
	Manifests []string
}

func newProbeCommand() *cobra.Command {
	opts := probeOptions{}
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Print the runtime identifier probe sequence",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProbe(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.RID, "rid", "", "Runtime identifier")
	cmd.Flags().StringSliceVar(&opts.Manifests, "manifest", nil, "Manifest path(s) declaring the runtime graph")
	_ = viper.BindPFlag("rid", cmd.Flags().Lookup("rid"))
	_ = viper.BindPFlag("probe_manifests", cmd.Flags().Lookup("manifest"))
	return cmd
}

func runProbe(ctx context.Context, cmd *cobra.Command, opts probeOptions) error {
	service := newAppService()
	result, err := service.Probe(log.Logger.WithContext(ctx), app.ProbeRequest{
		RuntimeIdentifier: resolveString(cmd, opts.RID, "rid", "rid"),
		Manifests:         resolveStrings(cmd, opts.Manifests, "probe_manifests", "manifest"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("runtimes declared: %d\n", result.Runtimes)
	fmt.Println(strings.Join(result.Sequence, " -> "))
	return nil
}
