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

type validateOptions struct {
	Manifest string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a dependency manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Manifest path")
	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	service := newAppService()
	result, err := service.Validate(log.Logger.WithContext(ctx), app.ValidateRequest{
		ManifestPath: resolveString(cmd, opts.Manifest, "manifest", "manifest"),
	})
	for _, issue := range result.Issues {
		fmt.Printf("%s %s: %s\n", issue.Severity, issue.Subject, issue.Message)
	}
	if err != nil {
		return err
	}
	fmt.Printf("validated: %s (targets: %s, libraries: %d)\n",
		result.Source, strings.Join(result.Targets, ", "), result.Libraries)
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return value
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	if viper.IsSet(key) {
		return viper.GetStringSlice(key)
	}
	return values
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
