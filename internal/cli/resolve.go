package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hostdeps/internal/app"
	"hostdeps/internal/shared"
	"hostdeps/internal/types"
)

type resolveOptions struct {
	Manifest   string
	Name       string
	Location   string
	Resources  string
	Target     string
	RID        string
	Frameworks []string
	Additional []string
	Caches     []string
	OutputDir  string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Merge dependency manifests and write host probing paths",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Application manifest path (defaults to <location>.deps.json)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Assembly name of the binary")
	cmd.Flags().StringVar(&opts.Location, "location", "", "Path of the binary")
	cmd.Flags().StringVar(&opts.Resources, "resources", "", "Directory holding the embedded resources of a non-entry binary")
	cmd.Flags().StringVar(&opts.Target, "target", "", "Target section name, e.g. net8.0/linux-x64")
	cmd.Flags().StringVar(&opts.RID, "rid", "", "Runtime identifier used for asset selection")
	cmd.Flags().StringSliceVar(&opts.Frameworks, "framework-manifest", nil, "Framework manifest path(s)")
	cmd.Flags().StringSliceVar(&opts.Additional, "additional-manifest", nil, "Additional manifest path(s)")
	cmd.Flags().StringSliceVar(&opts.Caches, "package-cache", nil, "Package cache root(s)")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")

	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("name", cmd.Flags().Lookup("name"))
	_ = viper.BindPFlag("location", cmd.Flags().Lookup("location"))
	_ = viper.BindPFlag("resources", cmd.Flags().Lookup("resources"))
	_ = viper.BindPFlag("target", cmd.Flags().Lookup("target"))
	_ = viper.BindPFlag("rid", cmd.Flags().Lookup("rid"))
	_ = viper.BindPFlag("framework_manifests", cmd.Flags().Lookup("framework-manifest"))
	_ = viper.BindPFlag("additional_manifests", cmd.Flags().Lookup("additional-manifest"))
	_ = viper.BindPFlag("package_caches", cmd.Flags().Lookup("package-cache"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))

	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	service := newAppService()
	request := app.ResolveRequest{
		LoadRequest: app.LoadRequest{
			Identity: resolveIdentity(
				resolveString(cmd, opts.Name, "name", "name"),
				resolveString(cmd, opts.Location, "location", "location"),
				resolveString(cmd, opts.Resources, "resources", "resources"),
				service.FS,
			),
			Target:              types.ParseTarget(resolveString(cmd, opts.Target, "target", "target")),
			AppManifestPath:     resolveString(cmd, opts.Manifest, "manifest", "manifest"),
			FrameworkManifests:  resolveStrings(cmd, opts.Frameworks, "framework_manifests", "framework-manifest"),
			AdditionalManifests: resolveStrings(cmd, opts.Additional, "additional_manifests", "additional-manifest"),
		},
		RuntimeIdentifier: resolveString(cmd, opts.RID, "rid", "rid"),
		PackageCaches:     resolveStrings(cmd, opts.Caches, "package_caches", "package-cache"),
		OutputDir:         resolveString(cmd, opts.OutputDir, "output", "output"),
	}
	result, err := service.Resolve(log.Logger.WithContext(ctx), request)
	if err != nil {
		return err
	}
	if !result.Found {
		fmt.Println("no dependency manifest found; nothing resolved")
		return nil
	}
	for _, hint := range result.Hints {
		fmt.Fprintln(cmd.ErrOrStderr(), hint)
	}
	fmt.Printf("resolved: %s\n", result.Target.Name())
	fmt.Printf("assemblies: %d\n", len(result.Paths.Assemblies))
	fmt.Printf("native search directories: %d\n", len(result.Paths.NativeSearchDirectories))
	fmt.Printf("resource search directories: %d\n", len(result.Paths.ResourceSearchDirectories))
	fmt.Printf("outputs: %s\n", result.OutputDir)
	return nil
}

// resolveIdentity describes the binary being resolved. A resources
// directory marks it as a non-entry binary whose manifest is embedded.
func resolveIdentity(name string, location string, resources string, fs afero.Fs) types.Identity {
	identity := types.Identity{
		Name:     strings.TrimSpace(name),
		Location: strings.TrimSpace(location),
		Entry:    true,
	}
	if identity.Name == "" && identity.Location != "" {
		identity.Name = shared.AssemblyName(identity.Location)
	}
	if dir := strings.TrimSpace(resources); dir != "" {
		identity.Entry = false
		identity.Resources = afero.NewIOFS(afero.NewBasePathFs(fs, dir))
	}
	return identity
}
