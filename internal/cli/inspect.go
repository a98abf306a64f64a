package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hostdeps/internal/app"
)

type inspectOptions struct {
	OutputDir string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect resolved host paths and the resolution report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		OutputDir: resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	if err != nil {
		return err
	}

	printList("assemblies", result.Assemblies)
	printList("native search directories", result.NativeDirectories)
	printList("resource search directories", result.ResourceDirectories)
	fmt.Println("host properties:")
	names := make([]string, 0, len(result.Properties))
	for name := range result.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("- %s (%d chars)\n", name, len(result.Properties[name]))
	}
	fmt.Printf("resolution.report records: %d (shadowed=%d skipped=%d)\n",
		len(result.ResolutionRecords), result.Shadowed, result.Skipped)
	for _, record := range result.ResolutionRecords {
		if record.Asset == "" {
			fmt.Printf("- %s %s: %s\n", record.Library, record.Action, record.Reason)
			continue
		}
		fmt.Printf("- %s %s %s: %s\n", record.Library, record.Action, record.Asset, record.Reason)
	}
	return nil
}

func printList(title string, entries []string) {
	fmt.Printf("%s: %d\n", title, len(entries))
	for _, entry := range entries {
		fmt.Printf("  %s\n", entry)
	}
}
