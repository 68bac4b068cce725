// Package main is plantgen, the headless plant generator: build a plant from
// config, relax it and export the mesh.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/stemforge/internal/config"
	"github.com/Faultbox/stemforge/internal/logger"
	"github.com/Faultbox/stemforge/internal/plant"
)

var (
	flags *config.Flags

	ticks int
	pull  string

	exportTicks int
	exportPull  string
	format      string
	output      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "plantgen",
		Short:         "procedural stem generator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	goFlags := flag.NewFlagSet("plantgen", flag.ContinueOnError)
	flags = config.NewFlags(goFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(goFlags)

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "generate a plant and print its stems",
		RunE:  runBuild,
	}

	relaxCmd := &cobra.Command{
		Use:   "relax",
		Short: "pull the tip and plot stress over relaxation ticks",
		RunE:  runRelax,
	}
	relaxCmd.Flags().IntVar(&ticks, "ticks", 40, "number of relaxation ticks")
	relaxCmd.Flags().StringVar(&pull, "pull", "", "move the tip particle to x,y,z before relaxing")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "write the plant mesh",
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&format, "format", "obj", "output format: obj, json or stl")
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout for obj and json when empty)")
	exportCmd.Flags().IntVar(&exportTicks, "ticks", 0, "relaxation ticks before export")
	exportCmd.Flags().StringVar(&exportPull, "pull", "", "move the tip particle to x,y,z before relaxing")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list plant presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPresets(cmd.OutOrStdout())
		},
	}

	rootCmd.AddCommand(buildCmd, relaxCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads config, starts logging and generates the plant.
func setup() (*config.Config, *plant.Plant, error) {
	cfg, err := config.Load(flags)
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	spec, err := cfg.PlantSpec()
	if err != nil {
		return nil, nil, err
	}
	p, err := plant.Generate(spec)
	if err != nil {
		return nil, nil, err
	}
	return cfg, p, nil
}
