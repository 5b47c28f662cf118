package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danghamo/zoo/internal/app"
	"github.com/danghamo/zoo/internal/app/demo"
	"github.com/danghamo/zoo/pkg/config"
	"github.com/danghamo/zoo/pkg/logger"
)

var (
	// configFile is set by the --config flag.
	configFile string

	// showContents is set by the --show flag of the demonstration.
	showContents bool

	// cfg, log and zoo are initialized by PersistentPreRunE.
	cfg *config.Config
	log *logger.Logger
	zoo *app.App
)

var rootCmd = &cobra.Command{
	Use:   "zoo",
	Short: "Zoo keeps animals in cages",
	Long: `Zoo is a small zoo inventory. Animals are admitted into cages subject
to a capacity limit and a predator mixing rule. Without a subcommand it runs
the demonstration.`,
	Version:            Version,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  initZoo,
	PersistentPostRunE: closeZoo,
	RunE:               runDemo,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the zoo demonstration",
	Args:  cobra.NoArgs,
	RunE:  runDemo,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./zoo.yaml, ./configs/zoo.yaml or /etc/zoo/zoo.yaml)")

	rootCmd.Flags().BoolVar(&showContents, "show", false, "list the cage contents after the demonstration")
	demoCmd.Flags().BoolVar(&showContents, "show", false, "list the cage contents after the demonstration")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(cagesCmd)
}

// initZoo loads config, sets up logging and wires the application.
func initZoo(cmd *cobra.Command, args []string) error {
	if cmd.Name() == versionCmd.Name() {
		return nil
	}

	var err error
	cfg, log, err = config.Initialize(configFile)
	if err != nil {
		return err
	}

	zoo, err = app.New(commandContext(cmd), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize zoo: %w", err)
	}

	return nil
}

// closeZoo releases the application and flushes the logger.
func closeZoo(cmd *cobra.Command, args []string) error {
	if zoo == nil {
		return nil
	}

	err := zoo.Close()
	_ = log.Sync()
	return err
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting zoo demonstration",
		zap.String("version", Version),
		zap.Int("cage", cfg.Zoo.CageNumber),
		zap.Int("capacity", cfg.Zoo.CageCapacity),
		zap.Bool("symmetric_mixing", cfg.Admission.SymmetricMixing),
	)

	settings := demo.Settings{
		CageNumber:   cfg.Zoo.CageNumber,
		CageCapacity: cfg.Zoo.CageCapacity,
		ShowContents: showContents,
	}
	return demo.Run(ctx, zoo.Commands, zoo.Queries, settings, cmd.OutOrStdout())
}

// commandContext returns the command context, never nil
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
