package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/arloliu/serbench/internal/config"
	"github.com/arloliu/serbench/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries state shared by the subcommands of one root command.
type app struct {
	v          *viper.Viper
	configPath string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "serbench",
		Short: "serialization and compression micro-benchmark",
		Long: fmt.Sprintf(`serbench (%s)

Generates a synthetic catalog of 1000 records once, encodes it as JSON or as a compact
binary layout, and measures how long gzip, brotli and zstd take to compress each encoding
and how small they make it.

Settings are read from flags, SERBENCH_* environment variables (for example
SERBENCH_SERVER_ADDR=:8080), .env files and an optional YAML file.`, version),
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", logging.FormatJSON, "log format (json, console)")
	flags.Int64("seed", 0, "random seed for record generation, 0 for unseeded")
	flags.StringSlice("compressors", []string{"gzip", "brotli", "zstd"}, "compressors to measure (gzip, brotli, zstd, lz4, s2)")

	a.bind(rootCmd, "log.level", "log-level")
	a.bind(rootCmd, "log.format", "log-format")
	a.bind(rootCmd, "generator.seed", "seed")
	a.bind(rootCmd, "bench.compressors", "compressors")

	rootCmd.AddCommand(
		newServeCmd(a),
		newMeasureCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// bind ties a viper key to a persistent flag of cmd. Flags only override other sources
// when set explicitly.
func (a *app) bind(cmd *cobra.Command, key, flag string) {
	f := cmd.PersistentFlags().Lookup(flag)
	if f == nil {
		f = cmd.Flags().Lookup(flag)
	}
	if err := a.v.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag, err))
	}
}

// load reads the configuration and builds the logger. A nil logOut logs to stdout.
func (a *app) load(logOut io.Writer) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return nil, nil, err
	}

	var logger *zap.Logger
	if logOut == nil {
		logger, err = logging.New(cfg.Log.Level, cfg.Log.Format)
	} else {
		logger, err = logging.NewWriter(cfg.Log.Level, cfg.Log.Format, logOut)
	}
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of serbench",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "serbench %s\n", version)
		},
	}
}
