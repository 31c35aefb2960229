package main

import (
	"io"

	"admindash/internal/config"
	"admindash/internal/dataset"
	"admindash/internal/log"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	dataDir string
	debug   bool
	cfg     *config.Config
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "admindash",
		Short: "Browse activity, audit, contact and file data from the terminal",
		Long: `admindash queries the admin dashboard collections (activity logs, audit
logs, contacts) and browses the file tree. Data comes from YAML seed files in
the data directory, or from the built-in sample data when none is given.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfgFile != "" {
				cfg, err = config.LoadConfigFile(cfgFile)
			} else {
				cfg, err = config.LoadConfig()
			}
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.Data.Dir = dataDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			configureLogging(cmd.ErrOrStderr(), cmd.Name() == "tui")
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/admindash/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory of <screen>.yaml seed files (overrides data.dir)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	for _, s := range dataset.Screens() {
		rootCmd.AddCommand(NewScreenCmd(s))
	}
	rootCmd.AddCommand(NewFilesCmd())
	rootCmd.AddCommand(NewRolesCmd())
	rootCmd.AddCommand(NewWatchCmd())
	rootCmd.AddCommand(NewTUICmd())

	return rootCmd
}

// configureLogging points the package logger at stderr, or only at the
// configured log file while the TUI owns the terminal.
func configureLogging(stderr io.Writer, quiet bool) {
	opts := []log.Option{log.WithLevel(cfg.Logging.Level), log.WithOutput(stderr)}
	if quiet {
		opts[1] = log.WithOutput(io.Discard)
	}
	if cfg.Logging.JSON {
		opts = append(opts, log.WithJSON())
	}
	if cfg.Logging.File != "" {
		opts = append(opts, log.WithFile(cfg.Logging.File))
	}
	log.Configure(opts...)
	log.SetDebug(debug)
}

// loadSnapshot reads the configured data directory
func loadSnapshot() (dataset.Snapshot, error) {
	snap, err := dataset.LoadDir(cfg.Data.Dir)
	if err != nil {
		return dataset.Snapshot{}, err
	}
	log.LogWithFields(log.F("directory", cfg.Data.Dir)).Debug("Loaded dataset")
	return snap, nil
}
