package main

import (
	"fmt"
	"os"

	"pagetui/internal/config"
	"pagetui/internal/log"
	"pagetui/internal/tui"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// rootOptions holds the flags shared by every command. Flags win over the
// config file, which wins over the defaults.
type rootOptions struct {
	configPath string
	dataPath   string
	logLevel   string
	tickRate   float64
	frameRate  float64
	username   string
	password   string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "pagetui",
		Short: "A terminal app of pages, overlays and actions",
		Long: `pagetui is a terminal application made of pages (login, home, chat,
blog, file browser, music player, settings) driven by a shared action queue.

Configuration is read from ~/.pagetui/config.toml unless --config is given.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fd := os.Stdout.Fd()
			if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
				return fmt.Errorf("pagetui needs an interactive terminal")
			}

			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			path, err := log.SetupFile(cfg.App.AppDataPath, config.AppName, cfg.App.LogLevel)
			if err != nil {
				return err
			}
			log.LogWithFields(log.F("version", version), log.F("log", path)).Info("Starting pagetui")

			if err := tui.Run(cfg); err != nil {
				log.LogError(err, "TUI exited with error")
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is ~/.pagetui/config.toml)")
	flags.StringVar(&opts.dataPath, "app-data-path", "", "directory for the log file and blog posts")
	flags.StringVar(&opts.logLevel, "log-level", "", "trace, debug, info, warn or error")
	flags.Float64Var(&opts.tickRate, "tick-rate", 0, "ticks per second")
	flags.Float64Var(&opts.frameRate, "frame-rate", 0, "frames per second")
	flags.StringVarP(&opts.username, "username", "u", "", "prefill the login email")
	flags.StringVarP(&opts.password, "password", "p", "", "prefill the login password")

	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// path returns the config file in use.
func (o *rootOptions) path() string {
	if o.configPath == "" {
		return config.DefaultConfigPath()
	}
	return config.ExpandPath(o.configPath)
}

// load reads the config file, falling back to defaults when it cannot be
// used, then applies the flags that were set.
func (o *rootOptions) load(cmd *cobra.Command) (*config.AppConfiguration, error) {
	cfg, err := config.LoadConfigFile(o.path())
	if err != nil {
		log.LogError(err, "Failed to load config")
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v. Using default settings.\n", err)
		cfg = config.Default()
	}

	flags := cmd.Flags()
	if flags.Changed("app-data-path") {
		cfg.App.AppDataPath = config.ExpandPath(o.dataPath)
	}
	if flags.Changed("log-level") {
		cfg.App.LogLevel = o.logLevel
	}
	if flags.Changed("tick-rate") {
		cfg.App.TickRate = o.tickRate
	}
	if flags.Changed("frame-rate") {
		cfg.App.FrameRate = o.frameRate
	}
	if flags.Changed("username") {
		cfg.App.Username = o.username
	}
	if flags.Changed("password") {
		cfg.App.Password = o.password
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pagetui version %s\n", version)
		},
	}
}
