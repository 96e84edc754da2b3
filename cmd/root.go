package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/rolo/internal/config"
	"github.com/zjrosen/rolo/internal/log"
	"github.com/zjrosen/rolo/internal/ui/browse"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "rolo",
	Short:   "A contact manager for the terminal",
	Long: `Rolo keeps named address books of contacts in a local SQLite database.

Run without a subcommand to browse contacts interactively. Subcommands
cover the full lifecycle: add, edit, remove, find, list, search, count,
sort, and CSV/JSON import and export.`,
	Version: version,
	RunE:    runBrowse,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/rolo/config.yaml)")
	rootCmd.PersistentFlags().StringP("path", "p", "",
		"path to the contacts database file")
	rootCmd.PersistentFlags().StringP("book", "b", "",
		"address book to operate on (default from config)")
	rootCmd.PersistentFlags().StringP("output", "o", "",
		"output format: json or table")
	rootCmd.PersistentFlags().Bool("debug", false,
		"enable debug logging to stderr")

	_ = viper.BindPFlag("path", rootCmd.PersistentFlags().Lookup("path"))
	_ = viper.BindPFlag("default_book", rootCmd.PersistentFlags().Lookup("book"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("default_book", defaults.DefaultBook)
	viper.SetDefault("output", defaults.Output)
	viper.SetDefault("auto_refresh", defaults.AutoRefresh)
	viper.SetDefault("auto_refresh_debounce", defaults.AutoRefreshDebounce)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .rolo/config.yaml (current directory)
		// 2. ~/.config/rolo/config.yaml (user config)
		if _, err := os.Stat(".rolo/config.yaml"); err == nil {
			viper.SetConfigFile(".rolo/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "rolo"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create the user default
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			home, homeErr := os.UserHomeDir()
			if homeErr == nil {
				defaultPath := filepath.Join(home, ".config", "rolo", "config.yaml")
				if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
					viper.SetConfigFile(defaultPath)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)

	initLogging()
}

// initLogging enables file logging when debug mode is on (via flag or
// ROLO_DEBUG env var). The log file defaults to debug.log and can be
// moved with ROLO_LOG.
func initLogging() {
	debugFlag, _ := rootCmd.PersistentFlags().GetBool("debug")
	if os.Getenv("ROLO_DEBUG") == "" && !debugFlag {
		return
	}
	logPath := os.Getenv("ROLO_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.Init(logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: could not initialize logging:", err)
		return
	}
	logCleanup = cleanup
	log.Info(log.CatConfig, "Rolo starting", "debug", true, "logPath", logPath)
}

var logCleanup func()

func runBrowse(cmd *cobra.Command, args []string) error {
	svc, db, cleanup, err := openService(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	model := browse.New(svc, browse.Config{
		DBPath:              db.Path(),
		DefaultBook:         cfg.DefaultBook,
		AutoRefresh:         cfg.AutoRefresh,
		AutoRefreshDebounce: cfg.AutoRefreshDebounce,
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	model.Close()
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if logCleanup != nil {
		logCleanup()
	}
	return err
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
