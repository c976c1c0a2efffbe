// Package cmd wires the missive CLI: the colour playground as the root
// command plus rc-file introspection subcommands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/missive/internal/command"
	"github.com/zjrosen/missive/internal/config"
	"github.com/zjrosen/missive/internal/flags"
	"github.com/zjrosen/missive/internal/log"
	"github.com/zjrosen/missive/internal/mode/playground"
	"github.com/zjrosen/missive/internal/palette"
	"github.com/zjrosen/missive/internal/paths"
	"github.com/zjrosen/missive/internal/pubsub"
	"github.com/zjrosen/missive/internal/rules"
	"github.com/zjrosen/missive/internal/searchexpr"
	"github.com/zjrosen/missive/internal/stylecache"
	"github.com/zjrosen/missive/internal/tracing"
	"github.com/zjrosen/missive/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query the terminal background color
	// BEFORE any Bubble Tea program starts. This prevents the terminal's
	// OSC 11 response from racing with Bubble Tea's input loop and
	// appearing as garbage text.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	rcFlag    string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "missive",
	Short: "A colour-rule playground for mail display",
	Long: `Missive maps mutt-style color commands onto terminal styles.

The root command opens the playground: sample mail content rendered
through the colour rules in your rc file, with the rule table alongside
and live reload as the file changes on disk.`,
	Version: version,
	RunE:    runPlayground,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/missive/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&rcFlag, "rc", "",
		"colour rc file (default: $MISSIVE_RC, ./missiverc, ~/.config/missive/missiverc)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log (also MISSIVE_DEBUG)")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"disable automatic rule reload when the rc file changes")

	// Bind flags to viper
	_ = viper.BindPFlag("rc_file", rootCmd.PersistentFlags().Lookup("rc"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("reload_delay_ms", defaults.ReloadDelayMs)
	viper.SetDefault("simple_search", defaults.SimpleSearch)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.show_rule_table", defaults.UI.ShowRuleTable)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .missive/config.yaml (current directory)
		// 2. ~/.config/missive/config.yaml (user config)
		if _, err := os.Stat(".missive/config.yaml"); err == nil {
			viper.SetConfigFile(".missive/config.yaml")
		} else {
			viper.AddConfigPath(paths.ConfigDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - write the commented default
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := paths.DefaultConfigFile()
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// initLogging turns on the debug log when asked via --debug or
// MISSIVE_DEBUG. Returns a cleanup that closes the log file.
func initLogging(name string) func() {
	if !debugFlag && os.Getenv("MISSIVE_DEBUG") == "" {
		return func() {}
	}

	logPath := os.Getenv("MISSIVE_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}

	cleanup, err := log.InitWithTeaLog(logPath, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "missive: debug log unavailable: %v\n", err)
		return func() {}
	}

	log.Info(log.CatConfig, "missive starting", "debug", true, "logPath", logPath)
	return cleanup
}

// newEngine builds a rule engine on the configured simple-search
// template, with the debug dump hook attached.
func newEngine(events pubsub.Publisher[rules.Region]) *rules.Engine {
	compiler := searchexpr.NewCompiler(cfg.SimpleSearch)

	var engine *rules.Engine
	engine = rules.NewEngine(rules.Config{
		Palette: palette.NewAllocator(),
		Compiler: rules.CompilerFunc(func(pattern string) (rules.MessageMatcher, error) {
			return compiler.Compile(pattern)
		}),
		Events: events,
		Dump:   func() { rules.LogDump(engine)() },
	})
	return engine
}

// newTracing builds the trace provider from config, deriving the file
// exporter path when unset.
func newTracing() (*tracing.Provider, error) {
	tcfg := tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		Exporter:     cfg.Tracing.Exporter,
		FilePath:     cfg.Tracing.FilePath,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
		ServiceName:  "missive",
	}
	if tcfg.FilePath == "" {
		tcfg.FilePath = config.DefaultTracesFilePath()
	}
	return tracing.NewProvider(tcfg)
}

func runPlayground(cmd *cobra.Command, args []string) error {
	cleanup := initLogging("missive")
	defer cleanup()

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Handle --no-auto-reload flag (negated logic)
	if noReload, _ := cmd.Flags().GetBool("no-auto-reload"); noReload {
		cfg.AutoReload = false
	}

	reg := flags.New(cfg.Flags)

	traces, err := newTracing()
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = traces.Shutdown(shutdownCtx)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ruleEvents := pubsub.NewBroker[rules.Region]()
	defer ruleEvents.Close()
	rcEvents := pubsub.NewBroker[string]()
	defer rcEvents.Close()

	engine := newEngine(ruleEvents)
	applier := command.NewApplier(command.Config{
		Engine: engine,
		Tracer: traces.Tracer(),
		Events: rcEvents,
	})

	cache := stylecache.New(stylecache.Config{
		Engine: engine,
		Skip:   !reg.EnabledOr(flags.FlagResolveCache, true),
	})
	cache.Subscribe(ctx, ruleEvents)

	// Initial rc load. A missing file is fine, the playground starts
	// empty; rejected lines surface on stderr and again on reload.
	rcPath := paths.ResolveRcFile(cfg.RcFile)
	if _, statErr := os.Stat(rcPath); statErr == nil {
		result, applyErr := applier.ApplyFile(ctx, rcPath)
		if applyErr != nil {
			return fmt.Errorf("loading %s: %w", rcPath, applyErr)
		}
		for _, le := range result.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", rcPath, le)
		}
	}

	mouseZones := reg.EnabledOr(flags.FlagMouseZones, true)
	if mouseZones {
		zone.NewGlobal()
	}

	model := playground.New(playground.Config{
		Engine:        engine,
		Cache:         cache,
		Applier:       applier,
		RcPath:        rcPath,
		RuleEvents:    ruleEvents,
		RcEvents:      rcEvents,
		MarkdownStyle: cfg.UI.MarkdownStyle,
		ShowTable:     cfg.UI.ShowRuleTable,
		ShowStatus:    cfg.UI.ShowStatusBar,
		MouseZones:    mouseZones,
		Ctx:           ctx,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if mouseZones {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)

	// Watcher bridge: debounced rc changes land in the program loop as
	// reload requests.
	var w *watcher.Watcher
	if cfg.AutoReload {
		wcfg := watcher.DefaultConfig(rcPath)
		if cfg.ReloadDelayMs > 0 {
			wcfg.DebounceDur = time.Duration(cfg.ReloadDelayMs) * time.Millisecond
		}
		w, err = watcher.New(wcfg)
		if err != nil {
			return fmt.Errorf("creating rc watcher: %w", err)
		}
		changes, startErr := w.Start()
		if startErr != nil {
			_ = w.Stop()
			return fmt.Errorf("watching %s: %w", rcPath, startErr)
		}
		go func() {
			for range changes {
				p.Send(playground.RcChangedMsg{})
			}
		}()
	}

	_, err = p.Run()

	// Clean up watcher resources
	if w != nil {
		if stopErr := w.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}

	if err != nil {
		return fmt.Errorf("running playground: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
