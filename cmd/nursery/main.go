package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/l1jgo/nursery/internal/codec"
	"github.com/l1jgo/nursery/internal/config"
	"github.com/l1jgo/nursery/internal/core/event"
	"github.com/l1jgo/nursery/internal/data"
	"github.com/l1jgo/nursery/internal/nursery"
	"github.com/l1jgo/nursery/internal/persist"
	"github.com/l1jgo/nursery/internal/scripting"
	"github.com/l1jgo/nursery/internal/shell"
)

const defaultConfigPath = "config/nursery.toml"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfgPath := defaultConfigPath
	if p := os.Getenv("NURSERY_CONFIG"); p != "" {
		cfgPath = p
	}

	root := &cobra.Command{
		Use:           "nursery",
		Short:         "Interactive creature nursery",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd.Context(), cfgPath)
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", cfgPath, "path to the TOML config file")

	root.AddCommand(&cobra.Command{
		Use:   "export <src> <dst>",
		Short: "Copy a saved nursery from one location to another",
		Long: "Locations are file paths, sqlite:<file> or pg:<nursery name>.\n" +
			"The source is loaded into an empty nursery which is then saved to dst.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), cfgPath, args[0], args[1])
		},
	})
	return root
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Printf("\033[36;1m  │\033[0m %-41s \033[36;1m│\033[0m\n", name)
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len([]rune(title)) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len([]rune(label)) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Wiring ────────────────────────────────────────────────────────

// app holds everything built from the config.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	bus     *event.Bus
	nursery *nursery.Nursery
	closers []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.log.Debug("resources released", zap.Int("count", len(a.closers)))
	a.closers = nil
	_ = a.log.Sync()
}

func setup(cfgPath string, verbose bool) (*app, error) {
	// 1. Load config
	cfg, err := config.Load(cfgPath)
	missing := errors.Is(err, config.ErrNoFile)
	if err != nil && !missing {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if missing {
		log.Info("config file not found, using defaults", zap.String("path", cfgPath))
	}
	if verbose {
		printBanner(cfg.Nursery.Name)
	}
	return newApp(cfg, log, verbose)
}

// newApp builds the nursery and its collaborators. Anything already opened
// is closed again when a later step fails.
func newApp(cfg *config.Config, log *zap.Logger, verbose bool) (_ *app, err error) {
	a := &app{cfg: cfg, log: log}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	// 3. Name tables
	names := data.DefaultNameTable()
	if cfg.Nursery.NamesFile != "" {
		names, err = data.LoadNameTable(cfg.Nursery.NamesFile)
		if err != nil {
			return nil, fmt.Errorf("load name table: %w", err)
		}
	}

	// 4. Rule scripts
	engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return nil, fmt.Errorf("scripting: %w", err)
	}
	a.closers = append(a.closers, engine.Close)
	rules := nursery.Rules{
		ExpPerLevel:   engine.ExpPerLevel(cfg.Rules.ExpPerLevel),
		MinBreedLevel: engine.MinBreedLevel(cfg.Rules.MinBreedLevel),
	}

	// 5. Storage
	c, err := codec.New(codec.Options{Charset: cfg.Codec.Charset})
	if err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	pg := persist.NewPGStore(cfg.Database, nil, log)
	a.closers = append(a.closers, pg.Close)
	storage := &persist.Router{
		File:     persist.NewFileStore(c, log),
		SQLite:   persist.NewSQLiteStore(nil, log),
		Postgres: pg,
	}

	// 6. Event bus + nursery
	a.bus = event.NewBus()
	subscribeLoggers(a.bus, log)
	a.nursery = nursery.New(nursery.Options{
		Rules:   rules,
		Names:   names,
		Storage: storage,
		Bus:     a.bus,
		Log:     log,
	})

	if verbose {
		effective := a.nursery.Rules()
		printSection("Données")
		printStat("Noms", names.Count())
		printStat("XP par niveau", int(effective.ExpPerLevel))
		printStat("Niveau de reproduction", int(effective.MinBreedLevel))
		printOK("Règles Lua chargées")
		printOK("Nursery prête")
		fmt.Println()
	}
	return a, nil
}

func runShell(ctx context.Context, cfgPath string) error {
	a, err := setup(cfgPath, true)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sh := shell.New(os.Stdin, os.Stdout, shell.Deps{
		Nursery:    a.nursery,
		Bus:        a.bus,
		DefaultExp: a.cfg.Training.DefaultExp,
		Log:        a.log,
	})
	return sh.Run(ctx)
}

func runExport(ctx context.Context, cfgPath, src, dst string) error {
	a, err := setup(cfgPath, false)
	if err != nil {
		return err
	}
	defer a.close()

	res, err := a.nursery.Load(ctx, src)
	if err != nil {
		return err
	}
	if res.Outcome == nursery.LoadNotFound {
		return fmt.Errorf("%w: %s", nursery.ErrNotFound, src)
	}
	saved, err := a.nursery.Save(ctx, dst)
	a.bus.Flush()
	if err != nil {
		return err
	}
	printOK(fmt.Sprintf("%d Pokémon exportés de '%s' vers '%s'", saved.Count, src, saved.Destination))
	return nil
}

// subscribeLoggers turns domain events into structured log lines.
func subscribeLoggers(bus *event.Bus, log *zap.Logger) {
	event.Subscribe(bus, func(e event.CreatureAdded) {
		log.Debug("creature added", zap.Stringer("id", e.ID), zap.String("creature", e.Name))
	})
	event.Subscribe(bus, func(e event.CreatureLeveled) {
		log.Info("creature levelled",
			zap.Stringer("id", e.ID), zap.String("creature", e.Name),
			zap.Uint32("from", e.OldLevel), zap.Uint32("to", e.NewLevel))
	})
	event.Subscribe(bus, func(e event.OffspringBorn) {
		log.Info("offspring born",
			zap.Stringer("id", e.ID), zap.String("creature", e.Name), zap.String("kind", e.Kind),
			zap.Stringer("parent1", e.Parents[0]), zap.Stringer("parent2", e.Parents[1]))
	})
	event.Subscribe(bus, func(e event.NurseryLoaded) {
		log.Debug("event", zap.String("type", "loaded"), zap.String("source", e.Source), zap.Int("count", e.Count))
	})
	event.Subscribe(bus, func(e event.NurserySaved) {
		log.Debug("event", zap.String("type", "saved"), zap.String("destination", e.Destination), zap.Int("count", e.Count))
	})
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
