// lytelode is a terminal dashboard for South African loadshedding.
//
// It shows the national loadshedding stage, lets you search for your area
// and lists that area's upcoming outage windows. Data comes from the
// lytelode HTTP backend, which proxies the EskomSePush API.
//
// Usage:
//
//	lytelode [flags]
//
// Flags:
//
//	-config string    Path to configuration file (default: ~/.config/lytelode/config.toml)
//	-api-url string   Backend base URL (overrides config)
//	-prefs string     Preference backend: file, redis or memory (overrides config)
//	-no-persist       Keep the dark mode preference in memory only
//	-status           Print the national status once and exit
//	-health           Print backend health and national status, then exit
//	-no-color         Disable colored output
//	-verbose          Enable verbose logging
//	-version          Print version and exit
//
// When stdout is not a terminal the TUI is not started and the -status
// output is printed instead.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/lytelode/pkg/api"
	"gitlab.com/tinyland/lab/lytelode/pkg/app"
	"gitlab.com/tinyland/lab/lytelode/pkg/banner"
	"gitlab.com/tinyland/lab/lytelode/pkg/config"
	"gitlab.com/tinyland/lab/lytelode/pkg/prefs"
	"gitlab.com/tinyland/lab/lytelode/pkg/terminal"
	"gitlab.com/tinyland/lab/lytelode/pkg/theme"
	"gitlab.com/tinyland/lab/lytelode/pkg/widgets"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

// run does the work of main and returns the exit code, so deferred cleanup
// runs before the process exits.
func run() int {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		apiURL      = flag.String("api-url", "", "Backend base URL (overrides config)")
		prefsKind   = flag.String("prefs", "", "Preference backend: file, redis or memory (overrides config)")
		noPersist   = flag.Bool("no-persist", false, "Keep the dark mode preference in memory only")
		showStatus  = flag.Bool("status", false, "Print the national status once and exit")
		showHealth  = flag.Bool("health", false, "Print backend health and national status, then exit")
		noColor     = flag.Bool("no-color", false, "Disable colored output")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("lytelode %s (%s) built %s\n", version, commit, date)
		return 0
	}

	// A missing .env is normal.
	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}
	if *prefsKind != "" {
		cfg.Preferences.Backend = *prefsKind
	}
	if *noPersist {
		cfg.Preferences.Backend = prefs.BackendMemory
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		return 1
	}

	interactive := terminal.Interactive(os.Stdout)
	oneShot := *showStatus || *showHealth || !interactive

	logger, logFile, err := setupLogging(cfg, *verbose, oneShot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		return 1
	}
	defer logFile.Close()
	slog.SetDefault(logger)

	if terminal.ColorDisabled(*noColor) || !interactive {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	if err := registerThemeFiles(cfg.Theme); err != nil {
		logger.Error("loading theme file", "error", err)
		fmt.Fprintf(os.Stderr, "invalid theme: %v\n", err)
		return 1
	}

	// Setup context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	client, err := api.NewClient(api.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   clientTimeout(cfg.API.Timeout.Duration),
		UserAgent: "lytelode/" + version,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("api client init failed", "error", err)
		return 1
	}

	if oneShot {
		return runOnce(ctx, client, cfg, *showHealth, logger)
	}

	if err := runTUI(ctx, client, cfg, logger); err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "lytelode: %v\n", err)
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromFile(path)
}

// setupLogging opens the log file. In TUI mode logs go only there because
// the terminal belongs to the UI; one-shot modes also log to stderr.
func setupLogging(cfg *config.Config, verbose, toStderr bool) (*slog.Logger, *os.File, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}

	if err := ensureLogDir(cfg.General.LogFile); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	logFile, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	var w io.Writer = logFile
	if toStderr {
		w = io.MultiWriter(os.Stderr, logFile)
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	return logger, logFile, nil
}

// ensureLogDir creates the parent directory for the log file if it does
// not exist.
func ensureLogDir(logFile string) error {
	return os.MkdirAll(filepath.Dir(logFile), 0o755)
}

// registerThemeFiles replaces the built-in palettes with any configured
// theme files.
func registerThemeFiles(tc config.ThemeConfig) error {
	for name, path := range map[string]string{theme.Light: tc.LightFile, theme.Dark: tc.DarkFile} {
		if path == "" {
			continue
		}
		t, err := theme.LoadFile(path)
		if err != nil {
			return fmt.Errorf("%s theme %s: %w", name, path, err)
		}
		t.Name = name
		t.Dark = name == theme.Dark
		theme.Register(t)
	}
	return nil
}

// clientTimeout maps the configured timeout onto api.Config, where zero
// means "use the default" and a negative value disables the timeout.
func clientTimeout(d time.Duration) time.Duration {
	if d == 0 {
		return -1
	}
	return d
}

// runOnce prints a single status frame and returns the exit code.
func runOnce(ctx context.Context, client *api.Client, cfg *config.Config, withHealth bool, logger *slog.Logger) int {
	report := banner.Collect(ctx, client, client.BaseURL(), withHealth)
	if report.StatusErr != nil {
		logger.Warn("status request failed", "error", report.StatusErr, "status_code", api.StatusCode(report.StatusErr))
	}
	if report.HealthErr != nil {
		logger.Warn("health request failed", "error", report.HealthErr, "status_code", api.StatusCode(report.HealthErr))
	}

	styles := widgets.NewStyles(theme.ForMode(lipgloss.HasDarkBackground()))
	width := min(terminal.Cols(os.Stdout.Fd()), banner.DefaultWidth)
	fmt.Print(banner.Render(report, styles, cfg.Location(), width))

	if report.Failed() {
		return 1
	}
	return 0
}

// runTUI opens the preference store and runs the interactive dashboard
// until the user quits or ctx is canceled.
func runTUI(ctx context.Context, client *api.Client, cfg *config.Config, logger *slog.Logger) error {
	store, err := prefs.Open(ctx, prefs.Options{
		Backend:  cfg.Preferences.Backend,
		Dir:      cfg.Preferences.Dir,
		RedisURL: cfg.Preferences.RedisURL,
	})
	if err != nil {
		// The dashboard works without persistence; the preference just
		// resets next time.
		logger.Warn("preference store unavailable, using memory", "backend", cfg.Preferences.Backend, "error", err)
		store = prefs.NewMemStore()
	}
	defer store.Close()

	zones := zone.New()
	defer zones.Close()

	model := app.NewAppModel(app.Options{
		Context:  ctx,
		Fetcher:  client,
		Store:    store,
		Logger:   logger,
		Location: cfg.Location(),
		Zones:    zones,
	})

	logger.Info("starting lytelode", "version", version, "api", client.BaseURL(), "prefs", cfg.Preferences.Backend)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
