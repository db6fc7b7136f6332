package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cinelog/cinelog/internal/catalog"
	"github.com/cinelog/cinelog/internal/config"
	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/log"
	"github.com/cinelog/cinelog/internal/notify"
	"github.com/cinelog/cinelog/internal/store"
	"github.com/cinelog/cinelog/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("cinelog %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting cinelog", "version", Version, "backend", cfg.Storage.Backend)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("cinelog requires an interactive terminal")
	}

	st, err := openStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open catalog storage: %w", err)
	}
	defer st.Close()

	notifier := notify.New()
	svc := catalog.NewService(st, notifier, logger)

	model := tui.NewModel(svc, cfg.UI.DefaultSort, catalog.SortOrder(cfg.UI.DefaultOrder))

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	// Re-read the snapshot whenever any writer on this service commits a
	// change.
	unsubscribe := svc.Subscribe(func() {
		p.Send(tui.CatalogChangedMsg{})
	})
	defer unsubscribe()

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// openStore selects the configured catalog backend.
func openStore(cfg *config.Config, logger *slog.Logger) (domain.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendAPI:
		return store.OpenREST(cfg.Storage.APIURL, logger), nil
	case config.BackendLocal, "":
		return store.OpenBolt(cfg.Storage.Path, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
