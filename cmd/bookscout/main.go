package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"bookscout/internal/app"
	"bookscout/internal/config"
	"bookscout/internal/logging"
	"bookscout/internal/search"
	"bookscout/internal/store"
	"bookscout/internal/ui"
)

func main() {
	cfgPath := os.Getenv("BOOKSCOUT_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns stdout, so the log goes to a file.
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Close()

	if dir := filepath.Dir(cfg.Store.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "data directory: %v\n", err)
			os.Exit(1)
		}
	}
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	// Each TUI session is its own anonymous user for stats and caching.
	userID := uuid.NewString()

	var svc search.Service
	if useMock() {
		logging.Info("using mock search service")
		svc = search.NewMockService()
	} else {
		svc = search.NewEngineService(app.BuildEngine(cfg), userID)
	}

	program := tea.NewProgram(ui.NewApp(svc, st), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "bookscout: %v\n", err)
		os.Exit(1)
	}
}

// useMock reports whether to run against the offline mock service.
func useMock() bool {
	return os.Getenv("BOOKSCOUT_MOCK") != ""
}
