package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/modalstack/internal/config"
	"github.com/jask/modalstack/modal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	stackCfg, err := loadStackConfig(cfg.Stack.DefinitionPath)
	if err != nil {
		log.Fatalf("load stack config: %v", err)
	}

	m, err := newModel(cfg, stackCfg)
	if err != nil {
		// Wiring mistakes are fatal; everything else the TUI surfaces inline.
		var cfgErr *modal.ConfigurationError
		if errors.As(err, &cfgErr) {
			log.Fatalf("modal stack misconfigured: %v", err)
		}
		log.Fatalf("start: %v", err)
	}

	opts := []tea.ProgramOption{}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "modalstack: %v\n", err)
		os.Exit(1)
	}
}
