package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pgquill/pgquill/config"
	"github.com/pgquill/pgquill/query"
)

// Start launches the interactive session. provider and apiKey are
// optional per-session overrides carried into every request.
func Start(store *config.Store, gen *query.Generator, provider, apiKey string) error {
	app := NewApp(store, gen, provider, apiKey)
	p := tea.NewProgram(app, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
