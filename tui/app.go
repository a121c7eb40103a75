// app.go is the Bubble Tea model for the interactive session.
//
// Flow:
//  1. User types a request at the prompt
//  2. Enter dispatches it to the pipeline in a goroutine
//  3. The result message renders above the prompt, ready for the next request
//
// Tab toggles between generate mode (natural language in, SQL out) and
// explain mode (SQL in, EXPLAIN ANALYZE plus AI analysis out).
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pgquill/pgquill/config"
	"github.com/pgquill/pgquill/query"
)

const appVersion = "0.1.0"

// Mode selects which pipeline operation Enter runs.
type Mode int

const (
	ModeGenerate Mode = iota
	ModeExplain
)

// App is the root Bubble Tea model.
type App struct {
	store *config.Store
	gen   *query.Generator

	// Request overrides from command-line flags.
	provider string
	apiKey   string

	mode    Mode
	input   string
	loading bool

	// Last completed exchange, rendered above the prompt.
	lastRequest string
	lastOutput  string
	lastErr     string

	width  int
	height int
}

// NewApp creates the interactive session model.
func NewApp(store *config.Store, gen *query.Generator, provider, apiKey string) *App {
	return &App{
		store:    store,
		gen:      gen,
		provider: provider,
		apiKey:   apiKey,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case GenerateResultMsg:
		a.loading = false
		if msg.Result.Success {
			a.lastOutput = msg.Output
			a.lastErr = ""
		} else {
			a.lastOutput = ""
			a.lastErr = msg.Result.ErrorMessage
		}
		return a, nil

	case ExplainResultMsg:
		a.loading = false
		if msg.Result.Success {
			a.lastOutput = renderExplain(msg.Result)
			a.lastErr = ""
		} else {
			a.lastOutput = ""
			a.lastErr = msg.Result.ErrorMessage
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return a, tea.Quit
	case "tab":
		if !a.loading {
			if a.mode == ModeGenerate {
				a.mode = ModeExplain
			} else {
				a.mode = ModeGenerate
			}
		}
		return a, nil
	case "enter":
		if a.loading {
			return a, nil
		}
		return a, a.submit()
	case "ctrl+l":
		a.lastRequest = ""
		a.lastOutput = ""
		a.lastErr = ""
		return a, nil
	case "backspace":
		if len(a.input) > 0 {
			a.input = a.input[:len(a.input)-1]
		}
		return a, nil
	}

	if msg.Type == tea.KeyRunes {
		a.input += string(msg.Runes)
	} else if msg.Type == tea.KeySpace {
		a.input += " "
	}
	return a, nil
}

func (a *App) submit() tea.Cmd {
	text := strings.TrimSpace(a.input)
	if text == "" {
		return nil
	}

	a.lastRequest = text
	a.lastOutput = ""
	a.lastErr = ""
	a.input = ""
	a.loading = true

	gen := a.gen
	store := a.store
	provider, apiKey := a.provider, a.apiKey

	if a.mode == ModeExplain {
		return func() tea.Msg {
			result := gen.ExplainQuery(context.Background(), query.ExplainRequest{
				QueryText: text,
				APIKey:    apiKey,
				Provider:  provider,
			})
			return ExplainResultMsg{Result: result}
		}
	}

	return func() tea.Msg {
		result := gen.GenerateQuery(context.Background(), query.Request{
			NaturalLanguage: text,
			APIKey:          apiKey,
			Provider:        provider,
		})
		return GenerateResultMsg{
			Result: result,
			Output: query.Format(result, store.Get()),
		}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	var sections []string

	sections = append(sections, a.renderHeader())

	if a.lastRequest != "" {
		sections = append(sections, "",
			StyleHelpKey.Render("> ")+StyleNormal.Render(a.lastRequest))
	}
	if a.lastErr != "" {
		sections = append(sections, "", StyleError.Render("Error: ")+a.lastErr)
	}
	if a.lastOutput != "" {
		sections = append(sections, "", a.lastOutput)
	}

	sections = append(sections, "", a.renderPrompt(), "", a.renderHelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) renderHeader() string {
	mode := "generate"
	if a.mode == ModeExplain {
		mode = "explain"
	}
	return StyleTitle.Render("pgquill "+appVersion) + "  " +
		StyleDimmed.Render("mode: "+mode)
}

func (a *App) renderPrompt() string {
	label := "ask> "
	if a.mode == ModeExplain {
		label = "explain> "
	}
	if a.loading {
		return StylePrompt.Render(label) + StyleDimmed.Render("waiting for response...")
	}
	return StylePrompt.Render(label) + a.input + "█"
}

func (a *App) renderHelpBar() string {
	parts := []string{
		StyleHelpKey.Render("enter") + StyleHelpDesc.Render(" submit"),
		StyleHelpKey.Render("tab") + StyleHelpDesc.Render(" switch mode"),
		StyleHelpKey.Render("ctrl+l") + StyleHelpDesc.Render(" clear"),
		StyleHelpKey.Render("esc") + StyleHelpDesc.Render(" quit"),
	}
	return strings.Join(parts, StyleDimmed.Render("  •  "))
}

// renderExplain lays out the raw plan followed by the AI analysis.
func renderExplain(result query.ExplainResult) string {
	var sb strings.Builder
	sb.WriteString(StyleTitle.Render("EXPLAIN ANALYZE") + "\n")
	sb.WriteString(result.ExplainOutput)
	sb.WriteString("\n\n" + StyleTitle.Render("Analysis") + "\n")
	sb.WriteString(result.AIExplanation)
	return sb.String()
}
