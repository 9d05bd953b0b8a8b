package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/modalstack/internal/config"
	"github.com/jask/modalstack/modal"
)

const appName = "Modalstack"

// uiState is the mutable surface the bridge renders into. It is shared by
// pointer between the bubbletea model and the bridge's Render callback, which
// is safe because everything runs on the single update goroutine.
type uiState struct {
	snap     *modal.Snapshot
	activity []string
	lastErr  error

	// unanswered tracks, per confirm instance, the closing action that fires
	// when the modal closes without an explicit answer. Answering removes it
	// before close.
	unanswered map[string]*modal.ClosingAction
}

const activityLimit = 6

func (u *uiState) note(format string, args ...any) {
	u.activity = append(u.activity, fmt.Sprintf(format, args...))
	if len(u.activity) > activityLimit {
		u.activity = u.activity[len(u.activity)-activityLimit:]
	}
}

func (u *uiState) depth() int {
	if u.snap == nil {
		return 0
	}
	return u.snap.Depth()
}

func (u *uiState) top() *modal.Instance {
	if u.snap == nil {
		return nil
	}
	return u.snap.CurrentModal
}

type model struct {
	cfg    config.Config
	store  *modal.Store
	bridge *modal.Bridge
	back   *backRouter
	keys   *KeyRegistry
	ui     *uiState

	promptInput textinput.Model
	opened      int
	width       int
	height      int
	quitting    bool
}

// newModel wires the store, bridge and key registry from loaded config. The
// bridge mount is fail-fast: a broken stack definition should stop the app
// before the first frame.
func newModel(cfg config.Config, stackCfg stackConfigFile) (model, error) {
	keys := NewKeyRegistry()
	if err := keys.ApplyShortcutOverrides(stackCfg.Shortcut); err != nil {
		return model{}, err
	}

	ui := &uiState{unanswered: make(map[string]*modal.ClosingAction)}
	store := &modal.Store{}
	back := newBackRouter()
	bridge := &modal.Bridge{
		Store:      store,
		Definition: buildDefinition(stackCfg.Modal),
		Back:       back,
		Render:     func(snap *modal.Snapshot) { ui.snap = snap },
		OnError:    func(err error) { ui.lastErr = err },
	}
	if err := bridge.Mount(); err != nil {
		return model{}, err
	}

	input := textinput.New()
	input.CharLimit = 64
	input.Prompt = "> "

	return model{
		cfg:         cfg,
		store:       store,
		bridge:      bridge,
		back:        back,
		keys:        keys,
		ui:          ui,
		promptInput: input,
	}, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

// activeScope maps the top of the modal stack to a key scope.
func (m model) activeScope() string {
	top := m.ui.top()
	if top == nil {
		return scopeApp
	}
	switch top.Name {
	case "confirm":
		return scopeConfirm
	case "prompt":
		return scopePrompt
	default:
		return scopeModal
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	base := m.renderBase()
	cards := m.renderCards()
	if len(cards) == 0 {
		return base
	}
	return overlayStack(base, cards, m.width, m.height)
}
