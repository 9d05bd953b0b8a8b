package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/modalstack/modal"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	scope := m.activeScope()

	// In the prompt, printable keys are text entry before anything else, so
	// global single-letter shortcuts cannot swallow typed characters.
	if scope == scopePrompt && msg.Type == tea.KeyRunes {
		var cmd tea.Cmd
		m.promptInput, cmd = m.promptInput.Update(msg)
		return m, cmd
	}

	binding := m.keys.Lookup(msg.String(), scope)
	if binding == nil {
		// Remaining editing keys (backspace, arrows) still reach the input.
		if scope == scopePrompt {
			var cmd tea.Cmd
			m.promptInput, cmd = m.promptInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch binding.Action {
	case actionQuit:
		m.store.CloseAll()
		m.bridge.Unmount()
		m.quitting = true
		return m, tea.Quit
	case actionBack:
		m.doBack()
	case actionOpenAlert:
		m.openAlert()
	case actionOpenConfirm:
		m.openConfirm()
	case actionOpenPrompt:
		m = m.openPrompt()
	case actionDismiss:
		if top := m.ui.top(); top != nil {
			m.store.Close(top.Hash)
		}
	case actionAccept:
		m.answerConfirm(true)
	case actionDecline:
		m.answerConfirm(false)
	case actionSubmit:
		m.submitPrompt()
	case actionCloseAlerts:
		m.store.CloseAllByName("alert")
	case actionCloseAll:
		m.store.CloseAll()
	}
	return m, nil
}

// doBack routes Esc the way a platform back button would: most recently
// attached handler first, default behavior when nobody consumes it.
func (m model) doBack() {
	if !m.back.Dispatch() {
		m.ui.note("back: nothing open")
	}
}

func (m *model) openAlert() {
	m.opened++
	seq := m.opened
	inst, err := m.store.Open("alert", modal.Params{
		"message": fmt.Sprintf("Alert #%d", seq),
		"seq":     seq,
	})
	if err != nil {
		m.ui.lastErr = err
		return
	}
	ui := m.ui
	m.store.AddClosingAction(inst.Hash, func() {
		ui.note("alert #%d dismissed", seq)
	})
}

// openConfirm opens a confirm modal wired with a scoped "submit" listener.
// The unanswered closing action fires only when the modal closes without an
// explicit yes/no, e.g. via Esc or a close-all sweep.
func (m *model) openConfirm() {
	m.opened++
	inst, err := m.store.Open("confirm", modal.Params{
		"question": "Close every open alert?",
	})
	if err != nil {
		m.ui.lastErr = err
		return
	}
	hash := inst.Hash
	// Capture the shared pointers, not the model copy; the closures outlive
	// this update cycle.
	ui, store := m.ui, m.store
	if _, err := store.RegisterListener(hash, "submit", func(payload any) {
		confirmed, _ := payload.(bool)
		if confirmed {
			ui.note("confirmed: closing alerts")
			store.CloseAllByName("alert")
			return
		}
		ui.note("declined")
	}); err != nil {
		ui.lastErr = err
	}
	ui.unanswered[hash] = store.AddClosingAction(hash, func() {
		ui.note("confirm closed unanswered")
	})
}

// answerConfirm emits the answer to the confirm's listeners, cancels the
// unanswered action, then closes the modal.
func (m *model) answerConfirm(confirmed bool) {
	top := m.ui.top()
	if top == nil || top.Name != "confirm" {
		return
	}
	hash := top.Hash
	m.store.Emit(hash, "submit", confirmed)
	if action, ok := m.ui.unanswered[hash]; ok {
		m.store.RemoveClosingAction(hash, action)
		delete(m.ui.unanswered, hash)
	}
	m.store.Close(hash)
}

func (m model) openPrompt() model {
	m.opened++
	inst, err := m.store.Open("prompt", modal.Params{
		"label": "Name this session",
	})
	if err != nil {
		m.ui.lastErr = err
		return m
	}
	hash := inst.Hash
	ui := m.ui
	if _, err := m.store.RegisterListener(hash, "submit", func(payload any) {
		text, _ := payload.(string)
		if text == "" {
			text = "(empty)"
		}
		ui.note("session named %q", text)
	}); err != nil {
		ui.lastErr = err
	}

	m.promptInput.SetValue("")
	m.promptInput.Focus()
	return m
}

func (m *model) submitPrompt() {
	top := m.ui.top()
	if top == nil || top.Name != "prompt" {
		return
	}
	hash := top.Hash
	m.store.Emit(hash, "submit", m.promptInput.Value())
	m.promptInput.Blur()
	m.store.Close(hash)
}
