// Package ui is the terminal interface for the conversation client. All
// conversation state lives in the orchestrator; the model here only holds
// view concerns (focus, sizes, transient status text).
package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"mindmate.app/client/internal/chat"
)

const sidebarWidth = 28

var starters = []string{
	"I've been feeling anxious lately…",
	"I'm struggling to sleep and my mind won't stop.",
	"I need to talk about something that's been bothering me.",
	"Help me understand why I feel this way.",
}

type Model struct {
	orch   *chat.Orchestrator
	styles Styles

	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	width    int
	height   int
	ready    bool
	sending  bool
	selected int // session list cursor
	status   string
}

func New(orch *chat.Orchestrator) Model {
	ta := textarea.New()
	ta.Placeholder = "Share what's on your mind…"
	ta.Prompt = "┃ "
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.CharLimit = 0
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		orch:     orch,
		styles:   DefaultStyles(),
		textarea: ta,
		spinner:  sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, bootstrapCmd(m.orch))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		taCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			text := strings.TrimSpace(m.textarea.Value())
			if text == "" || m.sending {
				return m, nil
			}
			m.textarea.Reset()
			m.sending = true
			m.status = ""
			return m, tea.Batch(sendCmd(m.orch, text), m.spinner.Tick)

		case "ctrl+n":
			m.status = ""
			return m, newSessionCmd(m.orch)

		case "ctrl+k", "ctrl+j":
			sessions := m.orch.Sessions()
			if len(sessions) == 0 {
				return m, nil
			}
			if msg.String() == "ctrl+k" {
				m.selected--
			} else {
				m.selected++
			}
			if m.selected < 0 {
				m.selected = 0
			}
			if m.selected >= len(sessions) {
				m.selected = len(sessions) - 1
			}
			m.status = ""
			return m, selectSessionCmd(m.orch, sessions[m.selected].ID)

		case "ctrl+d":
			sessions := m.orch.Sessions()
			if m.selected < 0 || m.selected >= len(sessions) {
				return m, nil
			}
			m.status = ""
			return m, deleteSessionCmd(m.orch, sessions[m.selected].ID)

		case "pgup", "pgdown":
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

		m.textarea, taCmd = m.textarea.Update(msg)
		return m, taCmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		m.refreshTranscript()
		return m, nil

	case spinner.TickMsg:
		if !m.sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case bootstrapDoneMsg:
		m.setStatus(msg.err)
		m.clampCursor()
		return m, nil

	case sendDoneMsg:
		m.sending = false
		// Empty and in-flight rejections are silent no-ops; only real
		// failures (lazy session creation) reach the status line.
		if msg.err != nil && !errors.Is(msg.err, chat.ErrEmptyMessage) && !errors.Is(msg.err, chat.ErrSendInFlight) {
			m.setStatus(msg.err)
		}
		m.syncCursorToActive()
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, nil

	case selectDoneMsg, newSessionDoneMsg, deleteDoneMsg:
		switch msg := msg.(type) {
		case selectDoneMsg:
			m.setStatus(msg.err)
		case newSessionDoneMsg:
			m.setStatus(msg.err)
		case deleteDoneMsg:
			m.setStatus(msg.err)
		}
		m.syncCursorToActive()
		m.clampCursor()
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, nil
	}

	m.textarea, taCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(taCmd, vpCmd)
}

func (m *Model) setStatus(err error) {
	if err != nil {
		m.status = err.Error()
	} else {
		m.status = ""
	}
}

func (m *Model) layout() {
	chatWidth := m.width - sidebarWidth - 2
	if chatWidth < 20 {
		chatWidth = 20
	}
	// Header, typing line, input, hint/status.
	vpHeight := m.height - 2 - 1 - m.textarea.Height() - 2
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(chatWidth, vpHeight)
	} else {
		m.viewport.Width = chatWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(chatWidth)
}

// clampCursor keeps the session cursor inside the list after deletions.
func (m *Model) clampCursor() {
	n := len(m.orch.Sessions())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// syncCursorToActive points the cursor at the active session, which moves
// when a send lazily creates one or a new conversation is started.
func (m *Model) syncCursorToActive() {
	active := m.orch.ActiveSessionID()
	if active == "" {
		return
	}
	for i, sess := range m.orch.Sessions() {
		if sess.ID == active {
			m.selected = i
			return
		}
	}
}

func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
}
