package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"mindmate.app/client/internal/chat"
)

// The orchestrator's methods block for their network round trip, so each
// one runs inside a tea.Cmd and reports back with one of these messages.
type (
	bootstrapDoneMsg  struct{ err error }
	sendDoneMsg       struct{ err error }
	selectDoneMsg     struct{ err error }
	newSessionDoneMsg struct{ err error }
	deleteDoneMsg     struct{ err error }
)

func bootstrapCmd(o *chat.Orchestrator) tea.Cmd {
	return func() tea.Msg {
		return bootstrapDoneMsg{err: o.Bootstrap(context.Background())}
	}
}

func sendCmd(o *chat.Orchestrator, text string) tea.Cmd {
	return func() tea.Msg {
		return sendDoneMsg{err: o.Send(context.Background(), text)}
	}
}

func selectSessionCmd(o *chat.Orchestrator, id string) tea.Cmd {
	return func() tea.Msg {
		return selectDoneMsg{err: o.SelectSession(context.Background(), id)}
	}
}

func newSessionCmd(o *chat.Orchestrator) tea.Cmd {
	return func() tea.Msg {
		_, err := o.NewSession(context.Background())
		return newSessionDoneMsg{err: err}
	}
}

func deleteSessionCmd(o *chat.Orchestrator, id string) tea.Cmd {
	return func() tea.Msg {
		return deleteDoneMsg{err: o.DeleteSession(context.Background(), id)}
	}
}
