package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mindmate.app/client/internal/chat"
	"mindmate.app/client/internal/safety"
)

const untitledSession = "New conversation"

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	sidebar := m.renderSidebar()
	main := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderTypingLine(),
		m.textarea.View(),
		m.renderFooter(),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
}

func (m Model) renderHeader() string {
	title := "MindMate"
	if sess, ok := m.orch.ActiveSession(); ok {
		if sess.Title != "" {
			title = sess.Title
		} else {
			title = untitledSession
		}
	}
	return m.styles.Header.Render("🌿 " + title)
}

func (m Model) renderSidebar() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Conversations"))
	b.WriteString("\n\n")

	sessions := m.orch.Sessions()
	if len(sessions) == 0 {
		b.WriteString(m.styles.Hint.Render("No conversations yet.\nStart one below."))
	}
	active := m.orch.ActiveSessionID()
	for i, sess := range sessions {
		title := sess.Title
		if title == "" {
			title = untitledSession
		}
		title = truncate(title, sidebarWidth-4)

		prefix := "  "
		if i == m.selected {
			prefix = "› "
		}
		style := m.styles.SessionItem
		if sess.ID == active {
			style = m.styles.SessionActive
		}
		b.WriteString(style.Render(prefix + title))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Hint.Render("^N new  ^D delete\n^K/^J switch"))

	return m.styles.Sidebar.
		Width(sidebarWidth).
		Height(m.height - 1).
		Render(b.String())
}

func (m Model) renderTranscript() string {
	messages := m.orch.Messages()
	if len(messages) == 0 && !m.sending {
		return m.renderEmptyState()
	}

	wrap := m.viewport.Width - 4
	if wrap < 16 {
		wrap = 16
	}

	var b strings.Builder
	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleUser:
			b.WriteString(m.styles.UserBubble.Width(wrap).Render("You: " + msg.Content))
		default:
			b.WriteString(m.styles.BotBubble.Width(wrap).Render("🌿 " + msg.Content))
		}
		b.WriteString("\n")
		if m.orch.IsCrisis(msg.ID) {
			b.WriteString(m.styles.CrisisBanner.Width(wrap).Render("🆘 " + safety.Resources))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderEmptyState() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(m.styles.EmptyHeading.Render("Hello, I'm here for you"))
	b.WriteString("\n\n")
	b.WriteString("This is a safe, private space. Share what's on your mind —\nor start from one of these:\n\n")
	for _, s := range starters {
		b.WriteString(m.styles.Starter.Render("  · " + s))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderTypingLine() string {
	if !m.sending {
		return ""
	}
	return m.styles.Typing.Render(m.spinner.View() + " MindMate is typing…")
}

func (m Model) renderFooter() string {
	if m.status != "" {
		return m.styles.ErrorLine.Render(m.status)
	}
	return m.styles.Hint.Render(
		"MindMate offers emotional support, not professional advice. In an emergency call 1166 (Nepal) or 988.")
}

func truncate(s string, max int) string {
	if max < 1 || len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
