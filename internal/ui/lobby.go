package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pcanos/charla/model"
)

var (
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	badgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("42")).Padding(0, 1)
	previewStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

type entryKind int

const (
	entryRoom entryKind = iota
	entryPublic
	entryUser
)

type lobbyEntry struct {
	kind entryKind
	room model.Room
	user model.UserEntry
}

func (m Model) lobbyEntries() []lobbyEntry {
	var out []lobbyEntry
	for _, r := range m.registry.Mine() {
		out = append(out, lobbyEntry{kind: entryRoom, room: r})
	}
	for _, r := range m.registry.Public() {
		out = append(out, lobbyEntry{kind: entryPublic, room: r})
	}
	for _, u := range m.users {
		out = append(out, lobbyEntry{kind: entryUser, user: u})
	}
	return out
}

func (m Model) updateLobby(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			m.teardown()
			return m, tea.Quit

		case tea.KeyCtrlD:
			m.logout()
			return m, nil

		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case tea.KeyDown:
			if m.cursor < len(m.lobbyEntries())-1 {
				m.cursor++
			}
			return m, nil

		case tea.KeyEnter:
			if name := strings.TrimSpace(m.newRoom.Value()); name != "" {
				m.newRoom.SetValue("")
				return m, joinRoomCmd(m.conn, model.Room{Name: name})
			}
			entries := m.lobbyEntries()
			if m.cursor >= len(entries) {
				return m, nil
			}
			e := entries[m.cursor]
			if e.kind == entryUser {
				return m, privateChatCmd(m.conn, e.user.ID)
			}
			return m, joinRoomCmd(m.conn, e.room)
		}
	}

	var cmd tea.Cmd
	m.newRoom, cmd = m.newRoom.Update(msg)
	return m, cmd
}

func (m Model) viewLobby() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Chats") + hintStyle.Render("  Hola, "+m.sess.Username) + "\n\n")
	b.WriteString("  " + m.newRoom.View() + "\n\n")

	idx := 0

	b.WriteString("  " + sectionStyle.Render("Mis Salas") + "\n")
	mine := m.registry.Mine()
	if len(mine) == 0 {
		b.WriteString("  " + emptyStyle.Render("Aún no te has unido a ninguna sala.") + "\n")
	}
	for _, r := range mine {
		b.WriteString(m.renderRoomRow(r, idx == m.cursor))
		idx++
	}

	b.WriteString("\n  " + sectionStyle.Render("Salas Públicas") + "\n")
	public := m.registry.Public()
	if len(public) == 0 {
		b.WriteString("  " + emptyStyle.Render("No hay salas públicas activas.") + "\n")
	}
	for _, r := range public {
		line := fmt.Sprintf("%s # %s", avatar(r.Name), r.Name)
		if idx == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString("  " + line + "\n")
		idx++
	}

	b.WriteString("\n  " + sectionStyle.Render("Usuarios") + "\n")
	if len(m.users) == 0 {
		b.WriteString("  " + emptyStyle.Render("No hay otros usuarios conectados.") + "\n")
	}
	for _, u := range m.users {
		line := fmt.Sprintf("%s %s", avatar(u.Username), u.Username)
		if idx == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString("  " + line + "\n")
		idx++
	}
	if m.status != "" {
		b.WriteString("\n  " + statusStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n  " + hintStyle.Render("↑/↓: elegir · enter: abrir · ctrl+d: cerrar sesión · esc: salir") + "\n")
	return b.String()
}

func (m Model) renderRoomRow(r model.Room, selected bool) string {
	name := r.Name
	var meta []string
	if t := FormatClock(r.LastMessageAt); t != "" {
		meta = append(meta, t)
	}
	// The badge hides when the last message is the user's own, even if a
	// counter slipped through.
	if r.Unread > 0 && r.LastMessageBy != m.sess.UserID {
		meta = append(meta, badgeStyle.Render(fmt.Sprintf("%d", r.Unread)))
	}

	preview := r.LastMessageText
	if preview == "" {
		preview = "No hay mensajes"
	}

	line := fmt.Sprintf("%s %s  %s", avatar(name), name, previewStyle.Render(preview))
	if len(meta) > 0 {
		line += "  " + strings.Join(meta, " ")
	}
	if selected {
		line = selectedStyle.Render(line)
	}
	return "  " + line + "\n"
}
