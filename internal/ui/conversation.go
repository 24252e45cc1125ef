package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/pcanos/charla/internal/chat"
	"github.com/pcanos/charla/model"
)

// header + toasts + separator + typing + compose + hint
const chatChromeHeight = 7

var (
	sidebarStyle   = lipgloss.NewStyle().Width(sidebarWidth).Foreground(lipgloss.Color("250"))
	toastStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("179")).Padding(0, 1)
	typingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	authorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	metaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	readTickStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	imageLinkStyle = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("105"))
)

func (m Model) updateChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			return m.leaveRoom()
		case tea.KeyEnter:
			return m.submitCompose()
		case tea.KeyRunes, tea.KeySpace:
			// Let the backend announce us as typing, throttled.
			if m.conn != nil && !m.uploading && time.Since(m.lastTypingSent) > time.Second {
				m.lastTypingSent = time.Now()
				if err := m.conn.Typing(); err != nil {
					log.Debug().Err(err).Msg("typing notify failed")
				}
			}
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	if !m.uploading {
		m.compose, cmd = m.compose.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) leaveRoom() (tea.Model, tea.Cmd) {
	if err := m.conn.LeaveRoom(); err != nil {
		log.Warn().Err(err).Msg("leave room failed")
	}
	m.feed.Close()
	m.toasts.Clear()
	m.room = model.Room{}
	m.scr = screenLobby
	m.cursor = 0
	m.compose.Blur()
	m.newRoom.Focus()
	// Leaving refreshes both room lists.
	return m, tea.Batch(myRoomsCmd(m.conn), publicRoomsCmd(m.conn))
}

func (m Model) submitCompose() (tea.Model, tea.Cmd) {
	if m.uploading {
		return m, nil
	}
	raw := strings.TrimSpace(m.compose.Value())
	if strings.HasPrefix(raw, "/") {
		return m.runComposeCommand(raw)
	}

	text, ok := chat.OutgoingText(m.compose.Value())
	if !ok || m.conn == nil || !m.feed.Open() {
		return m, nil
	}
	// Cleared optimistically; the message itself only appears once the
	// server echoes it back.
	m.compose.SetValue("")
	return m, sendTextCmd(m.conn, text)
}

func (m Model) runComposeCommand(cmdline string) (tea.Model, tea.Cmd) {
	m.compose.SetValue("")
	fields := strings.Fields(cmdline)
	switch fields[0] {
	case "/foto":
		if len(fields) != 2 {
			return m, toastExpiry(m.toasts.Add("Uso: /foto <ruta del archivo>"))
		}
		m.uploading = true
		return m, uploadCmd(m.api, m.sess.Token, fields[1])

	case "/fondo":
		if len(fields) != 2 {
			return m, toastExpiry(m.toasts.Add("Uso: /fondo <claro|oscuro|verde>"))
		}
		if err := m.store.SetWallpaper(fields[1]); err != nil {
			log.Warn().Err(err).Msg("saving wallpaper failed")
		}
		return m, nil

	case "/salir":
		return m.leaveRoom()
	}
	return m, toastExpiry(m.toasts.Add("Comando desconocido: " + fields[0]))
}

// refreshFeedView re-renders the message list and keeps the newest message
// visible, after every mutation.
func (m *Model) refreshFeedView() {
	if !m.ready {
		return
	}
	msgs := m.feed.Messages()
	lines := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		lines = append(lines, m.renderMessage(msg))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

func (m Model) renderMessage(msg model.Message) string {
	mine := msg.AuthorID == m.sess.UserID

	var body string
	if msg.ImageURL != nil && *msg.ImageURL != "" {
		body = "📷 " + imageLinkStyle.Render(*msg.ImageURL)
	} else if msg.Text != nil {
		body = *msg.Text
	}

	var meta []string
	if t := FormatClock(msg.Timestamp); t != "" {
		meta = append(meta, t)
	}
	if mine {
		tick := "✓"
		if msg.State == model.StateRead {
			tick = readTickStyle.Render("✓✓")
		}
		meta = append(meta, tick)
	}

	line := body
	if !mine {
		line = authorStyle.Render(msg.AuthorName+":") + " " + body
	}
	if len(meta) > 0 {
		line += " " + metaStyle.Render(strings.Join(meta, " "))
	}

	width := m.viewport.Width
	if width < 20 {
		width = 20
	}
	style := lipgloss.NewStyle().Width(width)
	if mine {
		style = style.Align(lipgloss.Right)
	}
	if bg := wallpaperColor(m.store.Wallpaper()); bg != "" {
		style = style.Background(lipgloss.Color(bg))
	}
	return style.Render(line)
}

func wallpaperColor(name string) string {
	switch name {
	case "oscuro":
		return "235"
	case "claro":
		return "255"
	case "verde":
		return "22"
	}
	return ""
}

func (m Model) viewChat() string {
	if !m.ready {
		return "\n  Cargando..."
	}

	header := titleStyle.Render("← "+m.room.Name) +
		hintStyle.Render("  (esc: volver · /foto · /fondo)")

	var toasts string
	if items := m.toasts.Items(); len(items) > 0 {
		parts := make([]string, 0, len(items))
		for _, n := range items {
			parts = append(parts, toastStyle.Render(n.Text))
		}
		toasts = strings.Join(parts, " ")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("En Línea (%d)\n", len(m.tracker.Users())))
	for _, u := range m.tracker.Users() {
		sb.WriteString(avatar(u) + " " + u + "\n")
	}
	sidebar := sidebarStyle.Render(sb.String())

	mainArea := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, m.viewport.View())

	compose := m.compose.View()
	if m.uploading {
		compose = "Subiendo imagen..."
	}

	sep := strings.Repeat("─", max(m.width, 1))

	return strings.Join([]string{
		header,
		toasts,
		mainArea,
		sep,
		typingStyle.Render(m.tracker.Typing()),
		compose,
	}, "\n")
}
