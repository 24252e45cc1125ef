package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
			if m.loginFocus == 0 {
				m.loginFocus = 1
				m.username.Blur()
				m.password.Focus()
			} else {
				m.loginFocus = 0
				m.password.Blur()
				m.username.Focus()
			}
			return m, textinput.Blink

		case tea.KeyCtrlR:
			m.registering = !m.registering
			m.status = ""
			return m, nil

		case tea.KeyEnter:
			if m.loginFocus == 0 {
				m.loginFocus = 1
				m.username.Blur()
				m.password.Focus()
				return m, nil
			}
			user := strings.TrimSpace(m.username.Value())
			pass := m.password.Value()
			if user == "" || pass == "" || m.busy {
				return m, nil
			}
			m.busy = true
			m.status = ""
			if m.registering {
				return m, registerCmd(m.api, user, pass)
			}
			return m, loginCmd(m.api, user, pass)
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.username, cmd = m.username.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) viewLogin() string {
	title := "Iniciar Sesión"
	action := "entrar"
	toggle := "ctrl+r: registrarse"
	if m.registering {
		title = "Registrarse"
		action = "crear cuenta"
		toggle = "ctrl+r: volver a iniciar sesión"
	}

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("charla — "+title) + "\n\n")
	b.WriteString("  " + m.username.View() + "\n")
	b.WriteString("  " + m.password.View() + "\n\n")
	if m.busy {
		b.WriteString("  ...\n")
	} else if m.status != "" {
		b.WriteString("  " + statusStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n  " + hintStyle.Render("enter: "+action+" · "+toggle+" · ctrl+c: salir") + "\n")
	return b.String()
}
