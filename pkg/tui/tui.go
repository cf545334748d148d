// Package tui provides a terminal user interface for browsing DX7 dumps
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/james-see/dx7syx/pkg/converter"
	"github.com/james-see/dx7syx/pkg/dx7"
)

// DX7 panel colors: maroon case, membrane green, LED red
var (
	panelGreen = lipgloss.Color("#5FD7AF")
	ledRed     = lipgloss.Color("#FF3B30")
	creamWhite = lipgloss.Color("#F2E8CF")
	maroon     = lipgloss.Color("#5C1A1B")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(creamWhite).
			Background(maroon).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(creamWhite).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(panelGreen).
			Bold(true).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(ledRed).
			PaddingTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(ledRed).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(panelGreen).
			Padding(1, 2)
)

// State represents the current TUI state
type State int

const (
	StateMenu State = iota
	StateFilePicker
	StateLoading
	StateVoices
	StateDetail
	StateError
)

// MenuItem represents a menu option
type MenuItem struct {
	Title       string
	Description string
}

var menuItems = []MenuItem{
	{Title: "Open dump", Description: "Browse the voices of a .syx, .mid, .json or .yaml file"},
	{Title: "INIT VOICE", Description: "Show the parameters of INIT VOICE"},
	{Title: "Exit", Description: "Exit the application"},
}

// Model represents the TUI model
type Model struct {
	conv         *converter.Converter
	state        State
	menuIndex    int
	voiceIndex   int
	filePicker   filepicker.Model
	spinner      spinner.Model
	selectedFile string
	doc          *converter.Document
	err          error
	width        int
	height       int
}

// loadedMsg signals that a file was decoded
type loadedMsg struct {
	doc *converter.Document
	err error
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick)
}

// New creates a new TUI model
func New(conv *converter.Converter) Model {
	// Initialize file picker
	fp := filepicker.New()
	fp.AllowedTypes = []string{".syx", ".mid", ".midi", ".json", ".yaml", ".yml"}
	fp.CurrentDirectory, _ = os.Getwd()

	// Initialize spinner
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(panelGreen)

	return Model{
		conv:       conv,
		state:      StateMenu,
		filePicker: fp,
		spinner:    s,
	}
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle file picker state first - it needs to receive all messages
	if m.state == StateFilePicker {
		// Check for escape/quit keys first
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				m.state = StateMenu
				return m, nil
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		// Pass all other messages to the file picker
		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		// Check if file was selected
		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			m.state = StateLoading
			return m, tea.Batch(m.spinner.Tick, m.load(path))
		}

		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filePicker.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateMenu:
			return m.updateMenu(msg)
		case StateVoices:
			return m.updateVoices(msg)
		case StateDetail, StateError:
			return m.updateBack(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		if msg.err != nil {
			m.state = StateError
			m.err = msg.err
			return m, nil
		}
		m.doc = msg.doc
		m.voiceIndex = 0
		m.state = StateVoices
		return m, nil
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
	case "enter":
		switch m.menuIndex {
		case 0:
			m.state = StateFilePicker
			return m, m.filePicker.Init()
		case 1:
			m.doc = converter.NewVoiceDocument(dx7.DefaultChannel(), dx7.InitVoice())
			m.selectedFile = "INIT VOICE"
			m.voiceIndex = 0
			m.state = StateDetail
			return m, nil
		default:
			return m, tea.Quit
		}
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateVoices(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.voiceIndex > 0 {
			m.voiceIndex--
		}
	case "down", "j":
		if m.voiceIndex < len(m.doc.Voices)-1 {
			m.voiceIndex++
		}
	case "enter":
		m.state = StateDetail
	case "esc":
		m.state = StateMenu
		m.doc = nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateBack(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		if m.state == StateDetail && m.doc != nil && m.doc.Kind == converter.KindCartridge {
			m.state = StateVoices
			return m, nil
		}
		m.state = StateMenu
		m.err = nil
		m.doc = nil
		m.selectedFile = ""
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) load(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return loadedMsg{err: err}
		}

		format := converter.DetectFormat(path)
		if format == converter.FormatUnknown {
			format = converter.DetectFormatFromContent(data)
		}

		doc, err := m.conv.Decode(data, format)
		return loadedMsg{doc: doc, err: err}
	}
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	// Header
	s.WriteString(logo())
	s.WriteString("\n")

	switch m.state {
	case StateMenu:
		s.WriteString(m.viewMenu())
	case StateFilePicker:
		s.WriteString(m.viewFilePicker())
	case StateLoading:
		s.WriteString(m.viewLoading())
	case StateVoices:
		s.WriteString(m.viewVoices())
	case StateDetail:
		s.WriteString(m.viewDetail())
	case StateError:
		s.WriteString(m.viewError())
	}

	// Footer help
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • esc: back • q: quit"))

	return s.String()
}

func (m Model) viewMenu() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" DX7 SYSEX "))
	s.WriteString("\n\n")

	for i, item := range menuItems {
		if i == m.menuIndex {
			s.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", item.Title)))
			s.WriteString("\n")
			s.WriteString(lipgloss.NewStyle().Foreground(panelGreen).PaddingLeft(4).Render(item.Description))
		} else {
			s.WriteString(menuStyle.Render(fmt.Sprintf("  %s", item.Title)))
		}
		s.WriteString("\n")
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT DUMP FILE "))
	s.WriteString("\n\n")
	s.WriteString(m.filePicker.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("esc: back to menu"))

	return s.String()
}

func (m Model) viewLoading() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" LOADING "))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%s Reading %s...\n", m.spinner.View(), filepath.Base(m.selectedFile)))

	return boxStyle.Render(s.String())
}

func (m Model) viewVoices() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf(" %s ", strings.ToUpper(filepath.Base(m.selectedFile)))))
	s.WriteString("\n\n")

	// Two columns of 16, like the cartridge slot buttons
	half := (len(m.doc.Voices) + 1) / 2
	for row := 0; row < half; row++ {
		left := m.voiceCell(row)
		right := ""
		if row+half < len(m.doc.Voices) {
			right = m.voiceCell(row + half)
		}
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(20).Render(left), right))
		s.WriteString("\n")
	}
	s.WriteString(statusStyle.Render(fmt.Sprintf("%s • channel %d", m.doc.Kind, m.doc.Channel)))

	return boxStyle.Render(s.String())
}

func (m Model) voiceCell(i int) string {
	label := fmt.Sprintf("%2d %-10s", i+1, m.doc.Voices[i].Name)
	if i == m.voiceIndex {
		return selectedStyle.Render("▸" + label)
	}
	return menuStyle.Render(" " + label)
}

func (m Model) viewDetail() string {
	var s strings.Builder

	v := m.doc.Voices[m.voiceIndex]
	s.WriteString(titleStyle.Render(fmt.Sprintf(" %02d %s ", m.voiceIndex+1, v.Name)))
	s.WriteString("\n\n")
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().MarginRight(4).Render(v.String()),
		lipgloss.NewStyle().Foreground(panelGreen).Render(v.Algorithm.Diagram()),
	))
	s.WriteString("\n")
	s.WriteString(statusStyle.Render(fmt.Sprintf("checksum 0x%02X", dx7.Checksum(v.Bytes()))))

	return boxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" ERROR "))
	s.WriteString("\n\n")
	s.WriteString(errorStyle.Render(fmt.Sprintf("✗ Cannot read %s: %s", filepath.Base(m.selectedFile), m.err)))
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press enter to continue"))

	return boxStyle.Render(s.String())
}

func logo() string {
	logo := `
  ____  __  __ _____    ______   ______  _______  __
 |  _ \ \ \/ /|___  |  / ___\ \ / / ___|| ____\ \/ /
 | | | | \  /    / /   \___ \\ V /\___ \|  _|  \  /
 | |_| | /  \   / /     ___) || |  ___) | |___ /  \
 |____/ /_/\_\ /_/     |____/ |_| |____/|_____/_/\_\
`
	return lipgloss.NewStyle().Foreground(panelGreen).Render(logo)
}

// Run starts the TUI application
func Run(conv *converter.Converter) error {
	p := tea.NewProgram(New(conv), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
