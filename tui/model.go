// Package tui is a live monitor for the pad surface: it polls the
// device, decodes presses, mirrors them on a local grid, and echoes
// them back to the hardware LEDs.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	launchpad "github.com/lhpt2/launchpad-mini-control"
	"github.com/lhpt2/launchpad-mini-control/midi"
	"github.com/lhpt2/launchpad-mini-control/widgets"
)

// pressColor is what a held pad shows, on hardware and in the terminal.
const pressColor = launchpad.Green

type Model struct {
	dev      *launchpad.Device
	interval time.Duration

	// Local mirror of the surface: control row + 8x9 note grid.
	controlRow [8]launchpad.Color
	grid       [8][9]launchpad.Color

	lastEvent string
	err       error
	quitting  bool
}

func NewModel(dev *launchpad.Device, interval time.Duration) Model {
	return Model{dev: dev, interval: interval}
}

type tickMsg time.Time

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick(m.interval)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.dev.FullBlackout()
			return m, tea.Quit
		}

	case tickMsg:
		if err := m.drain(); err != nil {
			m.err = err
		}
		return m, tick(m.interval)
	}

	return m, nil
}

// drain reads everything the device has queued since the last tick.
func (m *Model) drain() error {
	for {
		ok, err := m.dev.Poll()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		raw, err := m.dev.ReadSingleMessage()
		if err != nil {
			return err
		}
		if raw == nil {
			return nil
		}
		m.apply(*raw)
	}
}

func (m *Model) apply(raw midi.Message) {
	pos := launchpad.PosFromMessage(raw)
	pressed := raw.Data2 > 0 && raw.Status != midi.StatusNoteOff

	color := launchpad.Black
	if pressed {
		color = pressColor
	}

	if pos.IsControlRow() {
		if pos.Col < 8 {
			m.controlRow[pos.Col] = color
		}
	} else if pos.Row < 8 && pos.Col < 9 {
		m.grid[pos.Row][pos.Col] = color
	}

	// Echo to the hardware so held pads light up.
	m.dev.SetPosition(pos.Row, pos.Col, color)

	state := "release"
	if pressed {
		state = "press"
	}
	m.lastEvent = fmt.Sprintf("%s (%d,%d)  raw %02X %02X %02X",
		state, pos.Row, pos.Col, raw.Status, raw.Data1, raw.Data2)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#5fd7ff"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(headerStyle.Render("lpctl monitor"))
	out.WriteString("\n\n")
	out.WriteString(renderSurface(m.controlRow, m.grid))
	out.WriteString("\n\n")
	out.WriteString(renderLegend())
	out.WriteString("\n\n")

	if m.lastEvent != "" {
		out.WriteString(m.lastEvent)
		out.WriteString("\n")
	}
	if m.err != nil {
		out.WriteString(errStyle.Render(m.err.Error()))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	out.WriteString(dimStyle.Render("press pads to light them  q:quit"))
	return out.String()
}

// renderLegend shows the full palette strip and what the monitor's two
// pad states mean.
func renderLegend() string {
	palette := make([][3]uint8, 0, len(launchpad.Gradient))
	for _, c := range launchpad.Gradient {
		palette = append(palette, c.RGB())
	}

	lines := []string{
		widgets.RenderPadRow(palette),
		widgets.RenderLegendItem(pressColor.RGB(), pressColor.String(), "held pad"),
		widgets.RenderLegendItem(launchpad.Black.RGB(), "black", "idle pad"),
	}
	return strings.Join(lines, "\n")
}

func renderSurface(controlRow [8]launchpad.Color, grid [8][9]launchpad.Color) string {
	var top [8][3]uint8
	for col, c := range controlRow {
		top[col] = c.RGB()
	}

	var pads [8][9][3]uint8
	for row := range grid {
		for col, c := range grid[row] {
			pads[row][col] = c.RGB()
		}
	}
	return widgets.RenderSurface(top, pads)
}

// Run starts the monitor and blocks until it quits.
func Run(dev *launchpad.Device, interval time.Duration) error {
	p := tea.NewProgram(NewModel(dev, interval), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
