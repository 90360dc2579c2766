package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderPad renders a single colored pad
func RenderPad(color [3]uint8) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(color)))
	return style.Render("■")
}

// RenderControlPad renders one round control-row button
func RenderControlPad(color [3]uint8) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(color)))
	return style.Render("●")
}

// RenderPadRow renders a row of colored pads with spacing
func RenderPadRow(colors [][3]uint8) string {
	var out strings.Builder
	for i, c := range colors {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(RenderPad(c))
	}
	return out.String()
}

// RenderSurface renders the whole pad surface: the control row of round
// buttons on top, then the 8x9 note grid (scene column included) with
// row 0 first, matching how the hardware is laid out.
func RenderSurface(controlRow [8][3]uint8, grid [8][9][3]uint8) string {
	var lines []string

	var top strings.Builder
	for col := 0; col < 8; col++ {
		top.WriteString(RenderControlPad(controlRow[col]))
		top.WriteString(" ")
	}
	lines = append(lines, top.String())

	for row := 0; row < 8; row++ {
		var line strings.Builder
		for col := 0; col < 9; col++ {
			line.WriteString(RenderPad(grid[row][col]))
			if col < 8 {
				line.WriteString(" ")
			}
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// RenderLegendItem renders a single legend item: "■ Name - description"
func RenderLegendItem(color [3]uint8, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", RenderPad(color), name, desc)
}

func rgbToHex(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
