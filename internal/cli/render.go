package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	gocube "github.com/SeamusWaldron/gocube_solver"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

var stickerColors = map[gocube.Color]lipgloss.Color{
	gocube.White:  lipgloss.Color("15"),
	gocube.Yellow: lipgloss.Color("11"),
	gocube.Green:  lipgloss.Color("34"),
	gocube.Blue:   lipgloss.Color("27"),
	gocube.Red:    lipgloss.Color("160"),
	gocube.Orange: lipgloss.Color("208"),
}

// Face offsets in the sticker array.
const (
	faceU = 0
	faceR = 9
	faceF = 18
	faceD = 27
	faceL = 36
	faceB = 45
)

// renderNet draws the cube as a colored unfolded net:
//
//	  U
//	L F R B
//	  D
func renderNet(c *gocube.Cube) string {
	stickers := c.Stickers()
	row := func(face, r int) string {
		var sb strings.Builder
		for col := 0; col < 3; col++ {
			color := stickers[face+r*3+col]
			sb.WriteString(lipgloss.NewStyle().
				Background(stickerColors[color]).
				Foreground(lipgloss.Color("0")).
				Render(" " + color.String() + " "))
		}
		return sb.String()
	}
	pad := strings.Repeat(" ", 9)

	var sb strings.Builder
	for r := 0; r < 3; r++ {
		sb.WriteString(pad + row(faceU, r) + "\n")
	}
	for r := 0; r < 3; r++ {
		for _, f := range []int{faceL, faceF, faceR, faceB} {
			sb.WriteString(row(f, r))
		}
		sb.WriteString("\n")
	}
	for r := 0; r < 3; r++ {
		sb.WriteString(pad + row(faceD, r) + "\n")
	}
	return sb.String()
}
