// Package tui prints finished layouts to a terminal with ANSI colours.
package tui

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"dungeongen/pkg/engine/terminal"
	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/layout"
)

// Icon constants, two columns per cell so the map keeps its aspect ratio
const (
	IconWall    = "▒▒"
	IconRoom    = "  "
	IconHallway = "░░"
	IconStart   = "@@"
)

// Plain icons used when colour is off
const (
	PlainWall    = "##"
	PlainRoom    = ".."
	PlainHallway = "++"
	PlainStart   = "@@"
)

// dynamicGet is used for runtime translation key lookups.
// We use a function variable to avoid go vet's non-constant format string check,
// since we intentionally look up translation keys dynamically from markup.
var dynamicGet = gotext.Get

// LoadLocale points gettext at dir/<lang>/default.po. Missing files are not an
// error; untranslated strings print as written.
func LoadLocale(dir, lang string) {
	gotext.Configure(dir, lang, "default")
}

// TUIRenderer is the terminal renderer
type TUIRenderer struct {
	out   io.Writer
	color bool

	colorWall    color.Style
	colorRoom    color.Style
	colorHallway color.Style
	colorStart   color.Style
	colorLabel   color.Style
	colorValue   color.Style
	colorWarn    color.Style

	regexpStringFunctions *regexp.Regexp
}

// New creates a renderer writing to out. With useColor false it prints
// plain ASCII suitable for files and pipes.
func New(out io.Writer, useColor bool) *TUIRenderer {
	t := &TUIRenderer{out: out, color: useColor}
	t.Init()
	return t
}

// Init initializes colours and the markup parser
func (t *TUIRenderer) Init() {
	t.colorWall = color.Style{color.FgGray}
	t.colorRoom = color.Style{color.BgWhite}
	t.colorHallway = color.Style{color.FgYellow}
	t.colorStart = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	t.colorLabel = color.Style{color.FgMagenta}
	t.colorValue = color.Style{color.FgCyan, color.OpBold}
	t.colorWarn = color.Style{color.FgRed, color.OpBold}

	t.regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:.=-]+)}`)
}

func (t *TUIRenderer) style(s color.Style, text string) string {
	if !t.color {
		return text
	}
	return s.Sprint(text)
}

// FormatText formats a message with the markup system:
// GT{text} translates, LABEL{text} translates and highlights, VALUE{text}
// highlights, WARN{text} translates and marks as a warning.
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	ret := fmt.Sprintf(msg, args...)

	matches := t.regexpStringFunctions.FindAllStringSubmatch(ret, -1)

	for _, match := range matches {
		function := match[1]
		operand := match[2]

		var val string

		switch function {
		case "GT":
			val = dynamicGet(operand)
		case "LABEL":
			val = t.style(t.colorLabel, dynamicGet(operand))
		case "VALUE":
			val = t.style(t.colorValue, operand)
		case "WARN":
			val = t.style(t.colorWarn, dynamicGet(operand))
		default:
			return fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
		}

		ret = strings.Replace(ret, match[0], val, 1)
	}

	return ret
}

// renderCell returns the string representation of a cell
func (t *TUIRenderer) renderCell(cell world.Cell) string {
	if !t.color {
		switch cell.Kind {
		case world.Room:
			return PlainRoom
		case world.Hallway:
			return PlainHallway
		default:
			return PlainWall
		}
	}
	switch cell.Kind {
	case world.Room:
		return t.colorRoom.Sprint(IconRoom)
	case world.Hallway:
		return t.colorHallway.Sprint(IconHallway)
	default:
		return t.colorWall.Sprint(IconWall)
	}
}

// RenderGrid prints the whole grid, marking start when it is non-nil
func (t *TUIRenderer) RenderGrid(grid *world.Grid, start *world.Point) error {
	var sb strings.Builder
	size := grid.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if start != nil && start.X == x && start.Y == y {
				if t.color {
					sb.WriteString(t.colorStart.Sprint(IconStart))
				} else {
					sb.WriteString(PlainStart)
				}
				continue
			}
			sb.WriteString(t.renderCell(grid.At(x, y)))
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(t.out, sb.String())
	return err
}

// RenderLegend prints what each icon means
func (t *TUIRenderer) RenderLegend() error {
	icons := [][2]string{
		{t.renderCell(world.Cell{Kind: world.Wall}), "Wall"},
		{t.renderCell(world.Cell{Kind: world.Room}), "Room"},
		{t.renderCell(world.Cell{Kind: world.Hallway}), "Hallway"},
	}
	parts := make([]string, 0, len(icons))
	for _, icon := range icons {
		parts = append(parts, icon[0]+" "+t.FormatText("GT{%s}", icon[1]))
	}
	_, err := fmt.Fprintln(t.out, strings.Join(parts, "   "))
	return err
}

// RenderSummary prints room and cell counts for a finished grid
func (t *TUIRenderer) RenderSummary(stats layout.Stats, requested int, unreachable []int) error {
	lines := []string{
		t.FormatText("LABEL{Rooms placed}: VALUE{%d}/VALUE{%d}", stats.Rooms, requested),
		t.FormatText("LABEL{Room cells}: VALUE{%d}", stats.RoomCells),
		t.FormatText("LABEL{Hallway cells}: VALUE{%d}", stats.HallwayCells),
		t.FormatText("LABEL{Walkable regions}: VALUE{%d}", stats.Components),
	}
	if len(unreachable) > 0 {
		ids := make([]string, 0, len(unreachable))
		for _, id := range unreachable {
			ids = append(ids, fmt.Sprint(id))
		}
		lines = append(lines, t.FormatText("WARN{Unreachable rooms}: VALUE{%s}", strings.Join(ids, ",")))
	}
	_, err := fmt.Fprintln(t.out, strings.Join(lines, "\n"))
	return err
}

// FitsTerminal reports whether a grid of the given side length fits the
// current terminal width
func FitsTerminal(size int) bool {
	return size*len(PlainWall) <= terminal.GetWidth()
}

// StripColor removes ANSI codes from s
func StripColor(s string) string {
	return color.ClearCode(s)
}
