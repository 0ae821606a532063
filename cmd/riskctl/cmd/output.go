package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ITS-ERP/qms-risk-backend/internal/risk"
)

var (
	headerColor = color.New(color.FgWhite, color.Bold)
	highColor   = color.New(color.FgRed, color.Bold)
	mediumColor = color.New(color.FgYellow)
	lowColor    = color.New(color.FgGreen)
	dimColor    = color.New(color.Faint)
)

// priorityColor maps a priority label to its display color. Unknown labels
// (including "unavailable") render dimmed.
func priorityColor(priority string) *color.Color {
	switch priority {
	case risk.PriorityHigh:
		return highColor
	case risk.PriorityMedium:
		return mediumColor
	case risk.PriorityLow:
		return lowColor
	default:
		return dimColor
	}
}

// table renders left-aligned columns with a bold header row. Cells may carry
// a color; padding is applied before coloring so escape codes never skew the
// column widths.
type table struct {
	headers []string
	rows    [][]cell
}

type cell struct {
	text  string
	color *color.Color
}

func plain(text string) cell { return cell{text: text} }

func (t *table) addRow(cells ...cell) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(w io.Writer) {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, c := range row {
			if len(c.text) > widths[i] {
				widths[i] = len(c.text)
			}
		}
	}

	for i, h := range t.headers {
		headerColor.Fprintf(w, "%-*s  ", widths[i], h)
	}
	fmt.Fprintln(w)
	for i := range t.headers {
		fmt.Fprint(w, strings.Repeat("-", widths[i])+"  ")
	}
	fmt.Fprintln(w)

	for _, row := range t.rows {
		for i, c := range row {
			padded := fmt.Sprintf("%-*s", widths[i], c.text)
			if c.color != nil {
				c.color.Fprint(w, padded)
				fmt.Fprint(w, "  ")
			} else {
				fmt.Fprint(w, padded+"  ")
			}
		}
		fmt.Fprintln(w)
	}
}
