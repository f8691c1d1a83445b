package display

import "strings"

// Screen geometry for a 128x64 panel with the 7x13 basic font.
const (
	Cols = 18
	Rows = 4
)

// WrapText word-wraps text to at most width columns. Words longer than a
// whole line are hard-split. Explicit newlines force a break.
func WrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			for len(word) > width {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				lines = append(lines, word[:width])
				word = word[width:]
			}
			switch {
			case line == "":
				line = word
			case len(line)+1+len(word) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	// A trailing forced blank is layout noise, interior blanks are
	// paragraph breaks and stay.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Paginate slices wrapped lines into pages of rows lines each.
func Paginate(lines []string, rows int) [][]string {
	if rows < 1 {
		rows = 1
	}
	var pages [][]string
	for len(lines) > rows {
		pages = append(pages, lines[:rows])
		lines = lines[rows:]
	}
	if len(lines) > 0 {
		pages = append(pages, lines)
	}
	return pages
}

// centerPad returns the pixel X offset that centers a line of n
// characters of the 7px font on a 128px panel.
func centerPad(n int) int {
	px := (128 - n*7) / 2
	if px < 0 {
		px = 0
	}
	return px
}
