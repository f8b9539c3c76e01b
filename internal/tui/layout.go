package tui

import "strings"

const columnGap = 3

// cell is a rendered grid entry; width is the visible width of s.
type cell struct {
	s     string
	width int
}

// layoutColumns lays cells out in row-major order using as many equal-width
// columns as fit in width.
func layoutColumns(cells []cell, width int) string {
	if len(cells) == 0 {
		return ""
	}
	colWidth := 1
	for _, c := range cells {
		if c.width > colWidth {
			colWidth = c.width
		}
	}
	cols := 1
	if width > 0 {
		cols = (width + columnGap) / (colWidth + columnGap)
	}
	if cols < 1 {
		cols = 1
	}

	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			if i%cols == 0 {
				b.WriteByte('\n')
			} else {
				b.WriteString(strings.Repeat(" ", columnGap))
			}
		}
		b.WriteString(c.s)
		last := i == len(cells)-1 || (i+1)%cols == 0
		if !last && c.width < colWidth {
			b.WriteString(strings.Repeat(" ", colWidth-c.width))
		}
	}
	return b.String()
}
