package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// gridRows lays out blocks in rows of perRow, joined horizontally with gap.
func gridRows(blocks []string, perRow int, gap string) string {
	if perRow <= 0 {
		perRow = 1
	}
	var rows []string
	for i := 0; i < len(blocks); i += perRow {
		end := min(i+perRow, len(blocks))
		row := make([]string, 0, 2*(end-i))
		for j, b := range blocks[i:end] {
			if j > 0 {
				row = append(row, gap)
			}
			row = append(row, b)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}
