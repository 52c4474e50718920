// Package diagram draws FL depth profiles as text or as plot images.
package diagram

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"

	"github.com/alexiusacademia/goliq/internal/liquefaction"
	"github.com/alexiusacademia/goliq/internal/soil"
)

const (
	barChars = 40  // bar length at flScale
	flScale  = 2.0 // FL at full bar length
)

// DrawASCIIProfile draws one line per row: depth, an FL bar with the FL = 1
// marker, the value and the soil category. The ground water level is drawn
// where it falls between rows.
func DrawASCIIProfile(rows []liquefaction.Row, gwl float64) string {
	var sb strings.Builder

	oneAt := int(1.0 / flScale * barChars)

	sb.WriteString("\n")
	sb.WriteString("  FL DEPTH PROFILE\n")
	sb.WriteString("  ────────────────\n")
	sb.WriteString(fmt.Sprintf("  %7s  %-*s  %7s  %s\n", "Depth", barChars+1, "0"+strings.Repeat(" ", oneAt)+"1.0", "FL", "Soil"))

	gwlDrawn := false
	for _, r := range rows {
		if !gwlDrawn && r.Depth >= gwl {
			sb.WriteString(fmt.Sprintf("  %6.2fm  %s ▽ GWL\n", gwl, strings.Repeat("─", barChars+1)))
			gwlDrawn = true
		}

		n := int(r.FL / flScale * barChars)
		if n > barChars {
			n = barChars
		}
		if n < 0 {
			n = 0
		}
		fill := "█"
		if r.Liquefiable() {
			fill = "▓"
		}

		bar := []rune(strings.Repeat(fill, n) + strings.Repeat(" ", barChars-n))
		if bar[oneAt] == ' ' {
			bar[oneAt] = '┆'
		}

		flag := ""
		if r.Liquefiable() {
			flag = " ◄"
		}
		cat := soil.Classify(r.SoilType)
		sb.WriteString(fmt.Sprintf("  %6.2fm  │%s  %7.3f  %s (%s)%s\n",
			r.Depth, string(bar), r.FL, r.SoilType, cat.Label(), flag))
	}
	if !gwlDrawn && len(rows) > 0 {
		sb.WriteString(fmt.Sprintf("  %6.2fm  %s ▽ GWL\n", gwl, strings.Repeat("─", barChars+1)))
	}

	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  ███ = FL ≥ 1.0\n")
	sb.WriteString("  ▓▓▓ = FL < 1.0 (liquefiable) ◄\n")
	sb.WriteString(fmt.Sprintf("  ┆   = FL = 1.0, bars are capped at FL = %.1f\n", flScale))

	return sb.String()
}

// DrawSummaryBox creates a summary box for results. Wide (CJK) characters
// count as two columns.
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := displayWidth(title)
	for _, line := range lines {
		maxLen = max(maxLen, displayWidth(line))
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func pad(s string, w int) string {
	if d := w - displayWidth(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}
