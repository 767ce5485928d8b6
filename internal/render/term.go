package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/danielsamuels/covid-19-graphs/internal/chart"
)

const sparkChars = " .:-=+*#%@"

const terminalWidthBackup = 80

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	seriesStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Terminal renders charts as sparklines and a summary table, for a quick look
// at the data without writing image files.
type Terminal struct {
	Out   io.Writer
	Width int // 0 = autodetect
}

// Render prints the chart to the terminal. The filename argument is ignored;
// nothing is written to disk.
func (t *Terminal) Render(c chart.Chart, _ string) error {
	width := t.Width
	if width <= 0 {
		width = terminalWidth()
	}

	if _, err := fmt.Fprintln(t.Out, titleStyle.Render(c.Title)); err != nil {
		return err
	}
	if len(c.XLabels) > 0 {
		span := fmt.Sprintf("%s to %s (%d days)", c.XLabels[0], c.XLabels[len(c.XLabels)-1], len(c.XLabels))
		if _, err := fmt.Fprintln(t.Out, span); err != nil {
			return err
		}
	}
	if c.LogY {
		if _, err := fmt.Fprintln(t.Out, "Sparklines are linear; the log axis applies to image output only."); err != nil {
			return err
		}
	}

	nameWidth := 0
	for _, s := range c.Series {
		if w := len(s.Name); w > nameWidth {
			nameWidth = w
		}
	}
	plotWidth := width - nameWidth - 3
	if plotWidth < 10 {
		plotWidth = 10
	}
	for _, s := range c.Series {
		line := fmt.Sprintf("%-*s | %s", nameWidth, s.Name, sparkline(resample(s.Values, plotWidth)))
		if _, err := fmt.Fprintln(t.Out, seriesStyle.Render(line)); err != nil {
			return err
		}
	}

	headers := []string{"Series", "Days", "Min", "Max", "Last"}
	rows := make([][]string, 0, len(c.Series))
	for _, s := range c.Series {
		minVal, maxVal := seriesMinMax(s.Values)
		last := 0.0
		if len(s.Values) > 0 {
			last = s.Values[len(s.Values)-1]
		}
		rows = append(rows, []string{
			s.Name,
			fmt.Sprintf("%d", len(s.Values)),
			fmt.Sprintf("%.0f", minVal),
			fmt.Sprintf("%.0f", maxVal),
			fmt.Sprintf("%.0f", last),
		})
	}
	for _, line := range formatTable(headers, rows) {
		if _, err := fmt.Fprintln(t.Out, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(t.Out, "")
	return err
}

// formatTable lays out a small summary table: the first column left-aligned,
// all numeric columns right-aligned.
func formatTable(headers []string, rows [][]string) []string {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	lines := make([]string, 0, len(rows)+1)
	for _, row := range append([][]string{headers}, rows...) {
		parts := make([]string, len(row))
		for i, cell := range row {
			if i == 0 {
				parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
			} else {
				parts[i] = fmt.Sprintf("%*s", widths[i], cell)
			}
		}
		lines = append(lines, strings.TrimRight(strings.Join(parts, "  "), " "))
	}
	return lines
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// sparkline renders a single-line ASCII sparkline for the values.
func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := seriesMinMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// resample squeezes or stretches values to the target width. Downsampling
// averages each bucket; upsampling interpolates linearly.
func resample(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	if len(values) == width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	if len(values) > width {
		for i := 0; i < width; i++ {
			start := int(float64(i) * float64(len(values)) / float64(width))
			end := int(float64(i+1) * float64(len(values)) / float64(width))
			if end <= start {
				end = start + 1
			}
			if end > len(values) {
				end = len(values)
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
		return out
	}
	if width == 1 || len(values) == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	for i := 0; i < width; i++ {
		pos := float64(i) * float64(len(values)-1) / float64(width-1)
		idx := int(math.Floor(pos))
		if idx >= len(values)-1 {
			out[i] = values[len(values)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = values[idx]*(1-frac) + values[idx+1]*frac
	}
	return out
}

func seriesMinMax(values []float64) (float64, float64) {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	for _, v := range values {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if minVal == math.Inf(1) {
		minVal = 0
	}
	if maxVal == math.Inf(-1) {
		maxVal = 0
	}
	return minVal, maxVal
}
