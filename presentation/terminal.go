package presentation

import (
	"fmt"
	"io"
	"strings"
)

const barWidth = 30

// Render prints the dashboard as a terminal report with ANSI colours.
func Render(w io.Writer, d *Dashboard) {
	sep := strings.Repeat("═", 60)
	thin := strings.Repeat("─", 60)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  🎬 CATALOG DASHBOARD\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Quick Stats\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	for _, c := range d.Counters {
		fmt.Fprintf(w, "  %-22s : \033[1m%d\033[0m\n", c.Label, c.Value)
	}
	fmt.Fprintf(w, "  %-22s : \033[1m%d\033[0m\n", "Matching selection", d.FilteredTitles)
	fmt.Fprintln(w)

	for _, c := range d.Charts {
		renderChart(w, c, thin)
	}

	fmt.Fprintf(w, "\033[1;33m  Word Cloud Input\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if d.WordCloud.Empty {
		fmt.Fprintf(w, "  %s\n", NoDataMessage)
	} else {
		fmt.Fprintf(w, "  %d words, %dx%d on %s\n",
			len(strings.Fields(d.WordCloud.Text)), d.WordCloud.Width, d.WordCloud.Height, d.WordCloud.Background)
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func renderChart(w io.Writer, c ChartSpec, thin string) {
	fmt.Fprintf(w, "\033[1;33m  %s\033[0m \033[2m(%s, %s)\033[0m\n", c.Title, c.ChartType, c.Scope)
	fmt.Fprintf(w, "  %s\n", thin)
	defer fmt.Fprintln(w)

	if c.Empty {
		fmt.Fprintf(w, "  %s\n", c.Message)
		return
	}

	var max float64
	for _, p := range c.Points {
		if p.Value > max {
			max = p.Value
		}
	}

	for _, p := range c.Points {
		n := 0
		if max > 0 {
			n = int(p.Value / max * barWidth)
		}
		if n == 0 && p.Value > 0 {
			n = 1
		}
		value := p.Display
		if value == "" {
			value = fmt.Sprintf("%g", p.Value)
		}
		fmt.Fprintf(w, "  %-30s %s (%s)\n", truncate(p.Label, 28), strings.Repeat("█", n), value)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
