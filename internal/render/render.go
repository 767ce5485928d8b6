// Package render draws chart descriptions to PNG files or the terminal.
package render

import "github.com/danielsamuels/covid-19-graphs/internal/chart"

// Renderer draws one chart, identified by its output filename.
type Renderer interface {
	Render(c chart.Chart, filename string) error
}
