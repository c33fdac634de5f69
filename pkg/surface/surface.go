// Package surface defines output rendering for netgauge assessment results.
// Implementations handle different output targets: terminal and JSON.
package surface

import (
	"io"

	"github.com/netgauge/netgauge/pkg/assess"
)

// Renderer produces formatted output from an assessment result.
type Renderer interface {
	// Render writes the formatted result to the writer.
	Render(w io.Writer, result *assess.Result) error
}

// ForFormat returns the renderer for a CLI output format name. Unknown
// formats fall back to the terminal renderer.
func ForFormat(format string) Renderer {
	if format == "json" {
		return &JSONRenderer{}
	}
	return &TerminalRenderer{}
}
