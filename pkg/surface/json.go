package surface

import (
	"encoding/json"
	"io"

	"github.com/netgauge/netgauge/pkg/assess"
)

// JSONRenderer marshals the result to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, result *assess.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
