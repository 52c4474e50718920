package export

import (
	"encoding/json"
	"io"
)

// WriteJSON writes the full report as indented JSON
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
