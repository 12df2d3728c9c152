package compare

import (
	"bytes"
	"encoding/json"
)

// JSONFormatter writes a comparison set as one JSON document ending in a newline
type JSONFormatter struct {
	Pretty bool // indent nested objects by two spaces
}

// Format encodes compSet. Recommendation text is left unescaped so "&" and "<"
// read the same as in the table output.
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if jf.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(compSet); err != nil {
		return "", err
	}
	return buf.String(), nil
}
