package mapper

import (
	"encoding/json"
	"fmt"
)

// Attributed exposes an object's attribute structure for serialization. The
// reverse direction is representation-preserving: every attribute becomes a
// key in the resulting document.
type Attributed interface {
	Attributes() map[string]any
}

// ToDocument renders an object as a key/value document. Nested Attributed
// values recurse, sequences map element-wise, and anything without further
// structure is rendered as its display form.
func ToDocument(v any) any {
	switch value := v.(type) {
	case nil:
		return nil
	case Attributed:
		doc := make(map[string]any)
		for name, attr := range value.Attributes() {
			doc[name] = ToDocument(attr)
		}
		return doc
	case []any:
		items := make([]any, len(value))
		for i, item := range value {
			items[i] = ToDocument(item)
		}
		return items
	case string, bool, int, int64, float64:
		return value
	case fmt.Stringer:
		return value.String()
	default:
		return value
	}
}

// ToJSON renders an object's document form as JSON, for queue payloads and
// outbound request bodies.
func ToJSON(v any) ([]byte, error) {
	return json.Marshal(ToDocument(v))
}
