package core

import (
	"encoding/json"
	"fmt"
)

// JSON encoding of the variant types: normalized values where possible, the
// raw text where not, null for missing fields. Decoding is not supported;
// rows enter the system through the importer, not through JSON.

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.raw == nil {
		return []byte("null"), nil
	}
	if f, err := a.Float64(); err == nil {
		return json.Marshal(f)
	}
	return json.Marshal(fmt.Sprint(a.raw))
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.raw == nil {
		return []byte("null"), nil
	}
	if t, err := d.Time(); err == nil {
		return json.Marshal(t.Format("2006-01-02 15:04:05"))
	}
	return json.Marshal(fmt.Sprint(d.raw))
}
