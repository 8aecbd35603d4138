package domain

import (
	"encoding/json"
	"fmt"
)

// ID is an opaque identifier assigned by the host. Hosts may send it as a
// JSON string or a JSON number; both decode to the same textual form, so
// 1 and "1" name the same entity.
type ID string

// String returns the textual form of the id.
func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts a string, a number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}
