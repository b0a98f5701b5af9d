package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexBool decodes the loose boolean encodings older persistence layers
// emit for is_required: true/false, 1/0, and their string forms.
// It always marshals back to a plain JSON boolean.
type FlexBool bool

func (b FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true", "1", `"true"`, `"1"`:
		*b = true
		return nil
	case "false", "0", `"false"`, `"0"`, "null", `""`:
		*b = false
		return nil
	}
	return fmt.Errorf("cannot decode %s as boolean", data)
}
