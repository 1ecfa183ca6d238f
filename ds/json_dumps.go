package ds

import (
	"encoding/json"
	"fmt"
)

// DumpJSON renders t for trace output, falling back to Go syntax when t cannot be marshalled.
func DumpJSON[T any](t T) string {
	tBytes, err := json.Marshal(t)
	if err != nil {
		return fmt.Sprintf("%+v", t)
	}

	return string(tBytes)
}
