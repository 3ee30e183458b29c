package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// yearField decodes graduationYear from either a JSON number or a string.
// Forms post it as text, so "" and null leave it unset.
type yearField struct {
	value *int
}

func (y *yearField) UnmarshalJSON(data []byte) error {
	y.value = nil
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
	}

	year, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("graduationYear must be a whole year, got %q", raw)
	}
	y.value = &year
	return nil
}

// Int returns the decoded year, or nil when it was not given.
func (y yearField) Int() *int {
	return y.value
}
