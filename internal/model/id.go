package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is the canonical identifier for rooms and bookings. The backend may send ids
// as JSON numbers or strings; both decode into the same ID.
type ID string

// ParseID normalizes a raw identifier taken from a form field or URL segment.
func ParseID(raw string) ID {
	return ID(strings.TrimSpace(raw))
}

func (id ID) String() string { return string(id) }

// IsZero reports whether no identifier is set.
func (id ID) IsZero() bool { return id == "" }

// Numeric reports whether the id is a canonical decimal number. Zero-padded ids
// such as "007" are opaque strings.
func (id ID) Numeric() bool {
	n, err := strconv.ParseUint(string(id), 10, 64)
	return err == nil && strconv.FormatUint(n, 10) == string(id)
}

// MarshalJSON encodes numeric ids as JSON numbers and everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.Numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a JSON number, a JSON string or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ParseID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}
