package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Number accepts either a JSON number or a numeric string, mirroring how HTML
// form posts deliver numeric fields. The raw text is kept so validation can
// report non-numeric input as a rule violation instead of a decode error.
type Number string

// UnmarshalJSON stores the raw token, unquoting strings.
func (n *Number) UnmarshalJSON(data []byte) error {
	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}
	if s == "null" {
		s = ""
	}
	*n = Number(s)
	return nil
}

// MarshalJSON renders the raw value as a string.
func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(n))
}

// String returns the raw text.
func (n Number) String() string {
	return string(n)
}

// Float parses the value under loose numeric coercion. The second result is
// false when the value is empty or not numeric.
func (n Number) Float() (float64, bool) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int truncates the parsed value to an integer, matching how the store would
// coerce a numeric form field into an integer column.
func (n Number) Int() (int, bool) {
	f, ok := n.Float()
	if !ok {
		return 0, false
	}
	return int(f), true
}
