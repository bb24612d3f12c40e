package journals

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// NotAvailable is how a missing cell is rendered.
const NotAvailable = "Not available"

type valueKind uint8

const (
	kindMissing valueKind = iota
	kindText
	kindNumber
)

// Value is a catalog cell that holds text, a number, or nothing. The zero
// Value is missing.
type Value struct {
	kind   valueKind
	text   string
	number float64
}

func Missing() Value { return Value{} }

func Text(s string) Value { return Value{kind: kindText, text: s} }

func Number(f float64) Value { return Value{kind: kindNumber, number: f} }

func (v Value) IsMissing() bool { return v.kind == kindMissing }

func (v Value) IsNumber() bool { return v.kind == kindNumber }

// Float returns the numeric content, if any.
func (v Value) Float() (float64, bool) {
	return v.number, v.kind == kindNumber
}

func (v Value) String() string {
	switch v.kind {
	case kindText:
		return v.text
	case kindNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	default:
		return NotAvailable
	}
}

// normalized turns blank text into a missing value.
func (v Value) normalized() Value {
	if v.kind == kindText && v.text == "" {
		return Missing()
	}
	return v
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindNumber:
		return json.Marshal(v.number)
	case kindText:
		return json.Marshal(v.text)
	default:
		return json.Marshal(NotAvailable)
	}
}

// UnmarshalJSON accepts a string, a number or null. The NotAvailable sentinel
// and null decode to a missing value; the empty string stays text until the
// record is normalized.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Missing()
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == NotAvailable {
			*v = Missing()
		} else {
			*v = Text(s)
		}
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("journal cell must be a string or number: %w", err)
	}
	*v = Number(f)
	return nil
}
