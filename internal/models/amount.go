package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is an optional number. The zero value is unset.
type Amount struct {
	value float64
	set   bool
}

// Unset returns an Amount with no value entered.
func Unset() Amount {
	return Amount{}
}

// Num returns an Amount holding v. NaN and infinities are stored as unset.
func Num(v float64) Amount {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Amount{}
	}
	return Amount{value: v, set: true}
}

// ParseAmount normalizes raw form input. Blank or non-numeric text is unset.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Amount{}
	}
	return Num(v)
}

// IsSet reports whether a value was entered.
func (a Amount) IsSet() bool {
	return a.set
}

// Value returns the entered value and whether one was entered.
func (a Amount) Value() (float64, bool) {
	return a.value, a.set
}

// OrZero returns the entered value, or 0 when unset.
func (a Amount) OrZero() float64 {
	if !a.set {
		return 0
	}
	return a.value
}

// Ptr returns nil when unset. Used for nullable storage columns.
func (a Amount) Ptr() *float64 {
	if !a.set {
		return nil
	}
	v := a.value
	return &v
}

// AmountFromPtr is the inverse of Ptr.
func AmountFromPtr(p *float64) Amount {
	if p == nil {
		return Amount{}
	}
	return Num(*p)
}

func (a Amount) String() string {
	if !a.set {
		return ""
	}
	return strconv.FormatFloat(a.value, 'f', -1, 64)
}

// MarshalJSON encodes an unset Amount as "" and a set one as a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte(`""`), nil
	}
	return json.Marshal(a.value)
}

// UnmarshalJSON accepts a number, a numeric string, "" or null.
// Any other string decodes as unset rather than failing the request.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = ParseAmount(s)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Num(v)
	return nil
}
