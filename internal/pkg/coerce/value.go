// Package coerce normalises loosely typed request arguments into the list and
// date forms used by store queries.
//
// The transport layer decides what kind of value an argument carries
// (ParseArg / ParseArgs); ToList and ToDate never fail, they fall back to an
// empty list or a nil date.
package coerce

import (
	"math"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindList
	KindTime
)

// Value is a tagged union of the argument shapes a client may send.
type Value struct {
	kind Kind
	str  string
	num  float64
	list []string
	t    time.Time
}

func Null() Value { return Value{} }

func String(s string) Value { return Value{kind: KindString, str: s} }

func Number(n float64) Value {
	return Value{kind: KindNumber, num: n, str: strconv.FormatFloat(n, 'f', -1, 64)}
}

// List builds a list value. List() is an empty list, not Null.
func List(items ...string) Value {
	return Value{kind: KindList, list: append([]string{}, items...)}
}

func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// ParseArg classifies a single raw argument. JSON arrays and JSON string
// literals are decoded, numeric text becomes a Number (keeping its original
// spelling), anything else is a plain String. Blank input is Null.
func ParseArg(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Null()
	}

	switch s[0] {
	case '[':
		var items []any
		if err := json.Unmarshal([]byte(s), &items); err == nil {
			return List(stringify(items)...)
		}
	case '"':
		var str string
		if err := json.Unmarshal([]byte(s), &str); err == nil {
			return String(str)
		}
	}

	if n, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return Value{kind: KindNumber, num: n, str: s}
	}
	return String(raw)
}

// ParseArgs classifies a repeated argument: no values is Null, one value goes
// through ParseArg and several values are flattened into one List.
func ParseArgs(values []string) Value {
	switch len(values) {
	case 0:
		return Null()
	case 1:
		return ParseArg(values[0])
	}

	items := make([]string, 0, len(values))
	for _, raw := range values {
		items = append(items, ToList(ParseArg(raw))...)
	}
	return List(items...)
}

// ToList returns v as a list of strings: Null is empty, a list is copied and
// any scalar becomes a one-element list.
func ToList(v Value) []string {
	switch v.kind {
	case KindNull:
		return []string{}
	case KindList:
		return append([]string{}, v.list...)
	case KindTime:
		return []string{v.t.Format(time.RFC3339)}
	default:
		return []string{v.str}
	}
}

// ToInt returns v as a whole number. Numbers and numeric text without a
// fractional part qualify; anything else reports false.
func ToInt(v Value) (int, bool) {
	var n float64
	switch v.kind {
	case KindNumber:
		n = v.num
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

// DateArg keeps a date argument as text so that digit-only dates such as
// "20160102" are not mistaken for numbers. Blank input is Null.
func DateArg(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Null()
	}
	return String(s)
}

// ToDate returns v as a point in time, or nil when it cannot be interpreted.
// Strings and numbers go through ParseDate first; only text that is not a
// date is read as epoch seconds.
func ToDate(v Value) *time.Time {
	switch v.kind {
	case KindTime:
		t := v.t
		return &t
	case KindString, KindNumber:
		if t := ParseDate(v.str); t != nil {
			return t
		}
		if v.kind == KindNumber {
			return fromEpoch(v.num)
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return nil
		}
		return fromEpoch(n)
	default:
		return nil
	}
}

func fromEpoch(sec float64) *time.Time {
	if math.IsNaN(sec) || math.IsInf(sec, 0) {
		return nil
	}
	whole, frac := math.Modf(sec)
	if math.Abs(whole) > maxEpochSeconds {
		return nil
	}
	t := time.Unix(int64(whole), int64(frac*1e9))
	if t.Year() < 1 || t.Year() > 9999 {
		return nil
	}
	return &t
}

// maxEpochSeconds keeps conversions inside the years a date can be stored in.
const maxEpochSeconds = 253402300799

func stringify(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		case bool:
			out = append(out, strconv.FormatBool(v))
		case nil:
			continue
		default:
			b, err := json.Marshal(v)
			if err != nil {
				continue
			}
			out = append(out, string(b))
		}
	}
	return out
}
