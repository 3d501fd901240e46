package value

import (
	"fmt"
	"math"
	"regexp"
	"time"
)

// Null represents the explicit "no value" scalar (Zinc 'N'). It is
// distinct from a Dict key being entirely absent.
type Null struct{}

func (Null) Kind() Kind       { return KindNull }
func (Null) String() string   { return "N" }
func (Null) Equal(v Value) bool {
	_, ok := v.(Null)
	return ok
}

// Marker represents the presence-only tag scalar (Zinc 'M').
type Marker struct{}

func (Marker) Kind() Kind     { return KindMarker }
func (Marker) String() string { return "M" }
func (Marker) Equal(v Value) bool {
	_, ok := v.(Marker)
	return ok
}

// Remove is the tombstone scalar used by grid algebra to mark a tag for
// deletion during a merge (Zinc 'R'). Rows and columns are dropped by a
// "remove_" tag instead.
type Remove struct{}

func (Remove) Kind() Kind     { return KindRemove }
func (Remove) String() string { return "R" }
func (Remove) Equal(v Value) bool {
	_, ok := v.(Remove)
	return ok
}

// NA represents "not available" (Zinc 3.0 'NA'), distinct from Null.
type NA struct{}

func (NA) Kind() Kind     { return KindNA }
func (NA) String() string { return "NA" }
func (NA) Equal(v Value) bool {
	_, ok := v.(NA)
	return ok
}

// Bool wraps a boolean scalar.
type Bool bool

func (b Bool) Kind() Kind   { return KindBool }
func (b Bool) String() string {
	if bool(b) {
		return "true"
	}
	return "false"
}
func (b Bool) Equal(v Value) bool {
	o, ok := v.(Bool)
	return ok && b == o
}

// Number is a float64 paired with an optional unit string. The unit is
// part of the value's identity: 1 kg and 1 lb are unequal Numbers even
// though comparing them numerically would need a conversion this module
// deliberately does not perform. NaN compares equal to NaN bit-for-bit,
// a documented deviation from IEEE 754 float equality chosen so that
// round-tripping a NaN through any codec is lossless and testable.
type Number struct {
	Value float64
	Unit  string
}

func (n Number) Kind() Kind { return KindNumber }

func (n Number) String() string {
	s := formatFloat(n.Value)
	if n.Unit != "" {
		return s + n.Unit
	}
	return s
}

func (n Number) Equal(v Value) bool {
	o, ok := v.(Number)
	if !ok || n.Unit != o.Unit {
		return false
	}
	if math.IsNaN(n.Value) || math.IsNaN(o.Value) {
		return math.Float64bits(n.Value) == math.Float64bits(o.Value)
	}
	return n.Value == o.Value
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	default:
		return fmt.Sprintf("%g", f)
	}
}

// Str wraps a plain string scalar.
type Str string

func (s Str) Kind() Kind     { return KindStr }
func (s Str) String() string { return string(s) }
func (s Str) Equal(v Value) bool {
	o, ok := v.(Str)
	return ok && s == o
}

// Uri wraps a URI scalar, distinguished from Str at the type level so
// codecs can round-trip the backtick-quoted Zinc form.
type Uri string

func (u Uri) Kind() Kind     { return KindUri }
func (u Uri) String() string { return string(u) }
func (u Uri) Equal(v Value) bool {
	o, ok := v.(Uri)
	return ok && u == o
}

var refNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_:\-.~]+$`)

// ValidRefName reports whether name is a legal Ref identifier.
func ValidRefName(name string) bool {
	return name != "" && refNamePattern.MatchString(name)
}

// Ref is a reference to another entity by id, with an optional display
// string carried for presentation only. Two Refs are equal, ordered, and
// hashed by Name alone; Dis never participates in identity.
type Ref struct {
	Name string
	Dis  string
}

func (r Ref) Kind() Kind { return KindRef }

func (r Ref) String() string {
	if r.Dis != "" {
		return "@" + r.Name + " " + r.Dis
	}
	return "@" + r.Name
}

func (r Ref) Equal(v Value) bool {
	o, ok := v.(Ref)
	return ok && r.Name == o.Name
}

// Bin represents binary data identified only by its MIME type; the
// payload itself is carried out of band (grid cells reference it, they
// do not embed it), matching the wire formats' Bin(<mime>) literal.
type Bin struct {
	MIME string
}

func (b Bin) Kind() Kind     { return KindBin }
func (b Bin) String() string { return "Bin(" + b.MIME + ")" }
func (b Bin) Equal(v Value) bool {
	o, ok := v.(Bin)
	return ok && b.MIME == o.MIME
}

// Date is a calendar date with no time-of-day component.
type Date struct {
	Year, Month, Day int
}

func (d Date) Kind() Kind { return KindDate }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) Equal(v Value) bool {
	o, ok := v.(Date)
	return ok && d == o
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Time is a wall-clock time of day with millisecond precision.
type Time struct {
	Hour, Minute, Second, Millisecond int
}

func (t Time) Kind() Kind { return KindTime }

func (t Time) String() string {
	if t.Millisecond != 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%03d", t.Hour, t.Minute, t.Second, t.Millisecond)
	}
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (t Time) Equal(v Value) bool {
	o, ok := v.(Time)
	return ok && t == o
}

// DateTime is a timestamp with an explicit timezone offset and name.
// TZName is part of the value's identity: the same instant tagged
// "New_York" and "Chicago" are unequal DateTimes, matching Haystack's
// requirement that every DateTime literal name its zone explicitly.
type DateTime struct {
	Time   time.Time
	TZName string
}

func (d DateTime) Kind() Kind { return KindDateTime }

func (d DateTime) String() string {
	return d.Time.Format("2006-01-02T15:04:05.999999999-07:00") + " " + d.TZName
}

func (d DateTime) Equal(v Value) bool {
	o, ok := v.(DateTime)
	return ok && d.Time.Equal(o.Time) && d.TZName == o.TZName
}

// Coord is a geographic coordinate.
type Coord struct {
	Lat, Lng float64
}

func (c Coord) Kind() Kind { return KindCoord }

func (c Coord) String() string {
	return fmt.Sprintf("C(%g,%g)", c.Lat, c.Lng)
}

func (c Coord) Equal(v Value) bool {
	o, ok := v.(Coord)
	return ok && c.Lat == o.Lat && c.Lng == o.Lng
}

// XStr is an extended, type-tagged string scalar. "hex" and "b64" are
// decoded eagerly by Decode; any other type name is carried as an opaque
// payload with no attempted decode, matching the reference decoder.
type XStr struct {
	Type    string
	Encoded string
}

func (x XStr) Kind() Kind     { return KindXStr }
func (x XStr) String() string { return x.Type + "(\"" + x.Encoded + "\")" }
func (x XStr) Equal(v Value) bool {
	o, ok := v.(XStr)
	return ok && x.Type == o.Type && x.Encoded == o.Encoded
}
