package value

import "strings"

// List is an ordered sequence of Values.
type List []Value

func (l List) Kind() Kind { return KindList }

func (l List) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range l {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (l List) Equal(v Value) bool {
	o, ok := v.(List)
	if !ok || len(l) != len(o) {
		return false
	}
	for i := range l {
		if !valuesEqual(l[i], o[i]) {
			return false
		}
	}
	return true
}
