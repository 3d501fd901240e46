package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberEqualityUnitIsIdentity(t *testing.T) {
	a := Number{Value: 1, Unit: "kg"}
	b := Number{Value: 1, Unit: "lb"}
	assert.False(t, a.Equal(b), "different units must never compare equal")
	assert.True(t, a.Equal(Number{Value: 1, Unit: "kg"}))
}

func TestNumberNaNBitIdentical(t *testing.T) {
	a := Number{Value: math.NaN(), Unit: "m"}
	b := Number{Value: math.NaN(), Unit: "m"}
	assert.True(t, a.Equal(b), "NaN must compare equal to NaN, bit-identically")

	weird := Number{Value: math.Float64frombits(math.Float64bits(math.NaN()) ^ 1), Unit: "m"}
	assert.True(t, math.IsNaN(weird.Value))
	assert.False(t, a.Equal(weird), "distinct NaN bit patterns are not equal")
}

func TestNumberInfinities(t *testing.T) {
	pos := Number{Value: math.Inf(1)}
	assert.True(t, pos.Equal(Number{Value: math.Inf(1)}))
	assert.False(t, pos.Equal(Number{Value: math.Inf(-1)}))
}

func TestRefEqualityIgnoresDisplay(t *testing.T) {
	a := Ref{Name: "abc", Dis: "Alpha"}
	b := Ref{Name: "abc", Dis: "Beta"}
	assert.True(t, a.Equal(b))

	c := Ref{Name: "xyz", Dis: "Alpha"}
	assert.False(t, a.Equal(c))
}

func TestDateTimeIdentityIncludesTZName(t *testing.T) {
	loc := DateTime{TZName: "New_York"}
	other := DateTime{TZName: "Chicago"}
	assert.False(t, loc.Equal(other))
}

func TestXStrDecode(t *testing.T) {
	hexVal := XStr{Type: "hex", Encoded: "deadbeef"}
	b, err := hexVal.Decode()
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, b)

	opaque := XStr{Type: "custom", Encoded: "whatever"}
	b, err = opaque.Decode()
	assert.NoError(t, err)
	assert.Equal(t, []byte("whatever"), b)
}

func TestValidRefName(t *testing.T) {
	assert.True(t, ValidRefName("a.b-c_d:e~f"))
	assert.False(t, ValidRefName(""))
	assert.False(t, ValidRefName("has space"))
}
