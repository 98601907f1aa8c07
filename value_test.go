package at

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseValueScenarioA(t *testing.T) {
	input := `3,0,15,"GSM",(),(0-3),,(0-1),invalid,(0-2,15),("GSM","IRA")`
	got := ParseValue(input)
	want := ArrayValue([]Value{
		IntegerValue(3),
		IntegerValue(0),
		IntegerValue(15),
		StringValue("GSM"),
		BracketedArrayValue(nil),
		BracketedArrayValue([]Value{RangeValue(0, 3)}),
		emptyValue,
		BracketedArrayValue([]Value{RangeValue(0, 1)}),
		BarewordValue("invalid"),
		BracketedArrayValue([]Value{RangeValue(0, 2), IntegerValue(15)}),
		BracketedArrayValue([]Value{StringValue("GSM"), StringValue("IRA")}),
	})
	assert.Equal(t, want, got)
	assert.Equal(t, ValueArray, got.Kind)
	assert.Len(t, got.Array, 11)
}

func TestValueRoundTrip(t *testing.T) {
	cases := []Value{
		StringValue("GSM"),
		IntegerValue(42),
		RangeValue(0, 3),
		BarewordValue("unknown"),
		BracketedArrayValue([]Value{IntegerValue(1), IntegerValue(2)}),
		BracketedArrayValue(nil),
		ArrayValue([]Value{IntegerValue(1), StringValue("a")}),
	}
	for _, v := range cases {
		assert.Equal(t, v, ParseValue(v.String()), "round trip of %q", v.String())
	}
}

func TestValueStringQuotesStrings(t *testing.T) {
	assert.Equal(t, `"hello"`, StringValue("hello").String())
}

func TestValueEmptyStringIsEmptyValue(t *testing.T) {
	assert.Equal(t, emptyValue, ParseValue(""))
}
