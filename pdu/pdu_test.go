package pdu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode7BitAsciiPassthrough(t *testing.T) {
	assert.Equal(t, "hello", Decode7Bit([]byte("hello")))
}

func TestEncode7BitRoundTrip(t *testing.T) {
	septets, ok := Encode7Bit("hello")
	require.True(t, ok)
	assert.Equal(t, "hello", Decode7Bit(septets))
}

func TestEncode7BitExtensionTable(t *testing.T) {
	septets, ok := Encode7Bit("{}")
	require.True(t, ok)
	assert.Equal(t, []byte{Esc, 0x28, Esc, 0x29}, septets)
	assert.Equal(t, "{}", Decode7Bit(septets))
}

func TestEncode7BitFailsOnUnmappable(t *testing.T) {
	_, ok := Encode7Bit("héllo中")
	assert.False(t, ok)
}

func TestIs7BitEncodable(t *testing.T) {
	assert.True(t, Is7BitEncodable("hello"))
	assert.False(t, Is7BitEncodable("中文"))
}

func TestSeptetPackingLaw(t *testing.T) {
	septets, ok := Encode7Bit("hello")
	require.True(t, ok)
	for padding := 0; padding < 7; padding++ {
		packed := PackSeptets(septets, padding)
		unpacked := UnpackSeptets(packed, padding, len(septets))
		assert.Equal(t, septets, unpacked, "padding=%d", padding)
	}
}

func TestPackSeptetsKnownVector(t *testing.T) {
	septets, ok := Encode7Bit("hello")
	require.True(t, ok)
	packed := PackSeptets(septets, 0)
	assert.Equal(t, []byte{0xE8, 0x32, 0x9B, 0xFD, 0x06}, packed)
}

func TestUcs2RoundTrip(t *testing.T) {
	s := "héllo 中文"
	encoded := EncodeUcs2(s)
	assert.Equal(t, s, DecodeUcs2(encoded))
}

func TestUcs2DecodeTruncatedTrailingByte(t *testing.T) {
	decoded := DecodeUcs2([]byte{0x00, 0x41, 0x00})
	assert.Contains(t, decoded, "A")
}

func TestSemiDigitsRoundTrip(t *testing.T) {
	digits := []byte{4, 4, 7, 7, 0, 0, 9, 0, 0, 2, 1, 3}
	packed := EncodeSemiDigits(digits)
	assert.Equal(t, []byte{0x44, 0x77, 0x00, 0x09, 0x20, 0x31}, packed)
	assert.Equal(t, digits, DecodeSemiDigits(packed))
}

func TestSemiDigitsOddCountPadding(t *testing.T) {
	digits := []byte{4, 4, 7, 7, 0, 0, 9, 0, 0, 2, 1}
	packed := EncodeSemiDigits(digits)
	assert.Equal(t, []byte{0x44, 0x77, 0x00, 0x09, 0x20, 0xF1}, packed)
	assert.Equal(t, digits, DecodeSemiDigits(packed))
}

func TestReverseByteExhaustive(t *testing.T) {
	for v := 0; v < 100; v++ {
		b := EncodeBCD(v)
		assert.Equal(t, byte(v), ReverseByte(b), "v=%d b=%02X", v, b)
	}
}
