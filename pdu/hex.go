package pdu

import (
	"errors"
	"fmt"
	"strconv"
)

// Errors HexBytes returns on a malformed hex string.
var (
	ErrUnevenLength = errors.New("parse octets: uneven length of string")
	ErrUnexpected   = errors.New("parse octets: met a non-HEX rune in string")
)

// HexBytes parses an even-length hex string into bytes — the form AT+CMGL
// and AT+CMGS exchange PDU bytes in on the wire.
func HexBytes(hex string) ([]byte, error) {
	if len(hex)%2 != 0 {
		return nil, ErrUnevenLength
	}
	octets := make([]byte, 0, len(hex)/2)
	for i := 0; i < len(hex); i += 2 {
		frame := hex[i : i+2]
		oct, err := strconv.ParseUint(frame, 16, 8)
		if err != nil {
			return nil, ErrUnexpected
		}
		octets = append(octets, byte(oct))
	}
	return octets, nil
}

// MustHexBytes is HexBytes, except that it panics on a parse error.
func MustHexBytes(hex string) []byte {
	b, err := HexBytes(hex)
	if err != nil {
		panic(err)
	}
	return b
}

// HexString renders octets as an upper-case hex string, no "0x" prefix.
func HexString(octets []byte) string {
	return fmt.Sprintf("%2X", octets)
}
