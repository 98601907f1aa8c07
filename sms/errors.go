package sms

import "fmt"

// InvalidPduError reports a structural problem found while decoding a PDU
// byte stream — truncation, a bad length octet, or similar. It never
// panics on truncated input; every field read is bounds-checked first.
type InvalidPduError struct {
	Reason string
}

func (e *InvalidPduError) Error() string {
	return fmt.Sprintf("invalid PDU: %s", e.Reason)
}

func invalidPdu(reason string) error {
	return &InvalidPduError{Reason: reason}
}

// UnsupportedEncodingError is returned when decoding user data whose
// DataCodingScheme resolves to an encoding this package does not parse
// (only Gsm7Bit and Ucs2 are decoded).
type UnsupportedEncodingError struct {
	Encoding MessageEncoding
	Raw      []byte
}

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("unsupported message encoding %v", e.Encoding)
}

// checkOffset returns an *InvalidPduError naming field if b does not have
// an index o, otherwise nil.
func checkOffset(b []byte, o int, field string) error {
	if o < 0 || o >= len(b) {
		return invalidPdu(fmt.Sprintf("truncated before %s", field))
	}
	return nil
}
