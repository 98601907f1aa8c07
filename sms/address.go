package sms

import (
	"strings"

	"github.com/atkit/hayes/pdu"
)

// TypeOfNumber is the GSM 03.40 type-of-number field, bits 6..4 of a PDU
// address type octet.
type TypeOfNumber byte

const (
	TypeOfNumberUnknown       TypeOfNumber = 0b000_0000
	TypeOfNumberInternational TypeOfNumber = 0b001_0000
	TypeOfNumberNational      TypeOfNumber = 0b010_0000
	TypeOfNumberSpecial       TypeOfNumber = 0b011_0000
	TypeOfNumberGsm           TypeOfNumber = 0b101_0000
	TypeOfNumberShort         TypeOfNumber = 0b110_0000
	TypeOfNumberReserved      TypeOfNumber = 0b111_0000
)

// NumberingPlan is the GSM 03.40 numbering-plan-identification field, bits
// 3..0 of a PDU address type octet.
type NumberingPlan byte

const (
	NumberingPlanUnknown         NumberingPlan = 0
	NumberingPlanIsdnTelephone   NumberingPlan = 1
	NumberingPlanData            NumberingPlan = 3
	NumberingPlanTelex           NumberingPlan = 4
	NumberingPlanNational        NumberingPlan = 8
	NumberingPlanPrivate         NumberingPlan = 9
	NumberingPlanErmes           NumberingPlan = 10
)

// AddressType is the single type octet preceding a PDU address's digits.
// Its high bit is always set on the wire.
type AddressType struct {
	TypeOfNumber  TypeOfNumber
	NumberingPlan NumberingPlan
}

// DefaultAddressType matches the international/ISDN-telephone default the
// teacher's facade assumes when a caller supplies a bare number.
var DefaultAddressType = AddressType{
	TypeOfNumber:  TypeOfNumberInternational,
	NumberingPlan: NumberingPlanIsdnTelephone,
}

// Byte renders the address type as its wire octet.
func (t AddressType) Byte() byte {
	return 0b1000_0000 | byte(t.TypeOfNumber) | byte(t.NumberingPlan)
}

// AddressTypeFromByte parses a wire address type octet.
func AddressTypeFromByte(b byte) AddressType {
	return AddressType{
		TypeOfNumber:  TypeOfNumber(b & 0b0111_0000),
		NumberingPlan: NumberingPlan(b & 0b0000_1111),
	}
}

// PhoneNumber is a sequence of decimal digits, each stored as its own
// nybble (0..9), in the order they appear in the human-readable number.
type PhoneNumber []byte

// PhoneNumberFromSemiOctets unpacks a PhoneNumber from its wire semi-octet
// form.
func PhoneNumberFromSemiOctets(b []byte) PhoneNumber {
	return PhoneNumber(pdu.DecodeSemiDigits(b))
}

// AsBytes packs the phone number back into its wire semi-octet form.
func (p PhoneNumber) AsBytes() []byte {
	return pdu.EncodeSemiDigits([]byte(p))
}

func (p PhoneNumber) String() string {
	var sb strings.Builder
	for _, d := range p {
		sb.WriteByte('0' + d)
	}
	return sb.String()
}

// PduAddress is a GSM 03.40 address: a type octet plus a digit payload, or,
// for an alphanumeric sender (TypeOfNumberGsm), a GSM 7-bit packed name in
// Alpha instead of Number.
type PduAddress struct {
	Type   AddressType
	Number PhoneNumber
	Alpha  string
}

// ParsePhoneNumber builds a PduAddress from a human-entered string like
// "+447700900123". A leading '+' selects TypeOfNumberInternational;
// everything else is treated as an unknown-format national number.
func ParsePhoneNumber(s string) PduAddress {
	international := false
	var digits PhoneNumber
	for _, c := range s {
		switch {
		case c == '+':
			international = true
		case c >= '0' && c <= '9':
			digits = append(digits, byte(c)-'0')
		}
	}
	ton := TypeOfNumberUnknown
	if international {
		ton = TypeOfNumberInternational
	}
	return PduAddress{
		Type: AddressType{
			TypeOfNumber:  ton,
			NumberingPlan: NumberingPlanIsdnTelephone,
		},
		Number: digits,
	}
}

func (a PduAddress) String() string {
	switch a.Type.TypeOfNumber {
	case TypeOfNumberInternational:
		return "+" + a.Number.String()
	case TypeOfNumberGsm:
		return a.Alpha
	default:
		return a.Number.String()
	}
}

// PduAddressFromBytes parses an address as it appears inside a
// destination/originating address field — the nybble-length convention,
// where b[0] is the type octet and b[1:] are the digit (or, for an
// alphanumeric sender, packed 7-bit character) octets. nybbleLen is the
// value the preceding address-length octet carried; ordinary numeric
// addresses don't need it (PhoneNumberFromSemiOctets finds its own end from
// the 0xF filler nybble), but a TypeOfNumberGsm address packs GSM 03.38
// septets rather than BCD digits, and per 3GPP TS 23.040 the septet count
// those octets hold is derived from nybbleLen (floor(nybbleLen*4/7)), not
// from len(b). Decoding a GSM address as digits would silently produce
// nonsense rather than the sender's name, so the two cases use disjoint
// logic rather than one best-effort code path.
func PduAddressFromBytes(b []byte, nybbleLen int) (PduAddress, error) {
	if len(b) < 1 {
		return PduAddress{}, invalidPdu("tried to make a PduAddress from less than 1 byte")
	}
	t := AddressTypeFromByte(b[0])
	if t.TypeOfNumber == TypeOfNumberGsm {
		septets := nybbleLen * 4 / 7
		unpacked := pdu.UnpackSeptets(b[1:], 0, septets)
		return PduAddress{Type: t, Alpha: pdu.Decode7Bit(unpacked)}, nil
	}
	number := PhoneNumberFromSemiOctets(b[1:])
	return PduAddress{Type: t, Number: number}, nil
}

// AsBytes renders the address as [type_octet, payload_octets...]. It does
// not include the leading length octet — callers prepend the length using
// either the nybble-count convention (destination/originating address) or
// the octet-count convention (SCA), per GSM 03.40.
func (a PduAddress) AsBytes() []byte {
	ret := []byte{a.Type.Byte()}
	if a.Type.TypeOfNumber == TypeOfNumberGsm {
		septets, _ := pdu.Encode7Bit(a.Alpha)
		ret = append(ret, pdu.PackSeptets(septets, 0)...)
		return ret
	}
	ret = append(ret, a.Number.AsBytes()...)
	return ret
}

// NybbleLen is the length, in nybbles (semi-octets), that the
// destination/originating address length octet carries: the digit count for
// a numeric address, or the semi-octet count of the packed 7-bit alphabet
// for an alphanumeric one.
func (a PduAddress) NybbleLen() int {
	if a.Type.TypeOfNumber == TypeOfNumberGsm {
		septets, _ := pdu.Encode7Bit(a.Alpha)
		bits := len(septets) * 7
		return (bits + 3) / 4
	}
	return len(a.Number)
}
