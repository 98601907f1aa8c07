package sms

// MessageEncoding is the character encoding named by a DataCodingScheme.
type MessageEncoding byte

const (
	EncodingGsm7Bit  MessageEncoding = 0b0000_0000
	EncodingEightBit MessageEncoding = 0b0000_0100
	EncodingUcs2     MessageEncoding = 0b0000_1000
	EncodingReserved MessageEncoding = 0b0000_1100
)

// MessageClass is the "message class" bits of a Standard DataCodingScheme.
type MessageClass byte

const (
	ClassSilent    MessageClass = 0
	ClassStoreToNv MessageClass = 1
	ClassStoreToSim MessageClass = 2
	ClassStoreToTe MessageClass = 3
)

// MessageWaitingType is the indication type carried by the
// MessageWaiting/MessageWaitingDiscard DCS variants.
type MessageWaitingType byte

const (
	WaitingVoice   MessageWaitingType = 0
	WaitingFax     MessageWaitingType = 1
	WaitingEmail   MessageWaitingType = 2
	WaitingUnknown MessageWaitingType = 3
)

// DataCodingScheme is the decoded form of a PDU's DCS octet. Exactly one of
// the four shapes is populated at a time; Kind says which.
type DataCodingScheme struct {
	Kind DcsKind

	// Standard
	Compressed bool
	Class      MessageClass
	Encoding   MessageEncoding

	// MessageWaiting / MessageWaitingDiscard
	Waiting        bool
	TypeIndication MessageWaitingType
	Ucs2           bool
}

// DcsKind discriminates the DataCodingScheme variants.
type DcsKind int

const (
	DcsStandard DcsKind = iota
	DcsReserved
	DcsMessageWaitingDiscard
	DcsMessageWaiting
)

// Standard7Bit is the DCS for an uncompressed, class-1 (ClassStoreToNv)
// GSM 7-bit message —
// the variant a simple outbound SMS uses.
func Standard7Bit() DataCodingScheme {
	return DataCodingScheme{Kind: DcsStandard, Class: ClassStoreToNv, Encoding: EncodingGsm7Bit}
}

// StandardUcs2 is the DCS for an uncompressed, class-1 (ClassStoreToNv)
// UCS-2 message.
func StandardUcs2() DataCodingScheme {
	return DataCodingScheme{Kind: DcsStandard, Class: ClassStoreToNv, Encoding: EncodingUcs2}
}

// EffectiveEncoding reports the text encoding the DCS resolves to, taking
// the MessageWaiting/MessageWaitingDiscard special cases into account.
func (d DataCodingScheme) EffectiveEncoding() MessageEncoding {
	switch d.Kind {
	case DcsStandard:
		return d.Encoding
	case DcsMessageWaitingDiscard:
		return EncodingGsm7Bit
	case DcsMessageWaiting:
		if d.Ucs2 {
			return EncodingUcs2
		}
		return EncodingGsm7Bit
	default:
		return EncodingGsm7Bit
	}
}

// dcsReservedSentinel is the arbitrary but round-trippable octet the
// Reserved variant re-encodes to.
const dcsReservedSentinel = 0x45

// DataCodingSchemeFromByte classifies a DCS octet per GSM 03.38 §4.
func DataCodingSchemeFromByte(b byte) DataCodingScheme {
	switch {
	case (b & 0xC0) == 0x00:
		compressed := (b & 0x20) != 0
		class := MessageClass(b & 0x03)
		encoding := MessageEncoding(b & 0x0C)
		return DataCodingScheme{Kind: DcsStandard, Compressed: compressed, Class: class, Encoding: encoding}
	case (b & 0xF0) == 0xF0:
		class := MessageClass(b & 0x03)
		encoding := EncodingEightBit
		if (b & 0x04) != 0 {
			encoding = EncodingGsm7Bit
		}
		return DataCodingScheme{Kind: DcsStandard, Class: class, Encoding: encoding}
	case (b & 0xF0) == 0xC0:
		return DataCodingScheme{
			Kind:           DcsMessageWaitingDiscard,
			Waiting:        (b & 0x08) != 0,
			TypeIndication: MessageWaitingType(b & 0x03),
		}
	case (b & 0xF0) == 0xD0 || (b & 0xF0) == 0xE0:
		return DataCodingScheme{
			Kind:           DcsMessageWaiting,
			Ucs2:           (b & 0xF0) == 0xE0,
			Waiting:        (b & 0x08) != 0,
			TypeIndication: MessageWaitingType(b & 0x03),
		}
	default:
		return DataCodingScheme{Kind: DcsReserved}
	}
}

// Byte renders the DataCodingScheme back to its wire octet. Reserved always
// re-encodes to 0x45.
func (d DataCodingScheme) Byte() byte {
	switch d.Kind {
	case DcsStandard:
		ret := byte(0x10) // message-class-present bit, always set on encode
		if d.Compressed {
			ret |= 0x20
		}
		ret |= byte(d.Class)
		ret |= byte(d.Encoding)
		return ret
	case DcsReserved:
		return dcsReservedSentinel
	case DcsMessageWaiting:
		var ret byte = 0xD0
		if d.Ucs2 {
			ret = 0xE0
		}
		if d.Waiting {
			ret |= 0x08
		}
		ret |= byte(d.TypeIndication)
		return ret
	case DcsMessageWaitingDiscard:
		ret := byte(0xC0)
		if d.Waiting {
			ret |= 0x08
		}
		ret |= byte(d.TypeIndication)
		return ret
	}
	return dcsReservedSentinel
}
