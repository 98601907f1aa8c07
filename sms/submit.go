package sms

// MessageType is the MTI field shared by the first octet of every SMS PDU
// shape.
type MessageType byte

const (
	MtSmsDeliver MessageType = 0b00
	MtSmsSubmit  MessageType = 0b01
	MtSmsCommand MessageType = 0b10
	MtReserved   MessageType = 0b11
)

// SubmitFirstOctet is the bitfield-packed first octet of an SMS-SUBMIT PDU.
type SubmitFirstOctet struct {
	Mti  MessageType
	Rd   bool
	Vpf  ValidityPeriodFormat
	Srr  bool
	Udhi bool
	Rp   bool
}

// Byte renders the first octet.
func (f SubmitFirstOctet) Byte() byte {
	ret := byte(f.Mti) | byte(f.Vpf)
	if f.Rd {
		ret |= 0b0000_0100
	}
	if f.Srr {
		ret |= 0b0010_0000
	}
	if f.Udhi {
		ret |= 0b0100_0000
	}
	if f.Rp {
		ret |= 0b1000_0000
	}
	return ret
}

// SubmitFirstOctetFromByte parses an SMS-SUBMIT first octet.
func SubmitFirstOctetFromByte(b byte) SubmitFirstOctet {
	return SubmitFirstOctet{
		Mti:  MessageType(b & 0b0000_0011),
		Rd:   (b & 0b0000_0100) != 0,
		Vpf:  ValidityPeriodFormat(b & 0b0000_1100),
		Srr:  (b & 0b0010_0000) != 0,
		Udhi: (b & 0b0100_0000) != 0,
		Rp:   (b & 0b1000_0000) != 0,
	}
}

// SubmitPdu is an outbound SMS-SUBMIT PDU as defined by GSM 03.40.
type SubmitPdu struct {
	Sca             *PduAddress
	FirstOctet      SubmitFirstOctet
	MessageID       byte
	Destination     PduAddress
	Dcs             DataCodingScheme
	ValidityPeriod  ValidityPeriod
	UserData        []byte
	UserDataLen     byte
}

// NewSimpleSubmit builds a minimal SMS-SUBMIT carrying msg addressed to
// recipient: no SCA override, no validity period, message id 0 — the shape
// the command facade uses for a plain outbound text.
func NewSimpleSubmit(recipient PduAddress, msg GsmMessageData) SubmitPdu {
	return SubmitPdu{
		FirstOctet: SubmitFirstOctet{
			Mti:  MtSmsSubmit,
			Vpf:  VpfInvalid,
			Udhi: msg.Udh,
		},
		MessageID:   0,
		Destination: recipient,
		Dcs: DataCodingScheme{
			Kind:     DcsStandard,
			Class:    ClassStoreToNv,
			Encoding: msg.Encoding,
		},
		UserData:    msg.Bytes,
		UserDataLen: msg.UserDataLen,
	}
}

// AsBytes renders the full PDU byte stream and returns it together with the
// TPDU length (the total length minus the SCA segment), the number
// AT+CMGS takes as its argument.
func (p SubmitPdu) AsBytes() ([]byte, int) {
	var ret []byte
	scaLen := 1
	if p.Sca != nil {
		scaBytes := p.Sca.AsBytes()
		scaOctetLen := len(scaBytes)
		scaLen = scaOctetLen + 1
		ret = append(ret, byte(scaOctetLen))
		ret = append(ret, scaBytes...)
	} else {
		ret = append(ret, 0)
	}
	ret = append(ret, p.FirstOctet.Byte())
	ret = append(ret, p.MessageID)
	ret = append(ret, byte(p.Destination.NybbleLen()))
	ret = append(ret, p.Destination.AsBytes()...)
	ret = append(ret, 0x00) // protocol id, always 0
	ret = append(ret, p.Dcs.Byte())
	if p.FirstOctet.Vpf != VpfInvalid {
		if vp, ok := p.ValidityPeriod.Byte(); ok {
			ret = append(ret, vp)
		} else {
			ret = append(ret, 0)
		}
	}
	ret = append(ret, p.UserDataLen)
	ret = append(ret, p.UserData...)
	tpduLen := len(ret) - scaLen
	return ret, tpduLen
}

// SubmitPduFromBytes parses an SMS-SUBMIT byte stream. Every field read is
// bounds-checked; truncation yields an *InvalidPduError rather than a
// panic.
func SubmitPduFromBytes(b []byte) (SubmitPdu, error) {
	if err := checkOffset(b, 0, "SCA length"); err != nil {
		return SubmitPdu{}, err
	}
	scaLen := int(b[0])
	offset := scaLen + 1
	var sca *PduAddress
	if scaLen > 0 {
		if err := checkOffset(b, offset-1, "SCA"); err != nil {
			return SubmitPdu{}, err
		}
		a, err := PduAddressFromBytes(b[1:offset], (scaLen-1)*2)
		if err != nil {
			return SubmitPdu{}, err
		}
		sca = &a
	}
	if err := checkOffset(b, offset, "first octet"); err != nil {
		return SubmitPdu{}, err
	}
	firstOctet := SubmitFirstOctetFromByte(b[offset])
	offset++
	if err := checkOffset(b, offset, "message ID"); err != nil {
		return SubmitPdu{}, err
	}
	messageID := b[offset]
	offset++
	if err := checkOffset(b, offset, "destination len"); err != nil {
		return SubmitPdu{}, err
	}
	destinationLen := int(b[offset])
	offset++
	realLen := destinationLen/2 + destinationLen%2 + 1
	destinationEnd := offset + realLen
	if err := checkOffset(b, destinationEnd-1, "destination address"); err != nil {
		return SubmitPdu{}, err
	}
	destination, err := PduAddressFromBytes(b[offset:destinationEnd], destinationLen)
	if err != nil {
		return SubmitPdu{}, err
	}
	offset += realLen
	if err := checkOffset(b, offset, "protocol identifier"); err != nil {
		return SubmitPdu{}, err
	}
	offset++ // protocol id, always 0 on encode; preserved nowhere on decode
	if err := checkOffset(b, offset, "data coding scheme"); err != nil {
		return SubmitPdu{}, err
	}
	dcs := DataCodingSchemeFromByte(b[offset])
	offset++
	var vp ValidityPeriod
	if firstOctet.Vpf != VpfInvalid {
		if err := checkOffset(b, offset, "validity period"); err != nil {
			return SubmitPdu{}, err
		}
		vp = ValidityPeriod{Format: firstOctet.Vpf, Relative: b[offset]}
		offset++
	}
	if err := checkOffset(b, offset, "user data len"); err != nil {
		return SubmitPdu{}, err
	}
	userDataLen := b[offset]
	offset++
	var userData []byte
	if offset < len(b) {
		userData = append([]byte(nil), b[offset:]...)
	}
	return SubmitPdu{
		Sca:            sca,
		FirstOctet:     firstOctet,
		MessageID:      messageID,
		Destination:    destination,
		Dcs:            dcs,
		ValidityPeriod: vp,
		UserData:       userData,
		UserDataLen:    userDataLen,
	}, nil
}

// GetMessageData extracts the GsmMessageData view needed to decode this
// PDU's text.
func (p SubmitPdu) GetMessageData() GsmMessageData {
	return GsmMessageData{
		Bytes:       p.UserData,
		UserDataLen: p.UserDataLen,
		Encoding:    p.Dcs.EffectiveEncoding(),
		Udh:         p.FirstOctet.Udhi,
	}
}
