package sms

// DeliverFirstOctet is the bitfield-packed first octet of an SMS-DELIVER
// PDU.
type DeliverFirstOctet struct {
	Mti  MessageType
	Sri  bool
	Udhi bool
	Rp   bool
}

// Byte renders the first octet.
func (f DeliverFirstOctet) Byte() byte {
	ret := byte(f.Mti)
	if f.Sri {
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

// DeliverFirstOctetFromByte parses an SMS-DELIVER first octet.
func DeliverFirstOctetFromByte(b byte) DeliverFirstOctet {
	return DeliverFirstOctet{
		Mti:  MessageType(b & 0b0000_0011),
		Sri:  (b & 0b0010_0000) != 0,
		Udhi: (b & 0b0100_0000) != 0,
		Rp:   (b & 0b1000_0000) != 0,
	}
}

// DeliverPdu is an inbound SMS-DELIVER PDU as defined by GSM 03.40.
type DeliverPdu struct {
	Sca                *PduAddress
	FirstOctet         DeliverFirstOctet
	OriginatingAddress PduAddress
	Dcs                DataCodingScheme
	Scts               Timestamp
	UserData           []byte
	UserDataLen        byte
}

// GetMessageData extracts the GsmMessageData view needed to decode this
// PDU's text.
func (p DeliverPdu) GetMessageData() GsmMessageData {
	return GsmMessageData{
		Bytes:       p.UserData,
		UserDataLen: p.UserDataLen,
		Encoding:    p.Dcs.EffectiveEncoding(),
		Udh:         p.FirstOctet.Udhi,
	}
}

// DeliverPduFromBytes parses an SMS-DELIVER byte stream, as returned by
// AT+CMGL/AT+CMGR in PDU mode.
func DeliverPduFromBytes(b []byte) (DeliverPdu, error) {
	if err := checkOffset(b, 0, "SCA length"); err != nil {
		return DeliverPdu{}, err
	}
	scaLen := int(b[0])
	offset := scaLen + 1
	var sca *PduAddress
	if scaLen > 0 {
		if err := checkOffset(b, offset-1, "SCA"); err != nil {
			return DeliverPdu{}, err
		}
		a, err := PduAddressFromBytes(b[1:offset], (scaLen-1)*2)
		if err != nil {
			return DeliverPdu{}, err
		}
		sca = &a
	}
	if err := checkOffset(b, offset, "first octet"); err != nil {
		return DeliverPdu{}, err
	}
	firstOctet := DeliverFirstOctetFromByte(b[offset])
	offset++
	if err := checkOffset(b, offset, "originating address len"); err != nil {
		return DeliverPdu{}, err
	}
	originatingLen := int(b[offset])
	offset++
	realLen := originatingLen/2 + originatingLen%2 + 1
	destinationEnd := offset + realLen
	if err := checkOffset(b, destinationEnd-1, "originating address"); err != nil {
		return DeliverPdu{}, err
	}
	originatingAddress, err := PduAddressFromBytes(b[offset:destinationEnd], originatingLen)
	if err != nil {
		return DeliverPdu{}, err
	}
	offset += realLen
	if err := checkOffset(b, offset, "protocol identifier"); err != nil {
		return DeliverPdu{}, err
	}
	offset++
	if err := checkOffset(b, offset, "data coding scheme"); err != nil {
		return DeliverPdu{}, err
	}
	dcs := DataCodingSchemeFromByte(b[offset])
	offset++
	sctsEnd := offset + 7
	if err := checkOffset(b, sctsEnd-1, "service center timestamp"); err != nil {
		return DeliverPdu{}, err
	}
	scts, err := TimestampFromBytes(b[offset:sctsEnd])
	if err != nil {
		return DeliverPdu{}, err
	}
	offset = sctsEnd
	if err := checkOffset(b, offset, "user data len"); err != nil {
		return DeliverPdu{}, err
	}
	userDataLen := b[offset]
	offset++
	var userData []byte
	if offset < len(b) {
		userData = append([]byte(nil), b[offset:]...)
	}
	return DeliverPdu{
		Sca:                sca,
		FirstOctet:         firstOctet,
		OriginatingAddress: originatingAddress,
		Dcs:                dcs,
		Scts:               scts,
		UserData:           userData,
		UserDataLen:        userDataLen,
	}, nil
}
