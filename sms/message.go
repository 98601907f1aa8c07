package sms

import (
	"crypto/rand"

	"github.com/atkit/hayes/pdu"
)

// GsmMessageData is the user-data portion of an SMS PDU, plus the details
// needed to interpret it: which encoding produced the bytes, whether a UDH
// precedes them, and the encoding-specific length field (septets for
// 7-bit, octets otherwise).
type GsmMessageData struct {
	Encoding    MessageEncoding
	Udh         bool
	Bytes       []byte
	UserDataLen byte
}

// DecodedMessage is the text recovered from a GsmMessageData, plus its
// parsed UDH when one was present.
type DecodedMessage struct {
	Text string
	Udh  *UserDataHeader
}

func randomByte() byte {
	var b [1]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0
	}
	return b[0]
}

func splitBuffers(buf []byte, maxLen int) [][]byte {
	var ret [][]byte
	for len(buf) > maxLen {
		ret = append(ret, buf[:maxLen])
		buf = buf[maxLen:]
	}
	ret = append(ret, buf)
	return ret
}

// EncodeMessage encodes an arbitrary string into one or more
// GsmMessageData segments. More than one means the text has been split
// into a concatenated SMS; send each segment in its own SubmitPdu, in
// order.
func EncodeMessage(text string) []GsmMessageData {
	if septets, ok := pdu.Encode7Bit(text); ok {
		userDataLen := len(septets)
		if userDataLen <= 160 {
			return []GsmMessageData{{
				Encoding:    EncodingGsm7Bit,
				Bytes:       pdu.PackSeptets(septets, 0),
				Udh:         false,
				UserDataLen: byte(userDataLen),
			}}
		}
		bufs := splitBuffers(septets, 153)
		csmsRef := randomByte()
		numParts := len(bufs)
		parts := make([]GsmMessageData, numParts)
		for i, buf := range bufs {
			udh := UserDataHeader{Components: []UdhComponent{ConcatComponent(csmsRef, numParts, i+1)}}
			ret := udh.AsBytes()
			padding := udhPadding(len(ret))
			length := (len(ret)*8 + padding + len(buf)*7) / 7
			ret = append(ret, pdu.PackSeptets(buf, padding)...)
			parts[i] = GsmMessageData{
				Encoding:    EncodingGsm7Bit,
				Bytes:       ret,
				Udh:         true,
				UserDataLen: byte(length),
			}
		}
		return parts
	}

	buf := pdu.EncodeUcs2(text)
	userDataLen := len(buf)
	if userDataLen <= 140 {
		return []GsmMessageData{{
			Encoding:    EncodingUcs2,
			Bytes:       buf,
			Udh:         false,
			UserDataLen: byte(userDataLen),
		}}
	}
	bufs := splitBuffers(buf, 134)
	csmsRef := randomByte()
	numParts := len(bufs)
	parts := make([]GsmMessageData, numParts)
	for i, b := range bufs {
		udh := UserDataHeader{Components: []UdhComponent{ConcatComponent(csmsRef, numParts, i+1)}}
		ret := udh.AsBytes()
		ret = append(ret, b...)
		parts[i] = GsmMessageData{
			Encoding:    EncodingUcs2,
			Bytes:       ret,
			Udh:         true,
			UserDataLen: byte(len(ret)),
		}
	}
	return parts
}

// DecodeMessage recovers the text (and, when present, the UDH) from a
// GsmMessageData.
func (m GsmMessageData) DecodeMessage() (DecodedMessage, error) {
	padding := 0
	start := 0
	var udh *UserDataHeader
	if m.Udh {
		if len(m.Bytes) < 1 {
			return DecodedMessage{}, invalidPdu("UDHI specified, but no data")
		}
		udhl := int(m.Bytes[0])
		padding = udhPadding(udhl + 1)
		start = udhl + 1
		if len(m.Bytes) < start {
			return DecodedMessage{}, invalidPdu("UDHL goes past end of data")
		}
		parsed, err := UserDataHeaderFromBytes(m.Bytes[1:start])
		if err != nil {
			return DecodedMessage{}, err
		}
		udh = &parsed
	}
	if start >= len(m.Bytes) {
		return DecodedMessage{Text: "", Udh: udh}, nil
	}
	switch m.Encoding {
	case EncodingGsm7Bit:
		// UserDataLen counts the UDH (and its fill bits) in septets too.
		textSeptets := int(m.UserDataLen) - (start*8+padding)/7
		septets := pdu.UnpackSeptets(m.Bytes[start:], padding, textSeptets)
		return DecodedMessage{Text: pdu.Decode7Bit(septets), Udh: udh}, nil
	case EncodingUcs2:
		return DecodedMessage{Text: pdu.DecodeUcs2(m.Bytes[start:]), Udh: udh}, nil
	default:
		return DecodedMessage{}, &UnsupportedEncodingError{Encoding: m.Encoding, Raw: m.Bytes}
	}
}
