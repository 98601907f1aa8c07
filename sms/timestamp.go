package sms

import (
	"fmt"

	"github.com/atkit/hayes/pdu"
)

// Timestamp is a GSM 03.40 service-centre timestamp (SCTS): year, month,
// day, hour, minute, second and a quarter-hour timezone offset, each
// encoded on the wire as a reversed-BCD octet.
type Timestamp struct {
	Year, Month, Day       byte
	Hour, Minute, Second   byte
	Timezone               byte
}

// TimestampFromBytes decodes the 7-byte SCTS field that follows the DCS
// octet in an SMS-DELIVER PDU.
func TimestampFromBytes(b []byte) (Timestamp, error) {
	if len(b) != 7 {
		return Timestamp{}, invalidPdu("service centre timestamp must be 7 bytes long")
	}
	return Timestamp{
		Year:     pdu.ReverseByte(b[0]),
		Month:    pdu.ReverseByte(b[1]),
		Day:      pdu.ReverseByte(b[2]),
		Hour:     pdu.ReverseByte(b[3]),
		Minute:   pdu.ReverseByte(b[4]),
		Second:   pdu.ReverseByte(b[5]),
		Timezone: pdu.ReverseByte(b[6]),
	}, nil
}

// AsBytes re-encodes the timestamp to its 7-byte reversed-BCD wire form.
func (t Timestamp) AsBytes() []byte {
	return []byte{
		pdu.EncodeBCD(int(t.Year)),
		pdu.EncodeBCD(int(t.Month)),
		pdu.EncodeBCD(int(t.Day)),
		pdu.EncodeBCD(int(t.Hour)),
		pdu.EncodeBCD(int(t.Minute)),
		pdu.EncodeBCD(int(t.Second)),
		pdu.EncodeBCD(int(t.Timezone)),
	}
}

func (t Timestamp) String() string {
	return fmt.Sprintf("20%02d-%02d-%02d %02d:%02d:%02d", t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second)
}
