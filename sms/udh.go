package sms

// UdhComponent is a single TLV element of a User Data Header.
type UdhComponent struct {
	ID   byte
	Data []byte
}

// UserDataHeader is the TLV list prefixed to user data when UDHI is set —
// most commonly to mark a message as one part of a concatenated SMS.
type UserDataHeader struct {
	Components []UdhComponent
}

const (
	udhConcatId8  = 0
	udhConcatId16 = 8
)

// ConcatComponent builds the standard concatenated-SMS UDH element: an
// 8-bit reference, the total part count, and this part's 1-based sequence
// number.
func ConcatComponent(ref byte, parts, seq int) UdhComponent {
	return UdhComponent{ID: udhConcatId8, Data: []byte{ref, byte(parts), byte(seq)}}
}

// Concat returns the concatenated-SMS reference, part count and sequence
// number carried by the header, if present. Both the 8-bit (id=0) and
// 16-bit (id=8) reference forms are recognised.
func (h UserDataHeader) Concat() (ref int, parts, seq int, ok bool) {
	for _, c := range h.Components {
		switch {
		case c.ID == udhConcatId8 && len(c.Data) == 3:
			return int(c.Data[0]), int(c.Data[1]), int(c.Data[2]), true
		case c.ID == udhConcatId16 && len(c.Data) == 4:
			return int(c.Data[0])<<8 | int(c.Data[1]), int(c.Data[2]), int(c.Data[3]), true
		}
	}
	return 0, 0, 0, false
}

// AsBytes serialises the header including its leading total-length octet.
func (h UserDataHeader) AsBytes() []byte {
	var ret []byte
	for _, c := range h.Components {
		ret = append(ret, c.ID, byte(len(c.Data)))
		ret = append(ret, c.Data...)
	}
	return append([]byte{byte(len(ret))}, ret...)
}

// UserDataHeaderFromBytes parses a header from bytes that do NOT include
// the leading total-length octet — callers read that octet themselves to
// know how much of the buffer to hand in here.
func UserDataHeaderFromBytes(b []byte) (UserDataHeader, error) {
	var components []UdhComponent
	offset := 0
	for offset < len(b) {
		id := b[offset]
		offset++
		if err := checkOffset(b, offset, "UDH component length"); err != nil {
			return UserDataHeader{}, err
		}
		length := int(b[offset])
		offset++
		end := offset + length
		if err := checkOffset(b, end-1, "UDH component data"); err != nil {
			return UserDataHeader{}, err
		}
		data := append([]byte(nil), b[offset:end]...)
		offset = end
		components = append(components, UdhComponent{ID: id, Data: data})
	}
	return UserDataHeader{Components: components}, nil
}

// udhPadding returns the number of padding bits inserted before the first text
// septet so the 7-bit payload following a UDH of this length (including its
// own length octet) starts on a septet boundary.
func udhPadding(udhTotalLenWithLengthOctet int) int {
	return (7 - (udhTotalLenWithLengthOctet*8)%7) % 7
}
