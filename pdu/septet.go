package pdu

// PackSeptets packs unpacked GSM 03.38 septets (one septet value, 0..127,
// per input byte) into 8-bit octets, LSB-first within each septet.
// paddingBits shifts the first septet so that it starts paddingBits bits
// into the first octet — used when a user data header precedes the text and
// does not end on a septet boundary.
func PackSeptets(septets []byte, paddingBits int) []byte {
	var ret []byte
	charsCur := 7
	if paddingBits > 0 && len(septets) > 0 {
		charsCur = paddingBits
		ret = append(ret, septets[0]<<uint(paddingBits))
		charsCur--
	}
	for i, data := range septets {
		if charsCur == 0 {
			charsCur = 7
			continue
		}
		cur := (data & 0x7F) >> uint(7-charsCur)
		var next byte
		if i+1 < len(septets) {
			next = septets[i+1] << uint(charsCur)
		}
		cur |= next
		ret = append(ret, cur)
		charsCur--
	}
	return ret
}

// UnpackSeptets unpacks packed octets back into expected unpacked septets.
// paddingBits is the bit offset consumed from the first octet (must match
// the value PackSeptets was called with); expected bounds the number of
// septets produced, since the final, partially-filled octet can yield one
// trailing septet that would otherwise be ambiguous.
func UnpackSeptets(octets []byte, paddingBits, expected int) []byte {
	ret := []byte{0}
	charsCur := 7
	i := 0
	// With padding, ret[0] is a placeholder dropped below, so one more
	// element is needed before the trailing septet is complete.
	want := expected
	if paddingBits > 0 && len(octets) > 0 {
		charsCur = paddingBits
		want++
	}
	for j, data := range octets {
		if charsCur == 0 {
			charsCur = 7
			ret = append(ret, 0)
			i++
		}
		next := data >> uint(charsCur)
		cur := ((data << uint(8-charsCur)) >> uint(8-charsCur)) << uint(7-charsCur)
		ret[i] |= cur
		if j+1 < len(octets) || len(ret) < want {
			ret = append(ret, next)
		}
		charsCur--
		i++
	}
	if paddingBits > 0 && len(ret) > 0 {
		ret = ret[1:]
	}
	if len(ret) > expected {
		ret = ret[:expected]
	}
	return ret
}
