// Package pdu implements the GSM 03.38 character tables and the bit-level
// codecs (septet packing, UCS-2, semi-octet BCD) that the sms package builds
// SMS-SUBMIT and SMS-DELIVER PDUs out of.
package pdu

// Esc is the escape byte that switches into the GSM 03.38 extension table.
const Esc = 0x1B

// gsm7Table holds the GSM 03.38 default alphabet, excluding the ASCII
// letters and digits, which pass through verbatim.
var gsm7Table = []struct {
	ch  rune
	val byte
}{
	{'@', 0x00}, {'£', 0x01}, {'$', 0x02}, {'¥', 0x03}, {'è', 0x04},
	{'é', 0x05}, {'ù', 0x06}, {'ì', 0x07}, {'ò', 0x08}, {'Ç', 0x09},
	{'\n', 0x0A}, {'Ø', 0x0B}, {'ø', 0x0C}, {'\r', 0x0D}, {'Å', 0x0E},
	{'å', 0x0F}, {'Δ', 0x10}, {'_', 0x11}, {'Φ', 0x12}, {'Γ', 0x13},
	{'Λ', 0x14}, {'Ω', 0x15}, {'Π', 0x16}, {'Ψ', 0x17}, {'Σ', 0x18},
	{'Θ', 0x19}, {'Ξ', 0x1A}, {'Æ', 0x1C}, {'æ', 0x1D}, {'ß', 0x1E},
	{'É', 0x1F}, {' ', 0x20}, {'!', 0x21}, {'"', 0x22}, {'#', 0x23},
	{'¤', 0x24}, {'%', 0x25}, {'&', 0x26}, {'\'', 0x27}, {'(', 0x28},
	{')', 0x29}, {'*', 0x2A}, {'+', 0x2B}, {',', 0x2C}, {'-', 0x2D},
	{'.', 0x2E}, {'/', 0x2F}, {':', 0x3A}, {';', 0x3B}, {'<', 0x3C},
	{'=', 0x3D}, {'>', 0x3E}, {'?', 0x3F}, {'¡', 0x40}, {'Ä', 0x5B},
	{'Ö', 0x5C}, {'Ñ', 0x5D}, {'Ü', 0x5E}, {'§', 0x5F}, {'¿', 0x60},
	{'ä', 0x7B}, {'ö', 0x7C}, {'ñ', 0x7D}, {'ü', 0x7E}, {'à', 0x7F},
}

// gsmExtTable holds the nine characters reachable only via the Esc escape
// byte.
var gsmExtTable = []struct {
	ch  rune
	val byte
}{
	{'^', 0x14}, {'{', 0x28}, {'}', 0x29}, {'\\', 0x2F},
	{'[', 0x3C}, {'~', 0x3D}, {']', 0x3E}, {'|', 0x40},
	{'€', 0x65},
}

func isAsciiLetterOrDigit(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// Decode7Bit decodes a buffer of unpacked GSM 03.38 septets into a string.
// It is lossy: bytes with no table entry are silently skipped.
func Decode7Bit(input []byte) string {
	var out []rune
	skip := false
	for i, b := range input {
		if skip {
			skip = false
			continue
		}
		switch {
		case isAsciiLetterOrDigit(b):
			out = append(out, rune(b))
		case b == Esc:
			if i+1 < len(input) {
				next := input[i+1]
				for _, e := range gsmExtTable {
					if e.val == next {
						out = append(out, e.ch)
						skip = true
						break
					}
				}
			}
		default:
			for _, e := range gsm7Table {
				if e.val == b {
					out = append(out, e.ch)
					break
				}
			}
		}
	}
	return string(out)
}

// Is7BitEncodable reports whether every character of s has a GSM 03.38
// representation.
func Is7BitEncodable(s string) bool {
	_, ok := Encode7Bit(s)
	return ok
}

// Encode7Bit tries to encode s into unpacked GSM 03.38 septets. It fails
// (ok == false) as soon as a character has no representation; the caller is
// expected to fall back to UCS-2 in that case.
func Encode7Bit(s string) (septets []byte, ok bool) {
	for _, c := range s {
		if c >= 0 && c < 128 && isAsciiLetterOrDigit(byte(c)) {
			septets = append(septets, byte(c))
			continue
		}
		if v, found := lookupBase(c); found {
			septets = append(septets, v)
			continue
		}
		if v, found := lookupExt(c); found {
			septets = append(septets, Esc, v)
			continue
		}
		return nil, false
	}
	return septets, true
}

func lookupBase(c rune) (byte, bool) {
	for _, e := range gsm7Table {
		if e.ch == c {
			return e.val, true
		}
	}
	return 0, false
}

func lookupExt(c rune) (byte, bool) {
	for _, e := range gsmExtTable {
		if e.ch == c {
			return e.val, true
		}
	}
	return 0, false
}
