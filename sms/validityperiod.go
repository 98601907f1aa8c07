package sms

// ValidityPeriodFormat is the VPF field of an SMS-SUBMIT first octet.
type ValidityPeriodFormat byte

const (
	VpfInvalid  ValidityPeriodFormat = 0b00_00
	VpfEnhanced ValidityPeriodFormat = 0b01_00
	VpfRelative ValidityPeriodFormat = 0b10_00
	VpfAbsolute ValidityPeriodFormat = 0b11_00
)

// ValidityPeriod encodes to a single byte regardless of format. Only
// VpfInvalid (no validity period byte at all) and VpfRelative are fully
// supported; VpfAbsolute and VpfEnhanced actually require 7 bytes on the
// wire in GSM 03.40 and are accepted here only as a known limitation — see
// the design notes.
type ValidityPeriod struct {
	Format ValidityPeriodFormat
	// Relative is the single relative-validity-period byte, meaningful
	// only when Format == VpfRelative. Its value maps onto
	// GSM-03.40-defined duration bands; callers pick the byte directly
	// (e.g. 0xA7 == 24 hours) rather than this package computing a duration.
	Relative byte
}

// Byte returns the single VP byte to place on the wire, or (0, false) if
// Format is VpfInvalid and no byte should be emitted at all.
func (v ValidityPeriod) Byte() (byte, bool) {
	if v.Format == VpfInvalid {
		return 0, false
	}
	return v.Relative, true
}
