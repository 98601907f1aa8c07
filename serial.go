package at

import (
	"io"
	"time"

	serial "github.com/tarm/goserial"
)

// OpenPort opens a serial device at name with the given baud rate and
// returns it as the io.ReadWriter NewEngine expects. It is the only place
// in this package that touches a physical device path; everything else —
// the codec, the engine, the facade — operates purely on io.ReadWriter, so
// tests and alternative transports (a pipe, a mock, a TCP socket to a
// modem emulator) never need this function at all.
func OpenPort(name string, baud int) (io.ReadWriteCloser, error) {
	return serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: time.Millisecond * 500,
	})
}
