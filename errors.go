package at

import "fmt"

// ModemError wraps a terminal ResultCode other than Ok. Every facade
// function in commands.go returns one once the engine's ResponsePacket
// carries a failing status; Submit itself never returns a ModemError; it
// is applied by the caller once the packet comes back.
type ModemError struct {
	Status ResultCode
}

func (e *ModemError) Error() string {
	return fmt.Sprintf("at: modem returned %s", e.Status)
}

// ProtocolError reports a response shape a facade call did not expect: a
// missing information response, or one whose Value didn't hold the type
// the caller asked for.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return "at: protocol error: " + e.Reason
}

// checkOk turns a non-Ok terminal status into a *ModemError.
func checkOk(packet ResponsePacket) error {
	if !packet.Status.IsOk() {
		return &ModemError{Status: packet.Status}
	}
	return nil
}
