package at

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/atkit/hayes/pdu"
	"github.com/atkit/hayes/sms"
)

// Sub is the Ctrl+Z byte that terminates an SMS text/PDU payload.
const Sub = "\x1A"

// elemsOf returns v's top-level elements: v.Array if v is an Array, or v
// itself as a single-element slice otherwise — most information responses
// carry a bare value when a modem omits optional leading fields.
func elemsOf(v Value) []Value {
	if v.Kind == ValueArray {
		return v.Array
	}
	return []Value{v}
}

// intField extracts the idx-th integer element of v. A negative idx counts
// from the end, so -1 reaches the last field regardless of how many
// leading fields a particular modem included.
func intField(v Value, idx int) (uint64, error) {
	elems := elemsOf(v)
	if idx < 0 {
		idx += len(elems)
	}
	if idx < 0 || idx >= len(elems) || elems[idx].Kind != ValueInteger {
		return 0, &ProtocolError{Reason: "expected an integer field"}
	}
	return elems[idx].Int, nil
}

// strField extracts the idx-th string/bareword element of v.
func strField(v Value, idx int) (string, error) {
	elems := elemsOf(v)
	if idx < 0 {
		idx += len(elems)
	}
	if idx < 0 || idx >= len(elems) {
		return "", &ProtocolError{Reason: "missing field"}
	}
	switch elems[idx].Kind {
	case ValueString, ValueBareword:
		return elems[idx].Str, nil
	default:
		return "", &ProtocolError{Reason: "expected a string field"}
	}
}

func informationResponse(packet ResponsePacket, param string) (Value, error) {
	v, ok := packet.InformationResponse(param)
	if !ok {
		return Value{}, &ProtocolError{Reason: "missing " + param + " information response"}
	}
	return v, nil
}

// RegistrationState is the +CREG <stat> network registration value.
type RegistrationState int

const (
	RegNotRegistered RegistrationState = 0
	RegHome          RegistrationState = 1
	RegSearching     RegistrationState = 2
	RegDenied        RegistrationState = 3
	RegUnknown       RegistrationState = 4
	RegRoaming       RegistrationState = 5
)

func (s RegistrationState) String() string {
	switch s {
	case RegNotRegistered:
		return "not registered"
	case RegHome:
		return "registered, home network"
	case RegSearching:
		return "searching"
	case RegDenied:
		return "registration denied"
	case RegUnknown:
		return "unknown"
	case RegRoaming:
		return "registered, roaming"
	default:
		return fmt.Sprintf("RegistrationState(%d)", int(s))
	}
}

// CREG reads the current network registration state via AT+CREG?. The
// modem's reply is "+CREG: <n>,<stat>" when unsolicited reporting has been
// configured, or a bare "+CREG: <stat>" otherwise; stat is always the last
// field.
func CREG(e *Engine) (RegistrationState, error) {
	packet, err := e.Submit(Read("+CREG"))
	if err != nil {
		return 0, err
	}
	if err := checkOk(packet); err != nil {
		return 0, err
	}
	v, err := informationResponse(packet, "+CREG")
	if err != nil {
		return 0, err
	}
	stat, err := intField(v, -1)
	if err != nil {
		return 0, err
	}
	return RegistrationState(stat), nil
}

// OperationMode is the +CFUN functionality level.
type OperationMode int

const (
	FunMinimum   OperationMode = 0
	FunFull      OperationMode = 1
	FunDisableRf OperationMode = 4
)

// CFUN reads the modem's current functionality level via AT+CFUN?.
func CFUN(e *Engine) (OperationMode, error) {
	packet, err := e.Submit(Read("+CFUN"))
	if err != nil {
		return 0, err
	}
	if err := checkOk(packet); err != nil {
		return 0, err
	}
	v, err := informationResponse(packet, "+CFUN")
	if err != nil {
		return 0, err
	}
	n, err := intField(v, 0)
	if err != nil {
		return 0, err
	}
	return OperationMode(n), nil
}

// SetCFUN sets the modem's functionality level via AT+CFUN=<mode>.
func SetCFUN(e *Engine, mode OperationMode) error {
	packet, err := e.Submit(Equals("+CFUN", IntegerValue(uint64(mode))))
	if err != nil {
		return err
	}
	return checkOk(packet)
}

// PinState is the +CPIN readiness string, e.g. "READY", "SIM PIN", "SIM PUK".
type PinState string

// Well-known +CPIN states.
const (
	PinReady   PinState = "READY"
	PinSimPin  PinState = "SIM PIN"
	PinSimPuk  PinState = "SIM PUK"
	PinSimPin2 PinState = "SIM PIN2"
	PinSimPuk2 PinState = "SIM PUK2"
)

// CPIN reads the SIM's PIN state via AT+CPIN?.
func CPIN(e *Engine) (PinState, error) {
	packet, err := e.Submit(Read("+CPIN"))
	if err != nil {
		return "", err
	}
	if err := checkOk(packet); err != nil {
		return "", err
	}
	v, err := informationResponse(packet, "+CPIN")
	if err != nil {
		return "", err
	}
	s, err := strField(v, 0)
	if err != nil {
		return "", err
	}
	return PinState(s), nil
}

// EnterPIN submits the SIM PIN via AT+CPIN=<pin>.
func EnterPIN(e *Engine, pin string) error {
	packet, err := e.Submit(Equals("+CPIN", StringValue(pin)))
	if err != nil {
		return err
	}
	return checkOk(packet)
}

// EnterPIN2 submits the SIM's second PIN (or, when the SIM is in the
// SIM PUK2 state, a PUK2/new-PIN2 pair) via AT+CPIN2.
func EnterPIN2(e *Engine, pin2 string, newPin2 ...string) error {
	args := []Value{StringValue(pin2)}
	if len(newPin2) > 0 {
		args = append(args, StringValue(newPin2[0]))
	}
	cmd := Equals("+CPIN2", ArrayValue(args))
	packet, err := e.Submit(cmd)
	if err != nil {
		return err
	}
	return checkOk(packet)
}

// SignalQuality is the +CSQ reading: rssi in 0..31 (99 == not known or not
// detectable) and a bit error rate in 0..7 (99 == not known).
type SignalQuality struct {
	RSSI int
	BER  int
}

// CSQ reads the current signal quality via AT+CSQ.
func CSQ(e *Engine) (SignalQuality, error) {
	packet, err := e.Submit(Execute("+CSQ"))
	if err != nil {
		return SignalQuality{}, err
	}
	if err := checkOk(packet); err != nil {
		return SignalQuality{}, err
	}
	v, err := informationResponse(packet, "+CSQ")
	if err != nil {
		return SignalQuality{}, err
	}
	rssi, err := intField(v, 0)
	if err != nil {
		return SignalQuality{}, err
	}
	ber, err := intField(v, 1)
	if err != nil {
		return SignalQuality{}, err
	}
	return SignalQuality{RSSI: int(rssi), BER: int(ber)}, nil
}

// SetMessageFormat switches the modem between PDU mode (textMode == false)
// and text mode via AT+CMGF=<0|1>. The PDU-mode facade functions (CMGL,
// SendPDU) assume PDU mode has been selected.
func SetMessageFormat(e *Engine, textMode bool) error {
	var n uint64
	if textMode {
		n = 1
	}
	packet, err := e.Submit(Equals("+CMGF", IntegerValue(n)))
	if err != nil {
		return err
	}
	return checkOk(packet)
}

// SetNewMessageIndication configures unsolicited new-message notifications
// via AT+CNMI=<mode>,<mt>,<bm>,<ds>,<bfr>.
func SetNewMessageIndication(e *Engine, mode, mt, bm, ds, bfr int) error {
	cmd := Equals("+CNMI", ArrayValue([]Value{
		IntegerValue(uint64(mode)),
		IntegerValue(uint64(mt)),
		IntegerValue(uint64(bm)),
		IntegerValue(uint64(ds)),
		IntegerValue(uint64(bfr)),
	}))
	packet, err := e.Submit(cmd)
	if err != nil {
		return err
	}
	return checkOk(packet)
}

// SCA reads the configured SMS service-centre address via AT+CSCA?.
func SCA(e *Engine) (string, error) {
	packet, err := e.Submit(Read("+CSCA"))
	if err != nil {
		return "", err
	}
	if err := checkOk(packet); err != nil {
		return "", err
	}
	v, err := informationResponse(packet, "+CSCA")
	if err != nil {
		return "", err
	}
	return strField(v, 0)
}

// SetSCA sets the SMS service-centre address via AT+CSCA=<sca>.
func SetSCA(e *Engine, sca string) error {
	packet, err := e.Submit(Equals("+CSCA", StringValue(sca)))
	if err != nil {
		return err
	}
	return checkOk(packet)
}

// DeleteSMS deletes the stored message at index via AT+CMGD=<index>.
func DeleteSMS(e *Engine, index int) error {
	packet, err := e.Submit(Equals("+CMGD", IntegerValue(uint64(index))))
	if err != nil {
		return err
	}
	return checkOk(packet)
}

// ListedSMS is one entry of an AT+CMGL listing: the modem's own index and
// status, the raw hex-string PDU it sent, and the parsed SMS-DELIVER PDU.
type ListedSMS struct {
	Index  int
	Status int
	Raw    string
	Pdu    sms.DeliverPdu
}

// CMGL lists stored PDUs whose status matches flag (e.g. "0" for "REC
// UNREAD", "4" for "ALL") via AT+CMGL=<flag>. The modem interleaves each
// "+CMGL: <idx>,<stat>,..." information response with an unframed
// hex-string PDU on the following line; since that line carries no
// "<param>:" prefix it decodes as an Unknown response, so the command asks
// the engine to also route the empty-param (Unknown) lines its way and the
// facade here pairs each +CMGL header with the next such line, hex-decodes
// it, and parses it as an SMS-DELIVER PDU.
func CMGL(e *Engine, flag string) ([]ListedSMS, error) {
	cmd := Equals("+CMGL", StringValue(flag)).WithExpected("")
	packet, err := e.Submit(cmd)
	if err != nil {
		return nil, err
	}
	if err := checkOk(packet); err != nil {
		return nil, err
	}

	var out []ListedSMS
	var pending *ListedSMS
	for _, r := range packet.Responses {
		switch {
		case r.Kind == ResponseInformation && r.Param == "+CMGL":
			if pending != nil {
				out = append(out, *pending)
			}
			idx, err := intField(r.Value, 0)
			if err != nil {
				return nil, err
			}
			status, err := intField(r.Value, 1)
			if err != nil {
				return nil, err
			}
			pending = &ListedSMS{Index: int(idx), Status: int(status)}
		case r.Kind == ResponseUnknown && pending != nil && pending.Raw == "":
			octets, err := pdu.HexBytes(r.Text)
			if err != nil {
				return nil, errors.Wrap(err, "at: invalid hex in +CMGL PDU line")
			}
			parsed, err := sms.DeliverPduFromBytes(octets)
			if err != nil {
				return nil, err
			}
			pending.Raw = r.Text
			pending.Pdu = parsed
		}
	}
	if pending != nil {
		out = append(out, *pending)
	}
	return out, nil
}

// SendPDU sends a pre-built SMS-SUBMIT TPDU (the bytes sms.SubmitPdu.AsBytes
// returns, minus the leading SCA segment) via the two-phase AT+CMGS
// exchange: "AT+CMGS=<tpduLen>", the modem's '>' prompt, the hex-encoded
// TPDU, then Ctrl-Z. The prompt itself carries no line terminator the
// engine's line-oriented codec could frame, so the whole exchange is sent
// as a single raw payload through the Text command variant — the modem
// buffers the command line until it has processed it and only then reads
// the body, so there is no need for the caller to wait on the prompt
// explicitly. It returns the message reference the modem assigns, when the
// modem's "+CMGS: <mr>" reply supplies one.
func SendPDU(e *Engine, octets []byte, tpduLen int) (int, error) {
	hex := strings.ToUpper(pdu.HexString(octets))
	payload := fmt.Sprintf("AT+CMGS=%d\r%s%s", tpduLen, hex, Sub)
	packet, err := e.Submit(Text(payload, "+CMGS"))
	if err != nil {
		return 0, err
	}
	if err := checkOk(packet); err != nil {
		return 0, err
	}
	v, ok := packet.InformationResponse("+CMGS")
	if !ok {
		return 0, nil
	}
	mr, err := intField(v, 0)
	if err != nil {
		return 0, err
	}
	return int(mr), nil
}

// SendTextSMS sends text to destination via AT+CMGS in text mode, using the
// same single-write collapse of the command/prompt/body/Ctrl-Z sequence as
// SendPDU. The modem must already be in text mode (SetMessageFormat(e,
// true)).
func SendTextSMS(e *Engine, destination, text string) (int, error) {
	payload := fmt.Sprintf("AT+CMGS=%q\r%s%s", destination, text, Sub)
	packet, err := e.Submit(Text(payload, "+CMGS"))
	if err != nil {
		return 0, err
	}
	if err := checkOk(packet); err != nil {
		return 0, err
	}
	v, ok := packet.InformationResponse("+CMGS")
	if !ok {
		return 0, nil
	}
	mr, err := intField(v, 0)
	if err != nil {
		return 0, err
	}
	return int(mr), nil
}
