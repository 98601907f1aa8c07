package at

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atkit/hayes/pdu"
)

func submitConcurrently(t *testing.T, modem *fakeModem, want string, reply ...string) chan struct{} {
	t.Helper()
	done := make(chan struct{})
	go func() {
		modem.expectCommand(t, want)
		modem.reply(reply...)
		close(done)
	}()
	return done
}

func waitDone(t *testing.T, done chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("modem goroutine never finished")
	}
}

func TestCREGParsesRegistrationState(t *testing.T) {
	e, modem := newFakeModem(t)
	defer e.Close()
	defer modem.conn.Close()

	done := submitConcurrently(t, modem, "AT+CREG?", "+CREG: 0,1", "OK")
	state, err := CREG(e)
	require.NoError(t, err)
	require.Equal(t, RegHome, state)
	waitDone(t, done)
}

func TestCSQParsesSignalQuality(t *testing.T) {
	e, modem := newFakeModem(t)
	defer e.Close()
	defer modem.conn.Close()

	done := submitConcurrently(t, modem, "AT+CSQ", "+CSQ: 14,0", "OK")
	sq, err := CSQ(e)
	require.NoError(t, err)
	require.Equal(t, SignalQuality{RSSI: 14, BER: 0}, sq)
	waitDone(t, done)
}

func TestCPINReady(t *testing.T) {
	e, modem := newFakeModem(t)
	defer e.Close()
	defer modem.conn.Close()

	done := submitConcurrently(t, modem, "AT+CPIN?", `+CPIN: READY`, "OK")
	state, err := CPIN(e)
	require.NoError(t, err)
	require.Equal(t, PinReady, state)
	waitDone(t, done)
}

func TestSetMessageFormatPduMode(t *testing.T) {
	e, modem := newFakeModem(t)
	defer e.Close()
	defer modem.conn.Close()

	done := submitConcurrently(t, modem, "AT+CMGF=0", "OK")
	require.NoError(t, SetMessageFormat(e, false))
	waitDone(t, done)
}

func TestCREGReturnsModemErrorOnFailure(t *testing.T) {
	e, modem := newFakeModem(t)
	defer e.Close()
	defer modem.conn.Close()

	done := submitConcurrently(t, modem, "AT+CREG?", "+CME ERROR: 10")
	_, err := CREG(e)
	require.Error(t, err)
	var modemErr *ModemError
	require.ErrorAs(t, err, &modemErr)
	require.Equal(t, ResultCmeError, modemErr.Status.Kind)
	waitDone(t, done)
}

// TestCMGLPairsHeaderWithHexPduLine covers the interleaved header/raw-line
// pairing that distinguishes AT+CMGL's output from an ordinary information
// response.
func TestCMGLPairsHeaderWithHexPduLine(t *testing.T) {
	e, modem := newFakeModem(t)
	defer e.Close()
	defer modem.conn.Close()

	pduHex := pdu.HexString([]byte{
		0x00,
		0x04,
		0x0C, 0x91, 0x44, 0x77, 0x00, 0x09, 0x10, 0x32,
		0x00,
		0x00,
		0x21, 0x60, 0x81, 0x51, 0x40, 0x22, 0x80,
		0x05,
		0xE8, 0x32, 0x9B, 0xFD, 0x06,
	})

	done := submitConcurrently(t, modem, `AT+CMGL="ALL"`,
		`+CMGL: 1,1,,25`, pduHex, "OK")
	listed, err := CMGL(e, "ALL")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, 1, listed[0].Index)
	require.Equal(t, 1, listed[0].Status)
	require.Equal(t, "447700900123", listed[0].Pdu.OriginatingAddress.Number.String())

	decoded, err := listed[0].Pdu.GetMessageData().DecodeMessage()
	require.NoError(t, err)
	require.Equal(t, "hello", decoded.Text)
	waitDone(t, done)
}

func TestSendPDUFramesCommandPromptBodyAndCtrlZ(t *testing.T) {
	e, modem := newFakeModem(t)
	defer e.Close()
	defer modem.conn.Close()

	expected := "AT+CMGS=5\r" + pdu.HexString([]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00}) + Sub

	done := make(chan struct{})
	go func() {
		line, err := modem.reader.ReadString(0x1A)
		require.NoError(t, err)
		require.Equal(t, expected, line)
		modem.reply("+CMGS: 42", "OK")
		close(done)
	}()

	mr, err := SendPDU(e, []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00}, 5)
	require.NoError(t, err)
	require.Equal(t, 42, mr)
	waitDone(t, done)
}
