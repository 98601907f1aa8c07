package at

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeModem reads whatever the engine writes and lets the test script the
// modem's side of the conversation line by line.
type fakeModem struct {
	conn   net.Conn
	reader *bufio.Reader
}

func newFakeModem(t *testing.T) (*Engine, *fakeModem) {
	t.Helper()
	clientConn, serverConn := net.Pipe()
	modem := &fakeModem{conn: serverConn, reader: bufio.NewReader(serverConn)}

	// Serve the ATE0 priming handshake before handing the engine back.
	done := make(chan struct{})
	go func() {
		modem.expectCommand(t, "ATE0")
		modem.reply("OK")
		close(done)
	}()

	e := NewEngine(clientConn, DefaultOptions())
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for priming handshake")
	}
	return e, modem
}

// expectCommand reads lines until it finds one matching the framed command
// (skipping the leading blank line the engine's CRLF wrapping produces).
func (m *fakeModem) expectCommand(t *testing.T, want string) {
	t.Helper()
	for {
		line, err := m.reader.ReadString('\n')
		require.NoError(t, err)
		trimmed := trimCRLF(line)
		if trimmed == "" {
			continue
		}
		require.Equal(t, want, trimmed)
		return
	}
}

func (m *fakeModem) reply(lines ...string) {
	for _, line := range lines {
		m.conn.Write([]byte(line + "\r\n"))
	}
}

func trimCRLF(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

func TestEnginePrimesEchoOffBeforeFirstSubmit(t *testing.T) {
	e, modem := newFakeModem(t)
	defer e.Close()
	defer modem.conn.Close()

	done := make(chan struct{})
	go func() {
		modem.expectCommand(t, "AT+CSQ")
		modem.reply("+CSQ: 20,99", "OK")
		close(done)
	}()

	packet, err := e.Submit(Execute("+CSQ"))
	require.NoError(t, err)
	require.True(t, packet.Status.IsOk())
	v, ok := packet.InformationResponse("+CSQ")
	require.True(t, ok)
	require.Equal(t, ArrayValue([]Value{IntegerValue(20), IntegerValue(99)}), v)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("modem goroutine never finished")
	}
}

// TestEngineUrcIsolation covers the scenario where a URC line arrives
// interleaved with an in-flight command's own information response: only
// the expected param ends up in the packet, and the interleaved line
// surfaces on URCs(), not in the packet.
func TestEngineUrcIsolation(t *testing.T) {
	e, modem := newFakeModem(t)
	defer e.Close()
	defer modem.conn.Close()

	urcs := e.URCs()

	done := make(chan struct{})
	go func() {
		modem.expectCommand(t, "AT+CREG?")
		modem.reply(`+CMTI: "SM",3`, "+CREG: 0,1", "OK")
		close(done)
	}()

	packet, err := e.Submit(Read("+CREG"))
	require.NoError(t, err)
	require.True(t, packet.Status.IsOk())
	require.Len(t, packet.Responses, 1)
	v, ok := packet.InformationResponse("+CREG")
	require.True(t, ok)
	require.Equal(t, ArrayValue([]Value{IntegerValue(0), IntegerValue(1)}), v)

	select {
	case urc := <-urcs:
		require.Equal(t, ResponseInformation, urc.Kind)
		require.Equal(t, "+CMTI", urc.Param)
	case <-time.After(time.Second):
		t.Fatal("expected +CMTI on the URC sink")
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("modem goroutine never finished")
	}
}

// TestEngineOrdersSubmittersFifo covers the ordering property: a second
// Submit call queued while the first is in flight must not resolve first.
func TestEngineOrdersSubmittersFifo(t *testing.T) {
	e, modem := newFakeModem(t)
	defer e.Close()
	defer modem.conn.Close()

	order := make(chan string, 2)
	done := make(chan struct{})
	go func() {
		modem.expectCommand(t, "AT+CSQ")
		time.Sleep(20 * time.Millisecond)
		modem.reply("OK")
		modem.expectCommand(t, "AT+CREG?")
		modem.reply("+CREG: 0,1", "OK")
		close(done)
	}()

	go func() {
		e.Submit(Execute("+CSQ"))
		order <- "first"
	}()
	time.Sleep(5 * time.Millisecond)
	go func() {
		e.Submit(Read("+CREG"))
		order <- "second"
	}()

	require.Equal(t, "first", <-order)
	require.Equal(t, "second", <-order)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("modem goroutine never finished")
	}
}
