package at

import (
	"fmt"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// ErrTransportClosed is delivered to every pending and future submitter
// once the underlying byte stream has failed or reached EOF.
var ErrTransportClosed = errors.New("at: transport closed")

// ErrEngineClosed is returned by Submit once the engine has been shut
// down via Close.
var ErrEngineClosed = errors.New("at: engine closed")

// Options configures an Engine.
type Options struct {
	// PrimeEchoOff sends an ATE0 command (with its reply discarded) as
	// the engine's very first write, so every subsequent line can be
	// interpreted without command-echo noise. DefaultOptions sets it to
	// true; the zero value false sends no ATE0, which suits only a stream
	// that has already had echo disabled.
	PrimeEchoOff bool
	// UrcBuffer sizes the URC broadcast channel. Unbounded backpressure
	// is out of scope (per the design notes, the modem itself is the
	// bottleneck) but an unbuffered Go channel would make the owner
	// goroutine block on a slow consumer, so a generous default buffer
	// is used instead; 0 selects the default.
	UrcBuffer int
}

// DefaultOptions returns the recommended Options: ATE0 priming on and a
// 64-entry URC buffer. NewEngine takes only UrcBuffer from it, when the
// caller's UrcBuffer is 0; a zero Options therefore disables priming.
func DefaultOptions() Options {
	return Options{PrimeEchoOff: true, UrcBuffer: 64}
}

// Engine is the AT protocol engine: it owns a modem byte stream for its
// entire lifetime, serializes submitted commands onto it one at a time,
// and separates unsolicited result codes from the in-flight command's
// information responses.
type Engine struct {
	conn io.ReadWriter

	submitCh chan *pendingRequest
	urcCh    chan Response

	closeOnce sync.Once
	closed    chan struct{}

	mu      sync.Mutex
	lastErr error
}

type pendingRequest struct {
	cmd        Command
	reply      chan submitResult
	discard    bool
	accumulated []Response
}

type submitResult struct {
	packet ResponsePacket
	err    error
}

// NewEngine starts the owner goroutine and the stream-reader goroutine
// over conn, and returns immediately. conn is owned by the Engine from
// this point on — callers must not read from or write to it directly.
func NewEngine(conn io.ReadWriter, opts Options) *Engine {
	if opts.UrcBuffer <= 0 {
		opts.UrcBuffer = DefaultOptions().UrcBuffer
	}
	e := &Engine{
		conn:     conn,
		submitCh: make(chan *pendingRequest),
		urcCh:    make(chan Response, opts.UrcBuffer),
		closed:   make(chan struct{}),
	}

	decoded := make(chan Response)
	readErrs := make(chan error, 1)
	go e.readLoop(decoded, readErrs)
	go e.run(decoded, readErrs, opts)
	return e
}

// Submit enqueues cmd and blocks until its terminal result code arrives,
// the engine is closed, or the transport fails.
func (e *Engine) Submit(cmd Command) (ResponsePacket, error) {
	req := &pendingRequest{cmd: cmd, reply: make(chan submitResult, 1)}
	select {
	case e.submitCh <- req:
	case <-e.closed:
		return ResponsePacket{}, e.closeErr()
	}
	select {
	case res := <-req.reply:
		return res.packet, res.err
	case <-e.closed:
		return ResponsePacket{}, e.closeErr()
	}
}

// URCs returns the broadcast sink of unsolicited result codes and
// information responses not claimed by any in-flight command. It has a
// single consumer: call it once and keep the channel.
func (e *Engine) URCs() <-chan Response {
	return e.urcCh
}

// Close shuts the engine down: the reader goroutine's next read error (or
// a real close of conn, if it implements io.Closer) ends the owner loop.
// Close closes conn when it is an io.Closer, which unblocks a pending
// Read; for any other conn a blocked Read is not interrupted.
func (e *Engine) Close() error {
	e.shutdown(ErrEngineClosed)
	if closer, ok := e.conn.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// shutdown records err as the engine's terminal error and closes the
// closed signal exactly once, so that both an explicit Close and a
// transport failure observed by run unblock any Submit call — in
// flight or yet to be made — rather than only the ones already queued.
func (e *Engine) shutdown(err error) {
	e.closeOnce.Do(func() {
		e.setErr(err)
		close(e.closed)
	})
}

func (e *Engine) setErr(err error) {
	e.mu.Lock()
	if e.lastErr == nil {
		e.lastErr = err
	}
	e.mu.Unlock()
}

func (e *Engine) closeErr() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastErr != nil {
		return e.lastErr
	}
	return ErrEngineClosed
}

// readLoop owns reading from conn: it accumulates bytes, decodes complete
// response lines, and forwards each Response to decoded. It exits (closing
// decoded) on any read error, including io.EOF.
func (e *Engine) readLoop(decoded chan<- Response, readErrs chan<- error) {
	defer close(decoded)
	var buf []byte
	chunk := make([]byte, 4096)
	for {
		n, err := e.conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			for {
				responses, consumed, derr := Decode(buf)
				if derr != nil && derr != ErrIncomplete {
					readErrs <- derr
					return
				}
				if consumed == 0 {
					break
				}
				buf = buf[consumed:]
				for _, r := range responses {
					decoded <- r
				}
			}
		}
		if err != nil {
			readErrs <- err
			return
		}
	}
}

// run is the single owner goroutine: it drains decoded lines and
// submitted requests, keeps at most one request active, and performs the
// ATE0 priming handshake before serving the first real submission.
func (e *Engine) run(decoded <-chan Response, readErrs <-chan error, opts Options) {
	var queue []*pendingRequest
	var active *pendingRequest

	fail := func(err error) {
		err = fmt.Errorf("%w: %w", ErrTransportClosed, err)
		e.shutdown(err)
		if active != nil {
			active.reply <- submitResult{err: err}
			active = nil
		}
		for _, req := range queue {
			req.reply <- submitResult{err: err}
		}
		queue = nil
		close(e.urcCh)
	}

	if opts.PrimeEchoOff {
		active = &pendingRequest{cmd: Execute("E0"), reply: make(chan submitResult, 1), discard: true}
		if _, err := e.conn.Write(Encode(active.cmd)); err != nil {
			fail(errors.Wrap(err, "at: priming write failed"))
			return
		}
	}

	for {
		select {
		case resp, ok := <-decoded:
			if !ok {
				fail(errors.Wrap(<-readErrs, "at: transport read failed"))
				return
			}
			e.handleResponse(resp, &active, &queue)
		case req, ok := <-e.submitCh:
			if !ok {
				return
			}
			queue = append(queue, req)
		}

		if active == nil && len(queue) > 0 {
			active, queue = queue[0], queue[1:]
			if _, err := e.conn.Write(Encode(active.cmd)); err != nil {
				fail(errors.Wrap(err, "at: write failed"))
				return
			}
		}
	}
}

func (e *Engine) handleResponse(resp Response, activeSlot **pendingRequest, queue *[]*pendingRequest) {
	active := *activeSlot
	if active == nil {
		e.routeUrc(resp)
		return
	}
	if resp.Kind != ResponseResult {
		if active.cmd.isExpected(paramOf(resp)) {
			active.accumulate(resp)
		} else {
			e.routeUrc(resp)
		}
		return
	}
	packet := ResponsePacket{Responses: active.drain(), Status: resp.Result}
	if !active.discard {
		active.reply <- submitResult{packet: packet}
	}
	*activeSlot = nil
}

func paramOf(r Response) string {
	if r.Kind == ResponseInformation {
		return r.Param
	}
	return ""
}

func (e *Engine) routeUrc(resp Response) {
	select {
	case e.urcCh <- resp:
	case <-e.closed:
	}
}

func (r *pendingRequest) accumulate(resp Response) {
	r.accumulated = append(r.accumulated, resp)
}

func (r *pendingRequest) drain() []Response {
	out := r.accumulated
	r.accumulated = nil
	return out
}
