package at

import "fmt"

// CommandKind discriminates Command variants.
type CommandKind int

const (
	CmdEquals CommandKind = iota
	CmdExecute
	CmdRead
	CmdTest
	CmdBasic
	CmdText
)

// Command is a tagged variant covering every AT command shape this
// package frames onto the wire.
type Command struct {
	Kind CommandKind

	Param    string
	Value    Value
	Command  string
	Number   int
	HasNumber bool
	Text     string

	// expected holds the set of information-response params the engine
	// should treat as belonging to this command rather than routing to
	// the URC sink.
	expected map[string]bool
}

// Equals builds an "AT<param>=<value>" command.
func Equals(param string, value Value) Command {
	return Command{Kind: CmdEquals, Param: param, Value: value, expected: singleExpected(param)}
}

// Execute builds an "AT<command>" command.
func Execute(command string) Command {
	return Command{Kind: CmdExecute, Command: command, expected: singleExpected(command)}
}

// Read builds an "AT<param>?" command.
func Read(param string) Command {
	return Command{Kind: CmdRead, Param: param, expected: singleExpected(param)}
}

// Test builds an "AT<param>=?" command.
func Test(param string) Command {
	return Command{Kind: CmdTest, Param: param, expected: singleExpected(param)}
}

// Basic builds an "AT<command>[<n>]" command — the bare dial-tone style
// commands like ATE0, ATZ, ATA.
func Basic(command string, number int, hasNumber bool) Command {
	return Command{Kind: CmdBasic, Command: command, Number: number, HasNumber: hasNumber}
}

// Text builds a raw-payload command: no "AT" framing at all, sent exactly
// as text (used for the PDU/payload phase of a two-step AT+CMGS send).
// expected names the information-response headers this send may still be
// waiting on (the AT+CMGS sends in commands.go pass "+CMGS" for the
// modem's "+CMGS: <mr>" reply; the payload's own result code ends it).
func Text(text string, expected ...string) Command {
	return Command{Kind: CmdText, Text: text, expected: setOf(expected)}
}

// WithExpected augments a Command's expected-parameter set, for callers
// that need information responses beyond the command's own name (e.g.
// CMGL adds the empty param "" so the unprefixed hex PDU lines, which
// decode as Unknown responses, stay with the +CMGL command).
func (c Command) WithExpected(params ...string) Command {
	if c.expected == nil {
		c.expected = map[string]bool{}
	}
	for _, p := range params {
		c.expected[p] = true
	}
	return c
}

func singleExpected(param string) map[string]bool {
	return map[string]bool{param: true}
}

func setOf(params []string) map[string]bool {
	m := map[string]bool{}
	for _, p := range params {
		m[p] = true
	}
	return m
}

// Expected returns the set of information-response params the engine
// should attribute to this command.
func (c Command) Expected() []string {
	out := make([]string, 0, len(c.expected))
	for p := range c.expected {
		out = append(out, p)
	}
	return out
}

// isExpected reports whether param belongs to this command's expected set.
func (c Command) isExpected(param string) bool {
	return c.expected[param]
}

// Display renders the command's grammar form, the text that Encode wraps
// in "\r\n...\r\n" (or, for CmdText, sends completely unframed).
func (c Command) Display() string {
	switch c.Kind {
	case CmdEquals:
		return fmt.Sprintf("AT%s=%s", c.Param, c.Value.String())
	case CmdExecute:
		return "AT" + c.Command
	case CmdRead:
		return fmt.Sprintf("AT%s?", c.Param)
	case CmdTest:
		return fmt.Sprintf("AT%s=?", c.Param)
	case CmdBasic:
		if c.HasNumber {
			return fmt.Sprintf("AT%s%d", c.Command, c.Number)
		}
		return "AT" + c.Command
	case CmdText:
		return c.Text
	}
	return ""
}
