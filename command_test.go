package at

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandDisplayEquals(t *testing.T) {
	cmd := Equals("+CMGF", IntegerValue(1))
	assert.Equal(t, "AT+CMGF=1", cmd.Display())
	assert.Equal(t, []string{"+CMGF"}, cmd.Expected())
}

func TestCommandDisplayExecute(t *testing.T) {
	assert.Equal(t, "AT+CSQ", Execute("+CSQ").Display())
}

func TestCommandDisplayRead(t *testing.T) {
	assert.Equal(t, "AT+CREG?", Read("+CREG").Display())
}

func TestCommandDisplayTest(t *testing.T) {
	assert.Equal(t, "AT+CREG=?", Test("+CREG").Display())
}

func TestCommandDisplayBasic(t *testing.T) {
	assert.Equal(t, "ATE0", Basic("E", 0, true).Display())
	assert.Equal(t, "ATZ", Basic("Z", 0, false).Display())
}

func TestCommandDisplayText(t *testing.T) {
	cmd := Text("hello\x1A")
	assert.Equal(t, "hello\x1A", cmd.Display())
}

func TestCommandWithExpectedAugments(t *testing.T) {
	cmd := Execute("+CMGS").WithExpected("+CMGS")
	assert.True(t, cmd.isExpected("+CMGS"))
	assert.False(t, cmd.isExpected("+CMTI"))
}

func TestCommandWithExpectedEmptyParam(t *testing.T) {
	cmd := Equals("+CMGL", StringValue("ALL")).WithExpected("")
	assert.True(t, cmd.isExpected(""))
	assert.True(t, cmd.isExpected("+CMGL"))
}
