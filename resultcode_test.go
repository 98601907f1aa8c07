package at

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResultCodeScenarioB(t *testing.T) {
	rc, ok := parseResultCode("+CMS ERROR: 330")
	require.True(t, ok)
	assert.Equal(t, ResultCode{Kind: ResultCmsError, Cms: CmsSmscAddressUnknown}, rc)

	rc, ok = parseResultCode("+CMS ERROR: FAILED")
	require.True(t, ok)
	assert.Equal(t, ResultCode{Kind: ResultCmsErrorString, CmsString: "FAILED"}, rc)

	rc, ok = parseResultCode("OK")
	require.True(t, ok)
	assert.Equal(t, ResultCode{Kind: ResultOk}, rc)
	assert.True(t, rc.IsOk())
}

func TestParseResultCodeCmeError(t *testing.T) {
	rc, ok := parseResultCode("+CME ERROR: 10")
	require.True(t, ok)
	assert.Equal(t, ResultCode{Kind: ResultCmeError, CmeCode: 10}, rc)
}

func TestParseResultCodeCmsErrorUnknownNumeric(t *testing.T) {
	rc, ok := parseResultCode("+CMS ERROR: 9001")
	require.True(t, ok)
	assert.Equal(t, ResultCode{Kind: ResultCmsErrorUnknown, CmsUnknown: 9001}, rc)
}

func TestParseResultCodeSimpleCodes(t *testing.T) {
	cases := map[string]ResultCodeKind{
		"CONNECT":             ResultConnect,
		"RING":                ResultRing,
		"NO CARRIER":          ResultNoCarrier,
		"ERROR":               ResultError,
		"NO DIALTONE":         ResultNoDialtone,
		"BUSY":                ResultBusy,
		"NO ANSWER":           ResultNoAnswer,
		"COMMAND NOT SUPPORT": ResultCommandNotSupported,
		"TOO MANY PARAMETERS": ResultTooManyParameters,
	}
	for line, kind := range cases {
		rc, ok := parseResultCode(line)
		require.True(t, ok, line)
		assert.Equal(t, kind, rc.Kind, line)
	}
}

func TestParseResultCodeNotAResultCode(t *testing.T) {
	_, ok := parseResultCode(`+CREG: 0,1`)
	assert.False(t, ok)
}

func TestCmsErrorExhaustiveNamedCodes(t *testing.T) {
	for code, name := range cmsErrorNames {
		line := "+CMS ERROR: " + itoa(int(code))
		rc, ok := parseResultCode(line)
		require.True(t, ok, line)
		require.Equal(t, ResultCmsError, rc.Kind)
		assert.Equal(t, name, rc.Cms.String())
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		digits = append([]byte{'-'}, digits...)
	}
	return string(digits)
}
