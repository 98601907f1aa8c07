package at

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineInformationResponse(t *testing.T) {
	r := parseLine(`+CREG: 0,1`)
	assert.Equal(t, ResponseInformation, r.Kind)
	assert.Equal(t, "+CREG", r.Param)
	assert.Equal(t, ArrayValue([]Value{IntegerValue(0), IntegerValue(1)}), r.Value)
}

func TestParseLineResultCode(t *testing.T) {
	r := parseLine("OK")
	assert.Equal(t, ResponseResult, r.Kind)
	assert.True(t, r.Result.IsOk())
}

func TestParseLineUnknown(t *testing.T) {
	r := parseLine("07915892000000F0")
	assert.Equal(t, ResponseUnknown, r.Kind)
	assert.Equal(t, "07915892000000F0", r.Text)
}

func TestParseLinesIncompleteTrailer(t *testing.T) {
	_, err := ParseLines("\r\nOK")
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestParseLinesEmptyInput(t *testing.T) {
	responses, err := ParseLines("")
	require.NoError(t, err)
	assert.Nil(t, responses)
}

func TestParseLinesSkipsBlankLines(t *testing.T) {
	responses, err := ParseLines("\r\n\r\nOK\r\n\r\n")
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.True(t, responses[0].Result.IsOk())
}

func TestResponsePacketInformationResponseLookup(t *testing.T) {
	packet := ResponsePacket{
		Responses: []Response{
			{Kind: ResponseInformation, Param: "+CREG", Value: ArrayValue([]Value{IntegerValue(0), IntegerValue(1)})},
		},
		Status: ResultCode{Kind: ResultOk},
	}
	v, ok := packet.InformationResponse("+CREG")
	require.True(t, ok)
	assert.Equal(t, ArrayValue([]Value{IntegerValue(0), IntegerValue(1)}), v)

	_, ok = packet.InformationResponse("+CSQ")
	assert.False(t, ok)
}
