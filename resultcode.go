package at

import (
	"fmt"
	"strconv"
	"strings"
)

// CmsError is the ~50-variant GSM TS 27.005 CMS error taxonomy. Codes
// follow the numbering used by the modems this package targets; the table
// is carried over from the GSM TS 27.005 reference the original Rust library
// pinned its error strings against.
type CmsError int

const (
	CmsUnassignedNumber             CmsError = 1
	CmsOperatorDeterminedBarring    CmsError = 8
	CmsCallBarred                   CmsError = 10
	CmsTransferRejected             CmsError = 21
	CmsDestinationOutOfService      CmsError = 27
	CmsUnidentifiedSubscriber       CmsError = 28
	CmsFacilityRejected             CmsError = 29
	CmsUnknownSubscriber            CmsError = 30
	CmsNetworkOutOfOrder            CmsError = 38
	CmsTemporaryFailure             CmsError = 41
	CmsCongestion                   CmsError = 42
	CmsResourcesUnavailable         CmsError = 47
	CmsNotSubscribed                CmsError = 50
	CmsNotImplemented               CmsError = 69
	CmsInvalidReferenceValue        CmsError = 81
	CmsInvalidMessage               CmsError = 95
	CmsInvalidMandatoryInformation  CmsError = 96
	CmsNonexistentMessageType       CmsError = 97
	CmsIncompatibleMessage          CmsError = 98
	CmsNonexistentInformationElement CmsError = 99
	CmsProtocolError                CmsError = 111
	CmsInternetworkingError         CmsError = 127
	CmsMeFailure                    CmsError = 300
	CmsSmsServiceReserved           CmsError = 301
	CmsNotAllowed                   CmsError = 302
	CmsNotSupported                 CmsError = 303
	CmsInvalidPduModeParameter      CmsError = 304
	CmsInvalidTextModeParameter     CmsError = 305
	CmsSimNotInserted               CmsError = 310
	CmsSimPinRequired               CmsError = 311
	CmsPhSimPinRequired             CmsError = 312
	CmsSimFailure                   CmsError = 313
	CmsSimBusy                      CmsError = 314
	CmsSimWrong                     CmsError = 315
	CmsSimPukRequired               CmsError = 316
	CmsSimPin2Required              CmsError = 317
	CmsSimPuk2Required              CmsError = 318
	CmsMemoryFailure                CmsError = 320
	CmsInvalidMemoryIndex           CmsError = 321
	CmsMemoryFull                   CmsError = 322
	CmsSmscAddressUnknown           CmsError = 330
	CmsNoNetworkService             CmsError = 331
	CmsNetworkTimeout               CmsError = 332
	CmsNoCnmaAcknowledgementExpected CmsError = 340
	CmsUnknownError                 CmsError = 500
)

var cmsErrorNames = map[CmsError]string{
	CmsUnassignedNumber:              "Unassigned (unallocated) number",
	CmsOperatorDeterminedBarring:     "Operator determined barring",
	CmsCallBarred:                    "Call barred",
	CmsTransferRejected:              "Short message transfer rejected",
	CmsDestinationOutOfService:       "Destination out of service",
	CmsUnidentifiedSubscriber:        "Unidentified subscriber",
	CmsFacilityRejected:              "Facility rejected",
	CmsUnknownSubscriber:             "Unknown subscriber",
	CmsNetworkOutOfOrder:             "Network out of order",
	CmsTemporaryFailure:              "Temporary failure",
	CmsCongestion:                    "Congestion",
	CmsResourcesUnavailable:          "Resources unavailable, unspecified",
	CmsNotSubscribed:                 "Requested facility not subscribed",
	CmsNotImplemented:                "Requested facility not implemented",
	CmsInvalidReferenceValue:         "Invalid short message transfer reference value",
	CmsInvalidMessage:                "Invalid message, unspecified",
	CmsInvalidMandatoryInformation:   "Invalid mandatory information",
	CmsNonexistentMessageType:        "Message type non-existent or not implemented",
	CmsIncompatibleMessage:           "Message not compatible with short message protocol state",
	CmsNonexistentInformationElement: "Information element non-existent or not implemented",
	CmsProtocolError:                 "Protocol error, unspecified",
	CmsInternetworkingError:          "Internetworking, unspecified",
	CmsMeFailure:                     "ME failure",
	CmsSmsServiceReserved:            "SMS service of ME reserved",
	CmsNotAllowed:                    "Operation not allowed",
	CmsNotSupported:                  "Operation not supported",
	CmsInvalidPduModeParameter:       "Invalid PDU mode parameter",
	CmsInvalidTextModeParameter:      "Invalid text mode parameter",
	CmsSimNotInserted:                "(U)SIM not inserted",
	CmsSimPinRequired:                "(U)SIM PIN required",
	CmsPhSimPinRequired:              "PH-(U)SIM PIN required",
	CmsSimFailure:                    "(U)SIM failure",
	CmsSimBusy:                       "(U)SIM busy",
	CmsSimWrong:                      "(U)SIM wrong",
	CmsSimPukRequired:                "(U)SIM PUK required",
	CmsSimPin2Required:               "(U)SIM PIN2 required",
	CmsSimPuk2Required:               "(U)SIM PUK2 required",
	CmsMemoryFailure:                 "Memory failure",
	CmsInvalidMemoryIndex:            "Invalid memory index",
	CmsMemoryFull:                    "Memory full",
	CmsSmscAddressUnknown:            "SMSC address unknown",
	CmsNoNetworkService:              "No network service",
	CmsNetworkTimeout:                "Network timeout",
	CmsNoCnmaAcknowledgementExpected: "No +CNMA acknowledgement expected",
	CmsUnknownError:                  "Unknown error",
}

func (c CmsError) String() string {
	if s, ok := cmsErrorNames[c]; ok {
		return s
	}
	return fmt.Sprintf("CmsError(%d)", int(c))
}

// cmsErrorFromCode maps a numeric +CMS ERROR code to a known CmsError, or
// reports ok == false for a code outside the named table.
func cmsErrorFromCode(code int) (CmsError, bool) {
	c := CmsError(code)
	_, ok := cmsErrorNames[c]
	return c, ok
}

// ResultCodeKind discriminates ResultCode variants.
type ResultCodeKind int

const (
	ResultOk ResultCodeKind = iota
	ResultConnect
	ResultRing
	ResultNoCarrier
	ResultError
	ResultNoDialtone
	ResultBusy
	ResultNoAnswer
	ResultCommandNotSupported
	ResultTooManyParameters
	ResultCmeError
	ResultCmsError
	ResultCmsErrorUnknown
	ResultCmsErrorString
)

// ResultCode is the terminal status line of a ResponsePacket.
type ResultCode struct {
	Kind ResultCodeKind

	CmeCode      int
	Cms          CmsError
	CmsUnknown   int
	CmsString    string
}

func (r ResultCode) String() string {
	switch r.Kind {
	case ResultOk:
		return "OK"
	case ResultConnect:
		return "CONNECT"
	case ResultRing:
		return "RING"
	case ResultNoCarrier:
		return "NO CARRIER"
	case ResultError:
		return "ERROR"
	case ResultNoDialtone:
		return "NO DIALTONE"
	case ResultBusy:
		return "BUSY"
	case ResultNoAnswer:
		return "NO ANSWER"
	case ResultCommandNotSupported:
		return "COMMAND NOT SUPPORT"
	case ResultTooManyParameters:
		return "TOO MANY PARAMETERS"
	case ResultCmeError:
		return fmt.Sprintf("+CME ERROR: %d", r.CmeCode)
	case ResultCmsError:
		return fmt.Sprintf("+CMS ERROR: %d (%s)", int(r.Cms), r.Cms)
	case ResultCmsErrorUnknown:
		return fmt.Sprintf("+CMS ERROR: %d (unknown)", r.CmsUnknown)
	case ResultCmsErrorString:
		return fmt.Sprintf("+CMS ERROR: %s", r.CmsString)
	}
	return "UNKNOWN RESULT"
}

// IsOk reports whether the result code is the successful terminal status.
func (r ResultCode) IsOk() bool {
	return r.Kind == ResultOk
}

var simpleResultCodes = map[string]ResultCodeKind{
	"OK":                   ResultOk,
	"CONNECT":              ResultConnect,
	"RING":                 ResultRing,
	"NO CARRIER":           ResultNoCarrier,
	"ERROR":                ResultError,
	"NO DIALTONE":          ResultNoDialtone,
	"BUSY":                 ResultBusy,
	"NO ANSWER":            ResultNoAnswer,
	"COMMAND NOT SUPPORT":  ResultCommandNotSupported,
	"TOO MANY PARAMETERS":  ResultTooManyParameters,
}

// parseResultCode recognizes a line as a terminal result code. ok is false
// if line does not match any known result-code shape.
func parseResultCode(line string) (ResultCode, bool) {
	if kind, found := simpleResultCodes[line]; found {
		return ResultCode{Kind: kind}, true
	}
	if rest, found := cutPrefix(line, "+CME ERROR:"); found {
		rest = strings.TrimSpace(rest)
		n, err := strconv.Atoi(rest)
		if err != nil {
			n = -1
		}
		return ResultCode{Kind: ResultCmeError, CmeCode: n}, true
	}
	if rest, found := cutPrefix(line, "+CMS ERROR:"); found {
		rest = strings.TrimSpace(rest)
		if n, err := strconv.Atoi(rest); err == nil {
			if cms, known := cmsErrorFromCode(n); known {
				return ResultCode{Kind: ResultCmsError, Cms: cms}, true
			}
			return ResultCode{Kind: ResultCmsErrorUnknown, CmsUnknown: n}, true
		}
		return ResultCode{Kind: ResultCmsErrorString, CmsString: rest}, true
	}
	return ResultCode{}, false
}

func cutPrefix(s, prefix string) (string, bool) {
	if strings.HasPrefix(s, prefix) {
		return s[len(prefix):], true
	}
	return "", false
}
