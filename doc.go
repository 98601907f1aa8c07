// Package at implements the Hayes/AT command protocol spoken by cellular
// modems over a serial byte stream, with particular emphasis on sending
// and receiving SMS in binary PDU mode.
//
// Engine
//
// Engine owns a modem byte stream for its entire lifetime. Callers submit
// a Command and receive a ResponsePacket once its terminal ResultCode
// arrives; unsolicited result codes and information responses that don't
// belong to the in-flight command are delivered separately via URCs.
//
// Facade
//
// commands.go wraps the engine with typed helpers for a representative set
// of commands — registration state, signal quality, PIN entry, and the SMS
// send/list/delete family — built on top of the sms package's PDU codec.
package at
