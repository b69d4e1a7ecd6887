// Package apiresp defines the uniform outcome envelope returned by every
// data-access operation in the service, and the conversion protocol that
// turns a fallible operation outcome into a wire-ready JSON string.
//
// Every call site, regardless of the business logic it runs, produces the
// same success/failure shape:
//
//	{"success":true,"code":0,"message":"","data":[1,1,3,5]}
//	{"success":false,"code":-1,"message":"transaction failed","data":null}
//
// The transport layer carries the produced string opaquely; it never needs
// to know what the operation did.
package apiresp

import (
	"encoding/json"
	"log/slog"
)

// FallbackMessage is the message of the envelope emitted when serializing
// a response itself fails.
const FallbackMessage = "processing response failed"

// fallbackJSON is the pre-serialized form of Error(-1, FallbackMessage).
// Serialization of a response must never fail past this boundary, so the
// fallback cannot itself go through the marshaller.
const fallbackJSON = `{"success":false,"code":-1,"message":"` + FallbackMessage + `","data":null}`

// Resp is the outcome envelope. It is created by one of the three
// constructors and immutable afterwards.
//
// Invariants:
//   - a failure envelope never carries data
//   - a success envelope has code 0 and an empty message
//
// The code field is informational metadata for the caller; the envelope
// itself never derives success from it.
type Resp struct {
	success bool
	code    int32
	message string
	data    any
}

// Success builds a success envelope carrying a payload. The payload must be
// JSON-serializable; a payload that is not serializable surfaces through the
// ToJSON fallback, not as an error.
func Success(data any) Resp {
	return Resp{
		success: true,
		code:    0,
		message: "",
		data:    data,
	}
}

// Suc builds a success envelope with no payload. Use it when the operation
// has nothing to report beyond "it worked".
func Suc() Resp {
	return Resp{success: true}
}

// Error builds a failure envelope with a caller-chosen code and message.
// The code is not validated; callers choose a non-zero code by convention.
func Error(code int32, message string) Resp {
	return Resp{
		success: false,
		code:    code,
		message: message,
	}
}

// IsSuccess reports whether the operation completed without error.
func (r Resp) IsSuccess() bool { return r.success }

// Code returns the response code: 0 on success, caller-chosen otherwise.
func (r Resp) Code() int32 { return r.code }

// Message returns the human-readable failure description, empty on success.
func (r Resp) Message() string { return r.message }

// Data returns the success payload, nil when the envelope carries none.
func (r Resp) Data() any { return r.data }

// respWire is the fixed wire shape of the envelope. The data field is
// always emitted, null when there is no payload.
type respWire struct {
	Success bool   `json:"success"`
	Code    int32  `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// MarshalJSON implements json.Marshaler.
func (r Resp) MarshalJSON() ([]byte, error) {
	return json.Marshal(respWire{
		Success: r.success,
		Code:    r.code,
		Message: r.message,
		Data:    r.data,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Resp) UnmarshalJSON(b []byte) error {
	var w respWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	r.success = w.Success
	r.code = w.Code
	r.message = w.Message
	r.data = w.Data
	return nil
}

// ToJSON serializes the envelope. A marshalling failure is logged and
// replaced with the serialized fallback envelope instead of being
// propagated: a response serialization error must never escape to the
// transport layer.
func (r Resp) ToJSON() string {
	b, err := json.Marshal(r)
	if err != nil {
		slog.Error("failed to serialize response envelope",
			slog.Int("code", int(r.code)),
			slog.String("error", err.Error()),
		)
		return fallbackJSON
	}
	return string(b)
}

// ToJSONStr implements Transformer for a bare envelope: an envelope already
// in hand has no error path, so the log label is unused.
func (r Resp) ToJSONStr(errLog string) string {
	return r.ToJSON()
}
