package apiresp

import (
	"fmt"
	"log/slog"
)

// Transformer converts an operation outcome into a caller-facing JSON
// string. errLog is a contextual label written to the diagnostic log when
// the outcome carries an error.
//
// DaoResult is the primary implementation; any type carrying an envelope
// may implement it.
type Transformer interface {
	ToJSONStr(errLog string) string
}

// Compile-time checks
var (
	_ Transformer = DaoResult{}
	_ Transformer = Resp{}
)

// DaoResult is the standard outcome of a data-access operation: either a
// response envelope or an underlying error. It is the normalization point
// where an arbitrary internal failure becomes a stable, client-safe
// code/message pair.
type DaoResult struct {
	resp Resp
	err  error
}

// Ok wraps a successful outcome.
func Ok(resp Resp) DaoResult {
	return DaoResult{resp: resp}
}

// Fail wraps a failed outcome.
func Fail(err error) DaoResult {
	return DaoResult{err: err}
}

// From bridges Go's two-value return into a DaoResult. A non-nil error
// wins over the envelope.
func From(resp Resp, err error) DaoResult {
	if err != nil {
		return Fail(err)
	}
	return Ok(resp)
}

// IsOk reports whether the outcome carries an envelope rather than an error.
func (r DaoResult) IsOk() bool { return r.err == nil }

// Envelope returns the wrapped envelope; meaningful only when IsOk.
func (r DaoResult) Envelope() Resp { return r.resp }

// Err returns the underlying error, nil on success.
func (r DaoResult) Err() error { return r.err }

// ToJSONStr implements Transformer.
//
// On success the envelope is serialized as-is. On failure the error is
// logged once together with errLog, and a generic failure envelope with
// code -1 is serialized in its place: the technical detail of the error
// stays in message and in the log, never in code.
func (r DaoResult) ToJSONStr(errLog string) string {
	if r.err != nil {
		slog.Error(errLog, slog.String("error", fmt.Sprintf("%+v", r.err)))
		return Error(-1, r.err.Error()).ToJSON()
	}
	return r.resp.ToJSON()
}
