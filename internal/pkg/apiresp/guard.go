package apiresp

import (
	"context"
	"fmt"
)

// NoMatchMessage is the message of the failure envelope produced when a
// mutation matched no rows.
const NoMatchMessage = "no matching record"

// Tx is the narrow transaction capability consumed by the guard helpers.
// pgx.Tx satisfies it.
type Tx interface {
	Rollback(ctx context.Context) error
}

// Mutation exposes the affected-row count of a completed mutation.
// pgconn.CommandTag satisfies it.
type Mutation interface {
	RowsAffected() int64
}

// RollbackOnError checks the outcome of a transactional step.
//
// When stepErr is non-nil the transaction is rolled back and a failure
// envelope with the given code is returned with done=true; the caller must
// return the envelope from the enclosing operation immediately. The
// rollback completes before the envelope is produced, so a caller observing
// the failure response is guaranteed the transaction is closed.
//
// A rollback that itself fails is infrastructure failure, not business
// failure: it is returned as a hard error (done=true, resp zero) and must
// terminate the enclosing operation without producing a client response.
//
// When stepErr is nil, control falls through with done=false.
//
// Usage:
//
//	tag, execErr := tx.Exec(ctx, query, args...)
//	if resp, done, err := apiresp.RollbackOnError(ctx, tx, execErr, codeUpdateFailed); done {
//		return resp, err
//	}
func RollbackOnError(ctx context.Context, tx Tx, stepErr error, code int32) (resp Resp, done bool, err error) {
	if stepErr == nil {
		return Resp{}, false, nil
	}
	if rbErr := tx.Rollback(ctx); rbErr != nil {
		return Resp{}, true, fmt.Errorf("rollback failed: %v (step error: %w)", rbErr, stepErr)
	}
	return Error(code, stepErr.Error()), true, nil
}

// RollbackOnNoMatch behaves like RollbackOnError and additionally treats a
// successful mutation that affected zero rows as a failure requiring
// rollback: the returned envelope carries the given code and
// NoMatchMessage.
func RollbackOnNoMatch(ctx context.Context, tx Tx, tag Mutation, stepErr error, code int32) (resp Resp, done bool, err error) {
	if resp, done, err := RollbackOnError(ctx, tx, stepErr, code); done {
		return resp, done, err
	}
	if tag.RowsAffected() == 0 {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return Resp{}, true, fmt.Errorf("rollback failed: %w", rbErr)
		}
		return Error(code, NoMatchMessage), true, nil
	}
	return Resp{}, false, nil
}
