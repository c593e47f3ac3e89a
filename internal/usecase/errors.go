package usecase

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/xavierca1/ligue-attio-sync/internal/infra/integration/attio"
)

// ErrorKind é o tipo de falha de um writer. O chamador decide pelo Kind, não pela mensagem.
type ErrorKind string

const (
	KindValidation ErrorKind = "VALIDATION_ERROR"
	KindNotFound   ErrorKind = "NOT_FOUND_ERROR"
	KindConflict   ErrorKind = "CONFLICT_ERROR"
	KindForbidden  ErrorKind = "FORBIDDEN_ERROR"
	KindTransport  ErrorKind = "TRANSPORT_ERROR"
)

const (
	OpUpsertRecord    = "upsert_record"
	OpAssertListEntry = "assert_list_entry"
	OpCreateNote      = "create_note"
)

// WriteError é o único erro devolvido pelos writers.
type WriteError struct {
	Kind    ErrorKind
	Op      string
	Message string
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

func IsValidationError(err error) bool { return kindOf(err) == KindValidation }
func IsNotFoundError(err error) bool   { return kindOf(err) == KindNotFound }
func IsConflictError(err error) bool   { return kindOf(err) == KindConflict }
func IsForbiddenError(err error) bool  { return kindOf(err) == KindForbidden }
func IsTransportError(err error) bool  { return kindOf(err) == KindTransport }

func kindOf(err error) ErrorKind {
	var we *WriteError
	if errors.As(err, &we) {
		return we.Kind
	}
	return ""
}

// classify traduz o erro do gateway para um WriteError.
func classify(op string, err error) *WriteError {
	var we *WriteError
	if errors.As(err, &we) {
		return we
	}

	out := &WriteError{Kind: KindTransport, Op: op, Message: err.Error(), Err: err}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return out
	}
	if rich.Message != "" {
		out.Message = rich.Message
	}

	if attio.IsMultipleMatch(err) {
		out.Kind = KindConflict
		return out
	}

	switch rich.Category {
	case goerrors.CategoryValidation, goerrors.CategoryBadInput:
		out.Kind = KindValidation
	case goerrors.CategoryNotFound:
		out.Kind = KindNotFound
	case goerrors.CategoryConflict:
		out.Kind = KindConflict
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		out.Kind = KindForbidden
	default:
		out.Kind = KindTransport
	}
	return out
}
