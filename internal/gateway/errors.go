package gateway

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Op names a gateway operation.
type Op string

const (
	OpCreate Op = "create"
	OpList   Op = "list"
)

// Kind classifies why a gateway operation failed.
type Kind int

const (
	KindInfrastructure Kind = iota
	KindValidation
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	default:
		return "infrastructure"
	}
}

var (
	// ErrWriteRejected matches every failed CreateOne.
	ErrWriteRejected = errors.New("write rejected")
	// ErrReadFailed matches every failed ListAll.
	ErrReadFailed = errors.New("read failed")

	// Kind sentinels. Collection implementations wrap ErrValidation and
	// ErrConflict to report those classes directly.
	ErrValidation     = errors.New("document failed validation")
	ErrConflict       = errors.New("document conflicts with an existing one")
	ErrInfrastructure = errors.New("document store failure")
)

// mongo server code for DocumentValidationFailure.
const codeDocumentValidationFailure = 121

// Error is returned by every failed gateway operation.
type Error struct {
	Op         Op
	Collection string
	Kind       Kind
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Collection, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match both the operation and the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrWriteRejected:
		return e.Op == OpCreate
	case ErrReadFailed:
		return e.Op == OpList
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrConflict:
		return e.Kind == KindConflict
	case ErrInfrastructure:
		return e.Kind == KindInfrastructure
	}
	return false
}

// KindOf returns the failure class of err, KindInfrastructure for non gateway errors.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return classify(err)
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, mongo.ErrNilDocument):
		return KindValidation
	case errors.Is(err, ErrConflict), mongo.IsDuplicateKeyError(err):
		return KindConflict
	}
	var se mongo.ServerError
	if errors.As(err, &se) && se.HasErrorCode(codeDocumentValidationFailure) {
		return KindValidation
	}
	return KindInfrastructure
}
