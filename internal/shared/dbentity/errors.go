package dbentity

import (
	"fmt"

	"shamtool/modules/kit/errx"
)

const (
	// CodeConfiguration marks a misdeclared entity type or a call the type does not support.
	CodeConfiguration errx.Code = "ENTITY_CONFIGURATION"
	// CodeNotFound marks a load whose identity matched no row.
	CodeNotFound errx.Code = "ENTITY_NOT_FOUND"
	// CodeStorage reuses the kit's unavailable code so storage failures alert like any dependency.
	CodeStorage = errx.CodeUnavailable
)

var (
	// ErrConfiguration is a programmer error. It is not meant to be handled, only reported.
	ErrConfiguration = errx.NewSys(CodeConfiguration, "entity misconfigured")
	// ErrStorage wraps statement preparation and execution failures.
	ErrStorage = errx.NewSys(CodeStorage, "storage operation failed")
	// ErrNotFound is the one error controllers are expected to translate for clients.
	ErrNotFound = errx.NewBiz(CodeNotFound, "record not found")
)

func configErrorf(format string, args ...any) *errx.Error {
	return ErrConfiguration.WithCause(fmt.Errorf(format, args...))
}

func storageError(op, table string, cause error) *errx.Error {
	return ErrStorage.WithData("op", op).WithData("table", table).WithCause(cause)
}
