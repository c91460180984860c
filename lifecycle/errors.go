package lifecycle

import (
	"strconv"
	"strings"

	"dedrv-go/errcode"
)

// DuplicateIDError reports two descriptors sharing an id. It is a fatal
// configuration error, detected during the scan before any hook runs, and is
// not subject to the per-device failure policy.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return "duplicate device id " + strconv.Quote(e.ID)
}

func (e *DuplicateIDError) Code() errcode.Code { return errcode.DuplicateID }

// InitError reports one device's failed init hook.
type InitError struct {
	ID  string
	Err error
}

func (e *InitError) Error() string      { return "init " + e.ID + ": " + e.Err.Error() }
func (e *InitError) Unwrap() error      { return e.Err }
func (e *InitError) Code() errcode.Code { return errcode.InitFailed }

// CleanupError reports one device's failed cleanup hook.
type CleanupError struct {
	ID  string
	Err error
}

func (e *CleanupError) Error() string      { return "cleanup " + e.ID + ": " + e.Err.Error() }
func (e *CleanupError) Unwrap() error      { return e.Err }
func (e *CleanupError) Code() errcode.Code { return errcode.CleanupFailed }

// Errors aggregates per-device failures under the continue policy. Every
// failed device appears with its id and cause so multi-device boot failures
// can be diagnosed from one report.
type Errors []error

func (e Errors) Error() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(e)))
	b.WriteString(" device(s) failed: ")
	for i, err := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap exposes the members to errors.Is and errors.As.
func (e Errors) Unwrap() []error { return e }
