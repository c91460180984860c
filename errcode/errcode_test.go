package errcode

import (
	"errors"
	"testing"
)

func TestCodeIsError(t *testing.T) {
	var err error = DuplicateID
	if err.Error() != "duplicate_id" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestOf(t *testing.T) {
	if Of(nil) != OK {
		t.Fatal("nil should map to ok")
	}
	if Of(LayoutFault) != LayoutFault {
		t.Fatal("bare code should pass through")
	}
	e := &E{C: InitFailed, Msg: "hook returned error", Err: errors.New("boom")}
	if Of(e) != InitFailed {
		t.Fatal("wrapper code not extracted")
	}
	if Of(errors.New("plain")) != Error {
		t.Fatal("unknown error should map to generic fallback")
	}
}

func TestEUnwrap(t *testing.T) {
	cause := errors.New("bus stuck")
	e := &E{C: InitFailed, Err: cause}
	if !errors.Is(e, cause) {
		t.Fatal("cause not reachable through Unwrap")
	}
}
