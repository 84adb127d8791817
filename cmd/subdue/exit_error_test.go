// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"
)

func TestExitErrorMessage(t *testing.T) {
	e := &ExitError{Code: 3}
	if got, want := e.Error(), "exit status 3"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := errors.New("command blew up")
	e = &ExitError{Code: 1, Err: wrapped}
	if got := e.Error(); got != wrapped.Error() {
		t.Errorf("Error() = %q, want %q", got, wrapped.Error())
	}
	if !errors.Is(e, wrapped) {
		t.Error("errors.Is should see the wrapped error")
	}
}
