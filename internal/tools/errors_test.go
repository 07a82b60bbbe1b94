package tools

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKindOf(t *testing.T) {
	if KindOf(NotFound("op", "gone")) != KindNotFound {
		t.Fatalf("expected not_found")
	}
	if KindOf(Validation("op", "bad")) != KindValidation {
		t.Fatalf("expected validation_error")
	}
	if KindOf(ProcessFailure("op", errors.New("boom"), "", 1)) != KindProcess {
		t.Fatalf("expected process_error")
	}
	if KindOf(errors.New("plain")) != "" {
		t.Fatalf("foreign errors have no kind")
	}
}

func TestKindOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", NotFound("op", "gone"))
	if KindOf(wrapped) != KindNotFound {
		t.Fatalf("expected kind through wrapping")
	}
}

func TestProcessFailureCarriesStderrAndExitCode(t *testing.T) {
	err := ProcessFailure("git commit", errors.New("exit status 1"), "nothing to commit", 1)
	if !strings.Contains(err.Error(), "nothing to commit") {
		t.Fatalf("expected stderr in message, got %q", err.Error())
	}
	if ExitCodeOf(err) != 1 {
		t.Fatalf("expected exit code 1, got %d", ExitCodeOf(err))
	}
}

func TestExitCodeOfForeignError(t *testing.T) {
	if ExitCodeOf(errors.New("plain")) != -1 {
		t.Fatalf("expected -1 for foreign error")
	}
}
