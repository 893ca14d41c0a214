package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidRange, "invalid genome range: %s", "chrX:abc")
	want := "INVALID_RANGE: invalid genome range: chrX:abc"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("file not found")
	err := Wrap(ErrCodeFetch, cause, "read %s", "genes.bed")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "file not found") {
		t.Errorf("Error() should include cause, got %q", err.Error())
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrCodeInsufficientSides, "at least 2 sides required")
	if !Is(err, ErrCodeInsufficientSides) {
		t.Error("Is should match the error code")
	}
	if Is(err, ErrCodeInvalidCenter) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is should not match plain errors")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeRender, "boom")); got != ErrCodeRender {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeRender)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestOperandErrorNamesBothTypes(t *testing.T) {
	type trackA struct{}
	type frameB struct{}
	err := OperandError(trackA{}, frameB{})

	if !Is(err, ErrCodeUnsupportedOperand) {
		t.Fatal("expected UNSUPPORTED_OPERAND code")
	}
	msg := err.Error()
	if !strings.Contains(msg, "trackA") || !strings.Contains(msg, "frameB") {
		t.Errorf("message should name both operand types, got %q", msg)
	}
}

func TestExtensionErrorEnumeratesAccepted(t *testing.T) {
	err := ExtensionError("contacts.tsv", ".bedpe", ".pairs")
	msg := err.Error()
	for _, want := range []string{"contacts.tsv", ".bedpe", ".pairs"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q: %q", want, msg)
		}
	}
}
