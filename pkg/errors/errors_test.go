package errors

import (
	"errors"
	"math"
	"testing"

	"github.com/matzehuels/floatplace/pkg/geom"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidPlacement, "bad placement: %s", "middle")

	if err.Code != ErrCodeInvalidPlacement {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidPlacement)
	}

	expected := "INVALID_PLACEMENT: bad placement: middle"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidScenario, cause, "decode scenario")

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeInvalidRect, "test"), ErrCodeInvalidRect, true},
		{"non-matching code", New(ErrCodeInvalidRect, "test"), ErrCodeInternal, false},
		{"wrapped error", Wrap(ErrCodeInvalidScenario, New(ErrCodeInvalidRect, "inner"), "outer"), ErrCodeInvalidScenario, true},
		{"non-Error type", errors.New("plain error"), ErrCodeInvalidInput, false},
		{"nil error", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidOffset, "friendly message")
	if GetCode(err) != ErrCodeInvalidOffset {
		t.Errorf("GetCode() = %v", GetCode(err))
	}
	if GetCode(errors.New("plain")) != "" {
		t.Error("GetCode(plain) should be empty")
	}
	if UserMessage(err) != "friendly message" {
		t.Errorf("UserMessage() = %q", UserMessage(err))
	}
	if UserMessage(errors.New("plain error")) != "plain error" {
		t.Error("UserMessage(plain) should be the error string")
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(New(ErrCodeInvalidScript, "x")) {
		t.Error("INVALID_SCRIPT should be a validation error")
	}
	if IsValidation(New(ErrCodeScriptTimeout, "x")) {
		t.Error("SCRIPT_TIMEOUT should not be a validation error")
	}
	if IsValidation(errors.New("plain")) {
		t.Error("plain errors are not validation errors")
	}
}

func TestValidatePlacement(t *testing.T) {
	if p, err := ValidatePlacement("left-end"); err != nil || p != geom.LeftEnd {
		t.Errorf("ValidatePlacement(left-end) = %q, %v", p, err)
	}
	if _, err := ValidatePlacement("up"); !Is(err, ErrCodeInvalidPlacement) {
		t.Errorf("err = %v, want INVALID_PLACEMENT", err)
	}
}

func TestValidateRect(t *testing.T) {
	tests := []struct {
		name    string
		rect    geom.Rect
		wantErr bool
	}{
		{"zero", geom.Rect{}, false},
		{"negative position", geom.Rect{X: -10, Y: -5, Width: 1, Height: 1}, false},
		{"negative width", geom.Rect{Width: -1}, true},
		{"NaN", geom.Rect{Height: math.NaN()}, true},
		{"Inf", geom.Rect{X: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRect("reference", tt.rect)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRect() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidRect) {
				t.Errorf("err = %v, want INVALID_RECT", err)
			}
		})
	}
}

func TestValidateOffsetValue(t *testing.T) {
	if err := ValidateOffsetValue("main_axis", -4); err != nil {
		t.Errorf("negative offsets are valid: %v", err)
	}
	if err := ValidateOffsetValue("main_axis", math.NaN()); !Is(err, ErrCodeInvalidOffset) {
		t.Errorf("err = %v, want INVALID_OFFSET", err)
	}
}
