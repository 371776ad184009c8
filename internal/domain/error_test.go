package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "message only",
			err: &Error{
				Code:    EINVALID,
				Message: "invalid input",
			},
			expected: "invalid input",
		},
		{
			name: "with operation",
			err: &Error{
				Code:    EINVALID,
				Op:      "cart.add",
				Message: "invalid input",
			},
			expected: "cart.add: invalid input",
		},
		{
			name: "with wrapped error",
			err: &Error{
				Code:    EINTERNAL,
				Op:      "order.create",
				Message: "failed to save",
				Err:     errors.New("database connection failed"),
			},
			expected: "order.create: failed to save: database connection failed",
		},
		{
			name: "wrapped error without op",
			err: &Error{
				Code:    EINTERNAL,
				Message: "failed to save",
				Err:     errors.New("database connection failed"),
			},
			expected: "failed to save: database connection failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{
		Code:    EINTERNAL,
		Message: "wrapped",
		Err:     underlying,
	}

	if unwrapped := err.Unwrap(); unwrapped != underlying {
		t.Errorf("Error.Unwrap() = %v, want %v", unwrapped, underlying)
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find underlying error")
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"domain error", &Error{Code: ESTOCK, Message: "test"}, ESTOCK},
		{"wrapped domain error", fmt.Errorf("wrapped: %w", &Error{Code: ENOTFOUND, Message: "test"}), ENOTFOUND},
		{"validation error", NewValidationError("cart.add", "quantity", "is required"), EINVALID},
		{"non-domain error", errors.New("some error"), EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.expected {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"domain error with message", &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}, "Quantity must be greater than 0"},
		{"internal error hides message", &Error{Code: EINTERNAL, Message: "database connection string leaked"}, internalMessage},
		{"validation error", NewValidationError("cart.add", "plantId", "is required"), "Validation failed"},
		{"upstream keeps safe message", Upstream(errors.New("BAD_REQUEST_ERROR: key_secret"), "payment.verify"), "Payment gateway request failed"},
		{"non-domain error returns generic message", errors.New("some internal detail"), internalMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.expected {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorOp(t *testing.T) {
	if got := ErrorOp(nil); got != "" {
		t.Errorf("ErrorOp(nil) = %q", got)
	}
	if got := ErrorOp(&Error{Code: EINVALID, Op: "order.cancel"}); got != "order.cancel" {
		t.Errorf("ErrorOp() = %q, want order.cancel", got)
	}
	if got := ErrorOp(errors.New("test")); got != "" {
		t.Errorf("ErrorOp(non-domain) = %q, want empty", got)
	}
}

func TestErrorf(t *testing.T) {
	err := Errorf(EINVALID, "cart.add", "invalid quantity: %d", -1)

	var domainErr *Error
	if !errors.As(err, &domainErr) {
		t.Fatal("Errorf should return *Error")
	}
	if domainErr.Code != EINVALID {
		t.Errorf("Code = %q, want %q", domainErr.Code, EINVALID)
	}
	if domainErr.Op != "cart.add" {
		t.Errorf("Op = %q, want cart.add", domainErr.Op)
	}
	if domainErr.Message != "invalid quantity: -1" {
		t.Errorf("Message = %q", domainErr.Message)
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, EINTERNAL, "op", "msg") != nil {
		t.Error("WrapError(nil) should return nil")
	}

	underlying := errors.New("connection refused")
	err := WrapError(underlying, EINTERNAL, "order.get", "failed to load order")
	if !errors.Is(err, underlying) {
		t.Error("wrapped error should match underlying")
	}
	if ErrorCode(err) != EINTERNAL {
		t.Errorf("ErrorCode = %q, want %q", ErrorCode(err), EINTERNAL)
	}
}

func TestWithOp(t *testing.T) {
	err := WithOp(ErrOrderNotFound, "order.get")

	if !errors.Is(err, ErrOrderNotFound) {
		t.Error("WithOp result should match the sentinel")
	}
	if ErrorOp(err) != "order.get" {
		t.Errorf("ErrorOp = %q, want order.get", ErrorOp(err))
	}
	if ErrorMessage(err) != ErrOrderNotFound.Message {
		t.Errorf("ErrorMessage = %q", ErrorMessage(err))
	}
	if ErrOrderNotFound.Op != "" {
		t.Error("WithOp must not mutate the sentinel")
	}
}

func TestValidationError(t *testing.T) {
	t.Run("single field", func(t *testing.T) {
		err := NewValidationError("cart.add", "quantity", "must be at least 1")
		if got := err.Error(); got != "cart.add: quantity: must be at least 1" {
			t.Errorf("Error() = %q", got)
		}
		if !IsValidationError(err) {
			t.Error("IsValidationError should be true")
		}
	})

	t.Run("add field", func(t *testing.T) {
		err := NewValidationError("cart.add", "quantity", "must be at least 1")
		err = AddFieldError(err, "plantId", "is required")

		fields := GetValidationFields(err)
		if len(fields) != 2 {
			t.Fatalf("len(fields) = %d, want 2", len(fields))
		}
		if got := err.Error(); got != "cart.add: 2 fields failed validation" {
			t.Errorf("Error() = %q", got)
		}
	})

	t.Run("add field to nil", func(t *testing.T) {
		err := AddFieldError(nil, "userId", "is required")
		if GetValidationFields(err)["userId"] != "is required" {
			t.Error("expected userId field")
		}
	})

	t.Run("non-validation error", func(t *testing.T) {
		if GetValidationFields(errors.New("x")) != nil {
			t.Error("expected nil fields")
		}
	})
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"NotFound", NotFound("plant.get", "plant", "abc"), ENOTFOUND},
		{"Invalid", Invalid("payment.create", "Invalid amount"), EINVALID},
		{"Conflict", Conflict("order.cancel", "Order is not cancellable"), ECONFLICT},
		{"Upstream", Upstream(errors.New("timeout"), "payment.verify"), EUPSTREAM},
		{"Internal", Internal(errors.New("boom"), "order.create", "failed"), EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !IsCode(tt.err, tt.code) {
				t.Errorf("code = %q, want %q", ErrorCode(tt.err), tt.code)
			}
		})
	}
}

func TestSentinelCodes(t *testing.T) {
	tests := []struct {
		err  *Error
		code string
	}{
		{ErrOrderNotFound, ENOTFOUND},
		{ErrPlantNotFound, ENOTFOUND},
		{ErrUserNotFound, ENOTFOUND},
		{ErrCartItemNotFound, ENOTFOUND},
		{ErrEmptyCart, EINVALID},
		{ErrInvalidQuantity, EINVALID},
		{ErrInsufficientStock, ESTOCK},
		{ErrPaymentNotCaptured, EPAYMENT},
		{ErrNotAwaitingPayment, ECONFLICT},
		{ErrPaymentAlreadyRecorded, ECONFLICT},
		{ErrOrderFinalized, ECONFLICT},
		{ErrGatewayUnavailable, EUPSTREAM},
	}

	for _, tt := range tests {
		t.Run(tt.err.Message, func(t *testing.T) {
			if ErrorCode(tt.err) != tt.code {
				t.Errorf("code = %q, want %q", ErrorCode(tt.err), tt.code)
			}
		})
	}
}
