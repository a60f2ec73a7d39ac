package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"ACCOUNT_INACTIVE", http.StatusUnauthorized},
		{"INVALID_TOKEN", http.StatusForbidden},
		{"NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusBadRequest},
		{"NO_VALID_FIELDS", http.StatusBadRequest},
		{"OTP_MAX_ATTEMPTS", http.StatusBadRequest},
		{"RATE_LIMITED", http.StatusTooManyRequests},
		{"OTP_SEND_FAILED", http.StatusInternalServerError},
		{"SOMETHING_NOBODY_MAPPED", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestResponseShapes(t *testing.T) {
	ok := NewSuccessResponse(map[string]int{"job_no": 7})
	assert.True(t, ok.Success)
	assert.Nil(t, ok.Error)

	msg := NewMessageResponse("Verification code sent to your email")
	assert.True(t, msg.Success)
	assert.Equal(t, "Verification code sent to your email", msg.Message)

	fail := NewErrorResponseWithRequestID("NOT_FOUND", "Booking not found", "req-1")
	assert.False(t, fail.Success)
	assert.Equal(t, "NOT_FOUND", fail.Error.Code)
	assert.Equal(t, "req-1", fail.RequestID)
}
