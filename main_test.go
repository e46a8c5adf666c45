package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func Test_Startup(t *testing.T) {
	rtr := startup()

	rq := httptest.NewRequest(http.MethodPost, "/api/session", nil)
	rr := httptest.NewRecorder()
	rtr.ServeHTTP(rr, rq)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "DAW BASIC v0.1")
}

func Test_LogLevel(t *testing.T) {
	tests := []struct {
		name string
		exp  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"shouting", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.exp, logLevel(tt.name), "level %q", tt.name)
	}
}
