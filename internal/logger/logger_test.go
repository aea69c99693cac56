package logger

import "testing"

func TestNewReturnsLogger(t *testing.T) {
	l := New()
	if l == nil {
		t.Fatal("expected logger instance")
	}
	if !l.Enabled(nil, 0) {
		t.Fatal("expected info level to be enabled")
	}
}
