package utils

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestLogEvent(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	LogEvent("req-1", "booking", "create", "booking 42 dibuat")
	if line := buf.String(); !strings.Contains(line, "[BOOKING] action=create request_id=req-1 msg=booking 42 dibuat") {
		t.Fatalf("unexpected log line: %q", line)
	}

	buf.Reset()
	LogEvent("", " user ", "login", "login berhasil")
	if line := buf.String(); !strings.Contains(line, "[USER] action=login request_id=- msg=login berhasil") {
		t.Fatalf("unexpected log line: %q", line)
	}
}
