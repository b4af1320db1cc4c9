package utils

import (
	"log"
	"strings"
)

// LogEvent writes one application log line. The module tag groups lines per
// feature area (booking, user, admin) and action names the operation.
// Keep message free of credentials and raw request payloads.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s",
		strings.ToUpper(strings.TrimSpace(module)), action, req, message)
}
