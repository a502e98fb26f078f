package utils

import (
	"os"
	"sync"
)

// GetHost returns the machine hostname, resolved on first use. Logs, spans
// and profiles all tag with it.
var GetHost = sync.OnceValue(func() string {
	if h, err := os.Hostname(); err == nil && h != "" {
		return h
	}
	return "unknown"
})
