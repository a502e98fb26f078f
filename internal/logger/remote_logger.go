package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"
)

type shipment struct {
	uri  string
	body lokiPush
}

// remoteQueue feeds a single background shipper. When Loki is slow the queue
// fills and new entries are dropped instead of piling up goroutines.
var (
	remoteQueue  = make(chan shipment, 256)
	remoteClient = &http.Client{Timeout: 5 * time.Second}
	shipperOnce  sync.Once
)

// sendLog queues the entry for REMOTE_LOG_HTTP_URI. It never blocks the caller.
func sendLog(level, message string, attrs []slog.Attr) {
	uri := os.Getenv("REMOTE_LOG_HTTP_URI")
	if uri == "" {
		return
	}
	shipperOnce.Do(func() { go ship() })

	select {
	case remoteQueue <- shipment{uri: uri, body: buildLogEntry(level, message, attrs)}:
	default:
		fmt.Fprintln(os.Stderr, "Remote log queue full, dropping entry")
	}
}

func ship() {
	for s := range remoteQueue {
		if err := push(s); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to send to remote log: %v\n", err)
		}
	}
}

func push(s shipment) error {
	data, err := json.Marshal(s.body)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.uri, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := remoteClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("remote log returned status %d", resp.StatusCode)
	}
	return nil
}
