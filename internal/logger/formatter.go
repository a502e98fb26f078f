package logger

import (
	"encoding/json"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// lokiPush is the body of a Loki /loki/api/v1/push request.
type lokiPush struct {
	Streams []lokiStream `json:"streams"`
}

type lokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}

// jobLabel is the Loki stream label; APP_NAME when set.
func jobLabel() string {
	if name := os.Getenv("APP_NAME"); name != "" {
		return name
	}
	return "catalog-crud"
}

func buildLogEntry(level, message string, attrs []slog.Attr) lokiPush {
	now := time.Now()
	return lokiPush{Streams: []lokiStream{{
		Stream: map[string]string{"level": level, "job": jobLabel()},
		Values: [][2]string{{strconv.FormatInt(now.UnixNano(), 10), buildLogLine(level, message, now, attrs)}},
	}}}
}

// buildLogLine renders one JSON line. level, message and time win over attrs
// of the same name.
func buildLogLine(level, message string, at time.Time, attrs []slog.Attr) string {
	line := make(map[string]any, len(attrs)+3)
	for _, a := range attrs {
		line[a.Key] = a.Value.Any()
	}
	line["level"] = level
	line["message"] = message
	line["time"] = at.Format(time.RFC3339)

	b, err := json.Marshal(line)
	if err != nil {
		return `{"level":"` + level + `","message":` + strconv.Quote(message) + `}`
	}
	return string(b)
}
