package cli

import (
	"time"

	"github.com/valter-silva-au/wellness-brain/internal/observability"
)

// EventLog is the observability event log shared by CLI commands.
// Set during application wiring; may be nil when observability is disabled.
var EventLog observability.EventLog

// logCLIEvent writes an event if the log is available. Event logging is
// best-effort and never fails a command.
func logCLIEvent(eventType string, data map[string]any) {
	if EventLog == nil {
		return
	}
	_ = EventLog.Write(observability.Event{
		Time:  time.Now().UTC(),
		Level: "INFO",
		Type:  eventType,
		Data:  data,
	})
}
