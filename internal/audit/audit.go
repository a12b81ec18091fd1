package audit

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

var jsonMarshal = json.Marshal

// Outcome classifies a tool call. A provider error is a normal return value
// for the caller but is kept apart from success here.
type Outcome string

const (
	OutcomeSuccess       Outcome = "success"
	OutcomeProviderError Outcome = "provider_error"
	OutcomeError         Outcome = "error"
	OutcomeDenied        Outcome = "denied"
)

type Event struct {
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"userId"`
	Tool      string    `json:"tool"`
	Toolset   string    `json:"toolset"`
	Region    string    `json:"region,omitempty"`
	Resources []string  `json:"resources,omitempty"`
	Outcome   Outcome   `json:"outcome"`
	Error     string    `json:"error,omitempty"`
}

// Logger writes one JSON object per line.
type Logger struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

func NewLogger(out io.Writer) *Logger {
	if out == nil {
		out = io.Discard
	}
	return &Logger{out: out, now: time.Now}
}

// Log stamps events that carry no timestamp. Encoding failures drop the
// event.
func (l *Logger) Log(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = l.now().UTC()
	}
	data, err := jsonMarshal(event)
	if err != nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.out.Write(append(data, '\n'))
}
