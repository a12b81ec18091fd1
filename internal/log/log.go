package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

var (
	std     = NewHandler(os.Stderr)
	install sync.Once
)

// Init routes the global logger through the shared handler and points it at
// out with the given level. The apex logger itself is configured only once;
// later calls change the handler under its lock. Unknown levels fall back to
// info.
func Init(out io.Writer, level string) {
	install.Do(func() {
		log.SetHandler(std)
		log.SetLevel(log.DebugLevel)
	})
	std.Configure(out, ParseLevel(level))
}

// SetLevel changes the level of the shared handler and leaves its writer
// alone. It is safe to call while other goroutines log.
func SetLevel(level string) {
	std.setLevel(ParseLevel(level))
}

func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "trace":
		return log.DebugLevel
	case "info", "":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// Handler writes one line per entry: timestamp, level letter, message and
// sorted fields. Entries below its level are dropped.
type Handler struct {
	mu    sync.Mutex
	out   io.Writer
	level log.Level
}

func NewHandler(out io.Writer) *Handler {
	return &Handler{out: out, level: log.InfoLevel}
}

// Configure swaps the writer and level. A nil writer means stderr.
func (h *Handler) Configure(out io.Writer, level log.Level) {
	if out == nil {
		out = os.Stderr
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.out = out
	h.level = level
}

func (h *Handler) setLevel(level log.Level) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.level = level
}

func (h *Handler) HandleLog(e *log.Entry) error {
	level := "?"
	switch e.Level {
	case log.DebugLevel:
		level = "D"
	case log.InfoLevel:
		level = "I"
	case log.WarnLevel:
		level = "W"
	case log.ErrorLevel:
		level = "E"
	case log.FatalLevel:
		level = "F"
	}
	names := e.Fields.Names()
	sort.Strings(names)
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", e.Timestamp.Format(time.RFC3339), level, e.Message)
	for _, name := range names {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	if e.Level < h.level {
		return nil
	}
	_, err := io.WriteString(h.out, b.String())
	return err
}
