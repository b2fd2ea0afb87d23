package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/javiermolinar/trote/internal/dateutil"
	"github.com/javiermolinar/trote/internal/summary"
)

// DebugLogPath is where --debug writes browser events, one JSON object per
// line.
const DebugLogPath = "trote-debug.log"

// tracer appends numbered events to a writer.
type tracer struct {
	mu  sync.Mutex
	enc *json.Encoder
	seq int
}

// events is nil unless the browser runs with --debug.
var events *tracer

func newTracer(w io.Writer) *tracer {
	return &tracer{enc: json.NewEncoder(w)}
}

// startTrace opens path and routes trace events to it until the returned
// stop function runs.
func startTrace(path string) (stop func(), err error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating debug log: %w", err)
	}
	events = newTracer(f)
	trace("start", "file", path)
	return func() {
		trace("stop")
		events = nil
		_ = f.Close()
	}, nil
}

// trace records event with alternating key/value pairs.
func trace(event string, kv ...any) {
	t := events
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	rec := map[string]any{
		"seq":   t.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for i := 0; i+1 < len(kv); i += 2 {
		rec[fmt.Sprint(kv[i])] = kv[i+1]
	}
	_ = t.enc.Encode(rec)
}

func traceView(v *summary.PlanView, logs int) {
	if v == nil {
		trace("view", "plan", nil)
		return
	}
	trace("view",
		"plan", v.Plan.Path,
		"start", dateutil.FormatDate(v.Start),
		"vdot", v.Param,
		"weeks", len(v.Weeks),
		"current", v.Current,
		"logs", logs)
}

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModePrompt:
		return "prompt"
	case ModeModal:
		return "modal"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}
