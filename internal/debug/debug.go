// Package debug traces a chartist run as a stream of typed events.
//
// A Session covers one run: it opens with a session/Start event naming the
// charset, text and output, collects charset, tables, canvas, render and
// save events from the library, and closes with a session/End summary of
// how many glyphs were drawn, how many warnings were raised and whether the
// run failed. Events go to a Sink as JSON Lines or in a pretty format.
//
// Tracing is off unless SetEnabled(true) is called; a nil *Session is a
// valid no-op, so library code emits unconditionally.
package debug

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

var enabled atomic.Bool

// SetEnabled switches tracing on or off for sessions created afterwards.
func SetEnabled(on bool) {
	enabled.Store(on)
}

// Enabled reports whether tracing is on.
func Enabled() bool {
	return enabled.Load()
}

// EnvEnabled reports whether CHARTIST_DEBUG=1 asks for tracing.
func EnvEnabled() bool {
	return os.Getenv("CHARTIST_DEBUG") == "1"
}

// EnvPretty reports whether CHARTIST_DEBUG_PRETTY=1 asks for the pretty sink.
func EnvPretty() bool {
	return os.Getenv("CHARTIST_DEBUG_PRETTY") == "1"
}

// Session traces one run. It is safe for concurrent Emit calls but is meant
// to be used by a single render at a time.
type Session struct {
	id      string
	sink    Sink
	started time.Time

	mu       sync.Mutex
	glyphs   int
	warnings int
	failure  string
}

// NewSession starts a session writing to sink and emits session/Start with
// start. It returns nil when tracing is disabled or sink is nil.
func NewSession(sink Sink, start SessionStartData) *Session {
	if !Enabled() || sink == nil {
		return nil
	}

	s := &Session{
		id:      newSessionID(),
		sink:    sink,
		started: time.Now(),
	}
	s.Emit("session", "Start", start)
	return s
}

// SessionID returns the session's 8 character hex identifier.
func (s *Session) SessionID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Emit writes an event. Glyph and warning payloads are also tallied for
// the session/End summary. Sink errors are dropped.
func (s *Session) Emit(phase, event string, data any) {
	if s == nil {
		return
	}

	s.mu.Lock()
	switch data.(type) {
	case GlyphData:
		s.glyphs++
	case WarningData:
		s.warnings++
	}
	s.mu.Unlock()

	//nolint:errcheck // tracing must not fail the run
	s.sink.Write(Event{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		SessionID: s.id,
		Phase:     phase,
		Event:     event,
		Data:      data,
	})
}

// Fail records err as the reason the run stopped and emits run/Error.
func (s *Session) Fail(err error) {
	if s == nil || err == nil {
		return
	}
	s.mu.Lock()
	s.failure = err.Error()
	s.mu.Unlock()

	s.Emit("run", "Error", ErrorData{Type: "fatal", Message: err.Error()})
}

// Close emits the session/End summary and closes the sink.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	end := SessionEndData{
		ElapsedMs: time.Since(s.started).Milliseconds(),
		Glyphs:    s.glyphs,
		Warnings:  s.warnings,
		Failed:    s.failure != "",
		Failure:   s.failure,
	}
	s.mu.Unlock()

	s.Emit("session", "End", end)
	return s.sink.Close()
}

func newSessionID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%08x", uint32(time.Now().UnixNano()))
	}
	return hex.EncodeToString(b)
}

// Event is the envelope every sink receives.
type Event struct {
	Timestamp string `json:"ts"`
	SessionID string `json:"session_id"`
	Phase     string `json:"phase"`
	Event     string `json:"event"`
	Data      any    `json:"data"`
}
