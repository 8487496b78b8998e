// Package scanner is the boundary to the camera-based code reader. The
// reader is a black box that pushes decoded strings and a continuous stream
// of non-detection noise; sessions accept exactly one decode at a time and
// filter the noise so it never reaches the operator.
package scanner

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Reader messages that mean "nothing in frame yet". These arrive constantly
// while the camera points at an empty frame and must never surface as errors.
var noiseMarkers = []string{
	"No barcode or QR code detected",
	"No MultiFormat Readers were able to detect the code",
	"NotFoundException",
}

// IsNoise reports whether a reader non-detection message is routine noise.
func IsNoise(msg string) bool {
	for _, marker := range noiseMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

var (
	ErrSessionInactive = errors.New("scan session is not accepting decodes")
	ErrEmptyDecode     = errors.New("empty decode")
)

// Session is one operator's scanning window against one lot. A session
// accepts a single decode and then stops listening until Resume, so a
// half-second of duplicate camera callbacks cannot trigger two workflows.
type Session struct {
	ID       string
	LotID    string
	Operator string

	mu     sync.Mutex
	active bool
	last   string
}

// Submit hands a decoded text to the session. The first submit wins and
// deactivates the session; later submits fail with ErrSessionInactive until
// the operator resumes scanning.
func (s *Session) Submit(text string) error {
	if text == "" {
		return ErrEmptyDecode
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return ErrSessionInactive
	}
	s.active = false
	s.last = text
	return nil
}

// ReportNoDetection handles a reader non-detection callback. It returns the
// message when it is a real reader problem worth surfacing, or "" when it is
// routine empty-frame noise.
func (s *Session) ReportNoDetection(msg string) string {
	if IsNoise(msg) {
		return ""
	}
	return msg
}

// Resume reopens the session for the next decode.
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
	s.last = ""
}

// Active reports whether the session is currently accepting decodes.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// LastDecode returns the most recently accepted decode, if any.
func (s *Session) LastDecode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Hub tracks open scan sessions across operator stations.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*Session)}
}

// Open creates an active session for a lot.
func (h *Hub) Open(lotID, operator string) *Session {
	s := &Session{
		ID:       uuid.New().String()[:32],
		LotID:    lotID,
		Operator: operator,
		active:   true,
	}
	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()
	return s
}

// Get looks up a session by id.
func (h *Hub) Get(id string) (*Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[id]
	return s, ok
}

// Close removes a session. Closing an unknown id is a no-op.
func (h *Hub) Close(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, id)
}
