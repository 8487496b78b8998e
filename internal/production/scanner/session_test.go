package scanner

import (
	"errors"
	"testing"
)

func TestIsNoise(t *testing.T) {
	noisy := []string{
		"No barcode or QR code detected in this image",
		"No MultiFormat Readers were able to detect the code.",
		"com.google.zxing.NotFoundException",
	}
	for _, msg := range noisy {
		if !IsNoise(msg) {
			t.Errorf("IsNoise(%q) = false, want true", msg)
		}
	}
	if IsNoise("camera permission denied") {
		t.Error("real reader problems must not be treated as noise")
	}
}

func TestSessionSingleAccept(t *testing.T) {
	h := NewHub()
	s := h.Open("P010", "op-1")

	if !s.Active() {
		t.Fatal("new session must be active")
	}
	if err := s.Submit("ABC123"); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if s.Active() {
		t.Error("session must deactivate after accepting a decode")
	}
	if s.LastDecode() != "ABC123" {
		t.Errorf("LastDecode = %q, want ABC123", s.LastDecode())
	}

	// A duplicate camera callback right after the first must be refused.
	if err := s.Submit("ABC123"); !errors.Is(err, ErrSessionInactive) {
		t.Errorf("second submit: got %v, want ErrSessionInactive", err)
	}
}

func TestSessionEmptyDecode(t *testing.T) {
	h := NewHub()
	s := h.Open("P010", "op-1")

	if err := s.Submit(""); !errors.Is(err, ErrEmptyDecode) {
		t.Errorf("empty submit: got %v, want ErrEmptyDecode", err)
	}
	if !s.Active() {
		t.Error("empty decode must not consume the session")
	}
}

func TestSessionResume(t *testing.T) {
	h := NewHub()
	s := h.Open("P010", "op-1")
	s.Submit("ABC123")

	s.Resume()
	if !s.Active() {
		t.Fatal("session must accept decodes again after Resume")
	}
	if s.LastDecode() != "" {
		t.Error("Resume must clear the previous decode")
	}
	if err := s.Submit("XYZ999"); err != nil {
		t.Errorf("submit after resume failed: %v", err)
	}
}

func TestReportNoDetection(t *testing.T) {
	h := NewHub()
	s := h.Open("P010", "op-1")

	if msg := s.ReportNoDetection("NotFoundException"); msg != "" {
		t.Errorf("noise must be swallowed, got %q", msg)
	}
	if msg := s.ReportNoDetection("camera disconnected"); msg != "camera disconnected" {
		t.Errorf("real problems must surface, got %q", msg)
	}
	if !s.Active() {
		t.Error("non-detection reports must not consume the session")
	}
}

func TestHubLifecycle(t *testing.T) {
	h := NewHub()
	s := h.Open("P010", "op-1")

	got, ok := h.Get(s.ID)
	if !ok || got != s {
		t.Fatal("Get must return the opened session")
	}

	h.Close(s.ID)
	if _, ok := h.Get(s.ID); ok {
		t.Error("closed session must not be found")
	}

	// Closing twice is a no-op.
	h.Close(s.ID)
}
