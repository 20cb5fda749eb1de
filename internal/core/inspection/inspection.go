// Package inspection defines the domain types for one in-progress vessel inspection.
package inspection

import "time"

// PlaceholderDescription is recorded when a photo arrives before any text
// has opened a violation record.
const PlaceholderDescription = "no text supplied"

// State identifies the current step of the inspection dialogue.
type State string

// Dialogue states, in the order an operator normally moves through them.
const (
	StateSelectingInspector State = "selecting_inspector"
	StateSelectingEntity    State = "selecting_entity"
	StateSelectingShip      State = "selecting_ship"
	StateEnteringDate       State = "entering_date"
	StateCollecting         State = "collecting_violations"
)

// Violation is one logical violation entry: a description and, optionally,
// a photo reference with a caption.
type Violation struct {
	Description string
	PhotoRef    string
	Caption     string
}

// Session is the mutable per-chat record of an inspection being assembled.
//
// A session is owned by exactly one chat and is only ever mutated from that
// chat's dispatch worker, so it carries no locking of its own.
type Session struct {
	ChatID     int64
	Inspector  string // inspector ID from the roster
	Entity     string
	Ship       string
	Date       time.Time
	Violations []Violation
	State      State
	CreatedAt  time.Time
}

// New returns a fresh session for the given chat, positioned at the first
// dialogue step.
func New(chatID int64, now time.Time) *Session {
	return &Session{
		ChatID:    chatID,
		State:     StateSelectingInspector,
		CreatedAt: now,
	}
}

// AppendText opens a new violation record with the given description.
// Text always starts a new record; it never amends an existing one.
func (s *Session) AppendText(description string) int {
	s.Violations = append(s.Violations, Violation{Description: description})
	return len(s.Violations)
}

// AttachPhoto merges a photo into the violation list.
//
// If no record exists yet, a new one is opened with a placeholder
// description. Otherwise the photo and caption land on the most recently
// appended record, replacing any photo already attached to it (last photo
// wins when two photos arrive without an intervening text).
func (s *Session) AttachPhoto(ref, caption string) int {
	if len(s.Violations) == 0 {
		s.Violations = append(s.Violations, Violation{Description: PlaceholderDescription})
	}
	last := &s.Violations[len(s.Violations)-1]
	last.PhotoRef = ref
	last.Caption = caption
	return len(s.Violations)
}
