package inspection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_TextThenPhotoMergesIntoOneRecord(t *testing.T) {
	s := New(1, time.Now())

	s.AppendText("A")
	s.AttachPhoto("p1", "")
	s.AppendText("B")
	s.AttachPhoto("p2", "cap")

	require.Len(t, s.Violations, 2)
	assert.Equal(t, Violation{Description: "A", PhotoRef: "p1"}, s.Violations[0])
	assert.Equal(t, Violation{Description: "B", PhotoRef: "p2", Caption: "cap"}, s.Violations[1])
}

func TestSession_PhotoBeforeAnyTextOpensPlaceholderRecord(t *testing.T) {
	s := New(1, time.Now())

	n := s.AttachPhoto("p1", "deck")

	assert.Equal(t, 1, n)
	require.Len(t, s.Violations, 1)
	assert.Equal(t, PlaceholderDescription, s.Violations[0].Description)
	assert.Equal(t, "p1", s.Violations[0].PhotoRef)
	assert.Equal(t, "deck", s.Violations[0].Caption)
}

func TestSession_ConsecutivePhotosLastWins(t *testing.T) {
	s := New(1, time.Now())

	s.AttachPhoto("p1", "first")
	s.AttachPhoto("p2", "second")

	require.Len(t, s.Violations, 1)
	assert.Equal(t, "p2", s.Violations[0].PhotoRef)
	assert.Equal(t, "second", s.Violations[0].Caption)
}

func TestSession_SecondPhotoAfterTextReplacesPhotoOnSameRecord(t *testing.T) {
	s := New(1, time.Now())

	s.AppendText("hatch left open")
	s.AttachPhoto("p1", "")
	s.AttachPhoto("p2", "")

	require.Len(t, s.Violations, 1)
	assert.Equal(t, "hatch left open", s.Violations[0].Description)
	assert.Equal(t, "p2", s.Violations[0].PhotoRef)
}

func TestSession_TextNeverAmendsPriorRecord(t *testing.T) {
	s := New(1, time.Now())

	s.AppendText("first")
	n := s.AppendText("second")

	assert.Equal(t, 2, n)
	require.Len(t, s.Violations, 2)
	assert.Empty(t, s.Violations[0].PhotoRef)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"valid date", "01.03.2024", "2024-03-01", true},
		{"valid with whitespace", "  29.02.2024 ", "2024-02-29", true},
		{"impossible calendar date", "31.02.2024", "", false},
		{"not a leap year", "29.02.2023", "", false},
		{"month out of range", "01.13.2024", "", false},
		{"single digit day", "1.03.2024", "", false},
		{"single digit month", "01.3.2024", "", false},
		{"iso order", "2024.03.01", "", false},
		{"wrong separator", "01-03-2024", "", false},
		{"trailing garbage", "01.03.2024x", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			require.Equal(t, tt.ok, ok, "ParseDate(%q)", tt.input)
			if tt.ok {
				assert.Equal(t, tt.want, got.Format("2006-01-02"))
			}
		})
	}
}
