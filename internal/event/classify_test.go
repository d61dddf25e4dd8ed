package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWorkTitle(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Bella 30", true},
		{"Milo 45 1st", true},
		{"Luna 20 Last", true},
		{"Rocky HS", true},
		{"Rocky HS 2nd", true},
		{"Rocky Housesit 3rd", true},
		{"Rocky Housesit Start", true},
		{"Daisy MG", true},
		{"Daisy M&G", true},
		{"New client Meet & Greet", true},
		{"Pepper nail trim", true},
		{"Pepper Nail Trim", true},

		{"Lunch", false},
		{"Dentist appointment", false},
		{"Day off", false},
		{"Grocery shopping", false},
		{"Coffee with Sam", false},
		{"Vet conference call", false},
		{"", false},
		{"   ", false},
		{"Bella", false},
		{"Random note", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsWorkTitle(tt.title), "title %q", tt.title)
	}
}

// A title matching both a personal and a work pattern must classify as
// personal. The veto is absolute.
func TestPersonalPrecedence(t *testing.T) {
	assert.False(t, IsWorkTitle("30 minute massage"))
	assert.False(t, IsWorkTitle("Doctor appt 45"))
	assert.False(t, IsWorkTitle("Lunch 60"))
}

// Parenthetical notes carry no classification signal.
func TestParentheticalInvariance(t *testing.T) {
	assert.Equal(t, IsWorkTitle("Pixel 30"), IsWorkTitle("Pixel 30 (forgot to cancel)"))
	assert.True(t, IsWorkTitle("Pixel 30 (forgot to cancel)"))
	assert.True(t, IsWorkTitle("Ziggy (new client) 45"))
}

func TestDurationMustBeTrailing(t *testing.T) {
	assert.True(t, IsWorkTitle("Bella 30"))
	assert.False(t, IsWorkTitle("30 dogs visited the park today"))
}

func TestEventIsWorkCache(t *testing.T) {
	cached := true
	e := Event{Title: "Lunch", WorkEvent: &cached}
	// Cache wins over recomputation.
	assert.True(t, e.IsWork())

	e.WorkEvent = nil
	assert.False(t, e.IsWork())
}

func TestMatchedPersonalRule(t *testing.T) {
	assert.Equal(t, "social", MatchedPersonalRule("Lunch with Alex"))
	assert.Equal(t, "medical", MatchedPersonalRule("Dentist"))
	assert.Equal(t, "", MatchedPersonalRule("Bella 30"))
}
