package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicketNormalizeLegacyTechnician(t *testing.T) {
	tk := Ticket{LegacyTechnician: "Moses"}
	tk.Normalize()

	assert.Equal(t, []string{"Moses"}, tk.Technicians)
	assert.Empty(t, tk.LegacyTechnician)
}

func TestTicketNormalizeListWinsOverLegacy(t *testing.T) {
	tk := Ticket{
		Technicians:      []string{"Ann", "Ben"},
		LegacyTechnician: "Moses",
	}
	tk.Normalize()

	assert.Equal(t, []string{"Ann", "Ben"}, tk.Technicians)
	assert.Empty(t, tk.LegacyTechnician)
}

func TestTicketNormalizeNilTechnicians(t *testing.T) {
	var tk Ticket
	tk.Normalize()

	assert.NotNil(t, tk.Technicians)
	assert.Empty(t, tk.Technicians)
}

func TestTicketStatusValid(t *testing.T) {
	for _, s := range []TicketStatus{TicketOpen, TicketInProgress, TicketPending, TicketClosed} {
		assert.True(t, s.Valid())
	}
	assert.False(t, TicketStatus("resolved").Valid())
	assert.False(t, TicketStatus("").Valid())
}
