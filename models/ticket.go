package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in-progress"
	TicketPending    TicketStatus = "pending"
	TicketClosed     TicketStatus = "closed"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketPending, TicketClosed:
		return true
	}
	return false
}

type Ticket struct {
	ID                 bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	TicketID           string        `bson:"ticketId" json:"ticketId"`
	ClientName         string        `bson:"clientName" json:"clientName"`
	ClientNumber       string        `bson:"clientNumber,omitempty" json:"clientNumber,omitempty"`
	Station            string        `bson:"station,omitempty" json:"station,omitempty"`
	HouseNumber        string        `bson:"houseNumber,omitempty" json:"houseNumber,omitempty"`
	Category           string        `bson:"category,omitempty" json:"category,omitempty"`
	Status             TicketStatus  `bson:"status" json:"status"`
	DateTimeReported   time.Time     `bson:"dateTimeReported" json:"dateTimeReported"`
	ProblemDescription string        `bson:"problemDescription,omitempty" json:"problemDescription,omitempty"`
	Technicians        []string      `bson:"technicians,omitempty" json:"technicians"`
	// Older tickets stored a single technician; folded into Technicians by
	// Normalize and never written back.
	LegacyTechnician string     `bson:"technician,omitempty" json:"-"`
	ResolvedAt       *time.Time `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	ResolutionNotes  string     `bson:"resolutionNotes,omitempty" json:"resolutionNotes,omitempty"`
	CreatedAt        time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time  `bson:"updatedAt" json:"updatedAt"`
}

func (t *Ticket) Normalize() {
	if len(t.Technicians) == 0 && t.LegacyTechnician != "" {
		t.Technicians = []string{t.LegacyTechnician}
	}
	t.LegacyTechnician = ""
	if t.Technicians == nil {
		t.Technicians = []string{}
	}
}

type Technician struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string        `bson:"name" json:"name"`
	Phone     string        `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
}
