package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ExpenseStatus string

const (
	ExpenseFullyPaid     ExpenseStatus = "fully-paid"
	ExpensePartiallyPaid ExpenseStatus = "partially-paid"
)

func (s ExpenseStatus) Valid() bool {
	return s == ExpenseFullyPaid || s == ExpensePartiallyPaid
}

type Expense struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Description string        `bson:"description" json:"description"`
	Category    string        `bson:"category" json:"category"`
	// nil station means a general (non-station-scoped) expense.
	Station *string       `bson:"station,omitempty" json:"station"`
	Amount  float64       `bson:"amount" json:"amount"`
	Balance *float64      `bson:"balance,omitempty" json:"balance,omitempty"`
	Date    time.Time     `bson:"date" json:"date"`
	Status  ExpenseStatus `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// StationLabel renders the station column, with nil shown as General.
func (e *Expense) StationLabel() string {
	if e.Station == nil || *e.Station == "" {
		return "General"
	}
	return *e.Station
}

type ExpenseCategory struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string        `bson:"name" json:"name"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
}
