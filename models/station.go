package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Station struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string        `bson:"name" json:"name"`
	Slug      string        `bson:"slug" json:"slug"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
}

type TaskStatus string

const (
	TaskPending TaskStatus = "pending"
	TaskDone    TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	return s == TaskPending || s == TaskDone
}

// TaskTechnician is the denormalized technician snapshot stored on a task.
type TaskTechnician struct {
	TechnicianID bson.ObjectID `bson:"technicianId" json:"technicianId"`
	Name         string        `bson:"name" json:"name"`
	Phone        string        `bson:"phone,omitempty" json:"phone,omitempty"`
}

type StationTask struct {
	ID          bson.ObjectID    `bson:"_id,omitempty" json:"_id"`
	Title       string           `bson:"title" json:"title"`
	StationID   bson.ObjectID    `bson:"stationId" json:"stationId"`
	StationName string           `bson:"stationName" json:"stationName"`
	Description string           `bson:"description,omitempty" json:"description,omitempty"`
	Status      TaskStatus       `bson:"status" json:"status"`
	Technicians []TaskTechnician `bson:"technicians,omitempty" json:"technicians"`
	CompletedAt *time.Time       `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt   time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time        `bson:"updatedAt" json:"updatedAt"`
}
