package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type EquipmentBatch struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	BatchNumber   string        `bson:"batchNumber" json:"batchNumber"`
	Name          string        `bson:"name" json:"name"`
	EquipmentType string        `bson:"equipmentType" json:"equipmentType"`
	Quantity      int           `bson:"quantity" json:"quantity"`
	PurchaseDate  *time.Time    `bson:"purchaseDate,omitempty" json:"purchaseDate,omitempty"`
	PurchaseCost  float64       `bson:"purchaseCost,omitempty" json:"purchaseCost,omitempty"`
	Supplier      string        `bson:"supplier,omitempty" json:"supplier,omitempty"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// BatchStats is derived from a batch's equipment on every fetch; it is never
// stored. "bought" counts toward available stock.
type BatchStats struct {
	Total     int  `json:"total"`
	Available int  `json:"available"`
	Installed int  `json:"installed"`
	Remaining int  `json:"remaining"`
	Finished  bool `json:"finished"`
}

func ComputeBatchStats(items []Equipment) BatchStats {
	var s BatchStats
	s.Total = len(items)
	for _, e := range items {
		switch e.Status {
		case EquipmentAvailable, EquipmentBought:
			s.Available++
		case EquipmentInstalled:
			s.Installed++
		}
	}
	s.Remaining = s.Available
	s.Finished = s.Remaining == 0
	return s
}

// BatchStatsFromCounts assembles stats from per-status counts, for callers
// that aggregate in the database instead of loading the equipment.
func BatchStatsFromCounts(counts map[EquipmentStatus]int) BatchStats {
	var s BatchStats
	for status, n := range counts {
		s.Total += n
		switch status {
		case EquipmentAvailable, EquipmentBought:
			s.Available += n
		case EquipmentInstalled:
			s.Installed += n
		}
	}
	s.Remaining = s.Available
	s.Finished = s.Remaining == 0
	return s
}
