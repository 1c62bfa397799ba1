package models

import (
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type EquipmentStatus string

const (
	EquipmentBought    EquipmentStatus = "bought"
	EquipmentAvailable EquipmentStatus = "available"
	EquipmentInstalled EquipmentStatus = "installed"
	EquipmentInRepair  EquipmentStatus = "in-repair"
)

func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentBought, EquipmentAvailable, EquipmentInstalled, EquipmentInRepair:
		return true
	}
	return false
}

type InstallationType string

const (
	NewInstallation     InstallationType = "new-installation"
	ExchangeReplacement InstallationType = "exchange-replacement"
)

func (t InstallationType) Valid() bool {
	return t == NewInstallation || t == ExchangeReplacement
}

// equipmentTransitions is the allowed status graph. "bought" counts as
// available for install, so it may move straight to installed.
var equipmentTransitions = map[EquipmentStatus][]EquipmentStatus{
	EquipmentBought:    {EquipmentAvailable, EquipmentInstalled},
	EquipmentAvailable: {EquipmentInstalled},
	EquipmentInstalled: {EquipmentAvailable},
}

// TransitionEquipment checks a status move against the allowed graph.
func TransitionEquipment(from, to EquipmentStatus) (EquipmentStatus, error) {
	for _, next := range equipmentTransitions[from] {
		if next == to {
			return to, nil
		}
	}
	return from, fmt.Errorf("invalid equipment transition %q -> %q", from, to)
}

var (
	serialPattern = regexp.MustCompile(`^(SN-\d+|\d+)$`)
	macPattern    = regexp.MustCompile(`^([0-9A-Fa-f]{2}:){5}[0-9A-Fa-f]{2}$`)
)

// ValidEquipmentIdentifier accepts serial numbers (SN-123 or bare digits)
// and colon-separated MAC addresses.
func ValidEquipmentIdentifier(s string) bool {
	return serialPattern.MatchString(s) || macPattern.MatchString(s)
}

// InvalidEquipmentIdentifiers returns every entry that fails the serial/MAC
// gate, in input order, so errors can enumerate the offenders.
func InvalidEquipmentIdentifiers(ids []string) []string {
	var bad []string
	for _, id := range ids {
		if !ValidEquipmentIdentifier(id) {
			bad = append(bad, id)
		}
	}
	return bad
}

type Equipment struct {
	ID                  bson.ObjectID    `bson:"_id,omitempty" json:"_id"`
	EquipmentID         string           `bson:"equipmentId" json:"equipmentId"`
	Name                string           `bson:"name" json:"name"`
	Model               string           `bson:"model,omitempty" json:"model,omitempty"`
	SerialNumber        string           `bson:"serialNumber" json:"serialNumber"`
	Status              EquipmentStatus  `bson:"status" json:"status"`
	Cost                float64          `bson:"cost,omitempty" json:"cost,omitempty"`
	Warranty            string           `bson:"warranty,omitempty" json:"warranty,omitempty"`
	Station             string           `bson:"station,omitempty" json:"station,omitempty"`
	ClientName          string           `bson:"clientName,omitempty" json:"clientName,omitempty"`
	ClientNumber        string           `bson:"clientNumber,omitempty" json:"clientNumber,omitempty"`
	InstallDate         *time.Time       `bson:"installDate,omitempty" json:"installDate,omitempty"`
	LastService         *time.Time       `bson:"lastService,omitempty" json:"lastService,omitempty"`
	InstallationType    InstallationType `bson:"installationType,omitempty" json:"installationType,omitempty"`
	ReplacedEquipmentID string           `bson:"replacedEquipmentId,omitempty" json:"replacedEquipmentId,omitempty"`
	BatchID             *bson.ObjectID   `bson:"batchId,omitempty" json:"batchId,omitempty"`
	CreatedAt           time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time        `bson:"updatedAt" json:"updatedAt"`
}

type EquipmentTemplate struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string        `bson:"name" json:"name"`
	Model         string        `bson:"model,omitempty" json:"model,omitempty"`
	EquipmentType string        `bson:"equipmentType" json:"equipmentType"`
	DefaultCost   float64       `bson:"defaultCost,omitempty" json:"defaultCost,omitempty"`
	Warranty      string        `bson:"warranty,omitempty" json:"warranty,omitempty"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
}
