package dto

import "time"

// CreateEquipmentDTO creates one equipment item per serial number in a
// single all-or-nothing write.
type CreateEquipmentDTO struct {
	Name          string   `json:"name" binding:"required"`
	Model         string   `json:"model"`
	SerialNumbers []string `json:"serialNumbers" binding:"required,min=1"`
	Status        string   `json:"status"`
	Cost          float64  `json:"cost"`
	Warranty      string   `json:"warranty"`
	Station       string   `json:"station"`
	BatchID       *string  `json:"batchId,omitempty"`
}

type UpdateEquipmentDTO struct {
	Name        *string    `json:"name,omitempty"`
	Model       *string    `json:"model,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Cost        *float64   `json:"cost,omitempty"`
	Warranty    *string    `json:"warranty,omitempty"`
	Station     *string    `json:"station,omitempty"`
	LastService *time.Time `json:"lastService,omitempty"`
}

type AttachEquipmentDTO struct {
	ClientName          string     `json:"clientName" binding:"required"`
	ClientNumber        string     `json:"clientNumber"`
	Station             string     `json:"station" binding:"required"`
	InstallDate         *time.Time `json:"installDate"`
	InstallationType    string     `json:"installationType" binding:"required"`
	ReplacedEquipmentID string     `json:"replacedEquipmentId"`
}

type CreateBatchDTO struct {
	BatchNumber   string     `json:"batchNumber" binding:"required"`
	Name          string     `json:"name" binding:"required"`
	EquipmentType string     `json:"equipmentType" binding:"required"`
	Quantity      int        `json:"quantity" binding:"omitempty,min=0"`
	PurchaseDate  *time.Time `json:"purchaseDate"`
	PurchaseCost  float64    `json:"purchaseCost"`
	Supplier      string     `json:"supplier"`
}

type UpdateBatchDTO struct {
	BatchNumber   *string    `json:"batchNumber,omitempty"`
	Name          *string    `json:"name,omitempty"`
	EquipmentType *string    `json:"equipmentType,omitempty"`
	Quantity      *int       `json:"quantity,omitempty"`
	PurchaseDate  *time.Time `json:"purchaseDate,omitempty"`
	PurchaseCost  *float64   `json:"purchaseCost,omitempty"`
	Supplier      *string    `json:"supplier,omitempty"`
}

type CreateBatchFromSelectedDTO struct {
	Batch        CreateBatchDTO `json:"batch" binding:"required"`
	EquipmentIDs []string       `json:"equipmentIds" binding:"required,min=1"`
}

type CreateTemplateDTO struct {
	Name          string  `json:"name" binding:"required"`
	Model         string  `json:"model"`
	EquipmentType string  `json:"equipmentType" binding:"required"`
	DefaultCost   float64 `json:"defaultCost"`
	Warranty      string  `json:"warranty"`
}
