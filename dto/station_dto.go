package dto

type CreateStationDTO struct {
	Name string `json:"name" binding:"required"`
}

type UpdateStationDTO struct {
	Name *string `json:"name,omitempty"`
}

type TaskTechnicianDTO struct {
	TechnicianID string `json:"technicianId" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone"`
}

type CreateStationTaskDTO struct {
	Title       string              `json:"title" binding:"required"`
	StationID   string              `json:"stationId" binding:"required"`
	Description string              `json:"description"`
	Technicians []TaskTechnicianDTO `json:"technicians"`
}

type UpdateStationTaskDTO struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	Status      *string              `json:"status,omitempty"`
	Technicians *[]TaskTechnicianDTO `json:"technicians,omitempty"`
}
