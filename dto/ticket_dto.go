package dto

import "time"

type CreateTicketDTO struct {
	ClientName         string     `json:"clientName" binding:"required"`
	ClientNumber       string     `json:"clientNumber"`
	Station            string     `json:"station"`
	HouseNumber        string     `json:"houseNumber"`
	Category           string     `json:"category"`
	ProblemDescription string     `json:"problemDescription"`
	Technicians        []string   `json:"technicians"`
	DateTimeReported   *time.Time `json:"dateTimeReported"`
}

type UpdateTicketDTO struct {
	ClientName         *string    `json:"clientName,omitempty"`
	ClientNumber       *string    `json:"clientNumber,omitempty"`
	Station            *string    `json:"station,omitempty"`
	HouseNumber        *string    `json:"houseNumber,omitempty"`
	Category           *string    `json:"category,omitempty"`
	Status             *string    `json:"status,omitempty"`
	ProblemDescription *string    `json:"problemDescription,omitempty"`
	Technicians        *[]string  `json:"technicians,omitempty"`
	ResolvedAt         *time.Time `json:"resolvedAt,omitempty"`
	ResolutionNotes    *string    `json:"resolutionNotes,omitempty"`
}

type CreateTechnicianDTO struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

type UpdateTechnicianDTO struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}
