package dto

import "time"

type ContactDTO struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required,min=5,max=8000"`
}

type CoverageRequestDTO struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Location string `json:"location" binding:"required"`
	Details  string `json:"details"`
}

type BusinessQuoteDTO struct {
	Company      string `json:"company" binding:"required"`
	ContactName  string `json:"contactName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	Requirements string `json:"requirements" binding:"required,min=5,max=8000"`
}

type ScheduleCallDTO struct {
	Name          string    `json:"name" binding:"required"`
	Email         string    `json:"email" binding:"required,email"`
	Phone         string    `json:"phone" binding:"required"`
	PreferredTime time.Time `json:"preferredTime" binding:"required"`
	Topic         string    `json:"topic"`
}
