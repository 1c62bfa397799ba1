package dto

import "time"

type CreateExpenseDTO struct {
	Description string    `json:"description" binding:"required"`
	Category    string    `json:"category" binding:"required"`
	Station     *string   `json:"station"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	Balance     *float64  `json:"balance,omitempty"`
	Date        time.Time `json:"date" binding:"required"`
	Status      string    `json:"status" binding:"required"`
}

type UpdateExpenseDTO struct {
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Station     *string    `json:"station,omitempty"`
	Amount      *float64   `json:"amount,omitempty"`
	Balance     *float64   `json:"balance,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

type ExpenseCategoryDTO struct {
	Name string `json:"name" binding:"required"`
}
