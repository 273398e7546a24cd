package models

// Data Transfer Objects

type CreateAssessmentRequest struct {
	Subject string `json:"subject"`
	Title   string `json:"title"`
	DueDate string `json:"due_date"`
	Detail  string `json:"detail"`
}
