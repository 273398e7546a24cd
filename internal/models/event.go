package models

type AssessmentCreatedEvent struct {
	EventID      string `json:"event_id"`
	AssessmentID int64  `json:"assessment_id"`
	Subject      string `json:"subject"`
	Title        string `json:"title"`
	DueDate      string `json:"due_date"`
	Timestamp    int64  `json:"timestamp"`
}
