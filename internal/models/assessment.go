package models

type Assessment struct {
	ID        int64  `json:"id" db:"id"`
	Subject   string `json:"subject" db:"subject"`
	Title     string `json:"title" db:"title"`
	DueDate   string `json:"due_date" db:"due_date"`
	Detail    string `json:"detail" db:"detail"`
	CreatedAt string `json:"created_at" db:"created_at"`
}
