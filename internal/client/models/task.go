package models

import "time"

type TaskType string

const (
	TaskCall     TaskType = "CALL"
	TaskMeeting  TaskType = "MEETING"
	TaskEmail    TaskType = "EMAIL"
	TaskFollowUp TaskType = "FOLLOW_UP"
	TaskOther    TaskType = "OTHER"
)

type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	TaskType    TaskType  `json:"task_type"`
	DueDate     time.Time `json:"due_date"`
	Contact     *int64    `json:"contact,omitempty"`
	Completed   bool      `json:"completed"`
}
