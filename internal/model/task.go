package model

import "time"

// Task is a chore assigned to one or more family members. A recurring task
// is stored as a series root (IsRecurring, no ParentTaskID); the server
// materializes one occurrence per matching day, each pointing back at the
// root via ParentTaskID.
type Task struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	AssignedTo   []string  `json:"assignedTo"`
	DueDate      Date      `json:"dueDate"`
	Completed    bool      `json:"completed"`
	CreatedBy    string    `json:"createdBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	IsRecurring  bool      `json:"isRecurring"`
	Weekdays     []int     `json:"weekdays,omitempty"` // 1-7, Monday-Sunday
	EndDate      *Date     `json:"endDate,omitempty"`
	ParentTaskID *string   `json:"parentTaskId,omitempty"`

	// Attached per request by the server when relevant; absent otherwise.
	CanModify *bool `json:"canModify,omitempty"`
	CanDelete *bool `json:"canDelete,omitempty"`
}

// IsSeriesRoot reports whether deleting this task may cascade to future
// occurrences. Single occurrences (ParentTaskID set) never cascade.
func (t Task) IsSeriesRoot() bool {
	return t.IsRecurring && t.ParentTaskID == nil
}

// TaskCreate is the payload for creating a task.
type TaskCreate struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	AssignedTo  []string `json:"assignedTo"`
	DueDate     Date     `json:"dueDate"`
	IsRecurring bool     `json:"isRecurring"`
	Weekdays    []int    `json:"weekdays,omitempty"`
	EndDate     *Date    `json:"endDate,omitempty"`
}

// TaskUpdate carries partial task updates; nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	AssignedTo  *[]string `json:"assignedTo,omitempty"`
	DueDate     *Date     `json:"dueDate,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
	IsRecurring *bool     `json:"isRecurring,omitempty"`
	Weekdays    *[]int    `json:"weekdays,omitempty"`
}
