package model

// Privilege is a reward a parent grants (or revokes) for a single child on
// a given day.
type Privilege struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	AssignedTo  string `json:"assignedTo"`
	Earned      bool   `json:"earned"`
	Date        Date   `json:"date"`

	CanModify *bool `json:"canModify,omitempty"`
	CanDelete *bool `json:"canDelete,omitempty"`
}

// PrivilegeCreate is the payload for creating a privilege.
type PrivilegeCreate struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	AssignedTo  string `json:"assignedTo"`
	Date        Date   `json:"date"`
	Earned      bool   `json:"earned"`
}

// PrivilegeUpdate carries partial privilege updates.
type PrivilegeUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	AssignedTo  *string `json:"assignedTo,omitempty"`
	Earned      *bool   `json:"earned,omitempty"`
	Date        *Date   `json:"date,omitempty"`
}
