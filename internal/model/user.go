package model

// User is a family member. Users are managed server-side; the client only
// ever reads them.
type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	BirthDate      Date   `json:"birthDate"`
	IsParent       bool   `json:"isParent"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}
