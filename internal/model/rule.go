package model

// Rule is a family rule. IsTask distinguishes a choreable rule from a pure
// behavioral one. Rules are never hard-deleted; deactivation preserves the
// history referenced by violations and contracts.
type Rule struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	IsTask      bool   `json:"isTask"`
	Active      bool   `json:"active"`
}

// RuleCreate is the payload for creating a rule.
type RuleCreate struct {
	Description string `json:"description"`
	IsTask      bool   `json:"isTask"`
}

// RuleUpdate carries partial rule updates.
type RuleUpdate struct {
	Description *string `json:"description,omitempty"`
	IsTask      *bool   `json:"isTask,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// RuleViolation records that a child broke a rule on a given day, reported
// by a parent.
type RuleViolation struct {
	ID          string `json:"id"`
	RuleID      string `json:"ruleId"`
	ChildID     string `json:"childId"`
	Date        Date   `json:"date"`
	Description string `json:"description,omitempty"`
	ReportedBy  string `json:"reportedBy"`

	CanDelete *bool `json:"canDelete,omitempty"`
}

// RuleViolationCreate is the payload for reporting a violation.
type RuleViolationCreate struct {
	RuleID      string `json:"ruleId"`
	ChildID     string `json:"childId"`
	Date        Date   `json:"date"`
	Description string `json:"description,omitempty"`
	ReportedBy  string `json:"reportedBy"`
}
