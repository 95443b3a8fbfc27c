package model

// ContractRule is a rule embedded in a contract.
type ContractRule struct {
	ID          string `json:"id,omitempty"`
	Description string `json:"description"`
	IsTask      bool   `json:"isTask"`
}

// Contract is a reward agreement between a parent and a child: while the
// contract is active and its rules are respected, the child earns
// DailyReward into their wallet each day. Deactivation preserves history;
// hard delete removes the contract but the server keeps derived wallet
// transactions.
type Contract struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	ChildID     string         `json:"childId"`
	ParentID    string         `json:"parentId"`
	Rules       []ContractRule `json:"rules"`
	DailyReward float64        `json:"dailyReward"`
	StartDate   Date           `json:"startDate"`
	EndDate     Date           `json:"endDate"`
	Active      bool           `json:"active"`
}

// ContractCreate is the payload for creating a contract.
type ContractCreate struct {
	Title       string         `json:"title"`
	ChildID     string         `json:"childId"`
	ParentID    string         `json:"parentId"`
	Rules       []ContractRule `json:"rules"`
	DailyReward float64        `json:"dailyReward"`
	StartDate   Date           `json:"startDate"`
	EndDate     Date           `json:"endDate"`
}

// ContractUpdate carries partial contract updates.
type ContractUpdate struct {
	Title       *string  `json:"title,omitempty"`
	ChildID     *string  `json:"childId,omitempty"`
	ParentID    *string  `json:"parentId,omitempty"`
	DailyReward *float64 `json:"dailyReward,omitempty"`
	StartDate   *Date    `json:"startDate,omitempty"`
	EndDate     *Date    `json:"endDate,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}
