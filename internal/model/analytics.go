package model

// Comparison pairs a stat for the requested month with the previous
// month's value.
type Comparison struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
}

// Delta returns the month-over-month change.
func (c Comparison) Delta() float64 {
	return c.Current - c.Previous
}

// MonthlyAnalytics aggregates one child's month: perfect days (every
// assigned task done, no violation), longest such streak, task completion
// rate in percent, violation count, privileges earned, and wallet credits.
// All values are server-computed.
type MonthlyAnalytics struct {
	PerfectDays        Comparison `json:"perfectDays"`
	LongestStreak      Comparison `json:"longestStreak"`
	TaskCompletionRate Comparison `json:"taskCompletionRate"`
	Infractions        Comparison `json:"infractions"`
	PrivilegesEarned   Comparison `json:"privilegesEarned"`
	RewardsEarned      Comparison `json:"rewardsEarned"`
}
