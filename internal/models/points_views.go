package models

import "time"

// PointsSummary is the per-employee summary payload.
type PointsSummary struct {
	EmployeeID          string    `json:"employeeId"`
	TotalPoints         int       `json:"totalPoints"`
	MonthlyPoints       int       `json:"monthlyPoints"`
	MonthlyCapRemaining int       `json:"monthlyCapRemaining"`
	CurrentMonth        MonthKey  `json:"currentMonth"`
	IsActive            bool      `json:"isActive"`
	ExpiryDate          time.Time `json:"expiryDate"`
	TransactionCount    int       `json:"transactionCount"`
}

// LeaderboardEntry is one ranked row of the points leaderboard.
type LeaderboardEntry struct {
	Rank           int                 `json:"rank"`
	EmployeeID     string              `json:"employeeId"`
	TotalPoints    int                 `json:"totalPoints"`
	MonthlyPoints  int                 `json:"monthlyPoints"`
	RecentActivity []PointsTransaction `json:"recentActivity"`
}

// LedgerDetail is the admin view of a single employee's ledger.
type LedgerDetail struct {
	EmployeeID          string              `json:"employeeId"`
	TotalPoints         int                 `json:"totalPoints"`
	MonthlyPoints       int                 `json:"monthlyPoints"`
	MonthlyCapRemaining int                 `json:"monthlyCapRemaining"`
	CurrentMonth        MonthKey            `json:"currentMonth"`
	IsActive            bool                `json:"isActive"`
	ExpiryDate          time.Time           `json:"expiryDate"`
	Transactions        []PointsTransaction `json:"transactions"`
}

// LedgerOverview is one row of the admin "all ledgers" table.
type LedgerOverview struct {
	Rank             int       `json:"rank"`
	EmployeeID       string    `json:"employeeId"`
	TotalPoints      int       `json:"totalPoints"`
	MonthlyPoints    int       `json:"monthlyPoints"`
	CurrentMonth     MonthKey  `json:"currentMonth"`
	IsActive         bool      `json:"isActive"`
	ExpiryDate       time.Time `json:"expiryDate"`
	TransactionCount int       `json:"transactionCount"`
	LastTransaction  time.Time `json:"lastTransaction,omitempty"`
}

// SystemSummary aggregates statistics over every ledger in the system.
type SystemSummary struct {
	TotalEmployees           int     `json:"totalEmployees"`
	TotalPointsDistributed   int     `json:"totalPointsDistributed"`
	AveragePointsPerEmployee float64 `json:"averagePointsPerEmployee"`
	MaxPoints                int     `json:"maxPoints"`
	MinPoints                int     `json:"minPoints"`
	ActiveEmployees          int     `json:"activeEmployees"`
}
