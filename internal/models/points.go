package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityType identifies the kind of workplace activity a transaction
// was recorded for.
type ActivityType string

const (
	ActivityAttendance        ActivityType = "attendance"
	ActivityDailyUpdate       ActivityType = "daily_update"
	ActivityTask              ActivityType = "task"
	ActivityProjectCompletion ActivityType = "project_completion"
	ActivityMilestone         ActivityType = "milestone"
	ActivityPenalty           ActivityType = "penalty"
)

// Valid reports whether t is one of the known activity types.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityAttendance, ActivityDailyUpdate, ActivityTask,
		ActivityProjectCompletion, ActivityMilestone, ActivityPenalty:
		return true
	}
	return false
}

// MonthKey is a comparable year-month marker ("YYYY-MM"). All construction
// goes through NewMonthKey so the format cannot drift.
type MonthKey string

// NewMonthKey returns the month key for the given instant.
func NewMonthKey(t time.Time) MonthKey {
	return MonthKey(t.Format("2006-01"))
}

// TransactionMetadata carries the activity-specific fields used by the
// scorer at scoring time and retained on the transaction for audit.
type TransactionMetadata struct {
	AttendanceStatus string `bson:"attendanceStatus,omitempty" json:"attendanceStatus,omitempty"`
	OnTime           bool   `bson:"onTime,omitempty" json:"onTime,omitempty"`
	UpdateType       string `bson:"updateType,omitempty" json:"updateType,omitempty"`
	TaskID           string `bson:"taskId,omitempty" json:"taskId,omitempty"`
	TaskPriority     string `bson:"taskPriority,omitempty" json:"taskPriority,omitempty"`
	ProjectID        string `bson:"projectId,omitempty" json:"projectId,omitempty"`
	EarlyCompletion  bool   `bson:"earlyCompletion,omitempty" json:"earlyCompletion,omitempty"`
	MilestoneType    string `bson:"milestoneType,omitempty" json:"milestoneType,omitempty"`
	PenaltyReason    string `bson:"penaltyReason,omitempty" json:"penaltyReason,omitempty"`
}

// PointsTransaction is one immutable signed point event. Transactions are
// never mutated or removed; corrections are new offsetting transactions.
type PointsTransaction struct {
	ActivityType ActivityType        `bson:"activityType" json:"activityType"`
	Points       int                 `bson:"points" json:"points"`
	Description  string              `bson:"description" json:"description"`
	Metadata     TransactionMetadata `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
}

// PointsLedger is the per-employee reward ledger. One document per
// employee, unique by employeeId, mutated only through the points service.
//
// TotalPoints holds the raw signed sum of all transactions; it may go
// negative and is preserved that way for audit. Read paths report
// ReportedTotal, which floors at zero.
type PointsLedger struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	EmployeeID    string              `bson:"employeeId" json:"employeeId"`
	TotalPoints   int                 `bson:"totalPoints" json:"-"`
	MonthlyPoints int                 `bson:"monthlyPoints" json:"monthlyPoints"`
	CurrentMonth  MonthKey            `bson:"currentMonth" json:"currentMonth"`
	Transactions  []PointsTransaction `bson:"transactions" json:"transactions"`
	LastReset     time.Time           `bson:"lastReset" json:"lastReset"`
	ExpiryDate    time.Time           `bson:"expiryDate" json:"expiryDate"`
	Version       int64               `bson:"version" json:"-"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// NewPointsLedger creates an empty ledger for an employee. Expiry is fixed
// at creation time plus expiryMonths calendar months; activity does not
// extend it.
func NewPointsLedger(employeeID string, now time.Time, expiryMonths int) *PointsLedger {
	return &PointsLedger{
		EmployeeID:   employeeID,
		CurrentMonth: NewMonthKey(now),
		Transactions: []PointsTransaction{},
		LastReset:    now,
		ExpiryDate:   now.AddDate(0, expiryMonths, 0),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ReportedTotal is the externally visible lifetime balance: the raw signed
// sum floored at zero.
func (l *PointsLedger) ReportedTotal() int {
	if l.TotalPoints < 0 {
		return 0
	}
	return l.TotalPoints
}

// ActiveAt derives the ledger's active flag from the expiry date. It is a
// computed view, never a stored field, so an extended expiry reactivates a
// ledger with no extra bookkeeping.
func (l *PointsLedger) ActiveAt(now time.Time) bool {
	return now.Before(l.ExpiryDate)
}

// MonthlyPointsAt is the monthly counter as of now. A ledger whose stored
// month is behind the wall clock reads as zero until the next write
// performs the rollover.
func (l *PointsLedger) MonthlyPointsAt(now time.Time) int {
	if l.CurrentMonth != NewMonthKey(now) {
		return 0
	}
	return l.MonthlyPoints
}
