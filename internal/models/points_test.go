package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewMonthKey(t *testing.T) {
	require.Equal(t, MonthKey("2025-11"), NewMonthKey(time.Date(2025, 11, 30, 23, 59, 0, 0, time.UTC)))
	require.Equal(t, MonthKey("2026-01"), NewMonthKey(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestNewPointsLedgerDefaults(t *testing.T) {
	now := time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)
	ledger := NewPointsLedger("emp-1", now, 24)

	require.Equal(t, "emp-1", ledger.EmployeeID)
	require.Equal(t, 0, ledger.TotalPoints)
	require.Equal(t, 0, ledger.MonthlyPoints)
	require.Equal(t, MonthKey("2025-11"), ledger.CurrentMonth)
	require.Equal(t, now, ledger.LastReset)
	require.Equal(t, now.AddDate(0, 24, 0), ledger.ExpiryDate)
	require.Empty(t, ledger.Transactions)
}

func TestReportedTotalFloorsAtZero(t *testing.T) {
	ledger := &PointsLedger{TotalPoints: -43}
	require.Equal(t, 0, ledger.ReportedTotal())

	ledger.TotalPoints = 17
	require.Equal(t, 17, ledger.ReportedTotal())
}

func TestActiveAt(t *testing.T) {
	expiry := time.Date(2027, 11, 10, 9, 0, 0, 0, time.UTC)
	ledger := &PointsLedger{ExpiryDate: expiry}

	require.True(t, ledger.ActiveAt(expiry.Add(-time.Second)))
	// Expiry itself is already inactive: active means now < expiryDate.
	require.False(t, ledger.ActiveAt(expiry))
	require.False(t, ledger.ActiveAt(expiry.Add(time.Second)))
}

func TestMonthlyPointsAt(t *testing.T) {
	ledger := &PointsLedger{
		MonthlyPoints: 42,
		CurrentMonth:  MonthKey("2025-11"),
	}

	require.Equal(t, 42, ledger.MonthlyPointsAt(time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, 0, ledger.MonthlyPointsAt(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestActivityTypeValid(t *testing.T) {
	for _, a := range []ActivityType{ActivityAttendance, ActivityDailyUpdate, ActivityTask,
		ActivityProjectCompletion, ActivityMilestone, ActivityPenalty} {
		require.True(t, a.Valid())
	}
	require.False(t, ActivityType("overtime").Valid())
}
