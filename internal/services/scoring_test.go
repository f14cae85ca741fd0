package services

import (
	"testing"
	"time"

	"github.com/WorkhubHQ/workhub-backend/internal/config"
	"github.com/WorkhubHQ/workhub-backend/internal/models"
	"github.com/stretchr/testify/require"
)

func TestScoreRules(t *testing.T) {
	scorer := NewActivityScorer(config.DefaultPoints())
	at := time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		activity models.ActivityType
		meta     models.TransactionMetadata
		points   int
	}{
		{"attendance present on time", models.ActivityAttendance,
			models.TransactionMetadata{AttendanceStatus: AttendancePresent, OnTime: true}, 7},
		{"attendance present not on time", models.ActivityAttendance,
			models.TransactionMetadata{AttendanceStatus: AttendancePresent}, 5},
		{"attendance wfh on time", models.ActivityAttendance,
			models.TransactionMetadata{AttendanceStatus: AttendanceWFH, OnTime: true}, 7},
		{"attendance late", models.ActivityAttendance,
			models.TransactionMetadata{AttendanceStatus: AttendanceLate}, -1},
		{"attendance half day", models.ActivityAttendance,
			models.TransactionMetadata{AttendanceStatus: AttendanceHalfDay}, 2},
		{"simple update", models.ActivityDailyUpdate,
			models.TransactionMetadata{UpdateType: UpdateSimple}, 1},
		{"rich update", models.ActivityDailyUpdate,
			models.TransactionMetadata{UpdateType: UpdateRich}, 3},
		{"low priority task", models.ActivityTask,
			models.TransactionMetadata{TaskPriority: "low"}, 4},
		{"medium priority task", models.ActivityTask,
			models.TransactionMetadata{TaskPriority: "medium"}, 6},
		{"high priority task", models.ActivityTask,
			models.TransactionMetadata{TaskPriority: "high"}, 9},
		{"project completion", models.ActivityProjectCompletion,
			models.TransactionMetadata{ProjectID: "p1"}, 10},
		{"early project completion", models.ActivityProjectCompletion,
			models.TransactionMetadata{ProjectID: "p1", EarlyCompletion: true}, 20},
		{"standard milestone", models.ActivityMilestone,
			models.TransactionMetadata{MilestoneType: "standard"}, 20},
		{"premium milestone", models.ActivityMilestone,
			models.TransactionMetadata{MilestoneType: "premium"}, 30},
	}

	for _, ts := range tests {
		t.Run(ts.name, func(t *testing.T) {
			points, description, err := scorer.Score(ts.activity, ts.meta, at)
			require.NoError(t, err)
			require.Equal(t, ts.points, points)
			require.NotEmpty(t, description)
		})
	}
}

func TestScoreRejectsUnscoreableInput(t *testing.T) {
	scorer := NewActivityScorer(config.DefaultPoints())
	at := time.Now()

	tests := []struct {
		name     string
		activity models.ActivityType
		meta     models.TransactionMetadata
	}{
		{"unknown activity type", models.ActivityType("overtime"), models.TransactionMetadata{}},
		{"attendance without status", models.ActivityAttendance, models.TransactionMetadata{}},
		{"attendance unknown status", models.ActivityAttendance,
			models.TransactionMetadata{AttendanceStatus: "Vacation"}},
		{"update without type", models.ActivityDailyUpdate, models.TransactionMetadata{}},
		{"task with unknown priority", models.ActivityTask,
			models.TransactionMetadata{TaskPriority: "urgent"}},
		{"project without id", models.ActivityProjectCompletion, models.TransactionMetadata{}},
		{"milestone unknown kind", models.ActivityMilestone,
			models.TransactionMetadata{MilestoneType: "platinum"}},
		{"penalty is not scoreable", models.ActivityPenalty, models.TransactionMetadata{}},
	}

	for _, ts := range tests {
		t.Run(ts.name, func(t *testing.T) {
			_, _, err := scorer.Score(ts.activity, ts.meta, at)
			require.ErrorIs(t, err, ErrInvalidActivity)
		})
	}
}

func TestScoreAttendanceDescriptions(t *testing.T) {
	scorer := NewActivityScorer(config.DefaultPoints())

	_, description, err := scorer.Score(models.ActivityAttendance,
		models.TransactionMetadata{AttendanceStatus: AttendancePresent, OnTime: true}, time.Now())
	require.NoError(t, err)
	require.Equal(t, "Attendance - Present (On Time)", description)

	_, description, err = scorer.Score(models.ActivityAttendance,
		models.TransactionMetadata{AttendanceStatus: AttendanceWFH}, time.Now())
	require.NoError(t, err)
	require.Equal(t, "Attendance - WFH", description)
}
