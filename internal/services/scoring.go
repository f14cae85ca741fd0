package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/WorkhubHQ/workhub-backend/internal/config"
	"github.com/WorkhubHQ/workhub-backend/internal/models"
)

// Attendance statuses understood by the scorer.
const (
	AttendancePresent = "Present"
	AttendanceWFH     = "WFH"
	AttendanceLate    = "Late"
	AttendanceHalfDay = "Half-day"
)

// Update richness grades.
const (
	UpdateSimple = "simple"
	UpdateRich   = "rich"
)

// ActivityScorer maps an activity and its metadata to a signed point value
// and an audit description. It is pure: no state, no clock reads beyond
// the timestamp it is handed, and it never touches a ledger.
type ActivityScorer struct {
	cfg config.PointsConfig
}

// NewActivityScorer creates a scorer over the given policy
func NewActivityScorer(cfg config.PointsConfig) ActivityScorer {
	return ActivityScorer{cfg: cfg}
}

// Score returns the point value and description for an activity. Penalties
// are not scored here: their magnitude comes from the caller and they are
// applied through ApplyPenalty.
func (s ActivityScorer) Score(activity models.ActivityType, meta models.TransactionMetadata, at time.Time) (int, string, error) {
	switch activity {
	case models.ActivityAttendance:
		return s.scoreAttendance(meta)
	case models.ActivityDailyUpdate:
		return s.scoreDailyUpdate(meta)
	case models.ActivityTask:
		return s.scoreTask(meta)
	case models.ActivityProjectCompletion:
		return s.scoreProjectCompletion(meta)
	case models.ActivityMilestone:
		return s.scoreMilestone(meta)
	default:
		return 0, "", fmt.Errorf("%w: unknown activity type %q", ErrInvalidActivity, activity)
	}
}

func (s ActivityScorer) scoreAttendance(meta models.TransactionMetadata) (int, string, error) {
	switch meta.AttendanceStatus {
	case AttendancePresent, AttendanceWFH:
		points := s.cfg.Attendance.Present
		description := fmt.Sprintf("Attendance - %s", meta.AttendanceStatus)
		if meta.OnTime {
			points += s.cfg.Attendance.OnTimeBonus
			description = fmt.Sprintf("Attendance - %s (On Time)", meta.AttendanceStatus)
		}
		return points, description, nil
	case AttendanceLate:
		return s.cfg.Attendance.Late, "Attendance - Late", nil
	case AttendanceHalfDay:
		return s.cfg.Attendance.Present / 2, "Attendance - Half Day", nil
	case "":
		return 0, "", fmt.Errorf("%w: attendance requires a status", ErrInvalidActivity)
	default:
		return 0, "", fmt.Errorf("%w: unknown attendance status %q", ErrInvalidActivity, meta.AttendanceStatus)
	}
}

func (s ActivityScorer) scoreDailyUpdate(meta models.TransactionMetadata) (int, string, error) {
	switch meta.UpdateType {
	case UpdateRich:
		return s.cfg.DailyUpdate.Rich, "Daily Update - Rich (with checklist/attachments)", nil
	case UpdateSimple:
		return s.cfg.DailyUpdate.Simple, "Daily Update - Simple", nil
	default:
		return 0, "", fmt.Errorf("%w: unknown update type %q", ErrInvalidActivity, meta.UpdateType)
	}
}

func (s ActivityScorer) scoreTask(meta models.TransactionMetadata) (int, string, error) {
	bonus, ok := s.cfg.Task.PriorityBonus[meta.TaskPriority]
	if !ok {
		return 0, "", fmt.Errorf("%w: unknown task priority %q", ErrInvalidActivity, meta.TaskPriority)
	}
	points := s.cfg.Task.Base + bonus
	description := fmt.Sprintf("Task Completed - Priority: %s (Base: %d + Bonus: %d)",
		strings.ToUpper(meta.TaskPriority), s.cfg.Task.Base, bonus)
	return points, description, nil
}

func (s ActivityScorer) scoreProjectCompletion(meta models.TransactionMetadata) (int, string, error) {
	if meta.ProjectID == "" {
		return 0, "", fmt.Errorf("%w: project completion requires a project id", ErrInvalidActivity)
	}
	points := s.cfg.Project.CompletionShare
	description := fmt.Sprintf("Project Completed - %d points", points)
	if meta.EarlyCompletion {
		points += s.cfg.Project.EarlyBonus
		description = fmt.Sprintf("Project Completed (Early) - %d base + %d early bonus",
			s.cfg.Project.CompletionShare, s.cfg.Project.EarlyBonus)
	}
	return points, description, nil
}

func (s ActivityScorer) scoreMilestone(meta models.TransactionMetadata) (int, string, error) {
	award, ok := s.cfg.MilestoneAwards[meta.MilestoneType]
	if !ok {
		return 0, "", fmt.Errorf("%w: unknown milestone kind %q", ErrInvalidActivity, meta.MilestoneType)
	}
	description := fmt.Sprintf("Milestone: %s (%d points)", meta.MilestoneType, award)
	return award, description, nil
}
