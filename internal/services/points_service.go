package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/WorkhubHQ/workhub-backend/internal/config"
	"github.com/WorkhubHQ/workhub-backend/internal/models"
	"github.com/WorkhubHQ/workhub-backend/internal/repositories"
	"go.uber.org/zap"
)

const (
	defaultHistoryLimit     = 50
	defaultLeaderboardLimit = 10
	recentActivityPreview   = 3
)

// PointsService is the points accounting engine: it owns every mutation of
// the per-employee ledgers and serves the read-side views. All writes go
// through apply, which serializes concurrent updates for the same employee
// with an optimistic-concurrency retry loop; different employees proceed
// fully in parallel.
type PointsService struct {
	repo   repositories.PointsLedgerRepository
	cfg    config.PointsConfig
	scorer ActivityScorer
	logger *zap.Logger
	now    func() time.Time
}

// NewPointsService creates a new PointsService
func NewPointsService(repo repositories.PointsLedgerRepository, cfg config.PointsConfig, logger *zap.Logger) *PointsService {
	return &PointsService{
		repo:   repo,
		cfg:    cfg,
		scorer: NewActivityScorer(cfg),
		logger: logger,
		now:    time.Now,
	}
}

// RecordActivity scores an activity event and applies it to the employee's
// ledger, creating the ledger lazily on first activity. Returns the
// transaction that was appended.
func (s *PointsService) RecordActivity(ctx context.Context, employeeID string, activity models.ActivityType, meta models.TransactionMetadata) (*models.PointsTransaction, error) {
	if employeeID == "" {
		return nil, fmt.Errorf("%w: employee id is required", ErrInvalidActivity)
	}
	if activity == models.ActivityPenalty {
		return nil, fmt.Errorf("%w: penalties are applied through ApplyPenalty", ErrInvalidActivity)
	}

	now := s.now()
	points, description, err := s.scorer.Score(activity, meta, now)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, employeeID, activity, points, description, meta, now)
}

// ApplyPenalty records an admin-initiated negative transaction. The amount
// is a positive magnitude and is negated before recording. Penalties do
// not participate in the monthly cap; they reduce the raw lifetime sum
// directly.
func (s *PointsService) ApplyPenalty(ctx context.Context, employeeID string, amount int, reason, actingAdmin string) (*models.PointsTransaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if strings.TrimSpace(reason) == "" {
		return nil, ErrMissingReason
	}

	now := s.now()
	description := fmt.Sprintf("Penalty: %s (%d points)", reason, -amount)
	meta := models.TransactionMetadata{PenaltyReason: reason}

	tx, err := s.apply(ctx, employeeID, models.ActivityPenalty, -amount, description, meta, now)
	if err != nil {
		return nil, err
	}
	s.logger.Info("penalty applied",
		zap.String("employeeId", employeeID),
		zap.Int("amount", amount),
		zap.String("reason", reason),
		zap.String("appliedBy", actingAdmin),
	)
	return tx, nil
}

// apply is the atomic core: load or create the ledger, roll the month
// over if the wall clock crossed a boundary, enforce the monthly cap on
// the counter, append the transaction and persist behind the version
// check. A losing compare-and-swap repeats the whole sequence against the
// fresh document.
func (s *PointsService) apply(ctx context.Context, employeeID string, activity models.ActivityType, points int, description string, meta models.TransactionMetadata, now time.Time) (*models.PointsTransaction, error) {
	retries := s.cfg.WriteRetries
	if retries < 1 {
		retries = 1
	}

	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			writeConflictRetries.Inc()
			// Brief staggered pause so colliding writers spread out.
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, ctx.Err())
			case <-time.After(time.Duration(attempt) * 2 * time.Millisecond):
			}
		}

		ledger, err := s.ensureLedger(ctx, employeeID, now)
		if err != nil {
			return nil, err
		}

		rollover(ledger, now)

		tx := models.PointsTransaction{
			ActivityType: activity,
			Points:       points,
			Description:  description,
			Metadata:     meta,
			CreatedAt:    now,
		}

		// The full uncapped value always lands on the transaction and the
		// raw lifetime sum; the cap bounds only the monthly counter.
		ledger.TotalPoints += points
		if activity != models.ActivityPenalty {
			ledger.MonthlyPoints += points
			if ledger.MonthlyPoints > s.cfg.MonthlyCap {
				ledger.MonthlyPoints = s.cfg.MonthlyCap
				monthlyCapClamps.Inc()
			}
			if ledger.MonthlyPoints < 0 {
				ledger.MonthlyPoints = 0
			}
		}
		ledger.Transactions = append(ledger.Transactions, tx)
		ledger.UpdatedAt = now

		err = s.repo.UpdateVersioned(ctx, ledger)
		if errors.Is(err, repositories.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		transactionsRecorded.WithLabelValues(string(activity)).Inc()
		s.logger.Debug("transaction recorded",
			zap.String("employeeId", employeeID),
			zap.String("activity", string(activity)),
			zap.Int("points", points),
			zap.Int("attempt", attempt+1),
		)
		return &tx, nil
	}

	s.logger.Warn("ledger write contention exhausted retries",
		zap.String("employeeId", employeeID),
		zap.Int("retries", retries),
	)
	return nil, ErrConcurrencyExhausted
}

// ensureLedger loads the employee's ledger, creating it if this is the
// first activity. A create that loses the unique-key race falls back to
// reloading the winner's document.
func (s *PointsService) ensureLedger(ctx context.Context, employeeID string, now time.Time) (*models.PointsLedger, error) {
	ledger, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err == nil {
		return ledger, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	ledger = models.NewPointsLedger(employeeID, now, s.cfg.ExpiryMonths)
	err = s.repo.Insert(ctx, ledger)
	if errors.Is(err, repositories.ErrDuplicateEmployee) {
		ledger, err = s.repo.FindByEmployeeID(ctx, employeeID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return ledger, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return ledger, nil
}

// rollover resets the monthly counter when the wall clock has crossed into
// a new month. Lifetime totals and the transaction log are untouched.
func rollover(ledger *models.PointsLedger, now time.Time) {
	month := models.NewMonthKey(now)
	if ledger.CurrentMonth != month {
		ledger.CurrentMonth = month
		ledger.MonthlyPoints = 0
		ledger.LastReset = now
	}
}

// GetSummary returns the employee's ledger summary. The active flag and
// the monthly counter are derived against the current clock, so a ledger
// that has not been written to since a month boundary reads as zero.
func (s *PointsService) GetSummary(ctx context.Context, employeeID string) (*models.PointsSummary, error) {
	ledger, err := s.loadLedger(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	monthly := ledger.MonthlyPointsAt(now)
	return &models.PointsSummary{
		EmployeeID:          ledger.EmployeeID,
		TotalPoints:         ledger.ReportedTotal(),
		MonthlyPoints:       monthly,
		MonthlyCapRemaining: s.capRemaining(monthly),
		CurrentMonth:        models.NewMonthKey(now),
		IsActive:            ledger.ActiveAt(now),
		ExpiryDate:          ledger.ExpiryDate,
		TransactionCount:    len(ledger.Transactions),
	}, nil
}

// GetHistory returns the employee's transactions, most recent first. The
// history remains readable after the ledger expires.
func (s *PointsService) GetHistory(ctx context.Context, employeeID string, limit int) ([]models.PointsTransaction, error) {
	ledger, err := s.loadLedger(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return lastReversed(ledger.Transactions, limit), nil
}

// GetLeaderboard ranks active ledgers by lifetime total, descending. Ties
// break on ledger creation order so repeated calls over an unchanged
// snapshot return identical rankings.
func (s *PointsService) GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	ledgers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	now := s.now()
	active := make([]*models.PointsLedger, 0, len(ledgers))
	for _, l := range ledgers {
		if l.ActiveAt(now) {
			active = append(active, l)
		}
	}
	// FindAll yields creation order; the stable sort preserves it on ties.
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].ReportedTotal() > active[j].ReportedTotal()
	})
	if len(active) > limit {
		active = active[:limit]
	}

	entries := make([]models.LeaderboardEntry, 0, len(active))
	for i, l := range active {
		entries = append(entries, models.LeaderboardEntry{
			Rank:           i + 1,
			EmployeeID:     l.EmployeeID,
			TotalPoints:    l.ReportedTotal(),
			MonthlyPoints:  l.MonthlyPointsAt(now),
			RecentActivity: lastReversed(l.Transactions, recentActivityPreview),
		})
	}
	return entries, nil
}

// GetSystemSummary aggregates statistics over every ledger. Zero ledgers
// report zeros, not an error.
func (s *PointsService) GetSystemSummary(ctx context.Context) (*models.SystemSummary, error) {
	ledgers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	summary := &models.SystemSummary{}
	if len(ledgers) == 0 {
		return summary, nil
	}

	now := s.now()
	summary.TotalEmployees = len(ledgers)
	summary.MinPoints = ledgers[0].ReportedTotal()
	for _, l := range ledgers {
		total := l.ReportedTotal()
		summary.TotalPointsDistributed += total
		if total > summary.MaxPoints {
			summary.MaxPoints = total
		}
		if total < summary.MinPoints {
			summary.MinPoints = total
		}
		if l.ActiveAt(now) {
			summary.ActiveEmployees++
		}
	}
	summary.AveragePointsPerEmployee = float64(summary.TotalPointsDistributed) / float64(summary.TotalEmployees)
	return summary, nil
}

// GetLedgerDetail returns the admin view of one employee's ledger with its
// recent transactions.
func (s *PointsService) GetLedgerDetail(ctx context.Context, employeeID string) (*models.LedgerDetail, error) {
	ledger, err := s.loadLedger(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	monthly := ledger.MonthlyPointsAt(now)
	return &models.LedgerDetail{
		EmployeeID:          ledger.EmployeeID,
		TotalPoints:         ledger.ReportedTotal(),
		MonthlyPoints:       monthly,
		MonthlyCapRemaining: s.capRemaining(monthly),
		CurrentMonth:        models.NewMonthKey(now),
		IsActive:            ledger.ActiveAt(now),
		ExpiryDate:          ledger.ExpiryDate,
		Transactions:        lastReversed(ledger.Transactions, defaultHistoryLimit),
	}, nil
}

// GetAllLedgers returns every ledger ranked by lifetime total, including
// expired ones, for the admin table view.
func (s *PointsService) GetAllLedgers(ctx context.Context) ([]models.LedgerOverview, error) {
	ledgers, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	now := s.now()
	sort.SliceStable(ledgers, func(i, j int) bool {
		return ledgers[i].ReportedTotal() > ledgers[j].ReportedTotal()
	})

	rows := make([]models.LedgerOverview, 0, len(ledgers))
	for i, l := range ledgers {
		row := models.LedgerOverview{
			Rank:             i + 1,
			EmployeeID:       l.EmployeeID,
			TotalPoints:      l.ReportedTotal(),
			MonthlyPoints:    l.MonthlyPointsAt(now),
			CurrentMonth:     l.CurrentMonth,
			IsActive:         l.ActiveAt(now),
			ExpiryDate:       l.ExpiryDate,
			TransactionCount: len(l.Transactions),
		}
		if n := len(l.Transactions); n > 0 {
			row.LastTransaction = l.Transactions[n-1].CreatedAt
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// MonthlyCap exposes the configured cap for client display.
func (s *PointsService) MonthlyCap() int { return s.cfg.MonthlyCap }

// ExpiryMonths exposes the configured expiry window for client display.
func (s *PointsService) ExpiryMonths() int { return s.cfg.ExpiryMonths }

func (s *PointsService) loadLedger(ctx context.Context, employeeID string) (*models.PointsLedger, error) {
	ledger, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return ledger, nil
}

func (s *PointsService) capRemaining(monthly int) int {
	remaining := s.cfg.MonthlyCap - monthly
	if remaining < 0 {
		return 0
	}
	return remaining
}

// lastReversed returns up to limit trailing elements, most recent first.
func lastReversed(txs []models.PointsTransaction, limit int) []models.PointsTransaction {
	n := len(txs)
	if limit > n {
		limit = n
	}
	out := make([]models.PointsTransaction, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, txs[i])
	}
	return out
}
