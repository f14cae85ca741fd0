package memory

import (
	"context"
	"testing"
	"time"

	"github.com/WorkhubHQ/workhub-backend/internal/models"
	"github.com/WorkhubHQ/workhub-backend/internal/repositories"
	"github.com/stretchr/testify/require"
)

func newLedger(employeeID string) *models.PointsLedger {
	return models.NewPointsLedger(employeeID, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), 24)
}

func TestInsertAssignsIdentityAndVersion(t *testing.T) {
	repo := NewPointsLedgerRepository()
	ctx := context.Background()

	ledger := newLedger("emp-1")
	require.NoError(t, repo.Insert(ctx, ledger))
	require.False(t, ledger.ID.IsZero())
	require.Equal(t, int64(1), ledger.Version)

	require.ErrorIs(t, repo.Insert(ctx, newLedger("emp-1")), repositories.ErrDuplicateEmployee)
}

func TestFindByEmployeeID(t *testing.T) {
	repo := NewPointsLedgerRepository()
	ctx := context.Background()

	_, err := repo.FindByEmployeeID(ctx, "emp-1")
	require.ErrorIs(t, err, repositories.ErrNotFound)

	require.NoError(t, repo.Insert(ctx, newLedger("emp-1")))
	got, err := repo.FindByEmployeeID(ctx, "emp-1")
	require.NoError(t, err)
	require.Equal(t, "emp-1", got.EmployeeID)
}

func TestUpdateVersionedDetectsStaleWriter(t *testing.T) {
	repo := NewPointsLedgerRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newLedger("emp-1")))

	first, err := repo.FindByEmployeeID(ctx, "emp-1")
	require.NoError(t, err)
	second, err := repo.FindByEmployeeID(ctx, "emp-1")
	require.NoError(t, err)

	first.TotalPoints = 10
	require.NoError(t, repo.UpdateVersioned(ctx, first))
	require.Equal(t, int64(2), first.Version)

	// The second writer read version 1 and must lose.
	second.TotalPoints = 99
	require.ErrorIs(t, repo.UpdateVersioned(ctx, second), repositories.ErrVersionConflict)

	got, err := repo.FindByEmployeeID(ctx, "emp-1")
	require.NoError(t, err)
	require.Equal(t, 10, got.TotalPoints)
}

func TestReadsAreIsolatedCopies(t *testing.T) {
	repo := NewPointsLedgerRepository()
	ctx := context.Background()

	ledger := newLedger("emp-1")
	ledger.Transactions = append(ledger.Transactions, models.PointsTransaction{
		ActivityType: models.ActivityDailyUpdate,
		Points:       1,
	})
	require.NoError(t, repo.Insert(ctx, ledger))

	got, err := repo.FindByEmployeeID(ctx, "emp-1")
	require.NoError(t, err)
	got.TotalPoints = 999
	got.Transactions[0].Points = 999

	fresh, err := repo.FindByEmployeeID(ctx, "emp-1")
	require.NoError(t, err)
	require.Equal(t, 0, fresh.TotalPoints)
	require.Equal(t, 1, fresh.Transactions[0].Points)
}

func TestFindAllPreservesInsertionOrder(t *testing.T) {
	repo := NewPointsLedgerRepository()
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, repo.Insert(ctx, newLedger(id)))
	}

	ledgers, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, ledgers, 3)
	require.Equal(t, "c", ledgers[0].EmployeeID)
	require.Equal(t, "a", ledgers[1].EmployeeID)
	require.Equal(t, "b", ledgers[2].EmployeeID)
}
