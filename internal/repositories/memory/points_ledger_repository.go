// Package memory provides an in-memory PointsLedgerRepository with the
// same optimistic-concurrency contract as the MongoDB implementation. It
// backs the test suite, which exercises the engine without a database.
package memory

import (
	"context"
	"sync"

	"github.com/WorkhubHQ/workhub-backend/internal/models"
	"github.com/WorkhubHQ/workhub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure PointsLedgerRepository implements the interface
var _ repositories.PointsLedgerRepository = (*PointsLedgerRepository)(nil)

// PointsLedgerRepository stores ledgers in process memory. Documents are
// deep-copied on the way in and out, so callers never share state with the
// store; a stale copy loses the version check exactly as it would against
// MongoDB.
type PointsLedgerRepository struct {
	mu      sync.Mutex
	ledgers map[string]*models.PointsLedger
	order   []string // employee IDs in insertion order
}

// NewPointsLedgerRepository creates an empty in-memory repository
func NewPointsLedgerRepository() *PointsLedgerRepository {
	return &PointsLedgerRepository{
		ledgers: make(map[string]*models.PointsLedger),
	}
}

// FindByEmployeeID finds the ledger for a specific employee
func (r *PointsLedgerRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*models.PointsLedger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ledger, ok := r.ledgers[employeeID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return clone(ledger), nil
}

// Insert stores a new ledger with version 1
func (r *PointsLedgerRepository) Insert(ctx context.Context, ledger *models.PointsLedger) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ledgers[ledger.EmployeeID]; ok {
		return repositories.ErrDuplicateEmployee
	}
	ledger.ID = primitive.NewObjectID()
	ledger.Version = 1
	r.ledgers[ledger.EmployeeID] = clone(ledger)
	r.order = append(r.order, ledger.EmployeeID)
	return nil
}

// UpdateVersioned replaces the stored ledger guarded by its version
func (r *PointsLedgerRepository) UpdateVersioned(ctx context.Context, ledger *models.PointsLedger) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.ledgers[ledger.EmployeeID]
	if !ok || stored.Version != ledger.Version {
		return repositories.ErrVersionConflict
	}
	ledger.Version++
	r.ledgers[ledger.EmployeeID] = clone(ledger)
	return nil
}

// FindAll returns every ledger in creation order
func (r *PointsLedgerRepository) FindAll(ctx context.Context) ([]*models.PointsLedger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ledgers := make([]*models.PointsLedger, 0, len(r.order))
	for _, id := range r.order {
		ledgers = append(ledgers, clone(r.ledgers[id]))
	}
	return ledgers, nil
}

func clone(l *models.PointsLedger) *models.PointsLedger {
	c := *l
	c.Transactions = make([]models.PointsTransaction, len(l.Transactions))
	copy(c.Transactions, l.Transactions)
	return &c
}
