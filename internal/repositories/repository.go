package repositories

import (
	"context"
	"errors"

	"github.com/WorkhubHQ/workhub-backend/internal/models"
)

// Sentinel errors shared by every repository implementation. Services
// translate these into their own failure taxonomy.
var (
	// ErrNotFound means no document matched the lookup key.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicateEmployee means an insert raced with another creator for
	// the same employee; the caller should reload and retry.
	ErrDuplicateEmployee = errors.New("repository: ledger already exists for employee")
	// ErrVersionConflict means a versioned update lost the race: the stored
	// document's version no longer matches the one that was loaded.
	ErrVersionConflict = errors.New("repository: ledger version conflict")
)

// PointsLedgerRepository defines the interface for points ledger storage.
//
// The store is a keyed document store supporting per-key atomic
// read-modify-write: Insert enforces the unique employee key, and
// UpdateVersioned only succeeds when the stored version still matches the
// version the ledger was loaded with.
type PointsLedgerRepository interface {
	// FindByEmployeeID returns the ledger for an employee, or ErrNotFound.
	FindByEmployeeID(ctx context.Context, employeeID string) (*models.PointsLedger, error)
	// Insert stores a new ledger, assigning its ID and initial version.
	// Returns ErrDuplicateEmployee if a ledger already exists.
	Insert(ctx context.Context, ledger *models.PointsLedger) error
	// UpdateVersioned replaces the stored ledger if and only if the stored
	// version equals ledger.Version; on success the version is bumped both
	// in the store and on the passed ledger. Returns ErrVersionConflict
	// when the compare-and-swap loses.
	UpdateVersioned(ctx context.Context, ledger *models.PointsLedger) error
	// FindAll returns every ledger in creation order. Creation order is the
	// leaderboard tie-break, so implementations must preserve it.
	FindAll(ctx context.Context) ([]*models.PointsLedger, error)
}

// AdminUserRepository defines the interface for admin account operations
type AdminUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	Create(ctx context.Context, user *models.AdminUser) error
}
