package mongodb

import (
	"context"
	"errors"

	"github.com/WorkhubHQ/workhub-backend/internal/models"
	"github.com/WorkhubHQ/workhub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure PointsLedgerRepository implements the interface
var _ repositories.PointsLedgerRepository = (*PointsLedgerRepository)(nil)

// PointsLedgerRepository handles MongoDB operations for PointsLedger
type PointsLedgerRepository struct {
	collection *mongo.Collection
}

// NewPointsLedgerRepository creates a new PointsLedgerRepository
func NewPointsLedgerRepository(db *mongo.Database) *PointsLedgerRepository {
	return &PointsLedgerRepository{
		collection: db.Collection("points_ledgers"),
	}
}

// EnsureIndexes creates the indexes the ledger queries rely on. The unique
// employeeId index also backs the duplicate detection in Insert.
func (r *PointsLedgerRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "employeeId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "currentMonth", Value: 1}}},
		{Keys: bson.D{{Key: "expiryDate", Value: 1}}},
	})
	return err
}

// FindByEmployeeID finds the ledger for a specific employee
func (r *PointsLedgerRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*models.PointsLedger, error) {
	var ledger models.PointsLedger
	err := r.collection.FindOne(ctx, bson.M{"employeeId": employeeID}).Decode(&ledger)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ledger, nil
}

// Insert stores a new ledger with version 1
func (r *PointsLedgerRepository) Insert(ctx context.Context, ledger *models.PointsLedger) error {
	ledger.ID = primitive.NewObjectID()
	ledger.Version = 1
	_, err := r.collection.InsertOne(ctx, ledger)
	if mongo.IsDuplicateKeyError(err) {
		return repositories.ErrDuplicateEmployee
	}
	return err
}

// UpdateVersioned replaces the ledger document guarded by its version. The
// version filter is what makes the service's read-modify-write loop safe
// against concurrent writers for the same employee.
func (r *PointsLedgerRepository) UpdateVersioned(ctx context.Context, ledger *models.PointsLedger) error {
	filter := bson.M{
		"employeeId": ledger.EmployeeID,
		"version":    ledger.Version,
	}
	next := *ledger
	next.Version = ledger.Version + 1

	res, err := r.collection.ReplaceOne(ctx, filter, &next)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrVersionConflict
	}
	ledger.Version = next.Version
	return nil
}

// FindAll returns every ledger in creation order
func (r *PointsLedgerRepository) FindAll(ctx context.Context) ([]*models.PointsLedger, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ledgers []*models.PointsLedger
	if err = cursor.All(ctx, &ledgers); err != nil {
		return nil, err
	}

	// Return empty slice instead of nil if no documents found
	if ledgers == nil {
		ledgers = []*models.PointsLedger{}
	}

	return ledgers, nil
}
