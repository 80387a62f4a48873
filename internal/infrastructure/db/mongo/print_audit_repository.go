package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
	"github.com/multisorteios/rifa-admin/internal/core/ports"
)

const collectionPrintJobs = "print_jobs"

// PrintAuditRepository implements ports.PrintAuditRepository using MongoDB.
type PrintAuditRepository struct {
	col *mongo.Collection
}

// NewPrintAuditRepository creates a new PrintAuditRepository.
func NewPrintAuditRepository(db *mongo.Database) ports.PrintAuditRepository {
	return &PrintAuditRepository{col: db.Collection(collectionPrintJobs)}
}

// EnsureIndexes creates the listing index on (browser_context, submitted_at).
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := db.Collection(collectionPrintJobs).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "browser_context", Value: 1}, {Key: "submitted_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create %s index: %w", collectionPrintJobs, err)
	}
	return nil
}

// Insert persists one print submission record.
func (r *PrintAuditRepository) Insert(ctx context.Context, job *domain.PrintJob) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, job)
	return err
}

// ListByContext returns the latest submissions of a browser context, newest first.
func (r *PrintAuditRepository) ListByContext(ctx context.Context, contextID string, limit int64) ([]domain.PrintJob, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "submitted_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{"browser_context": contextID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	jobs := make([]domain.PrintJob, 0)
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
