package repositories

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/streamdesk/agency_backend/config"
	"github.com/streamdesk/agency_backend/models"
)

type CommissionRepository struct {
	client *firestore.Client
}

func NewCommissionRepository(client *firestore.Client) *CommissionRepository {
	return &CommissionRepository{client: client}
}

func (r *CommissionRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(config.CommissionsCollection)
}

// Get returns a single commission by ID
func (r *CommissionRepository) Get(ctx context.Context, id string) (*models.Commission, error) {
	snap, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var commission models.Commission
	if err := snap.DataTo(&commission); err != nil {
		return nil, err
	}
	commission.ID = snap.Ref.ID

	return &commission, nil
}

// ListByStreamer returns commissions for one streamer, optionally filtered
// by status
func (r *CommissionRepository) ListByStreamer(ctx context.Context, streamerID, statusFilter string) ([]*models.Commission, error) {
	q := r.collection().Where("streamerId", "==", streamerID)
	if statusFilter != "" {
		q = q.Where("status", "==", statusFilter)
	}
	return r.list(ctx, q)
}

// ListByStatus returns all commissions in a given status
func (r *CommissionRepository) ListByStatus(ctx context.Context, statusFilter string) ([]*models.Commission, error) {
	return r.list(ctx, r.collection().Where("status", "==", statusFilter))
}

// ListAll returns every commission document. Used by the sheets mirror.
func (r *CommissionRepository) ListAll(ctx context.Context) ([]*models.Commission, error) {
	return r.list(ctx, r.collection().Query)
}

// ListByMonth returns commissions created within the given month (YYYY-MM)
func (r *CommissionRepository) ListByMonth(ctx context.Context, streamerID, month string) ([]*models.Commission, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, err
	}
	end := start.AddDate(0, 1, 0)

	q := r.collection().
		Where("streamerId", "==", streamerID).
		Where("createdAt", ">=", start).
		Where("createdAt", "<", end)

	return r.list(ctx, q)
}

func (r *CommissionRepository) list(ctx context.Context, q firestore.Query) ([]*models.Commission, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var commissions []*models.Commission
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var commission models.Commission
		if err := snap.DataTo(&commission); err != nil {
			return nil, err
		}
		commission.ID = snap.Ref.ID
		commissions = append(commissions, &commission)
	}

	return commissions, nil
}

// Create stores a new commission under a generated UUID
func (r *CommissionRepository) Create(ctx context.Context, commission *models.Commission) (string, error) {
	id := uuid.NewString()
	commission.CreatedAt = time.Now()

	if _, err := r.collection().Doc(id).Set(ctx, commission); err != nil {
		return "", err
	}

	commission.ID = id
	return id, nil
}

// Update overwrites the given fields of a commission document
func (r *CommissionRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	fieldUpdates := make([]firestore.Update, 0, len(updates))
	for path, value := range updates {
		fieldUpdates = append(fieldUpdates, firestore.Update{Path: path, Value: value})
	}

	_, err := r.collection().Doc(id).Update(ctx, fieldUpdates)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

// Delete removes a commission document
func (r *CommissionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection().Doc(id).Delete(ctx)
	return err
}
