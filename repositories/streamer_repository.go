package repositories

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/streamdesk/agency_backend/config"
	"github.com/streamdesk/agency_backend/models"
)

// ErrNotFound is returned when a requested document does not exist
var ErrNotFound = errors.New("document not found")

type StreamerRepository struct {
	client *firestore.Client
}

func NewStreamerRepository(client *firestore.Client) *StreamerRepository {
	return &StreamerRepository{client: client}
}

func (r *StreamerRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(config.StreamersCollection)
}

// Get returns a single streamer by document ID
func (r *StreamerRepository) Get(ctx context.Context, id string) (*models.Streamer, error) {
	snap, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var streamer models.Streamer
	if err := snap.DataTo(&streamer); err != nil {
		return nil, err
	}
	streamer.ID = snap.Ref.ID

	return &streamer, nil
}

// List returns streamers, optionally filtered by status and agency
func (r *StreamerRepository) List(ctx context.Context, agencyID, statusFilter string, limit int) ([]*models.Streamer, error) {
	q := r.collection().Query
	if agencyID != "" {
		q = q.Where("agencyId", "==", agencyID)
	}
	if statusFilter != "" {
		q = q.Where("status", "==", statusFilter)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var streamers []*models.Streamer
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var streamer models.Streamer
		if err := snap.DataTo(&streamer); err != nil {
			return nil, err
		}
		streamer.ID = snap.Ref.ID
		streamers = append(streamers, &streamer)
	}

	return streamers, nil
}

// FindByEmail returns the streamer with the given email, if any
func (r *StreamerRepository) FindByEmail(ctx context.Context, email string) (*models.Streamer, error) {
	iter := r.collection().Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var streamer models.Streamer
	if err := snap.DataTo(&streamer); err != nil {
		return nil, err
	}
	streamer.ID = snap.Ref.ID

	return &streamer, nil
}

// Create stores a new streamer and returns its generated ID
func (r *StreamerRepository) Create(ctx context.Context, streamer *models.Streamer) (string, error) {
	streamer.CreatedAt = time.Now()

	ref := r.collection().NewDoc()
	if _, err := ref.Set(ctx, streamer); err != nil {
		return "", err
	}

	streamer.ID = ref.ID
	return ref.ID, nil
}

// Update overwrites the given fields of a streamer document
func (r *StreamerRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	updates["updatedAt"] = time.Now()

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

// Delete removes a streamer document
func (r *StreamerRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection().Doc(id).Delete(ctx)
	return err
}
