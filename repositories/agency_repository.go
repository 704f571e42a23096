package repositories

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/streamdesk/agency_backend/config"
	"github.com/streamdesk/agency_backend/models"
)

type AgencyRepository struct {
	client *firestore.Client
}

func NewAgencyRepository(client *firestore.Client) *AgencyRepository {
	return &AgencyRepository{client: client}
}

func (r *AgencyRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(config.AgenciesCollection)
}

// Get returns a single agency by ID
func (r *AgencyRepository) Get(ctx context.Context, id string) (*models.Agency, error) {
	snap, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var agency models.Agency
	if err := snap.DataTo(&agency); err != nil {
		return nil, err
	}
	agency.ID = snap.Ref.ID

	return &agency, nil
}

// List returns all agencies
func (r *AgencyRepository) List(ctx context.Context) ([]*models.Agency, error) {
	iter := r.collection().Documents(ctx)
	defer iter.Stop()

	var agencies []*models.Agency
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var agency models.Agency
		if err := snap.DataTo(&agency); err != nil {
			return nil, err
		}
		agency.ID = snap.Ref.ID
		agencies = append(agencies, &agency)
	}

	return agencies, nil
}

// Create stores a new agency and returns its generated ID
func (r *AgencyRepository) Create(ctx context.Context, agency *models.Agency) (string, error) {
	agency.CreatedAt = time.Now()

	ref := r.collection().NewDoc()
	if _, err := ref.Set(ctx, agency); err != nil {
		return "", err
	}

	agency.ID = ref.ID
	return ref.ID, nil
}

// Update overwrites the given fields of an agency document
func (r *AgencyRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
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

// Delete removes an agency document
func (r *AgencyRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection().Doc(id).Delete(ctx)
	return err
}
