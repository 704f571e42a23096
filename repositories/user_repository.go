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

type UserRepository struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) *UserRepository {
	return &UserRepository{client: client}
}

func (r *UserRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(config.UsersCollection)
}

// Get returns a dashboard user by ID
func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	snap, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var user models.User
	if err := snap.DataTo(&user); err != nil {
		return nil, err
	}
	user.ID = snap.Ref.ID

	return &user, nil
}

// FindByEmail returns the dashboard user with the given email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	iter := r.collection().Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := snap.DataTo(&user); err != nil {
		return nil, err
	}
	user.ID = snap.Ref.ID

	return &user, nil
}

// Count returns the number of dashboard users. Used by the bootstrap
// endpoint to refuse running twice.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	docs, err := r.collection().Select().Documents(ctx).GetAll()
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

// Create stores a new dashboard user and returns its generated ID
func (r *UserRepository) Create(ctx context.Context, user *models.User) (string, error) {
	user.CreatedAt = time.Now()

	ref := r.collection().NewDoc()
	if _, err := ref.Set(ctx, user); err != nil {
		return "", err
	}

	user.ID = ref.ID
	return ref.ID, nil
}

// UpdateLastLogin stamps the user's last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	_, err := r.collection().Doc(id).Update(ctx, []firestore.Update{
		{Path: "lastLoginAt", Value: time.Now()},
	})
	return err
}

// UpdateFCMToken stores the user's push notification token
func (r *UserRepository) UpdateFCMToken(ctx context.Context, id, token string) error {
	_, err := r.collection().Doc(id).Update(ctx, []firestore.Update{
		{Path: "fcmToken", Value: token},
	})
	return err
}
