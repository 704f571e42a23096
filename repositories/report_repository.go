package repositories

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/streamdesk/agency_backend/config"
	"github.com/streamdesk/agency_backend/models"
)

type ReportRepository struct {
	client *firestore.Client
}

func NewReportRepository(client *firestore.Client) *ReportRepository {
	return &ReportRepository{client: client}
}

func (r *ReportRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(config.ReportsCollection)
}

// reportID builds the deterministic document ID so regenerating a report
// overwrites the previous one
func reportID(streamerID, month string) string {
	return fmt.Sprintf("%s_%s", streamerID, month)
}

// Get returns the report for one streamer and month
func (r *ReportRepository) Get(ctx context.Context, streamerID, month string) (*models.Report, error) {
	snap, err := r.collection().Doc(reportID(streamerID, month)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var report models.Report
	if err := snap.DataTo(&report); err != nil {
		return nil, err
	}
	report.ID = snap.Ref.ID

	return &report, nil
}

// ListByMonth returns all reports generated for a month
func (r *ReportRepository) ListByMonth(ctx context.Context, month string) ([]*models.Report, error) {
	iter := r.collection().Where("month", "==", month).Documents(ctx)
	defer iter.Stop()

	var reports []*models.Report
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var report models.Report
		if err := snap.DataTo(&report); err != nil {
			return nil, err
		}
		report.ID = snap.Ref.ID
		reports = append(reports, &report)
	}

	return reports, nil
}

// Save upserts a report document
func (r *ReportRepository) Save(ctx context.Context, report *models.Report) error {
	report.GeneratedAt = time.Now()
	id := reportID(report.StreamerID, report.Month)

	if _, err := r.collection().Doc(id).Set(ctx, report); err != nil {
		return err
	}

	report.ID = id
	return nil
}
