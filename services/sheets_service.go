package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"google.golang.org/api/sheets/v4"

	"github.com/streamdesk/agency_backend/models"
)

// Tab names in the mirror spreadsheet
const (
	streamersSheet   = "Streamers"
	commissionsSheet = "Commissions"
)

// SheetsService writes Firestore collections into the mirror spreadsheet
type SheetsService struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheetsService wraps the shared Sheets client. The spreadsheet ID comes
// from SHEETS_SPREADSHEET_ID.
func NewSheetsService(svc *sheets.Service) *SheetsService {
	return &SheetsService{
		svc:           svc,
		spreadsheetID: os.Getenv("SHEETS_SPREADSHEET_ID"),
	}
}

// Enabled reports whether the mirror is configured
func (s *SheetsService) Enabled() bool {
	return s.svc != nil && s.spreadsheetID != ""
}

// MirrorStreamers replaces the Streamers tab with current data.
// Returns the number of data rows written.
func (s *SheetsService) MirrorStreamers(ctx context.Context, streamers []*models.Streamer) (int, error) {
	rows := [][]interface{}{
		{"ID", "Name", "Email", "Country", "Level", "Earnings", "Phone", "Status", "Agency"},
	}

	for _, streamer := range streamers {
		rows = append(rows, []interface{}{
			streamer.ID,
			streamer.Name,
			streamer.Email,
			streamer.Country,
			streamer.Level,
			streamer.Earnings,
			streamer.Phone,
			streamer.Status,
			streamer.AgencyID,
		})
	}

	if err := s.writeSheet(ctx, streamersSheet, rows); err != nil {
		return 0, err
	}

	return len(streamers), nil
}

// MirrorCommissions replaces the Commissions tab with current data
func (s *SheetsService) MirrorCommissions(ctx context.Context, commissions []*models.Commission) (int, error) {
	rows := [][]interface{}{
		{"ID", "StreamerID", "App", "BaseAmount", "Rate", "CommissionAmount", "Status", "CreatedAt", "PaidAt"},
	}

	for _, commission := range commissions {
		paidAt := ""
		if commission.PaidAt != nil {
			paidAt = commission.PaidAt.Format(time.RFC3339)
		}

		rows = append(rows, []interface{}{
			commission.ID,
			commission.StreamerID,
			commission.App,
			commission.BaseAmount,
			commission.Rate,
			commission.CommissionAmount,
			commission.Status,
			commission.CreatedAt.Format(time.RFC3339),
			paidAt,
		})
	}

	if err := s.writeSheet(ctx, commissionsSheet, rows); err != nil {
		return 0, err
	}

	return len(commissions), nil
}

// writeSheet clears a tab and writes the given rows starting at A1, so a
// full sync is idempotent
func (s *SheetsService) writeSheet(ctx context.Context, sheetName string, rows [][]interface{}) error {
	if !s.Enabled() {
		return fmt.Errorf("sheets mirror is not configured")
	}

	clearRange := fmt.Sprintf("%s!A:Z", sheetName)
	_, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear sheet %s: %w", sheetName, err)
	}

	valueRange := &sheets.ValueRange{Values: rows}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, fmt.Sprintf("%s!A1", sheetName), valueRange).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write sheet %s: %w", sheetName, err)
	}

	return nil
}
