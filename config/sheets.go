package config

import (
	"context"
	"log"

	"google.golang.org/api/sheets/v4"
)

var SheetsService *sheets.Service

// InitSheets creates the Google Sheets API client used by the sync service.
// Reuses the Firebase service account credentials.
func InitSheets() *sheets.Service {
	ctx := context.Background()

	svc, err := sheets.NewService(ctx, CredentialsOption())
	if err != nil {
		log.Printf("Warning: Sheets client initialization failed: %v", err)
		log.Println("Sheets mirror will be disabled")
		return nil
	}

	log.Println("Google Sheets client initialized")
	SheetsService = svc
	return svc
}
