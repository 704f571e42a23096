package cron

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jasonlvhit/gocron"

	"github.com/streamdesk/agency_backend/services"
)

// SheetSyncJob mirrors the roster and commissions to Google Sheets once a
// day so the spreadsheet stays usable even if nobody triggers a manual sync.
type SheetSyncJob struct {
	syncService *services.SyncService
}

func NewSheetSyncJob(syncService *services.SyncService) *SheetSyncJob {
	return &SheetSyncJob{syncService: syncService}
}

// Process blocks on the scheduler. Run it in its own goroutine.
func (j *SheetSyncJob) Process() {
	at := os.Getenv("SYNC_DAILY_AT")
	if at == "" {
		at = "03:00:00"
	}

	s := gocron.NewScheduler()
	s.Every(1).Day().At(at).Do(j.run)
	<-s.Start()
}

func (j *SheetSyncJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	status, err := j.syncService.Run(ctx)
	if err != nil {
		log.Printf("Scheduled sheet sync failed: %v", err)
		return
	}
	log.Printf("Scheduled sheet sync finished: %d rows written", status.RowsWritten)
}
