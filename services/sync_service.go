package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/streamdesk/agency_backend/models"
	"github.com/streamdesk/agency_backend/repositories"
	"github.com/streamdesk/agency_backend/utils"
	ws "github.com/streamdesk/agency_backend/websocket"
)

const syncStatusKey = "sync:last"

// SyncService mirrors Firestore collections into the Google Sheets
// spreadsheet. It is deliberately sequential glue: fetch, then write,
// collection by collection.
type SyncService struct {
	streamers   *repositories.StreamerRepository
	commissions *repositories.CommissionRepository
	sheets      *SheetsService
	redis       *redis.Client
	hub         *ws.Hub

	mu      sync.Mutex
	running bool
}

func NewSyncService(
	streamers *repositories.StreamerRepository,
	commissions *repositories.CommissionRepository,
	sheets *SheetsService,
	redisClient *redis.Client,
	hub *ws.Hub,
) *SyncService {
	return &SyncService{
		streamers:   streamers,
		commissions: commissions,
		sheets:      sheets,
		redis:       redisClient,
		hub:         hub,
	}
}

// Run performs a full mirror sync. Only one run may be active at a time.
func (s *SyncService) Run(ctx context.Context) (*models.SyncStatus, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, fmt.Errorf("sync is already running")
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	if !s.sheets.Enabled() {
		return nil, fmt.Errorf("sheets mirror is not configured")
	}

	status := &models.SyncStatus{
		State:     "running",
		StartedAt: time.Now().Format(time.RFC3339),
	}
	s.saveStatus(ctx, status)
	s.broadcast(ws.EventSyncStarted, "Sheets sync started", nil)

	rowsWritten := 0

	streamers, err := s.streamers.List(ctx, "", "", 0)
	if err != nil {
		return s.fail(ctx, status, fmt.Errorf("failed to fetch streamers: %w", err))
	}

	n, err := s.sheets.MirrorStreamers(ctx, streamers)
	if err != nil {
		return s.fail(ctx, status, fmt.Errorf("failed to mirror streamers: %w", err))
	}
	rowsWritten += n
	s.broadcast(ws.EventSyncProgress, fmt.Sprintf("Mirrored %d streamers", n), map[string]int{"rows": n})

	commissions, err := s.commissions.ListAll(ctx)
	if err != nil {
		return s.fail(ctx, status, fmt.Errorf("failed to fetch commissions: %w", err))
	}

	n, err = s.sheets.MirrorCommissions(ctx, commissions)
	if err != nil {
		return s.fail(ctx, status, fmt.Errorf("failed to mirror commissions: %w", err))
	}
	rowsWritten += n
	s.broadcast(ws.EventSyncProgress, fmt.Sprintf("Mirrored %d commissions", n), map[string]int{"rows": n})

	status.State = "ok"
	status.FinishedAt = time.Now().Format(time.RFC3339)
	status.RowsWritten = rowsWritten
	s.saveStatus(ctx, status)
	s.broadcast(ws.EventSyncFinished, fmt.Sprintf("Sheets sync finished, %d rows", rowsWritten), status)

	log.Printf("Sheets sync finished: %d rows written", rowsWritten)

	return status, nil
}

// LastStatus returns the status of the most recent sync run
func (s *SyncService) LastStatus(ctx context.Context) (*models.SyncStatus, error) {
	if s.redis == nil {
		return nil, fmt.Errorf("sync status storage is not available")
	}

	raw, err := s.redis.Get(ctx, syncStatusKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}

	var status models.SyncStatus
	if err := json.Unmarshal([]byte(raw), &status); err != nil {
		return nil, err
	}

	return &status, nil
}

func (s *SyncService) fail(ctx context.Context, status *models.SyncStatus, err error) (*models.SyncStatus, error) {
	status.State = "failed"
	status.FinishedAt = time.Now().Format(time.RFC3339)
	status.Error = err.Error()
	s.saveStatus(ctx, status)
	s.broadcast(ws.EventSyncFinished, "Sheets sync failed: "+err.Error(), status)

	log.Printf("Sheets sync failed (tag=%s): %v", utils.ClassifyError(err), err)

	return nil, err
}

func (s *SyncService) saveStatus(ctx context.Context, status *models.SyncStatus) {
	if s.redis == nil {
		return
	}

	raw, err := json.Marshal(status)
	if err != nil {
		return
	}

	// Keep the last status for a week
	s.redis.Set(ctx, syncStatusKey, raw, 7*24*time.Hour)
}

func (s *SyncService) broadcast(eventType, message string, data interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(ws.Event{
		Type:    eventType,
		Message: message,
		Data:    data,
	})
}
