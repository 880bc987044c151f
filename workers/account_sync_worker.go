// workers/account_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"unsan-academy/models"
	"unsan-academy/utils"

	"gorm.io/gorm"
)

// AccountRecord matches the JSON shape returned by the account service.
// Authentication lives there; this service only mirrors display identity
// into profiles so responses don't need a cross-service call.
type AccountRecord struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type accountChangesResponse struct {
	Accounts []AccountRecord `json:"accounts"`
}

type AccountSyncWorker struct {
	db           *gorm.DB
	interval     time.Duration
	baseURL      string // e.g., "http://localhost:8500"
	endpointPath string // e.g., "/api/v1/public/accounts"
	serviceToken string
	httpClient   *http.Client

	// lastSync is the start time of the last batch that succeeded. Profile
	// updated_at is no good as a watermark since local completions advance it
	// too, which would hide account edits older than the newest completion.
	lastSync time.Time
}

func NewAccountSyncWorker(db *gorm.DB, accountServiceURL, endpointPath, serviceToken string) *AccountSyncWorker {
	return &AccountSyncWorker{
		db:           db,
		interval:     1 * time.Minute,
		baseURL:      accountServiceURL,
		endpointPath: endpointPath,
		serviceToken: serviceToken,
		httpClient:   utils.HTTPClient,
	}
}

func (w *AccountSyncWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting Account Sync Worker (account-service → profiles)…")
	go w.run(ctx)
}

func (w *AccountSyncWorker) run(ctx context.Context) {
	// initial backfill from the beginning of time
	if err := w.syncOnce(ctx); err != nil {
		log.Printf("⚠️ Initial account sync failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.syncOnce(ctx); err != nil {
				log.Printf("❌ Account sync batch failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("Account Sync Worker stopped")
			return
		}
	}
}

// syncOnce runs one incremental batch. The watermark only advances on
// success, and to the batch's start time, so a failed or slow batch is
// replayed rather than skipped.
func (w *AccountSyncWorker) syncOnce(ctx context.Context) error {
	start := time.Now()
	if err := w.syncBatch(ctx, w.lastSync); err != nil {
		return err
	}
	w.lastSync = start
	return nil
}

func (w *AccountSyncWorker) syncBatch(ctx context.Context, since time.Time) error {
	endpoint := fmt.Sprintf("%s%s", w.baseURL, w.endpointPath)
	if !since.IsZero() {
		endpoint += "?updated_after=" + url.QueryEscape(since.Format(time.RFC3339))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+w.serviceToken)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("account service returned %d: %s", resp.StatusCode, string(body))
	}

	var changes accountChangesResponse
	if err := json.NewDecoder(resp.Body).Decode(&changes); err != nil {
		return err
	}

	synced := 0
	for _, acct := range changes.Accounts {
		updates := map[string]interface{}{"name": acct.DisplayName}
		if acct.AvatarURL != nil {
			updates["avatar_url"] = *acct.AvatarURL
		}
		res := w.db.Model(&models.MechanicProfile{}).
			Where("external_user_id = ?", acct.ID).
			Updates(updates)
		if res.Error != nil {
			log.Printf("⚠️ Failed to sync account %s: %v", acct.ID, res.Error)
			continue
		}
		if res.RowsAffected > 0 {
			synced++
		}
	}
	if synced > 0 {
		log.Printf("👥 Synced %d profile identities from account service", synced)
	}
	return nil
}
