package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/ayush/sourcing-assistant/backend/internal/content"
	"github.com/ayush/sourcing-assistant/backend/internal/extract"
	"github.com/ayush/sourcing-assistant/backend/internal/models"
)

// ObjectStore is the subset of the object store the snapshot driver needs.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Snapshot is a page capture uploaded by the extension.
type Snapshot struct {
	ID         string    `json:"id"`
	TabID      string    `json:"tabId"`
	URL        string    `json:"url"`
	HTML       string    `json:"html"`
	CapturedAt time.Time `json:"capturedAt"`
}

// SnapshotBrowser reads tab documents from captures the extension uploads
// to object storage, for deployments where the coordinator cannot reach the
// page itself.
type SnapshotBrowser struct {
	store    ObjectStore
	registry *extract.Registry
	frames   *frames
}

func NewSnapshotBrowser(store ObjectStore, registry *extract.Registry) *SnapshotBrowser {
	return &SnapshotBrowser{store: store, registry: registry, frames: newFrames()}
}

func snapshotKey(tabID string) string {
	return "snapshots/" + url.PathEscape(tabID) + ".json"
}

// Save stores a capture of tab and returns its metadata (without the HTML).
func (b *SnapshotBrowser) Save(ctx context.Context, tab models.Tab, html []byte) (Snapshot, error) {
	snap := Snapshot{
		ID:         uuid.New().String(),
		TabID:      tab.ID,
		URL:        tab.URL,
		HTML:       string(html),
		CapturedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := b.store.Put(ctx, snapshotKey(tab.ID), data, "application/json"); err != nil {
		return Snapshot{}, fmt.Errorf("upload snapshot: %w", err)
	}
	snap.HTML = ""
	return snap, nil
}

// Delete drops the capture of tabID and any agent built from it.
func (b *SnapshotBrowser) Delete(ctx context.Context, tabID string) error {
	b.frames.remove(tabID)
	if err := b.store.Delete(ctx, snapshotKey(tabID)); err != nil {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}

func (b *SnapshotBrowser) load(ctx context.Context, tabID string) (Snapshot, error) {
	data, err := b.store.Get(ctx, snapshotKey(tabID))
	if err != nil {
		return Snapshot{}, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

func (b *SnapshotBrowser) ActiveTab(ctx context.Context) (*models.Tab, error) {
	tab, ok := TabFrom(ctx)
	if !ok || tab.ID == "" {
		return nil, nil
	}
	if tab.URL == "" {
		snap, err := b.load(ctx, tab.ID)
		if err != nil {
			return nil, nil
		}
		tab.URL = snap.URL
	}
	return &tab, nil
}

func (b *SnapshotBrowser) Inject(ctx context.Context, tab models.Tab) error {
	snap, err := b.load(ctx, tab.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInjectFailed, err)
	}
	doc, err := extract.ParseString(snap.HTML)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInjectFailed, err)
	}
	b.frames.install(tab.ID, content.NewAgent(snap.URL, doc, b.registry))
	return nil
}

func (b *SnapshotBrowser) SendMessage(ctx context.Context, tabID string, msg models.ExtractMessage) (models.ExtractReply, error) {
	return b.frames.send(ctx, tabID, msg)
}
