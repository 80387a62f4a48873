package redis

import (
	"context"
	"testing"
	"time"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
)

func TestLayoutRepository_LoadMissingIsNil(t *testing.T) {
	_, client := newTestRedis(t)
	repo := NewLayoutRepository(client, time.Hour)

	l, err := repo.Load(context.Background(), "ctx-1")
	if err != nil || l != nil {
		t.Fatalf("expected nil, nil for a missing layout, got %+v %v", l, err)
	}
}

func TestLayoutRepository_SaveLoadRoundTrip(t *testing.T) {
	mr, client := newTestRedis(t)
	repo := NewLayoutRepository(client, time.Hour)
	ctx := context.Background()

	l, err := domain.NewPrintLayout(domain.Landscape, 2)
	if err != nil {
		t.Fatalf("new layout: %v", err)
	}
	_ = l.Place(0, 10, 20, 300, 20)
	_ = l.Drag(1, domain.TokenStub, 12.4, -7.6)

	if err := repo.Save(ctx, "ctx-1", l); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := mr.TTL("rifa:layout:ctx-1"); ttl != time.Hour {
		t.Fatalf("expected one hour expiry, got %v", ttl)
	}

	got, err := repo.Load(ctx, "ctx-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Orientation != domain.Landscape || got.PositionCount != 2 || got.State != domain.EditorDirty {
		t.Fatalf("unexpected layout header %+v", got)
	}
	if got.PanelWidth != l.PanelWidth || got.PanelHeight != l.PanelHeight {
		t.Fatalf("panel size lost: %dx%d", got.PanelWidth, got.PanelHeight)
	}
	if got.Positions[0] != l.Positions[0] || got.Positions[1] != l.Positions[1] {
		t.Fatalf("positions lost: %+v", got.Positions)
	}
}

func TestLayoutRepository_ExpiresWithoutWrites(t *testing.T) {
	mr, client := newTestRedis(t)
	repo := NewLayoutRepository(client, time.Hour)
	ctx := context.Background()

	l, _ := domain.NewPrintLayout(domain.Portrait, 1)
	_ = repo.Save(ctx, "ctx-1", l)

	mr.FastForward(50 * time.Minute)
	_ = repo.Save(ctx, "ctx-1", l)
	mr.FastForward(50 * time.Minute)
	if got, _ := repo.Load(ctx, "ctx-1"); got == nil {
		t.Fatalf("saving must restart the expiry")
	}

	mr.FastForward(11 * time.Minute)
	if got, err := repo.Load(ctx, "ctx-1"); got != nil || err != nil {
		t.Fatalf("abandoned layout must expire, got %+v %v", got, err)
	}
}

func TestLayoutRepository_DeleteAndCorruptValue(t *testing.T) {
	mr, client := newTestRedis(t)
	repo := NewLayoutRepository(client, time.Hour)
	ctx := context.Background()

	l, _ := domain.NewPrintLayout(domain.Portrait, 1)
	_ = repo.Save(ctx, "ctx-1", l)
	if err := repo.Delete(ctx, "ctx-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("rifa:layout:ctx-1") {
		t.Fatalf("layout must be deleted")
	}

	_ = mr.Set("rifa:layout:ctx-2", "{not json")
	if _, err := repo.Load(ctx, "ctx-2"); err == nil {
		t.Fatalf("expected a decode error")
	}
}
