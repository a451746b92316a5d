package handoff_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"CartPilot/entity"
	"CartPilot/internal/service/handoff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(kind entity.SideEffectKind, productID string) entity.SideEffectRecord {
	return entity.SideEffectRecord{
		Type:      kind,
		Product:   entity.Product{ID: productID},
		UserID:    "u0001",
		UserName:  "Asha Mehta",
		Timestamp: time.Now(),
	}
}

func TestLatestWriteWins(t *testing.T) {
	store := handoff.NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)))

	store.Publish(record(entity.SideEffectOnlinePurchase, "p001"))
	store.Publish(record(entity.SideEffectOnlinePurchase, "p003"))

	rec, ok := store.Latest(entity.SideEffectOnlinePurchase)
	require.True(t, ok)
	assert.Equal(t, "p003", rec.Product.ID)
}

func TestOneRecordPerKind(t *testing.T) {
	store := handoff.NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)))

	store.Publish(record(entity.SideEffectOnlinePurchase, "p001"))
	store.Publish(record(entity.SideEffectOfflinePickup, "p002"))

	online, ok := store.Latest(entity.SideEffectOnlinePurchase)
	require.True(t, ok)
	assert.Equal(t, "p001", online.Product.ID)

	offline, ok := store.Latest(entity.SideEffectOfflinePickup)
	require.True(t, ok)
	assert.Equal(t, "p002", offline.Product.ID)
}

func TestLatestBeforeAnyPublish(t *testing.T) {
	store := handoff.NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, ok := store.Latest(entity.SideEffectOfflinePickup)
	assert.False(t, ok)
}

func TestSubscribersSeeEveryPublish(t *testing.T) {
	store := handoff.NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)))

	var seen []entity.SideEffectRecord
	store.Subscribe(func(rec entity.SideEffectRecord) {
		seen = append(seen, rec)
	})

	store.Publish(record(entity.SideEffectOnlinePurchase, "p001"))
	store.Publish(record(entity.SideEffectOfflinePickup, "p002"))

	require.Len(t, seen, 2)
	assert.Equal(t, "p001", seen[0].Product.ID)
	assert.Equal(t, "p002", seen[1].Product.ID)
}

func TestClear(t *testing.T) {
	store := handoff.NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)))

	store.Publish(record(entity.SideEffectOnlinePurchase, "p001"))
	store.Clear()

	_, ok := store.Latest(entity.SideEffectOnlinePurchase)
	assert.False(t, ok)
}
