package storage

import (
	"testing"
	"time"

	"github.com/mertakman/go-sessionsense/pkg/models"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	record := &models.SessionRecord{
		SessionID:         "s1",
		Timestamp:         time.Now(),
		FingerprintDigest: "abc",
		DeviceClass:       "desktop",
	}
	if err := store.SaveRecord(record); err != nil {
		t.Fatalf("SaveRecord() error = %v", err)
	}

	got, err := store.GetLastRecord("s1")
	if err != nil {
		t.Fatalf("GetLastRecord() error = %v", err)
	}
	if got == nil || got.FingerprintDigest != "abc" {
		t.Errorf("unexpected record: %+v", got)
	}
}

func TestMemoryStoreUnknownSession(t *testing.T) {
	store := NewMemoryStore()
	got, err := store.GetLastRecord("missing")
	if err != nil {
		t.Fatalf("GetLastRecord() error = %v", err)
	}
	if got != nil {
		t.Errorf("expected nil record for unknown session, got %+v", got)
	}
}

func TestMemoryStoreRejectsInvalidRecords(t *testing.T) {
	store := NewMemoryStore()
	if err := store.SaveRecord(nil); err == nil {
		t.Error("expected error for nil record")
	}
	if err := store.SaveRecord(&models.SessionRecord{}); err == nil {
		t.Error("expected error for missing session id")
	}
}

func TestMemoryStoreOverwritesLatest(t *testing.T) {
	store := NewMemoryStore()
	_ = store.SaveRecord(&models.SessionRecord{SessionID: "s1", FingerprintDigest: "old"})
	_ = store.SaveRecord(&models.SessionRecord{SessionID: "s1", FingerprintDigest: "new"})

	got, _ := store.GetLastRecord("s1")
	if got.FingerprintDigest != "new" {
		t.Errorf("digest = %q, want latest record to win", got.FingerprintDigest)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	_ = store.SaveRecord(&models.SessionRecord{SessionID: "s1", DeviceClass: "desktop"})

	got, _ := store.GetLastRecord("s1")
	got.DeviceClass = "tampered"

	again, _ := store.GetLastRecord("s1")
	if again.DeviceClass != "desktop" {
		t.Error("mutating a returned record must not affect the store")
	}
}
