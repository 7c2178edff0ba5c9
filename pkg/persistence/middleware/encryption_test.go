package middleware_test

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"io"
	"testing"

	"github.com/aretw0/sfsweb/pkg/adapters/memory"
	"github.com/aretw0/sfsweb/pkg/domain"
	"github.com/aretw0/sfsweb/pkg/persistence/middleware"
	"github.com/aretw0/sfsweb/pkg/ports"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, middleware.KeySize)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func newEncrypted(t *testing.T, next ports.StatusStore, cfg middleware.EncryptionConfig) ports.StatusStore {
	t.Helper()
	mw, err := middleware.NewEncryptionMiddleware(cfg)
	if err != nil {
		t.Fatalf("NewEncryptionMiddleware failed: %v", err)
	}
	return mw(next)
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlyingStore := memory.NewStore()
	secureStore := newEncrypted(t, underlyingStore, middleware.EncryptionConfig{ActiveKey: generateKey(t)})

	ctx := context.Background()
	board := domain.NewBoard()
	board.SetBusy("spinner", true)
	board.Apply(domain.Navigate("/search?searchQuery=tax+returns"))
	board.Apply(domain.Message("Item(s) added successfully", domain.ToneSuccess))
	board.Connectivity = domain.ConnectivityOnline
	board.Revision = 7

	if err := secureStore.Save(ctx, "default", board); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// The raw store only sees the envelope.
	stored, err := underlyingStore.Load(ctx, "default")
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if stored.Location != "" || stored.Notice != nil {
		t.Fatalf("Expected location and notice to be hidden, found: %q %v", stored.Location, stored.Notice)
	}
	if stored.Sealed == "" {
		t.Fatal("Expected sealed payload in envelope")
	}
	if stored.Revision != 7 || stored.Connectivity != domain.ConnectivityOnline {
		t.Errorf("Expected monitoring fields to stay readable, got revision=%d connectivity=%q", stored.Revision, stored.Connectivity)
	}

	loaded, err := secureStore.Load(ctx, "default")
	if err != nil {
		t.Fatalf("Load via middleware failed: %v", err)
	}
	if loaded.Location != "/search?searchQuery=tax+returns" {
		t.Errorf("Expected original location, got %q", loaded.Location)
	}
	if loaded.Notice == nil || loaded.Notice.Text != "Item(s) added successfully" {
		t.Errorf("Expected original notice, got %v", loaded.Notice)
	}
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlyingStore := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)

	secureStoreOld := newEncrypted(t, underlyingStore, middleware.EncryptionConfig{ActiveKey: oldKey})

	ctx := context.Background()
	board := domain.NewBoard()
	board.Apply(domain.Alert("encrypted-with-old-key"))

	if err := secureStoreOld.Save(ctx, "rotation", board); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	secureStoreNew := newEncrypted(t, underlyingStore, middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})

	loaded, err := secureStoreNew.Load(ctx, "rotation")
	if err != nil {
		t.Fatalf("Load with rotated key failed: %v", err)
	}
	if loaded.Alert != "encrypted-with-old-key" {
		t.Errorf("Decryption with fallback key failed")
	}

	loaded.Alert = "encrypted-with-new-key"
	if err := secureStoreNew.Save(ctx, "rotation", loaded); err != nil {
		t.Fatalf("Save with new key failed: %v", err)
	}

	if _, err := secureStoreOld.Load(ctx, "rotation"); err == nil {
		t.Error("Expected failure when loading new-key encryption with old-key middleware")
	}
}

func TestEncryptionMiddleware_PlainBoardRejected(t *testing.T) {
	underlyingStore := memory.NewStore()
	if err := underlyingStore.Save(context.Background(), "plain", domain.NewBoard()); err != nil {
		t.Fatal(err)
	}

	secureStore := newEncrypted(t, underlyingStore, middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	if _, err := secureStore.Load(context.Background(), "plain"); err != middleware.ErrNotSealed {
		t.Errorf("Expected ErrNotSealed, got %v", err)
	}
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	if _, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")}); err == nil {
		t.Error("Expected error for invalid key size")
	}
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	ports.RunStatusStoreContract(t, newEncrypted(t, memory.NewStore(), middleware.EncryptionConfig{ActiveKey: generateKey(t)}))
}

func TestParseKey(t *testing.T) {
	key := generateKey(t)

	got, err := middleware.ParseKey(base64.StdEncoding.EncodeToString(key))
	if err != nil {
		t.Fatalf("ParseKey failed: %v", err)
	}
	if string(got) != string(key) {
		t.Error("ParseKey returned a different key")
	}

	if _, err := middleware.ParseKey(base64.StdEncoding.EncodeToString([]byte("short"))); err == nil {
		t.Error("Expected error for short key")
	}
	if _, err := middleware.ParseKey("not base64!"); err == nil {
		t.Error("Expected error for invalid base64")
	}
}
