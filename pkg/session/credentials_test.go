package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCredentialStoreRoundtrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewCredentialStore(dir)
	if err != nil {
		t.Fatalf("NewCredentialStore: %v", err)
	}

	if err := store.Save("eyJ.token.sig"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "eyJ.token.sig" {
		t.Errorf("Load = %q, want eyJ.token.sig", got)
	}
}

func TestCredentialStoreAbsentFile(t *testing.T) {
	store, err := NewCredentialStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewCredentialStore: %v", err)
	}
	got, err := store.Load()
	if err != nil || got != "" {
		t.Errorf("Load = (%q, %v), want empty and no error", got, err)
	}
}

func TestCredentialStoreClearIdempotent(t *testing.T) {
	store, err := NewCredentialStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewCredentialStore: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Errorf("Clear on absent file: %v", err)
	}
	if err := store.Save("tok"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Errorf("Clear: %v", err)
	}
	if got, err := store.Load(); err != nil || got != "" {
		t.Errorf("Load after Clear = (%q, %v), want empty", got, err)
	}
}

func TestCredentialStoreKeyPersistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()
	first, err := NewCredentialStore(dir)
	if err != nil {
		t.Fatalf("NewCredentialStore: %v", err)
	}
	if err := first.Save("survives-restart"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second, err := NewCredentialStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := second.Load()
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if got != "survives-restart" {
		t.Errorf("Load = %q, want survives-restart", got)
	}
}

func TestCredentialStoreTamperedFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewCredentialStore(dir)
	if err != nil {
		t.Fatalf("NewCredentialStore: %v", err)
	}
	if err := store.Save("tok"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path := filepath.Join(dir, credentialsFile)
	if err := os.WriteFile(path, []byte("access_token: bm90LXNlYWxlZA==\n"), 0600); err != nil {
		t.Fatalf("tamper: %v", err)
	}
	if _, err := store.Load(); err == nil {
		t.Error("Load should reject a tampered credentials file")
	}
}

func TestCredentialStoreCorruptKeyFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, keyFile), []byte("zz-not-hex"), 0600); err != nil {
		t.Fatalf("seed key file: %v", err)
	}
	if _, err := NewCredentialStore(dir); err == nil {
		t.Error("NewCredentialStore should reject a corrupt key file")
	}
}
