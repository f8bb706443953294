package main

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/dsn-sequencer/internal/storage"
)

func TestOpenBackend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind    string
		wantErr bool
	}{
		{kind: "memory"},
		{kind: "leveldb"},
		{kind: "badger"},
		{kind: "bolt"},
		{kind: "rocksdb", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			t.Parallel()

			dir := filepath.Join(t.TempDir(), "data")
			backend, err := openBackend(tt.kind, dir, zap.NewNop())
			if (err != nil) != tt.wantErr {
				t.Fatalf("openBackend(%q) error = %v, wantErr %v", tt.kind, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer func() {
				if err := backend.Close(); err != nil {
					t.Fatalf("Close() error = %v", err)
				}
			}()

			if err := backend.Write(storage.NewBatch().Insert("meta", []byte("k"), []byte("v"))); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			snap, err := backend.Snapshot("meta")
			if err != nil {
				t.Fatalf("Snapshot() error = %v", err)
			}
			defer snap.Release()
			if got, err := snap.Get("meta", []byte("k")); err != nil || string(got) != "v" {
				t.Fatalf("Get() = %q, %v", got, err)
			}
		})
	}
}

func TestNotifierWithoutAddrIsDisabled(t *testing.T) {
	t.Parallel()

	if err := startNotifier(context.Background(), "", nil, zap.NewNop()); err != nil {
		t.Fatalf("startNotifier() error = %v", err)
	}
}
