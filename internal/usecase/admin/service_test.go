package admin

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type mockWiper struct {
	deleted int
	err     error
}

func (m *mockWiper) WipeAll(_ context.Context) (int, error) { return m.deleted, m.err }

type mockBlobs struct {
	called bool
	err    error
}

func (m *mockBlobs) DeleteAll(_ context.Context) error {
	m.called = true
	return m.err
}

type mockFlusher struct {
	cleared bool
}

func (m *mockFlusher) Clear() { m.cleared = true }

func TestClearAll(t *testing.T) {
	blobs := &mockBlobs{}
	f1, f2 := &mockFlusher{}, &mockFlusher{}
	svc := New(&mockWiper{deleted: 42}, blobs, []Flusher{f1, f2}, zap.NewNop())

	got, err := svc.ClearAll(context.Background())
	if err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	if got.KeysDeleted != 42 || got.Message != "All documents cleared successfully" {
		t.Errorf("unexpected result: %+v", got)
	}
	if !blobs.called {
		t.Error("binaries not deleted")
	}
	if !f1.cleared || !f2.cleared {
		t.Error("artifact stores not cleared")
	}
}

func TestClearAll_WipeFailure(t *testing.T) {
	blobs := &mockBlobs{}
	svc := New(&mockWiper{err: errors.New("db down")}, blobs, nil, zap.NewNop())

	if _, err := svc.ClearAll(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if blobs.called {
		t.Error("binaries should not be touched when the wipe fails")
	}
}

func TestClearAll_BlobFailure(t *testing.T) {
	svc := New(&mockWiper{}, &mockBlobs{err: errors.New("bucket gone")}, nil, zap.NewNop())

	if _, err := svc.ClearAll(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
