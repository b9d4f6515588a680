package compressedstore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/discochess/dataservice/internal/codec"
	"github.com/discochess/dataservice/internal/codec/gzipcodec"
	"github.com/discochess/dataservice/internal/codec/noopcodec"
	"github.com/discochess/dataservice/internal/codec/zstdcodec"
	"github.com/discochess/dataservice/internal/store/storetest"
)

func testCodecs(t *testing.T) []codec.Codec {
	t.Helper()
	z, err := zstdcodec.New()
	if err != nil {
		t.Fatalf("zstdcodec.New() error = %v", err)
	}
	return []codec.Codec{noopcodec.New(), gzipcodec.New(), z}
}

func TestStore_RoundTrip(t *testing.T) {
	payloads := []string{"", "hello", "unicode ✓ 日本", strings.Repeat("repeat ", 1000)}

	for _, c := range testCodecs(t) {
		t.Run(c.Name(), func(t *testing.T) {
			rec := storetest.NewRecorder()
			s := New(rec, c)
			ctx := context.Background()

			for _, p := range payloads {
				id, err := s.Save(ctx, p)
				if err != nil {
					t.Fatalf("Save() error = %v", err)
				}
				got, ok, err := s.Retrieve(ctx, id)
				if err != nil || !ok || got != p {
					t.Errorf("Retrieve() = %q (ok=%v, err=%v), want %q", got, ok, err, p)
				}
			}

			all, err := s.FindAll(ctx)
			if err != nil {
				t.Fatalf("FindAll() error = %v", err)
			}
			sort.Strings(all)
			want := append([]string(nil), payloads...)
			sort.Strings(want)
			if strings.Join(all, "|") != strings.Join(want, "|") {
				t.Errorf("FindAll() returned %d payloads that differ from the saved ones", len(all))
			}
		})
	}
}

func TestStore_StoresCompressedText(t *testing.T) {
	rec := storetest.NewRecorder()
	s := New(rec, gzipcodec.New())
	payload := strings.Repeat("compress me ", 500)

	id, _ := s.Save(context.Background(), payload)
	raw, _ := rec.Raw(id)
	if raw == payload || len(raw) >= len(payload) {
		t.Errorf("stored %d chars for a %d char payload, want compressed text", len(raw), len(payload))
	}
}

func TestStore_CorruptStoredValue(t *testing.T) {
	rec := storetest.NewRecorder()
	rec.Put("ID-1", "@@not base64@@")
	s := New(rec, gzipcodec.New())

	if _, _, err := s.Retrieve(context.Background(), "ID-1"); err == nil {
		t.Error("Retrieve() of corrupt value should fail")
	}
}

func TestStore_PassThrough(t *testing.T) {
	boom := errors.New("boom")
	rec := storetest.NewRecorder()
	s := New(rec, noopcodec.New())
	ctx := context.Background()

	if _, ok, err := s.Retrieve(ctx, "ID-404"); ok || err != nil {
		t.Errorf("Retrieve() missing = %v, %v, want false, nil", ok, err)
	}

	rec.Fail(boom)
	if _, err := s.Delete(ctx, "ID-1"); err != boom {
		t.Errorf("Delete() error = %v, want %v", err, boom)
	}
	if err := s.ClearCache(ctx); err != boom {
		t.Errorf("ClearCache() error = %v, want %v", err, boom)
	}
}
