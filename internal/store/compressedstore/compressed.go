// Package compressedstore provides a store.Store layer that compresses
// payloads with a codec and stores them as base64 text.
package compressedstore

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/discochess/dataservice/internal/codec"
	"github.com/discochess/dataservice/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store compresses payloads on Save and decompresses them on the way out.
type Store struct {
	store.Forwarder

	codec codec.Codec
}

// New creates a compressing layer over next.
func New(next store.Store, c codec.Codec) *Store {
	return &Store{
		Forwarder: store.Forward(next),
		codec:     c,
	}
}

func (s *Store) Save(ctx context.Context, payload string) (string, error) {
	compressed, err := s.codec.Compress([]byte(payload))
	if err != nil {
		return "", fmt.Errorf("compressing payload with %s: %w", s.codec.Name(), err)
	}
	return s.Next().Save(ctx, base64.StdEncoding.EncodeToString(compressed))
}

func (s *Store) Retrieve(ctx context.Context, id string) (string, bool, error) {
	stored, ok, err := s.Next().Retrieve(ctx, id)
	if err != nil || !ok {
		return "", ok, err
	}
	payload, err := s.decode(stored)
	if err != nil {
		return "", false, fmt.Errorf("decoding %s: %w", id, err)
	}
	return payload, true, nil
}

func (s *Store) FindAll(ctx context.Context) ([]string, error) {
	stored, err := s.Next().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	all := make([]string, len(stored))
	for i, v := range stored {
		if all[i], err = s.decode(v); err != nil {
			return nil, fmt.Errorf("decoding payload %d: %w", i, err)
		}
	}
	return all, nil
}

// Codec returns the codec used by this layer.
func (s *Store) Codec() codec.Codec {
	return s.codec
}

func (s *Store) decode(stored string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", err
	}
	data, err := s.codec.Decompress(raw)
	if err != nil {
		return "", fmt.Errorf("decompressing with %s: %w", s.codec.Name(), err)
	}
	return string(data), nil
}
