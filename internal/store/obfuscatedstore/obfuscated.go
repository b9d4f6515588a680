// Package obfuscatedstore provides a store.Store layer that XORs payloads
// with a repeating key before they reach the delegate.
//
// This is obfuscation, not encryption. The transform is deterministic:
// equal payloads stored under the same key produce equal stored text.
package obfuscatedstore

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/discochess/dataservice/internal/store"
)

// ErrEmptyKey is returned when the store is created without a key.
var ErrEmptyKey = errors.New("obfuscatedstore: empty key")

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store obfuscates payloads on the way in and reveals them on the way out.
// Delete and ClearCache pass through untouched.
type Store struct {
	store.Forwarder

	key []byte
}

// New creates an obfuscating layer over next using key.
func New(next store.Store, key string) (*Store, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	return &Store{
		Forwarder: store.Forward(next),
		key:       []byte(key),
	}, nil
}

func (s *Store) Save(ctx context.Context, payload string) (string, error) {
	return s.Next().Save(ctx, obfuscate(payload, s.key))
}

func (s *Store) Retrieve(ctx context.Context, id string) (string, bool, error) {
	stored, ok, err := s.Next().Retrieve(ctx, id)
	if err != nil || !ok {
		return "", ok, err
	}
	payload, err := reveal(stored, s.key)
	if err != nil {
		return "", false, fmt.Errorf("revealing %s: %w", id, err)
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
		if all[i], err = reveal(v, s.key); err != nil {
			return nil, fmt.Errorf("revealing payload %d: %w", i, err)
		}
	}
	return all, nil
}

// Obfuscate returns the stored form of payload under key.
func Obfuscate(payload, key string) string {
	return obfuscate(payload, []byte(key))
}

// Reveal reverses Obfuscate. With the wrong key it returns unrelated text.
func Reveal(stored, key string) (string, error) {
	return reveal(stored, []byte(key))
}

func obfuscate(payload string, key []byte) string {
	if payload == "" {
		return ""
	}
	return base64.StdEncoding.EncodeToString(xor([]byte(payload), key))
}

func reveal(stored string, key []byte) (string, error) {
	if stored == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", fmt.Errorf("decoding stored payload: %w", err)
	}
	return string(xor(raw, key)), nil
}

// xor combines data with key repeated to the length of data, in place.
func xor(data, key []byte) []byte {
	for i := range data {
		data[i] ^= key[i%len(key)]
	}
	return data
}
