// Package zstdcodec provides a zstd compression codec.
package zstdcodec

import (
	"github.com/klauspost/compress/zstd"

	"github.com/discochess/dataservice/internal/codec"
)

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Codec implements zstd compression with a shared encoder and decoder.
// EncodeAll and DecodeAll are safe for concurrent use.
type Codec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// New returns a new zstd codec.
func New() (*Codec, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, err
	}
	return &Codec{encoder: encoder, decoder: decoder}, nil
}

// Compress zstd-encodes src.
func (c *Codec) Compress(src []byte) ([]byte, error) {
	return c.encoder.EncodeAll(src, nil), nil
}

// Decompress decodes zstd-encoded src.
func (c *Codec) Decompress(src []byte) ([]byte, error) {
	return c.decoder.DecodeAll(src, nil)
}

// Name returns "zstd".
func (c *Codec) Name() string {
	return "zstd"
}
