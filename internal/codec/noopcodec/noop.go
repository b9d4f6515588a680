// Package noopcodec provides a codec that leaves payloads unchanged.
package noopcodec

import "github.com/discochess/dataservice/internal/codec"

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Codec implements no compression.
type Codec struct{}

// New returns a new no-op codec.
func New() *Codec {
	return &Codec{}
}

func (c *Codec) Compress(src []byte) ([]byte, error)   { return src, nil }
func (c *Codec) Decompress(src []byte) ([]byte, error) { return src, nil }

// Name returns "none".
func (c *Codec) Name() string { return "none" }
