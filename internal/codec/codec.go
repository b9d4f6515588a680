// Package codec provides payload compression for the compression layer.
package codec

// Codec compresses and decompresses whole payloads.
// Implementations must be safe for concurrent use.
type Codec interface {
	Compress(src []byte) ([]byte, error)
	Decompress(src []byte) ([]byte, error)
	// Name identifies the codec (e.g., "zstd", "gzip", "none").
	Name() string
}
