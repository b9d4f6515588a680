package codec_test

import (
	"bytes"
	"testing"

	"github.com/discochess/dataservice/internal/codec"
	"github.com/discochess/dataservice/internal/codec/gzipcodec"
	"github.com/discochess/dataservice/internal/codec/noopcodec"
	"github.com/discochess/dataservice/internal/codec/zstdcodec"
)

func codecs(t *testing.T) []codec.Codec {
	t.Helper()
	z, err := zstdcodec.New()
	if err != nil {
		t.Fatalf("zstdcodec.New() error = %v", err)
	}
	return []codec.Codec{noopcodec.New(), gzipcodec.New(), z}
}

func TestCodec_RoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"empty": {},
		"short": []byte("Hello, World!"),
		"large": bytes.Repeat([]byte("ABCDEFGHIJ"), 10000),
	}

	for _, c := range codecs(t) {
		for name, original := range inputs {
			t.Run(c.Name()+"/"+name, func(t *testing.T) {
				compressed, err := c.Compress(original)
				if err != nil {
					t.Fatalf("Compress() error = %v", err)
				}
				got, err := c.Decompress(compressed)
				if err != nil {
					t.Fatalf("Decompress() error = %v", err)
				}
				if !bytes.Equal(got, original) {
					t.Errorf("round trip = %d bytes, want %d", len(got), len(original))
				}
			})
		}
	}
}

func TestCodec_CompressesRepetitiveData(t *testing.T) {
	original := bytes.Repeat([]byte("ABCDEFGHIJ"), 10000)
	for _, c := range codecs(t) {
		if c.Name() == "none" {
			continue
		}
		compressed, err := c.Compress(original)
		if err != nil {
			t.Fatalf("%s: Compress() error = %v", c.Name(), err)
		}
		if len(compressed) >= len(original)/10 {
			t.Errorf("%s: compressed %d bytes to %d, want < 10%%", c.Name(), len(original), len(compressed))
		}
	}
}

func TestCodec_DecompressGarbage(t *testing.T) {
	for _, c := range codecs(t) {
		if c.Name() == "none" {
			continue
		}
		if _, err := c.Decompress([]byte("definitely not compressed")); err == nil {
			t.Errorf("%s: Decompress() of garbage should fail", c.Name())
		}
	}
}
