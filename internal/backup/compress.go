package backup

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

type compressor struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func newCompressor() (*compressor, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &compressor{encoder: encoder, decoder: decoder}, nil
}

func (c *compressor) Compress(val []byte) []byte {
	return c.encoder.EncodeAll(val, make([]byte, 0, len(val)/2))
}

func (c *compressor) Decompress(val []byte) ([]byte, error) {
	return c.decoder.DecodeAll(val, nil)
}

func (c *compressor) Close() {
	c.encoder.Close()
	c.decoder.Close()
}
