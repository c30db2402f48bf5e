package snapshot

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// zstdExt суффикс сжатого снимка: eventos.json.zst, eventos.cbor.zst
const zstdExt = ".zst"

// Энкодер и декодер переиспользуются между вызовами, оба безопасны для конкурентного использования
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("snapshot: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("snapshot: zstd decoder initialization failed: " + err.Error())
	}
}

// ZstdCodec сжимает результат вложенного кодека
type ZstdCodec struct {
	inner Codec
}

// NewZstdCodec оборачивает кодек сжатием zstd
func NewZstdCodec(inner Codec) *ZstdCodec {
	return &ZstdCodec{inner: inner}
}

func (c *ZstdCodec) Encode(records []Record) ([]byte, error) {
	data, err := c.inner.Encode(records)
	if err != nil {
		return nil, err
	}
	return zstdEncoder.EncodeAll(data, nil), nil
}

func (c *ZstdCodec) Decode(data []byte) ([]Record, error) {
	if len(data) == 0 {
		return c.inner.Decode(nil)
	}
	raw, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", ErrDecode, err)
	}
	return c.inner.Decode(raw)
}

func (c *ZstdCodec) Name() string { return c.inner.Name() + "+zstd" }
