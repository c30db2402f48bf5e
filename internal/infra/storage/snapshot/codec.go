package snapshot

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// Codec кодирует список записей в байты снимка
type Codec interface {
	Encode(records []Record) ([]byte, error)
	Decode(data []byte) ([]Record, error)
	Name() string
}

// JSONCodec снимок в JSON с отступами (формат eventos.json)
type JSONCodec struct{}

func (JSONCodec) Encode(records []Record) ([]byte, error) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return data, nil
}

func (JSONCodec) Decode(data []byte) ([]Record, error) {
	var records []Record
	if len(strings.TrimSpace(string(data))) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return records, nil
}

func (JSONCodec) Name() string { return "json" }

// CBORCodec компактный бинарный снимок (детерминированное кодирование)
type CBORCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCBORCodec создает CBOR кодек с Core Deterministic Encoding
func NewCBORCodec() (*CBORCodec, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("snapshot: cbor encoder: %w", err)
	}
	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("snapshot: cbor decoder: %w", err)
	}
	return &CBORCodec{enc: enc, dec: dec}, nil
}

func (c *CBORCodec) Encode(records []Record) ([]byte, error) {
	data, err := c.enc.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return data, nil
}

func (c *CBORCodec) Decode(data []byte) ([]Record, error) {
	var records []Record
	if len(data) == 0 {
		return records, nil
	}
	if err := c.dec.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return records, nil
}

func (c *CBORCodec) Name() string { return "cbor" }

// CodecForPath выбирает кодек по расширению: .cbor - CBOR, иначе JSON
// Суффикс .zst добавляет сжатие: eventos.cbor.zst
func CodecForPath(path string) (Codec, error) {
	ext := filepath.Ext(path)
	if strings.EqualFold(ext, zstdExt) {
		inner, err := CodecForPath(strings.TrimSuffix(path, ext))
		if err != nil {
			return nil, err
		}
		return NewZstdCodec(inner), nil
	}

	if strings.EqualFold(ext, ".cbor") {
		return NewCBORCodec()
	}
	return JSONCodec{}, nil
}
