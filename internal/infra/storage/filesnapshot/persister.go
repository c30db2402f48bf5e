package filesnapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
	"github.com/m04kA/SMC-EventPlanner/internal/infra/storage/snapshot"
)

// Persister хранит список событий в одном файле (eventos.json или .cbor)
type Persister struct {
	path  string
	codec snapshot.Codec
}

// New создает persister; формат определяется расширением файла
func New(path string) (*Persister, error) {
	codec, err := snapshot.CodecForPath(path)
	if err != nil {
		return nil, err
	}
	return &Persister{path: path, codec: codec}, nil
}

// Save перезаписывает снимок: запись во временный файл и переименование
func (p *Persister) Save(ctx context.Context, events []*domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := p.codec.Encode(snapshot.FromDomain(events))
	if err != nil {
		return err
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: Save - mkdir %s: %v", ErrWriteFailed, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(p.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: Save - create temp file: %v", ErrWriteFailed, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op после успешного rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: Save - write: %v", ErrWriteFailed, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: Save - sync: %v", ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: Save - close: %v", ErrWriteFailed, err)
	}
	if err := os.Rename(tmpName, p.path); err != nil {
		return fmt.Errorf("%w: Save - rename: %v", ErrWriteFailed, err)
	}

	return nil
}

// Load читает снимок; отсутствующий файл означает пустой список
func (p *Persister) Load(ctx context.Context) ([]*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*domain.Event{}, nil
		}
		return nil, fmt.Errorf("%w: Load - %v", ErrReadFailed, err)
	}

	records, err := p.codec.Decode(data)
	if err != nil {
		return nil, err
	}
	return snapshot.ToDomain(records)
}

// Format имя формата снимка (json, cbor)
func (p *Persister) Format() string {
	return p.codec.Name()
}
