package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/l1jgo/nursery/internal/codec"
	"github.com/l1jgo/nursery/internal/component"
)

// FileStore keeps a population in a flat text file.
// Writes truncate the destination in place; there is no temp-file rename,
// so a failure mid-write can leave a truncated file.
type FileStore struct {
	codec *codec.Codec
	log   *zap.Logger
}

func NewFileStore(c *codec.Codec, log *zap.Logger) *FileStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{codec: c, log: log}
}

func (s *FileStore) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) Read(_ context.Context, path string) ([]*component.Creature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	creatures, rep, err := s.codec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rep.Skipped) > 0 || rep.RegeneratedIDs > 0 || rep.Defaulted > 0 {
		s.log.Warn("save file repaired on load",
			zap.String("path", path),
			zap.Ints("skipped_lines", rep.Skipped),
			zap.Int("regenerated_ids", rep.RegeneratedIDs),
			zap.Int("defaulted_fields", rep.Defaulted))
	}
	return creatures, nil
}

func (s *FileStore) Write(_ context.Context, path string, creatures []*component.Creature) error {
	b, err := s.codec.Encode(creatures)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
