// Package corpusfile loads corpus text files through a read-only memory mapping.
package corpusfile

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/gcbaptista/go-autocorrect/config"
	"github.com/gcbaptista/go-autocorrect/model"
	"github.com/gcbaptista/go-autocorrect/services"
)

// MaxFileSize bounds the size of a corpus file that will be mapped.
const MaxFileSize = 1 << 30

// WithMapped maps path read-only and passes its contents to fn.
// The slice is only valid during fn; fn must not retain it.
func WithMapped(path string, fn func(data []byte) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open corpus file %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat corpus file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("corpus path %s is a directory", path)
	}
	if info.Size() > MaxFileSize {
		return fmt.Errorf("corpus file %s is %d bytes, larger than the %d byte limit", path, info.Size(), MaxFileSize)
	}

	// Zero-length files cannot be mapped.
	if info.Size() == 0 {
		return fn(nil)
	}

	mapped, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to map corpus file %s: %w", path, err)
	}
	defer mapped.Unmap()

	return fn(mapped)
}

// LoadInto loads the file at path into manager under settings.Name.
// The manager copies what it keeps, so the mapping is released on return.
func LoadInto(manager services.CorpusManager, settings config.CorpusSettings, path string) (model.CorpusStats, error) {
	var stats model.CorpusStats
	err := WithMapped(path, func(data []byte) error {
		var err error
		stats, err = manager.LoadCorpus(settings, data)
		return err
	})
	return stats, err
}
