package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/datasynth/internal/dataset"
)

const (
	DownloadName = "synthetic_dataset.csv"
	tempPrefix   = "synthetic_dataset-"
	tempGlob     = tempPrefix + "*.csv"
)

// TempFiles creates per-request CSV files under Dir (os.TempDir when empty).
type TempFiles struct {
	Dir string
}

// File is a written CSV opened for reading. Close releases the handle and
// removes the file; it is safe to call more than once.
type File struct {
	f    *os.File
	size int64
	once sync.Once
	err  error
}

// Create writes rows to a uniquely named temp file and returns it rewound.
func (t TempFiles) Create(header []string, rows dataset.Result) (*File, error) {
	f, err := os.CreateTemp(t.Dir, tempPrefix+uuid.NewString()+"-*.csv")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	out := &File{f: f}

	bw := bufio.NewWriter(f)
	if err := WriteCSV(bw, header, rows); err != nil {
		_ = out.Close()
		return nil, fmt.Errorf("write csv: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = out.Close()
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	size, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		_ = out.Close()
		return nil, fmt.Errorf("size temp file: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = out.Close()
		return nil, fmt.Errorf("rewind temp file: %w", err)
	}
	out.size = size
	return out, nil
}

func (f *File) Read(p []byte) (int, error) {
	return f.f.Read(p)
}

func (f *File) Size() int64 {
	return f.size
}

func (f *File) Path() string {
	return f.f.Name()
}

func (f *File) Close() error {
	f.once.Do(func() {
		path := f.f.Name()
		closeErr := f.f.Close()
		removeErr := os.Remove(path)
		if removeErr != nil && !os.IsNotExist(removeErr) {
			log.Warn().Err(removeErr).Str("path", path).Msg("failed to remove temp file")
			f.err = removeErr
			return
		}
		f.err = closeErr
		log.Debug().Str("path", path).Msg("temp file removed")
	})
	return f.err
}
