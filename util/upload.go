package util

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var (
	ErrFileNotAllowed = errors.New("file type not allowed")
	ErrEmptyFilename  = errors.New("empty filename")
	ErrNameExhausted  = errors.New("no free file name")

	allowedExtensions = []string{"png", "jpg", "jpeg"}
	unsafeFilenameRe  = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
)

const maxNameAttempts = 1000

// AllowedFile reports whether filename has a png, jpg or jpeg extension.
func AllowedFile(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return ext != "" && Contains(ext, allowedExtensions)
}

// SecureFilename reduces filename to a safe ASCII base name: path separators become spaces,
// whitespace runs become underscores and anything outside [A-Za-z0-9_.-] is dropped.
func SecureFilename(filename string) string {
	filename = strings.NewReplacer("/", " ", "\\", " ").Replace(filename)
	filename = strings.Join(strings.Fields(filename), "_")
	filename = unsafeFilenameRe.ReplaceAllString(filename, "")
	return strings.Trim(filename, "._")
}

// UploadStore writes embryo images below a single directory as "<unix>_<name>", never overwriting one.
type UploadStore struct {
	dir string
	now func() time.Time
}

// NewUploadStore creates dir when missing.
func NewUploadStore(dir string) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadStore{dir: dir, now: time.Now}, nil
}

// Dir returns the directory files are stored in.
func (s *UploadStore) Dir() string {
	return s.dir
}

// Path returns the absolute location of a stored file name.
func (s *UploadStore) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

func (s *UploadStore) baseName(original string) (string, error) {
	safe := SecureFilename(original)
	if safe == "" {
		return "", ErrEmptyFilename
	}
	return safe, nil
}

// create opens a new file named "<unix>_<name>", or "<unix>_<n>_<name>" when that is taken.
func (s *UploadStore) create(safe string) (*os.File, string, error) {
	stamp := s.now().Unix()
	for n := 0; n < maxNameAttempts; n++ {
		name := fmt.Sprintf("%d_%s", stamp, safe)
		if n > 0 {
			name = fmt.Sprintf("%d_%d_%s", stamp, n, safe)
		}
		f, err := os.OpenFile(s.Path(name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("create %s: %w", name, err)
		}
		return f, name, nil
	}
	return nil, "", fmt.Errorf("create %s: %w", safe, ErrNameExhausted)
}

func (s *UploadStore) write(safe string, src io.Reader) (string, error) {
	dst, name, err := s.create(safe)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(s.Path(name))
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(s.Path(name))
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return name, nil
}

// SaveMultipart stores an uploaded image and returns the stored file name.
func (s *UploadStore) SaveMultipart(fh *multipart.FileHeader) (string, error) {
	if !AllowedFile(fh.Filename) {
		return "", ErrFileNotAllowed
	}
	safe, err := s.baseName(fh.Filename)
	if err != nil {
		return "", err
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	return s.write(safe, src)
}

// SaveBytes stores data under "<unix>_<name>" and returns the stored file name.
func (s *UploadStore) SaveBytes(name string, data []byte) (string, error) {
	safe, err := s.baseName(name)
	if err != nil {
		return "", err
	}
	return s.write(safe, bytes.NewReader(data))
}

// Remove deletes a stored file; a missing file is not an error.
func (s *UploadStore) Remove(name string) error {
	if err := os.Remove(s.Path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}
