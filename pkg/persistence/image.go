package persistence

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// ImageVersion is the current version of the image file format.
const ImageVersion = 1

// Image file errors.
var (
	ErrUnsupportedVersion = errors.New("unsupported image file version")
	ErrChecksumMismatch   = errors.New("image checksum mismatch")
)

var (
	imageEncMode cbor.EncMode
	imageDecMode cbor.DecMode
)

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeRFC3339Nano,
	}
	imageEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create image CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}
	imageDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create image CBOR decoder mode: %v", err))
	}
}

// Image is a persisted configuration image.
type Image struct {
	// Version is the image file format version.
	Version int `cbor:"1,keyasint"`

	// SavedAt is when the image was last saved.
	SavedAt time.Time `cbor:"2,keyasint"`

	// ConfigVersion is the config version marker of the tree layout that
	// produced Data.
	ConfigVersion string `cbor:"3,keyasint,omitempty"`

	// Data is the raw storage image.
	Data []byte `cbor:"4,keyasint"`

	// Checksum is the BLAKE3-256 digest of Data.
	Checksum []byte `cbor:"5,keyasint"`
}

// Checksum returns the BLAKE3-256 digest of data.
func Checksum(data []byte) []byte {
	sum := blake3.Sum256(data)
	return sum[:]
}

// ImageStore manages persistence of a configuration image to a file.
type ImageStore struct {
	mu   sync.Mutex
	path string
}

// NewImageStore creates a new image store.
func NewImageStore(path string) *ImageStore {
	return &ImageStore{path: path}
}

// Path returns the file the store writes to.
func (s *ImageStore) Path() string {
	return s.path
}

// Save persists the image to disk.
func (s *ImageStore) Save(img *Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	img.Version = ImageVersion
	if img.SavedAt.IsZero() {
		img.SavedAt = time.Now()
	}
	img.Checksum = Checksum(img.Data)

	data, err := imageEncMode.Marshal(img)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the image from disk.
// Returns nil, nil if the file doesn't exist (factory state).
func (s *ImageStore) Load() (*Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	img := &Image{}
	if err := imageDecMode.Unmarshal(data, img); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if img.Version != ImageVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, img.Version)
	}
	if !bytes.Equal(img.Checksum, Checksum(img.Data)) {
		return nil, fmt.Errorf("%w: %s", ErrChecksumMismatch, s.path)
	}

	return img, nil
}

// Clear removes the image file.
func (s *ImageStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
