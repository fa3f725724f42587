package corpus

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"fmt"

	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
)

// ErrCacheMiss is returned when a corpus has not been cached yet.
var ErrCacheMiss = errors.New("cache miss")

// BlockTransform determines how diskv should partition folders.
func BlockTransform(blockSize int) func(string) []string {
	return func(s string) []string {
		var (
			sliceSize = len(s) / blockSize
			pathSlice = make([]string, sliceSize)
		)
		for i := 0; i < sliceSize; i++ {
			from, to := i*blockSize, (i*blockSize)+blockSize
			pathSlice[i] = s[from:to]
		}
		return pathSlice
	}
}

// Cache persists preprocessed corpora on disk so that preprocessing only happens once per configuration.
type Cache struct {
	*diskv.Diskv
}

// NewCache creates a gzip compressed on-disk cache rooted at dir.
func NewCache(dir string) *Cache {
	return &Cache{diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    BlockTransform(8),
		CacheSizeMax: 64 << 20,
		Compression:  diskv.NewGzipCompression(),
	})}
}

func cacheKey(source, key string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(source+"\x00"+key)))
}

// Get retrieves the cached split of a source preprocessed with the configuration identified by key.
func (c *Cache) Get(source, key string) (Split, error) {
	b, err := c.Read(cacheKey(source, key))
	if err != nil {
		return Split{}, ErrCacheMiss
	}
	var s Split
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&s); err != nil {
		return Split{}, errors.Wrapf(err, "decoding cached %s corpus", source)
	}
	return s, nil
}

// Set stores the split of a source preprocessed with the configuration identified by key.
func (c *Cache) Set(source, key string, s Split) error {
	var buff bytes.Buffer
	if err := gob.NewEncoder(&buff).Encode(s); err != nil {
		return err
	}
	return c.Write(cacheKey(source, key), buff.Bytes())
}
