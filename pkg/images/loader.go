package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ImageCache caches decoded background images by source reference.
type ImageCache struct {
	cache map[string]image.Image
	mu    sync.RWMutex
}

func NewImageCache() *ImageCache {
	return &ImageCache{cache: make(map[string]image.Image)}
}

var globalCache = NewImageCache()

// IsDataURI reports whether ref is an inline data: URI.
func IsDataURI(ref string) bool {
	return strings.HasPrefix(ref, "data:")
}

// Resolve makes a relative file reference relative to baseDir. Data URIs and
// absolute paths are returned unchanged.
func Resolve(baseDir, ref string) string {
	if IsDataURI(ref) || filepath.IsAbs(ref) || baseDir == "" {
		return ref
	}
	return filepath.Join(baseDir, ref)
}

// LoadImageFromDataURI decodes a data:[<mediatype>][;base64],<data> URI.
func LoadImageFromDataURI(uri string) (image.Image, error) {
	if !IsDataURI(uri) {
		return nil, fmt.Errorf("not a data URI")
	}
	comma := strings.Index(uri, ",")
	if comma < 0 {
		return nil, fmt.Errorf("malformed data URI: missing ','")
	}
	meta, payload := uri[len("data:"):comma], uri[comma+1:]

	var raw []byte
	if strings.HasSuffix(meta, ";base64") {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decode data URI payload: %w", err)
		}
		raw = b
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("unescape data URI payload: %w", err)
		}
		raw = []byte(s)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode data URI image: %w", err)
	}
	return img, nil
}

// Load returns the image for ref, decoding it on first use.
func (c *ImageCache) Load(ref string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.cache[ref]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	var (
		img image.Image
		err error
	)
	if IsDataURI(ref) {
		img, err = LoadImageFromDataURI(ref)
	} else {
		img, err = loadFile(ref)
	}
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[ref] = img
	c.mu.Unlock()
	return img, nil
}

func loadFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

// LoadImage loads an image through the process-wide cache.
func LoadImage(ref string) (image.Image, error) {
	return globalCache.Load(ref)
}

// GetImageDimensions returns the width and height of an image
func GetImageDimensions(ref string) (width, height int, err error) {
	img, err := LoadImage(ref)
	if err != nil {
		return 0, 0, err
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}
