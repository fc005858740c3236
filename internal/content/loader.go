package content

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// defaultTextCacheSize is how many extracted books a Loader keeps.
const defaultTextCacheSize = 16

// Loader reads ebook files from the library directory and extracts their text.
// Extraction results are cached per file and reused while the file's size and
// modification time are unchanged. It is safe for concurrent use.
type Loader struct {
	libraryDir string
	maxBytes   int64

	mu        sync.Mutex
	cache     map[string]cachedText
	order     []string // insertion order for eviction
	cacheSize int
}

type cachedText struct {
	size    int64
	modTime time.Time
	text    string
}

// NewLoader creates a Loader. maxBytes <= 0 disables the size limit.
func NewLoader(libraryDir string, maxBytes int64) *Loader {
	return &Loader{
		libraryDir: libraryDir,
		maxBytes:   maxBytes,
		cache:      make(map[string]cachedText),
		cacheSize:  defaultTextCacheSize,
	}
}

// LibraryDir returns the directory relative ebook paths are resolved against.
func (l *Loader) LibraryDir() string {
	return l.libraryDir
}

// Resolve returns the absolute path of a book's ebook file. Relative paths are
// resolved under the library directory and may not leave it.
func (l *Loader) Resolve(book *entities.Book) (string, error) {
	if book == nil || !book.HasEbook() {
		return "", ErrNoFile
	}
	if filepath.IsAbs(book.EbookPath) {
		return filepath.Clean(book.EbookPath), nil
	}

	base, err := filepath.Abs(l.libraryDir)
	if err != nil {
		return "", fmt.Errorf("resolve library dir: %w", err)
	}
	full := filepath.Join(base, book.EbookPath)
	rel, err := filepath.Rel(base, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideLibrary
	}
	return full, nil
}

// Load returns the normalized text of a book's ebook.
func (l *Loader) Load(ctx context.Context, book *entities.Book) (string, error) {
	path, err := l.Resolve(book)
	if err != nil {
		return "", err
	}
	format := book.EbookFormat
	if format == "" {
		format = filepath.Ext(path)
	}
	return l.load(ctx, path, format)
}

// LoadFile extracts a file chosen by extension. Used outside the catalogue,
// e.g. by the paginate command.
func (l *Loader) LoadFile(ctx context.Context, path string) (string, error) {
	return l.load(ctx, path, filepath.Ext(path))
}

func (l *Loader) load(ctx context.Context, path, format string) (string, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	extractor := extractors[f]

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat ebook: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory: %w", path, ErrNoFile)
	}
	if l.maxBytes > 0 && info.Size() > l.maxBytes {
		return "", fmt.Errorf("%s is %d bytes, limit %d: %w", path, info.Size(), l.maxBytes, ErrTooLarge)
	}

	cacheKey := string(f) + ":" + path
	if text, ok := l.cached(cacheKey, info); ok {
		return text, nil
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read ebook: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	start := time.Now()
	raw, err := extractor.Extract(data)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", filepath.Base(path), err)
	}
	text := Normalize(raw)
	log.Printf("Extracted %d bytes of text from %s in %s", len(text), filepath.Base(path), time.Since(start).Round(time.Millisecond))

	l.store(cacheKey, cachedText{size: info.Size(), modTime: info.ModTime(), text: text})
	return text, nil
}

func (l *Loader) cached(key string, info os.FileInfo) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.cache[key]
	if !ok || entry.size != info.Size() || !entry.modTime.Equal(info.ModTime()) {
		return "", false
	}
	return entry.text, true
}

func (l *Loader) store(key string, entry cachedText) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.cache[key]; !exists {
		l.order = append(l.order, key)
	}
	l.cache[key] = entry
	for len(l.order) > l.cacheSize {
		delete(l.cache, l.order[0])
		l.order = l.order[1:]
	}
}
