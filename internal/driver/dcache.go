package driver

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/blake3"

	"emblem/internal/diag"
	"emblem/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 2

// Digest is a cache key.
type Digest [32]byte

// DiskCache хранит логи разобранных документов на диске, по ключу из
// содержимого файла. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of parsing one document. Spans are
// stored as offsets and re-anchored to the file on load.
type DiskPayload struct {
	Schema  uint16
	Path    string
	Len     uint32
	Logs    []cachedLog
	Dropped int // логи, не попавшие в Logs из-за лимита
}

type cachedLog struct {
	Severity    uint8
	ID          string
	Message     string
	Excerpts    []cachedExcerpt
	Help        string
	Notes       []string
	Explainable bool
}

type cachedExcerpt struct {
	Start, End uint32
	Anchored   bool
	Label      string
	Severity   uint8
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// KeyFor derives the cache key of a document: its content, the diagnostic
// limit it was parsed with, and the payload schema.
func KeyFor(file *source.File, maxDiagnostics int) Digest {
	var hdr [10]byte
	binary.LittleEndian.PutUint16(hdr[0:2], diskCacheSchemaVersion)
	binary.LittleEndian.PutUint64(hdr[2:10], uint64(int64(maxDiagnostics)))
	h := blake3.New()
	_, _ = h.Write(hdr[:])
	_, _ = h.Write(file.Content)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первому байту, чтобы не держать всё в одной папке
	return filepath.Join(c.dir, "docs", hexKey[:2], hexKey+".mp.xz")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	xw, err := xz.NewWriter(f)
	if err != nil {
		return err
	}
	if err = msgpack.NewEncoder(xw).Encode(payload); err != nil {
		return err
	}
	if err = xw.Close(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return false, err
	}
	if err := msgpack.NewDecoder(xr).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// Lookup returns the cached logs of file, re-anchored to it, and the number
// of logs the limit suppressed. Unreadable or stale entries count as misses.
func (c *DiskCache) Lookup(file *source.File, maxDiagnostics int) ([]diag.Log, int, bool) {
	if c == nil {
		return nil, 0, false
	}
	var payload DiskPayload
	ok, err := c.Get(KeyFor(file, maxDiagnostics), &payload)
	if err != nil || !ok {
		return nil, 0, false
	}
	logs, ok := payloadToLogs(&payload, file)
	return logs, payload.Dropped, ok
}

// Store writes the logs of file together with the suppressed count.
func (c *DiskCache) Store(file *source.File, maxDiagnostics int, logs []diag.Log, dropped int) error {
	if c == nil {
		return nil
	}
	payload := logsToPayload(file, logs)
	payload.Dropped = dropped
	return c.Put(KeyFor(file, maxDiagnostics), payload)
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func logsToPayload(file *source.File, logs []diag.Log) *DiskPayload {
	payload := &DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   file.Path,
		Len:    file.Len(),
		Logs:   make([]cachedLog, len(logs)),
	}
	for i, l := range logs {
		cl := cachedLog{
			Severity:    uint8(l.Severity),
			ID:          l.ID,
			Message:     l.Message,
			Help:        l.Help,
			Notes:       l.Notes,
			Explainable: l.Explainable,
			Excerpts:    make([]cachedExcerpt, len(l.Excerpts)),
		}
		for j, ex := range l.Excerpts {
			cl.Excerpts[j] = cachedExcerpt{
				Start:    ex.Span.Start,
				End:      ex.Span.End,
				Anchored: ex.Span.File == file,
				Label:    ex.Label,
				Severity: uint8(ex.Severity),
			}
		}
		payload.Logs[i] = cl
	}
	return payload
}

// payloadToLogs converts DiskPayload back to logs anchored in file.
func payloadToLogs(payload *DiskPayload, file *source.File) ([]diag.Log, bool) {
	if payload == nil || payload.Schema != diskCacheSchemaVersion || payload.Len != file.Len() {
		return nil, false
	}
	logs := make([]diag.Log, len(payload.Logs))
	for i, cl := range payload.Logs {
		l := diag.Log{
			Severity:    diag.Severity(cl.Severity),
			ID:          cl.ID,
			Message:     cl.Message,
			Help:        cl.Help,
			Notes:       cl.Notes,
			Explainable: cl.Explainable,
		}
		if len(cl.Excerpts) > 0 {
			l.Excerpts = make([]diag.Excerpt, len(cl.Excerpts))
		}
		for j, ex := range cl.Excerpts {
			var span source.Span
			if ex.Anchored {
				if ex.Start > ex.End || ex.End > file.Len() {
					return nil, false
				}
				span = source.NewSpan(file, ex.Start, ex.End)
			}
			l.Excerpts[j] = diag.Excerpt{Span: span, Label: ex.Label, Severity: diag.Severity(ex.Severity)}
		}
		logs[i] = l
	}
	return logs, true
}
