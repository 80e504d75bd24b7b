package tables

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// ErrCacheCorrupt is returned when a cache file fails its checks.
var ErrCacheCorrupt = errors.New("corrupt table cache")

const (
	cacheMagic   = "GOCUBEP1"
	cacheVersion = 1
	cacheFile    = "phase1.bin"
)

// Cache layout, little endian:
//
//	magic [8]byte, version u32, cells u64, levels u32,
//	cells per level [levels]u64, table [(cells+15)/16]u32,
//	xxhash64 of everything before it u64.
func encodePhase1(table phase1Table, depths []int) []byte {
	n := 8 + 4 + 8 + 4 + 8*len(depths) + 4*len(table) + 8
	buf := make([]byte, 0, n)
	buf = append(buf, cacheMagic...)
	buf = binary.LittleEndian.AppendUint32(buf, cacheVersion)
	buf = binary.LittleEndian.AppendUint64(buf, numPhase1Cells)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(depths)))
	for _, d := range depths {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(d))
	}
	for _, w := range table {
		buf = binary.LittleEndian.AppendUint32(buf, w)
	}
	return binary.LittleEndian.AppendUint64(buf, xxhash.Sum64(buf))
}

func decodePhase1(data []byte) (phase1Table, []int, error) {
	const header = 8 + 4 + 8 + 4
	if len(data) < header+8 {
		return nil, nil, fmt.Errorf("%w: short file", ErrCacheCorrupt)
	}
	body, sum := data[:len(data)-8], binary.LittleEndian.Uint64(data[len(data)-8:])
	if xxhash.Sum64(body) != sum {
		return nil, nil, fmt.Errorf("%w: checksum mismatch", ErrCacheCorrupt)
	}
	if string(body[:8]) != cacheMagic {
		return nil, nil, fmt.Errorf("%w: bad magic", ErrCacheCorrupt)
	}
	if v := binary.LittleEndian.Uint32(body[8:]); v != cacheVersion {
		return nil, nil, fmt.Errorf("%w: version %d", ErrCacheCorrupt, v)
	}
	if n := binary.LittleEndian.Uint64(body[12:]); n != numPhase1Cells {
		return nil, nil, fmt.Errorf("%w: %d cells", ErrCacheCorrupt, n)
	}
	levels := int(binary.LittleEndian.Uint32(body[20:]))
	words := (numPhase1Cells + 15) / 16
	if len(body) != header+8*levels+4*words {
		return nil, nil, fmt.Errorf("%w: size %d", ErrCacheCorrupt, len(data))
	}

	body = body[header:]
	depths := make([]int, levels)
	for i := range depths {
		depths[i] = int(binary.LittleEndian.Uint64(body[8*i:]))
	}
	body = body[8*levels:]
	table := make(phase1Table, words)
	for i := range table {
		table[i] = binary.LittleEndian.Uint32(body[4*i:])
	}
	return table, depths, nil
}

// loadPhase1 reads the phase-1 table from dir. It reports false, leaving t
// unchanged, when the cache is disabled, missing or unusable.
func (t *Tables) loadPhase1(dir string, log *slog.Logger) bool {
	if dir == "" {
		return false
	}
	path := filepath.Join(dir, cacheFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	if err != nil {
		log.Warn("could not read table cache", "path", path, "error", err)
		return false
	}
	table, depths, err := decodePhase1(data)
	if err != nil {
		log.Warn("ignoring table cache", "path", path, "error", err)
		return false
	}
	t.Phase1Prune, t.Phase1Depths, t.Cached = table, depths, true
	log.Debug("loaded phase 1 pruning table", "path", path)
	return true
}

// savePhase1 writes the phase-1 table to dir. Failures are logged; the
// tables stay usable without a cache.
func (t *Tables) savePhase1(dir string, log *slog.Logger) {
	if dir == "" {
		return
	}
	path := filepath.Join(dir, cacheFile)
	if err := writeFileAtomic(path, encodePhase1(t.Phase1Prune, t.Phase1Depths)); err != nil {
		log.Warn("could not write table cache", "path", path, "error", err)
		return
	}
	log.Debug("saved phase 1 pruning table", "path", path)
}

// writeFileAtomic replaces path with data so that readers never see a
// partial file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
