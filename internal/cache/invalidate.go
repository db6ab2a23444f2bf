package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ClearDir removes the directory and all contents, then recreates it empty.
func ClearDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return errors.New("empty dir")
	}
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

func isPageFile(name string) bool {
	return strings.HasSuffix(name, ".meta.json") || strings.HasSuffix(name, ".body")
}

func isAnswerFile(name string) bool {
	return strings.HasSuffix(name, ".json") && !strings.HasSuffix(name, ".meta.json")
}

// PurgePagesByAge removes page entries whose SavedAt is older than maxAge,
// deleting both the metadata and the body.
func PurgePagesByAge(dir string, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	removed := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".meta.json") {
			return nil
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		var e PageEntry
		if err := json.Unmarshal(b, &e); err != nil {
			return nil
		}
		if now.Sub(e.SavedAt) <= maxAge {
			return nil
		}
		removed++
		_ = os.Remove(path)
		_ = os.Remove(strings.TrimSuffix(path, ".meta.json") + ".body")
		return nil
	})
	return removed, err
}

// PurgeAnswersByAge removes answer entries not used for longer than maxAge.
func PurgeAnswersByAge(dir string, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	removed := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isAnswerFile(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if now.Sub(info.ModTime().UTC()) <= maxAge {
			return nil
		}
		removed++
		_ = os.Remove(path)
		return nil
	})
	return removed, err
}

type entry struct {
	paths []string
	size  int64
	used  time.Time
}

// enforce evicts least recently used entries until both limits hold. A limit
// <= 0 is ignored.
func enforce(entries []entry, maxBytes int64, maxCount int) int {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].used.Before(entries[j].used) })
	var total int64
	for _, e := range entries {
		total += e.size
	}
	removed := 0
	for len(entries) > 0 {
		overCount := maxCount > 0 && len(entries) > maxCount
		overBytes := maxBytes > 0 && total > maxBytes
		if !overCount && !overBytes {
			break
		}
		e := entries[0]
		entries = entries[1:]
		for _, p := range e.paths {
			_ = os.Remove(p)
		}
		total -= e.size
		removed++
	}
	return removed
}

// EnforceAnswerLimits evicts the least recently used answers until at most
// maxCount entries and maxBytes bytes remain.
func EnforceAnswerLimits(dir string, maxBytes int64, maxCount int) (int, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	var entries []entry
	for _, d := range ents {
		if d.IsDir() || !isAnswerFile(d.Name()) {
			continue
		}
		info, err := d.Info()
		if err != nil {
			continue
		}
		entries = append(entries, entry{
			paths: []string{filepath.Join(dir, d.Name())},
			size:  info.Size(),
			used:  info.ModTime(),
		})
	}
	return enforce(entries, maxBytes, maxCount), nil
}

// EnforcePageLimits is EnforceAnswerLimits for the page cache; a page's
// metadata and body count as one entry.
func EnforcePageLimits(dir string, maxBytes int64, maxCount int) (int, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	byKey := map[string]*entry{}
	var order []string
	for _, d := range ents {
		name := d.Name()
		if d.IsDir() || !isPageFile(name) {
			continue
		}
		info, err := d.Info()
		if err != nil {
			continue
		}
		key := strings.TrimSuffix(strings.TrimSuffix(name, ".meta.json"), ".body")
		e, ok := byKey[key]
		if !ok {
			e = &entry{}
			byKey[key] = e
			order = append(order, key)
		}
		e.paths = append(e.paths, filepath.Join(dir, name))
		e.size += info.Size()
		if info.ModTime().After(e.used) {
			e.used = info.ModTime()
		}
	}
	entries := make([]entry, 0, len(order))
	for _, k := range order {
		entries = append(entries, *byKey[k])
	}
	return enforce(entries, maxBytes, maxCount), nil
}
