// Package cache keeps oracle answers and fetched pages on disk so that
// replaying the same page does not hit the network again.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Answer is one cached oracle reply.
type Answer struct {
	Model   string    `json:"model"`
	Text    string    `json:"text"`
	SavedAt time.Time `json:"saved_at"`
}

// AnswerCache stores oracle replies as <key>.json where key is a digest of
// the model and the prompt.
type AnswerCache struct {
	Dir string
	// StrictPerms, when true, enforces 0700 on the directory and 0600 on
	// files. Prompts may contain page content the user considers private.
	StrictPerms bool
}

// KeyFrom builds a cache key from model and prompt.
func KeyFrom(model string, prompt string) string {
	h := sha256.Sum256([]byte(model + "\n\n" + prompt))
	return hex.EncodeToString(h[:])
}

// KeyFromImage builds a key for an image prompt. The image enters the key
// through its digest.
func KeyFromImage(model, prompt string, image []byte) string {
	d := sha256.Sum256(image)
	return KeyFrom(model, prompt+"\n\nimage:"+hex.EncodeToString(d[:]))
}

func ensureDir(dir string, strict bool) error {
	if dir == "" {
		return errors.New("cache dir not configured")
	}
	perm := os.FileMode(0o755)
	if strict {
		perm = 0o700
	}
	if err := os.MkdirAll(dir, perm); err != nil {
		return err
	}
	// tighten a directory that already existed
	if strict {
		if info, err := os.Stat(dir); err == nil && info.Mode()&0o777 != 0o700 {
			_ = os.Chmod(dir, 0o700)
		}
	}
	return nil
}

func fileMode(strict bool) os.FileMode {
	if strict {
		return 0o600
	}
	return 0o644
}

func (c *AnswerCache) pathFor(key string) string {
	return filepath.Join(c.Dir, key+".json")
}

// Get returns the cached answer for key. A missing or unreadable entry is a
// miss, not an error.
func (c *AnswerCache) Get(_ context.Context, key string) (Answer, bool, error) {
	if c == nil {
		return Answer{}, false, errors.New("cache dir not configured")
	}
	if err := ensureDir(c.Dir, c.StrictPerms); err != nil {
		return Answer{}, false, err
	}
	p := c.pathFor(key)
	b, err := os.ReadFile(p)
	if err != nil {
		return Answer{}, false, nil
	}
	var a Answer
	if err := json.Unmarshal(b, &a); err != nil || a.Text == "" {
		return Answer{}, false, nil
	}
	// access time drives LRU eviction
	now := time.Now()
	_ = os.Chtimes(p, now, now)
	return a, true, nil
}

// Save writes an answer under key.
func (c *AnswerCache) Save(_ context.Context, key string, a Answer) error {
	if c == nil {
		return errors.New("cache dir not configured")
	}
	if err := ensureDir(c.Dir, c.StrictPerms); err != nil {
		return err
	}
	if a.SavedAt.IsZero() {
		a.SavedAt = time.Now().UTC()
	}
	b, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode answer: %w", err)
	}
	return writeAtomic(c.pathFor(key), b, fileMode(c.StrictPerms))
}

func writeAtomic(path string, data []byte, mode os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, mode); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
