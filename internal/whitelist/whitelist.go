// Package whitelist reads and enforces the flat-file allow-list of Telegram
// user IDs. The file holds one numeric ID per line; `#` starts a comment,
// either on its own line or trailing an ID. A list with no entries admits
// everyone so a freshly provisioned bot works before the operator edits it.
package whitelist

import (
	"bufio"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

type List struct {
	path string

	mu      sync.RWMutex
	ids     map[int64]struct{}
	modTime time.Time
}

// Load reads the whitelist file at path. A missing file is not an error:
// it behaves like an empty list and is picked up once created.
func Load(path string) (*List, error) {
	l := &List{path: path}
	if err := l.reload(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return l, nil
}

// Allowed reports whether userID may use the bot. The file is re-read when
// its mtime changes, so manual edits take effect without a restart.
func (l *List) Allowed(userID int64) bool {
	l.refresh()

	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.ids) == 0 {
		return true
	}

	_, ok := l.ids[userID]
	return ok
}

// Enforced reports whether the list has any entries.
func (l *List) Enforced() bool {
	l.refresh()

	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.ids) > 0
}

// Len returns the number of whitelisted IDs.
func (l *List) Len() int {
	l.refresh()

	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.ids)
}

func (l *List) refresh() {
	info, err := os.Stat(l.path)
	if err != nil {
		return
	}

	l.mu.RLock()
	changed := !info.ModTime().Equal(l.modTime)
	l.mu.RUnlock()

	if !changed {
		return
	}

	if err := l.reload(); err != nil {
		log.Printf("whitelist: failed to reload %s: %v", l.path, err)
	}
}

func (l *List) reload() error {
	f, err := os.Open(l.path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	ids := parse(f, l.path)

	l.mu.Lock()
	l.ids = ids
	l.modTime = info.ModTime()
	l.mu.Unlock()

	return nil
}

// parse reads newline-delimited IDs, stripping comments and blank lines.
// Malformed lines are skipped with a warning, never fatal.
func parse(r io.Reader, path string) map[int64]struct{} {
	ids := make(map[int64]struct{})

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			log.Printf("whitelist: %s:%d: skipping malformed entry %q", path, lineNo, line)
			continue
		}
		ids[id] = struct{}{}
	}

	return ids
}
