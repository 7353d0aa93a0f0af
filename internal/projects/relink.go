package projects

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Rewrite replaces one exact link target.
type Rewrite struct {
	From string
	To   string
}

// RelinkResult reports one page's rewrite.
type RelinkResult struct {
	PageUpdate
	// Hits counts rewrites that matched at least once.
	Hits int
}

// Relink applies rewrites, in order, to each page under the tree root.
// Missing pages are skipped; changed pages are backed up first.
func Relink(t Tree, pages []string, rewrites []Rewrite, now time.Time) ([]RelinkResult, error) {
	var out []RelinkResult
	for _, page := range pages {
		path := filepath.Join(t.Root, page)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		text, hits := string(data), 0
		for _, rw := range rewrites {
			if rw.From == "" || !strings.Contains(text, rw.From) {
				continue
			}
			text = strings.ReplaceAll(text, rw.From, rw.To)
			hits++
		}

		res := RelinkResult{PageUpdate: PageUpdate{Page: page}, Hits: hits}
		if text == string(data) {
			res.Note = "no change"
		} else {
			if res.Backup, err = writeWithBackup(path, text, now); err != nil {
				return nil, err
			}
			res.Changed = true
		}
		out = append(out, res)
	}
	return out, nil
}
