package projects

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/hxj7031gino/my-cv/internal/model"
)

// PageUpdate reports what happened to one page.
type PageUpdate struct {
	Page    string
	Changed bool
	Backup  string
	// Note explains an unchanged page, "" otherwise.
	Note string
}

// SyncResult summarises SyncCards.
type SyncResult struct {
	MissingRecent []string
	Pages         []PageUpdate
}

// SyncCards regenerates the featured cards in index.html from the recent
// slugs and every card in work.html from projects.csv, in CSV order.
func SyncCards(t Tree, recent []string, now time.Time) (*SyncResult, error) {
	ps, err := ReadCSV(t.CSVPath())
	if err != nil {
		return nil, err
	}
	bySlug := make(map[string]model.Project, len(ps))
	for _, p := range ps {
		bySlug[p.Slug] = p
	}

	res := &SyncResult{}
	var featured []model.Project
	for _, s := range recent {
		p, ok := bySlug[s]
		if !ok {
			res.MissingRecent = append(res.MissingRecent, s)
			continue
		}
		featured = append(featured, p)
	}

	home, err := SelectedCards(featured)
	if err != nil {
		return nil, err
	}
	work, err := WorkCards(ps)
	if err != nil {
		return nil, err
	}

	for _, target := range []struct {
		page, class, inner string
	}{
		{"index.html", SelectedGridClass, home},
		{"work.html", WorkGridClass, work},
	} {
		u, err := syncPage(filepath.Join(t.Root, target.page), target.class, target.inner, now)
		if err != nil {
			return nil, err
		}
		u.Page = target.page
		res.Pages = append(res.Pages, u)
	}
	return res, nil
}

func syncPage(path, class, inner string, now time.Time) (PageUpdate, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return PageUpdate{Note: "not found"}, nil
	}
	if err != nil {
		return PageUpdate{}, fmt.Errorf("reading %s: %w", path, err)
	}
	updated, ok := ReplaceDivInner(string(data), class, inner)
	if !ok {
		return PageUpdate{Note: fmt.Sprintf(`no <div class="%s"> found`, class)}, nil
	}
	if updated == string(data) {
		return PageUpdate{Note: "already up to date"}, nil
	}
	bak, err := writeWithBackup(path, updated, now)
	if err != nil {
		return PageUpdate{}, err
	}
	return PageUpdate{Changed: true, Backup: bak}, nil
}
