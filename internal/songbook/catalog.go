package songbook

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Catalog is the immutable in-memory song library, loaded once at
// startup. Lookup is by file-derived id; the index is pre-sorted by
// title with Norwegian collation so "Æ", "Ø" and "Å" land where
// Norwegian users expect them.
type Catalog struct {
	byID  map[string]*Song
	index []IndexEntry
}

var chordproExts = map[string]bool{".chopro": true, ".cho": true, ".crd": true}

// Load reads every song file at the root of fsys. Files that are
// neither ChordPro nor tab are skipped. An empty catalog is an error;
// a display app with nothing to display is misconfigured.
func Load(fsys fs.FS) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read songs dir: %w", err)
	}

	c := &Catalog{byID: make(map[string]*Song)}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(path.Ext(name))
		if !chordproExts[ext] && ext != ".tab" {
			continue
		}

		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read song %s: %w", name, err)
		}

		id := strings.TrimSuffix(name, path.Ext(name))
		var song Song
		if ext == ".tab" {
			song = ParseTab(string(raw), id)
		} else {
			song = ParseChordPro(string(raw), id)
		}

		c.byID[id] = &song
		slog.Debug("loaded song", "id", id, "title", song.Title, "format", song.Format)
	}

	if len(c.byID) == 0 {
		return nil, fmt.Errorf("no songs found in catalog")
	}

	c.buildIndex()
	slog.Info("song catalog loaded", "songs", len(c.index))
	return c, nil
}

func (c *Catalog) buildIndex() {
	c.index = make([]IndexEntry, 0, len(c.byID))
	for _, s := range c.byID {
		c.index = append(c.index, IndexEntry{
			ID:       s.ID,
			Title:    s.Title,
			Artist:   s.Artist,
			Key:      s.Key,
			Format:   s.Format,
			Sections: len(s.Sections),
		})
	}

	col := collate.New(language.Norwegian, collate.IgnoreCase)
	sort.Slice(c.index, func(i, j int) bool {
		if cmp := col.CompareString(c.index[i].Title, c.index[j].Title); cmp != 0 {
			return cmp < 0
		}
		return c.index[i].ID < c.index[j].ID
	})
}

// Get returns the parsed song for an id.
func (c *Catalog) Get(id string) (*Song, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// Index returns the title-sorted song listing.
func (c *Catalog) Index() []IndexEntry {
	return c.index
}
