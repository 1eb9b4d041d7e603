// Package songbook loads and parses the song catalog: ChordPro files
// ([G]chord-over-lyric notation with {directives}) and raw tablature
// files carrying ChordPro-style metadata.
package songbook

// ChordPosition anchors a chord at a rune offset into a lyric line.
type ChordPosition struct {
	Chord    string `json:"chord"`
	Position int    `json:"position"`
}

// Line is one lyric line with its chords.
type Line struct {
	Lyrics string          `json:"lyrics"`
	Chords []ChordPosition `json:"chords"`
}

// Section is a named block of lines ("Verse", "Chorus", ...).
type Section struct {
	Name  string `json:"name"`
	Lines []Line `json:"lines"`
}

const (
	FormatChordPro = "chordpro"
	FormatTab      = "tab"
)

// Song is one parsed catalog entry. Tab songs have no sections; their
// body is kept verbatim in RawTab.
type Song struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Artist   string    `json:"artist,omitempty"`
	Key      string    `json:"key,omitempty"`
	Format   string    `json:"format"`
	Sections []Section `json:"sections"`
	RawTab   string    `json:"rawTab,omitempty"`
}

// IndexEntry is the listing shape for the song index endpoint.
type IndexEntry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist,omitempty"`
	Key      string `json:"key,omitempty"`
	Format   string `json:"format"`
	Sections int    `json:"sections"`
}
