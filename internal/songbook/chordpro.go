package songbook

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	chordRe     = regexp.MustCompile(`\[([^\]]+)\]`)
	directiveRe = regexp.MustCompile(`^\s*\{([^:}]+)(?::\s*([^}]*))?\}\s*$`)
)

// directiveAliases maps ChordPro shorthand directives to full names.
var directiveAliases = map[string]string{
	"t":        "title",
	"ti":       "title",
	"a":        "artist",
	"st":       "artist",
	"subtitle": "artist",
	"k":        "key",
	"c":        "comment",
	"v":        "verse",
	"ch":       "chorus",
}

type directive struct {
	kind  string
	value string
}

func parseDirective(line string) (directive, bool) {
	m := directiveRe.FindStringSubmatch(line)
	if m == nil {
		return directive{}, false
	}
	kind := strings.ToLower(strings.TrimSpace(m[1]))
	if full, ok := directiveAliases[kind]; ok {
		kind = full
	}
	return directive{kind: kind, value: strings.TrimSpace(m[2])}, true
}

// parseLine splits inline [Chord] markers out of a lyric line,
// recording each chord at its rune offset into the stripped lyrics.
func parseLine(line string) Line {
	chords := []ChordPosition{}
	var lyrics strings.Builder
	position := 0
	last := 0

	for _, m := range chordRe.FindAllStringSubmatchIndex(line, -1) {
		before := line[last:m[0]]
		lyrics.WriteString(before)
		position += utf8.RuneCountInString(before)

		chords = append(chords, ChordPosition{
			Chord:    line[m[2]:m[3]],
			Position: position,
		})
		last = m[1]
	}
	lyrics.WriteString(line[last:])

	return Line{Lyrics: lyrics.String(), Chords: chords}
}

// ParseChordPro parses ChordPro text into a Song. Unknown directives
// are ignored; blank lines are skipped; section directives ({verse},
// {chorus}, {bridge}, ...) start a new section, optionally labeled.
func ParseChordPro(text, id string) Song {
	song := Song{ID: id, Title: "Untitled", Format: FormatChordPro}
	current := Section{Name: "Verse"}

	flush := func() {
		if len(current.Lines) > 0 {
			song.Sections = append(song.Sections, current)
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if d, ok := parseDirective(line); ok {
			switch d.kind {
			case "title":
				song.Title = d.value
			case "artist":
				song.Artist = d.value
			case "key":
				song.Key = d.value
			case "verse", "chorus", "bridge", "intro", "outro", "pre-chorus":
				flush()
				name := d.value
				if name == "" {
					name = strings.ToUpper(d.kind[:1]) + d.kind[1:]
				}
				current = Section{Name: name}
			}
			// Other directives (comment etc.) are ignored.
			continue
		}

		parsed := parseLine(line)
		if strings.TrimSpace(parsed.Lyrics) != "" || len(parsed.Chords) > 0 {
			current.Lines = append(current.Lines, parsed)
		}
	}
	flush()

	return song
}

// ParseTab parses a tab file: ChordPro-style metadata directives plus a
// raw tablature body that is preserved untouched.
func ParseTab(text, id string) Song {
	song := Song{ID: id, Title: "Untitled", Format: FormatTab}
	var body []string

	for _, raw := range strings.Split(text, "\n") {
		if d, ok := parseDirective(strings.TrimSpace(raw)); ok {
			switch d.kind {
			case "title":
				song.Title = d.value
			case "artist":
				song.Artist = d.value
			case "key":
				song.Key = d.value
			}
			continue
		}
		body = append(body, raw)
	}

	song.RawTab = strings.TrimSpace(strings.Join(body, "\n"))
	return song
}
