package songbook

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleChordPro = `{title: Bæ, bæ, lille lam}
{artist: Trad.}
{key: G}

{verse}
[G]Bæ, bæ, lille [D]lam,
har du noe [G]ull?

{chorus: Refreng}
[C]Ja, ja, kjære [G]barn,
jeg har [D]kroppen [G]full.
`

func TestParseChordProMetadata(t *testing.T) {
	song := ParseChordPro(sampleChordPro, "bae-bae-lille-lam")

	require.Equal(t, "bae-bae-lille-lam", song.ID)
	require.Equal(t, "Bæ, bæ, lille lam", song.Title)
	require.Equal(t, "Trad.", song.Artist)
	require.Equal(t, "G", song.Key)
	require.Equal(t, FormatChordPro, song.Format)
}

func TestParseChordProSections(t *testing.T) {
	song := ParseChordPro(sampleChordPro, "x")

	require.Len(t, song.Sections, 2)
	require.Equal(t, "Verse", song.Sections[0].Name)
	require.Equal(t, "Refreng", song.Sections[1].Name, "labeled section keeps its label")
	require.Len(t, song.Sections[0].Lines, 2)
	require.Len(t, song.Sections[1].Lines, 2)
}

func TestParseChordProChordPositions(t *testing.T) {
	song := ParseChordPro("[G]Bæ, bæ, lille [D]lam,", "x")

	require.Len(t, song.Sections, 1)
	line := song.Sections[0].Lines[0]
	require.Equal(t, "Bæ, bæ, lille lam,", line.Lyrics)
	require.Equal(t, []ChordPosition{
		{Chord: "G", Position: 0},
		{Chord: "D", Position: 14},
	}, line.Chords)
}

func TestParseChordProShorthandDirectives(t *testing.T) {
	song := ParseChordPro("{t: Fader Jakob}\n{a: Trad.}\n{k: C}\n[C]Sover du?", "x")

	require.Equal(t, "Fader Jakob", song.Title)
	require.Equal(t, "Trad.", song.Artist)
	require.Equal(t, "C", song.Key)
}

func TestParseChordProImplicitFirstSection(t *testing.T) {
	song := ParseChordPro("[C]Line without any section marker", "x")

	require.Len(t, song.Sections, 1)
	require.Equal(t, "Verse", song.Sections[0].Name)
}

func TestParseChordProUntitled(t *testing.T) {
	song := ParseChordPro("[C]La la la", "x")
	require.Equal(t, "Untitled", song.Title)
}

func TestParseChordProIgnoresUnknownDirectives(t *testing.T) {
	song := ParseChordPro("{capo: 2}\n{c: hurtig}\n[C]La la", "x")

	require.Len(t, song.Sections, 1)
	require.Len(t, song.Sections[0].Lines, 1)
}

func TestParseTab(t *testing.T) {
	text := "{title: Lisa gikk til skolen}\n{key: C}\ne|---0---3---|\nB|---1---0---|\n"
	song := ParseTab(text, "lisa-gikk-til-skolen")

	require.Equal(t, "Lisa gikk til skolen", song.Title)
	require.Equal(t, "C", song.Key)
	require.Equal(t, FormatTab, song.Format)
	require.Empty(t, song.Sections)
	require.Equal(t, "e|---0---3---|\nB|---1---0---|", song.RawTab)
}
