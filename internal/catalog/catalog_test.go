package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/sortviz/internal/engine"
)

func TestLookup(t *testing.T) {
	merge := Lookup(engine.Merge)
	assert.Equal(t, engine.Merge, merge.Algorithm)
	assert.Equal(t, "O(n log n)", merge.Time)
	assert.Equal(t, "O(n)", merge.Space)
	assert.True(t, merge.Stable)

	quick := Lookup(engine.Quick)
	assert.Equal(t, "No", quick.StableLabel())

	fallback := Lookup(engine.Algorithm(200))
	assert.Equal(t, engine.Bubble, fallback.Algorithm)
}

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, len(engine.Algorithms()))
	for i, info := range all {
		assert.Equal(t, engine.Algorithms()[i], info.Algorithm)
		assert.NotEmpty(t, info.Summary)
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		raw  string
		want Language
	}{
		{"JavaScript", JavaScript},
		{"js", JavaScript},
		{"Python 3", Python},
		{"py", Python},
		{"C++", Cpp},
		{"cpp", Cpp},
		{"Java", Java},
		{"c", C},
		{"C-lang", C},
		{"ansi c", C},
		{"go", Go},
		{"Golang", Go},
	}

	for _, tt := range tests {
		got, err := ParseLanguage(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}

	got, err := ParseLanguage("cobol")
	assert.ErrorIs(t, err, ErrUnknownLanguage)
	assert.Equal(t, JavaScript, got)
}

func TestSnippet_AllPresent(t *testing.T) {
	for _, algo := range engine.Algorithms() {
		for _, lang := range Languages() {
			src, err := Snippet(algo, lang)
			require.NoError(t, err, "%s/%s", algo, lang)
			assert.NotEmpty(t, strings.TrimSpace(src))
		}
	}
}

func TestSnippet_Fallback(t *testing.T) {
	js, err := Snippet(engine.Heap, JavaScript)
	require.NoError(t, err)

	got, err := Snippet(engine.Heap, Language(77))
	require.NoError(t, err)
	assert.Equal(t, js, got)

	_, err = Snippet(engine.Algorithm(77), Go)
	assert.ErrorIs(t, err, engine.ErrUnknownAlgorithm)
}

func TestSnippet_GoMatchesLanguage(t *testing.T) {
	src, err := Snippet(engine.Quick, Go)
	require.NoError(t, err)
	assert.Contains(t, src, "func quickSort")
}

func TestLanguageText(t *testing.T) {
	text, err := Cpp.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "cpp", string(text))

	var l Language
	require.NoError(t, l.UnmarshalText([]byte("python")))
	assert.Equal(t, Python, l)
	assert.Equal(t, JavaScript, Go.Next())
}
