package catalog

import (
	"embed"
	"fmt"
	"strings"

	"github.com/san-kum/sortviz/internal/engine"
)

//go:embed snippets/*.txt
var snippetFS embed.FS

type Language uint8

const (
	JavaScript Language = iota
	Python
	Java
	Cpp
	C
	Go

	numLanguages
)

var languages = [numLanguages]struct{ key, title string }{
	JavaScript: {"js", "JavaScript"},
	Python:     {"py", "Python"},
	Java:       {"java", "Java"},
	Cpp:        {"cpp", "C++"},
	C:          {"c", "C"},
	Go:         {"go", "Go"},
}

func Languages() []Language {
	all := make([]Language, numLanguages)
	for i := range all {
		all[i] = Language(i)
	}
	return all
}

func (l Language) String() string {
	if l >= numLanguages {
		return fmt.Sprintf("language(%d)", uint8(l))
	}
	return languages[l].title
}

// Key is the short name used in snippet file names.
func (l Language) Key() string {
	if l >= numLanguages {
		return languages[JavaScript].key
	}
	return languages[l].key
}

func (l Language) Next() Language { return (l + 1) % numLanguages }

func (l Language) MarshalText() ([]byte, error) {
	if l >= numLanguages {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLanguage, uint8(l))
	}
	return []byte(l.Key()), nil
}

func (l *Language) UnmarshalText(text []byte) error {
	parsed, err := ParseLanguage(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLanguage resolves loose language names such as "Python 3", "c++",
// "golang" or "C". C++ is matched before C. Unrecognized names return
// JavaScript together with ErrUnknownLanguage.
func ParseLanguage(raw string) (Language, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "js" || strings.Contains(s, "javascript"):
		return JavaScript, nil
	case s == "py" || strings.Contains(s, "python"):
		return Python, nil
	case strings.Contains(s, "c++") || strings.Contains(s, "cpp"):
		return Cpp, nil
	case strings.Contains(s, "java"):
		return Java, nil
	case s == "go" || strings.Contains(s, "golang"):
		return Go, nil
	case s == "c" || s == "c-lang" || strings.HasPrefix(s, "c ") || strings.Contains(s, " c"):
		return C, nil
	}
	return JavaScript, fmt.Errorf("%w: %q", ErrUnknownLanguage, raw)
}

// Snippet returns the source of algo in lang, falling back to the
// JavaScript version when no snippet exists for that language.
func Snippet(algo engine.Algorithm, lang Language) (string, error) {
	if err := mustKnow(algo); err != nil {
		return "", err
	}
	for _, l := range []Language{lang, JavaScript} {
		data, err := snippetFS.ReadFile(fmt.Sprintf("snippets/%s_%s.txt", algo, l.Key()))
		if err == nil {
			return string(data), nil
		}
	}
	return "", fmt.Errorf("catalog: no snippet for %s", algo)
}
