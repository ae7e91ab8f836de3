package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"unicode"

	"docusense/domain"
	apperrors "docusense/errors"

	"github.com/abadojack/whatlanggo"
	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

// LexiconClassifier counts lexicon hits with one Aho-Corasick automaton per
// language. Unreliable language detection falls back to the default language.
type LexiconClassifier struct {
	log             *slog.Logger
	matchers        map[whatlanggo.Lang]*matcher
	defaultLanguage whatlanggo.Lang
}

type matcher struct {
	machine    *goahocorasick.Machine
	categories map[string]category
}

func NewLexiconClassifier(log *slog.Logger) (*LexiconClassifier, error) {
	lexicons := map[whatlanggo.Lang]Lexicon{
		whatlanggo.Eng: englishLexicon,
		whatlanggo.Fra: frenchLexicon,
	}
	matchers := make(map[whatlanggo.Lang]*matcher, len(lexicons))
	for lang, lexicon := range lexicons {
		m, err := newMatcher(lexicon)
		if err != nil {
			return nil, fmt.Errorf("building %s lexicon: %w", lang.String(), err)
		}
		matchers[lang] = m
	}
	return &LexiconClassifier{log: log, matchers: matchers, defaultLanguage: whatlanggo.Eng}, nil
}

func newMatcher(lexicon Lexicon) (*matcher, error) {
	categories := make(map[string]category)
	for cat, words := range lexicon {
		for _, word := range words {
			normalized := string(normalize(word))
			if normalized == "" {
				continue
			}
			if _, exists := categories[normalized]; !exists {
				categories[normalized] = cat
			}
		}
	}

	keys := lo.Keys(categories)
	slices.Sort(keys)
	patterns := lo.Map(keys, func(key string, _ int) []rune { return []rune(key) })

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &matcher{machine: m, categories: categories}, nil
}

func (c *LexiconClassifier) Classify(ctx context.Context, doc domain.Document) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, apperrors.Classification(err.Error(), err)
	}

	lang := c.defaultLanguage
	info := whatlanggo.Detect(doc.String())
	if info.IsReliable() {
		lang = info.Lang
	}
	m, ok := c.matchers[lang]
	if !ok {
		return Result{}, apperrors.Classification(
			fmt.Sprintf("%v: %s", apperrors.ErrUnsupportedLanguage, lang.String()),
			apperrors.ErrUnsupportedLanguage)
	}

	counts := m.count(normalize(doc.String()))
	result := Result{
		Sentiment: polarity(counts),
		Tone:      tone(counts),
	}
	c.log.Debug("Document classified",
		"language", lang.Iso6391(),
		"positive", counts[catPositive],
		"negative", counts[catNegative],
		"sentiment", result.Sentiment,
		"tone", result.Tone)
	return result, nil
}

// count only keeps hits aligned on word boundaries: "good" must not match "goodbye".
func (m *matcher) count(text []rune) map[category]int {
	counts := make(map[category]int)
	if len(text) == 0 {
		return counts
	}
	for _, term := range m.machine.MultiPatternSearch(text, false) {
		start, end := term.Pos, term.Pos+len(term.Word)
		if start > 0 && text[start-1] != ' ' {
			continue
		}
		if end < len(text) && text[end] != ' ' {
			continue
		}
		counts[m.categories[string(term.Word)]]++
	}
	return counts
}

func polarity(counts map[category]int) string {
	switch pos, neg := counts[catPositive], counts[catNegative]; {
	case pos > neg:
		return Positive
	case neg > pos:
		return Negative
	default:
		return Neutral
	}
}

// tone picks the most frequent tone; ties follow the order of Tones.
// Without any tone hit it is derived from the polarity.
func tone(counts map[category]int) string {
	best, bestCount := "", 0
	for _, t := range Tones {
		if n := counts[category(t)]; n > bestCount {
			best, bestCount = t, n
		}
	}
	if best != "" {
		return best
	}
	switch polarity(counts) {
	case Positive:
		return Optimistic
	case Negative:
		return Pessimistic
	default:
		return Formal
	}
}

// normalize lower-cases letters and turns everything else into single spaces.
func normalize(input string) []rune {
	out := make([]rune, 0, len(input))
	prevSpace := true
	for _, r := range input {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out = append(out, unicode.ToLower(r))
			prevSpace = false
			continue
		}
		if !prevSpace {
			out = append(out, ' ')
			prevSpace = true
		}
	}
	if len(out) > 0 && out[len(out)-1] == ' ' {
		out = out[:len(out)-1]
	}
	return out
}
