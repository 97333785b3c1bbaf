// Package hint produces partially-redacted answer strings for the guessing
// game: a length-scaled number of characters stays visible, the rest is
// masked. It also persists one generated hint per round so every player in
// a round sees the same reveal.
package hint

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"time"
)

// ErrEmptyContent is returned when there is no answer to mask.
var ErrEmptyContent = errors.New("hint: empty content")

// Mask glyphs: alphanumerics become an underscore so their count stays
// readable, everything else becomes a bullet.
const (
	maskLetter = '_'
	maskOther  = '•'
)

// Config holds the reveal-count tuning. The values come from the production
// banding rule: tiny answers get a fixed reveal, longer ones scale with
// ceil(LogScale*ln(n) + LogOffset) capped at MaxRevealFraction of the
// non-space length.
type Config struct {
	// SingleCharReveal is the reveal count for one-character answers.
	// Product has shipped both 0 and 1 at different times; 0 is current.
	SingleCharReveal int

	ShortMax     int // answers up to this many chars reveal ShortReveal
	ShortReveal  int
	MediumMax    int // answers up to this many chars reveal MediumReveal
	MediumReveal int

	LogScale          float64
	LogOffset         float64
	MaxRevealFraction float64
}

// DefaultConfig mirrors the production constants.
var DefaultConfig = Config{
	SingleCharReveal:  0,
	ShortMax:          3,
	ShortReveal:       1,
	MediumMax:         5,
	MediumReveal:      2,
	LogScale:          2.0,
	LogOffset:         1.0,
	MaxRevealFraction: 0.3,
}

// Masker generates masked hints. The random source is injected so tests can
// fix a seed; pass nil for a time-seeded source.
type Masker struct {
	cfg Config
	rng *rand.Rand
}

func NewMasker(cfg Config, rng *rand.Rand) *Masker {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Masker{cfg: cfg, rng: rng}
}

// RevealCount returns how many of n non-space characters get revealed.
func (m *Masker) RevealCount(n int) int {
	cfg := m.cfg
	var reveal int
	switch {
	case n <= 1:
		reveal = cfg.SingleCharReveal
	case n <= cfg.ShortMax:
		reveal = cfg.ShortReveal
	case n <= cfg.MediumMax:
		reveal = cfg.MediumReveal
	default:
		reveal = int(math.Ceil(cfg.LogScale*math.Log(float64(n)) + cfg.LogOffset))
		if limit := int(math.Floor(cfg.MaxRevealFraction * float64(n))); reveal > limit {
			reveal = limit
		}
	}
	if reveal > n {
		reveal = n
	}
	return reveal
}

// Generate masks content, keeping a randomly chosen subset of its non-space
// characters visible. The output has the same word and space structure and
// the same rune length as the input. Non-deterministic across calls unless
// the Masker was built with a fixed seed.
func (m *Masker) Generate(content string) (string, error) {
	if content == "" {
		return "", ErrEmptyContent
	}

	chars := []rune(content)

	positions := make([]int, 0, len(chars))
	for i, r := range chars {
		if r != ' ' {
			positions = append(positions, i)
		}
	}
	if len(positions) == 0 {
		// all-space content carries nothing to mask or reveal
		return "", nil
	}

	reveal := m.RevealCount(len(positions))

	revealed := make(map[int]bool, reveal)
	for len(revealed) < reveal && len(positions) > 0 {
		i := m.rng.Intn(len(positions))
		revealed[positions[i]] = true
		positions = append(positions[:i], positions[i+1:]...)
	}

	words := strings.Split(content, " ")
	hintWords := make([]string, 0, len(words))
	pos := 0
	for _, word := range words {
		var b strings.Builder
		for _, r := range word {
			switch {
			case revealed[pos]:
				b.WriteRune(r)
			case isASCIIAlnum(r):
				b.WriteRune(maskLetter)
			default:
				b.WriteRune(maskOther)
			}
			pos++
		}
		hintWords = append(hintWords, b.String())
		pos++ // the joining space
	}

	return strings.Join(hintWords, " "), nil
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
