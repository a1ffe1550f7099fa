package wordpool

import (
	"math/rand"
	"strings"
	"sync"
)

// Category is one of the three fixed word categories every candidate set
// tries to cover.
type Category string

const (
	CategoryObjects Category = "objects"
	CategoryAnimals Category = "animals"
	CategoryActions Category = "actions"
)

var Categories = []Category{CategoryObjects, CategoryAnimals, CategoryActions}

// Word is a drawable token tagged with its category.
type Word struct {
	Token    string   `json:"token"`
	Category Category `json:"category"`
}

// Provider hands out candidate words for a turn. Implementations must
// return distinct words and favor tokens not present in exclude.
type Provider interface {
	Candidates(round int, count int, exclude []string) []Word
}

// difficulty tiers keyed by round: round 1 easy, round 2 medium,
// round 3 and beyond hard.
const (
	tierEasy = iota
	tierMedium
	tierHard
)

func tierForRound(round int) int {
	switch {
	case round <= 1:
		return tierEasy
	case round == 2:
		return tierMedium
	default:
		return tierHard
	}
}

var builtin = map[int]map[Category][]string{
	tierEasy: {
		CategoryObjects: {"chair", "clock", "book", "cup", "key", "lamp", "shoe", "ball"},
		CategoryAnimals: {"cat", "dog", "fish", "bird", "cow", "duck", "pig", "bee"},
		CategoryActions: {"run", "jump", "swim", "sleep", "eat", "sing", "wave", "clap"},
	},
	tierMedium: {
		CategoryObjects: {"umbrella", "ladder", "telescope", "backpack", "compass", "anchor", "guitar", "kettle"},
		CategoryAnimals: {"penguin", "dolphin", "giraffe", "octopus", "hamster", "raccoon", "peacock", "lobster"},
		CategoryActions: {"juggling", "fishing", "climbing", "painting", "sneezing", "whistling", "digging", "ice skating"},
	},
	tierHard: {
		CategoryObjects: {"stethoscope", "metronome", "periscope", "candelabra", "tourniquet", "gramophone", "sundial", "abacus"},
		CategoryAnimals: {"platypus", "axolotl", "chameleon", "armadillo", "mongoose", "tardigrade", "narwhal", "pangolin"},
		CategoryActions: {"eavesdropping", "tightrope walking", "arm wrestling", "sleepwalking", "beekeeping", "hitchhiking", "yodeling", "fencing"},
	},
}

// StaticPool is the in-memory Provider used in production. It is safe for
// concurrent use; the word lists themselves are immutable.
type StaticPool struct {
	mu    sync.Mutex
	rand  *rand.Rand
	tiers map[int]map[Category][]string
}

func NewStaticPool(seed int64) *StaticPool {
	return &StaticPool{
		rand:  rand.New(rand.NewSource(seed)),
		tiers: builtin,
	}
}

// Candidates returns up to count distinct words for the round's difficulty
// tier. At least one word per category is included whenever the tier still
// has an unused word in that category. Excluded words are only reused once
// the tier has nothing fresh left.
func (p *StaticPool) Candidates(round int, count int, exclude []string) []Word {
	p.mu.Lock()
	defer p.mu.Unlock()

	excluded := make(map[string]bool, len(exclude))
	for _, w := range exclude {
		excluded[strings.ToLower(w)] = true
	}

	tier := p.tiers[tierForRound(round)]
	picked := make([]Word, 0, count)
	seen := make(map[string]bool, count)

	// One pass per category first, so all three are represented when the
	// pool allows it.
	for _, cat := range Categories {
		if len(picked) >= count {
			break
		}
		if w, ok := p.pick(tier[cat], excluded, seen); ok {
			picked = append(picked, Word{Token: w, Category: cat})
		}
	}

	// Fill the remainder from random categories.
	for attempts := 0; len(picked) < count && attempts < 64; attempts++ {
		cat := Categories[p.rand.Intn(len(Categories))]
		if w, ok := p.pick(tier[cat], excluded, seen); ok {
			picked = append(picked, Word{Token: w, Category: cat})
		}
	}

	// Pool exhausted: fall back to already-used words rather than
	// returning a short set.
	if len(picked) < count {
		for _, cat := range Categories {
			for _, w := range tier[cat] {
				if len(picked) >= count {
					break
				}
				if !seen[strings.ToLower(w)] {
					seen[strings.ToLower(w)] = true
					picked = append(picked, Word{Token: w, Category: cat})
				}
			}
		}
	}

	return picked
}

// pick draws one random fresh word from list, preferring words outside the
// exclusion set.
func (p *StaticPool) pick(list []string, excluded, seen map[string]bool) (string, bool) {
	fresh := make([]string, 0, len(list))
	for _, w := range list {
		k := strings.ToLower(w)
		if !excluded[k] && !seen[k] {
			fresh = append(fresh, w)
		}
	}
	if len(fresh) == 0 {
		return "", false
	}
	w := fresh[p.rand.Intn(len(fresh))]
	seen[strings.ToLower(w)] = true
	return w, true
}
