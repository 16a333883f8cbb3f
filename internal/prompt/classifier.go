package prompt

import (
	"strings"

	"github.com/colorkit/coloring-book-api/internal/domain"
)

// taxonomy maps each category to its trigger keywords. Order matters: the
// first category wins a tie on match count.
var taxonomy = []struct {
	category domain.Category
	keywords []string
}{
	{domain.CategoryAnimals, []string{
		"animal", "butterfly", "cat", "kitten", "dog", "puppy", "bird", "owl",
		"fish", "horse", "pony", "lion", "tiger", "elephant", "rabbit", "bunny",
		"bear", "fox", "wolf", "dinosaur", "whale", "dolphin", "turtle", "frog",
		"bee", "ladybug", "penguin", "monkey", "giraffe", "zebra",
	}},
	{domain.CategoryFantasy, []string{
		"fairy", "dragon", "unicorn", "castle", "wizard", "witch", "mermaid",
		"magic", "magical", "princess", "prince", "knight", "elf", "gnome",
		"troll", "pegasus", "phoenix", "enchanted",
	}},
	{domain.CategoryNature, []string{
		"flower", "sunflower", "rose", "tree", "forest", "garden", "mountain",
		"ocean", "beach", "river", "leaf", "leaves", "plant", "mushroom",
		"rainbow", "cloud", "landscape", "meadow", "waterfall",
	}},
	{domain.CategoryVehicles, []string{
		"car", "truck", "train", "plane", "airplane", "rocket", "spaceship",
		"boat", "ship", "tractor", "motorcycle", "bus", "helicopter",
		"submarine", "bicycle",
	}},
	{domain.CategoryMandalas, []string{
		"mandala", "geometric", "pattern", "patterns", "symmetrical",
		"symmetry", "kaleidoscope", "abstract", "zentangle", "spiral",
	}},
}

// Classify maps a raw prompt to a taxonomy category using word-level keyword
// matching. Returns the category and the keywords that matched.
func Classify(raw string) (domain.Category, []string) {
	words := tokenize(raw)

	best := domain.CategoryOther
	bestCount := 0
	var bestMatches []string

	for _, entry := range taxonomy {
		var matches []string
		for _, kw := range entry.keywords {
			if _, ok := words[kw]; ok {
				matches = append(matches, kw)
			}
		}
		if len(matches) > bestCount {
			best = entry.category
			bestCount = len(matches)
			bestMatches = matches
		}
	}

	return best, bestMatches
}

// tokenize lower-cases the prompt and splits it into words, folding trivial
// plurals onto their singular form so "butterflies" still hits "butterfly".
func tokenize(s string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		words[w] = struct{}{}
		if strings.HasSuffix(w, "ies") && len(w) > 3 {
			words[w[:len(w)-3]+"y"] = struct{}{}
		} else if strings.HasSuffix(w, "es") && len(w) > 2 {
			words[w[:len(w)-2]] = struct{}{}
		}
		if strings.HasSuffix(w, "s") && len(w) > 1 {
			words[w[:len(w)-1]] = struct{}{}
		}
	}
	return words
}
