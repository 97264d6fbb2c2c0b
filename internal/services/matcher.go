package services

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/johnper68/whatsapp-order-bot/internal/models"
	"github.com/johnper68/whatsapp-order-bot/internal/storage"
	"github.com/johnper68/whatsapp-order-bot/internal/util"
)

// spanishStopWords are dropped before scoring FAQ questions.
var spanishStopWords = map[string]struct{}{
	"a": {}, "al": {}, "como": {}, "con": {}, "cual": {}, "cuales": {},
	"cuando": {}, "de": {}, "del": {}, "donde": {}, "el": {}, "ella": {},
	"ellos": {}, "en": {}, "es": {}, "esta": {}, "este": {}, "hay": {},
	"la": {}, "las": {}, "lo": {}, "los": {}, "me": {}, "mi": {}, "no": {},
	"o": {}, "para": {}, "pero": {}, "por": {}, "que": {}, "quien": {},
	"se": {}, "ser": {}, "si": {}, "sin": {}, "sobre": {}, "son": {},
	"su": {}, "sus": {}, "te": {}, "tiene": {}, "tienen": {}, "tu": {},
	"un": {}, "una": {}, "unas": {}, "unos": {}, "y": {}, "yo": {},
}

// ProductMatcher finds catalog products by fuzzy name containment.
type ProductMatcher struct {
	store storage.Store
}

// NewProductMatcher creates a product matcher over the given backend.
func NewProductMatcher(store storage.Store) *ProductMatcher {
	return &ProductMatcher{store: store}
}

// FindProducts fetches the full product table and returns every product
// whose normalized name contains the normalized query as a substring.
// Backend failures are logged and yield an empty result.
func (m *ProductMatcher) FindProducts(ctx context.Context, query string) []models.Product {
	q := util.Normalize(query)
	if q == "" {
		return nil
	}

	products, err := m.store.Products(ctx)
	if err != nil {
		log.Printf("❌ Product lookup failed: %v", err)
		return nil
	}

	var matches []models.Product
	for _, product := range products {
		if strings.Contains(util.Normalize(product.Name), q) {
			matches = append(matches, product)
		}
	}
	return matches
}

// FaqMatcher scores FAQ rows by keyword overlap with the user's question.
type FaqMatcher struct {
	store storage.Store
}

// NewFaqMatcher creates a FAQ matcher over the given backend.
func NewFaqMatcher(store storage.Store) *FaqMatcher {
	return &FaqMatcher{store: store}
}

// FindAnswer returns the answer of the FAQ row sharing the most keywords
// with the question. Ties keep the first row in backend order; a zero
// score everywhere, an unusable question or a backend failure return no
// answer. This is a best-effort keyword heuristic, not ranked search.
func (m *FaqMatcher) FindAnswer(ctx context.Context, question string) (string, bool) {
	queryTokens := questionKeywords(question)
	if len(queryTokens) == 0 {
		return "", false
	}

	entries, err := m.store.FaqEntries(ctx)
	if err != nil {
		log.Printf("❌ FAQ lookup failed: %v", err)
		return "", false
	}

	bestScore := 0
	bestAnswer := ""
	for _, entry := range entries {
		rowTokens := make(map[string]struct{})
		for _, token := range util.Tokenize(entry.Question) {
			if _, stop := spanishStopWords[token]; stop {
				continue
			}
			rowTokens[token] = struct{}{}
		}

		score := 0
		for _, token := range queryTokens {
			if _, ok := rowTokens[token]; ok {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestAnswer = entry.Answer
		}
	}

	if bestScore == 0 {
		return "", false
	}
	return bestAnswer, true
}

// questionKeywords tokenizes the user's question, dropping stop words and
// tokens of two characters or fewer.
func questionKeywords(question string) []string {
	var keywords []string
	for _, token := range util.Tokenize(question) {
		if _, stop := spanishStopWords[token]; stop {
			continue
		}
		if utf8.RuneCountInString(token) <= 2 {
			continue
		}
		keywords = append(keywords, token)
	}
	return keywords
}
