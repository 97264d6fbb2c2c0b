package services

import (
	"context"
	"testing"

	"github.com/johnper68/whatsapp-order-bot/internal/models"
	"github.com/johnper68/whatsapp-order-bot/internal/storage"
)

func newCatalogStore() *storage.MemoryStore {
	store := storage.NewMemoryStore()
	store.SeedProducts([]models.Product{
		{Name: "Jabón Azul", UnitValue: 5000},
		{Name: "Jabón Rey", UnitValue: 4500},
		{Name: "Café Molido 500g", UnitValue: 12000},
	})
	store.SeedFaq([]models.FaqEntry{
		{Question: "¿Cuánto cuesta el envío?", Answer: "El envío cuesta $5000 dentro de la ciudad."},
		{Question: "¿Cuáles son los medios de pago?", Answer: "Aceptamos efectivo contra entrega y transferencia."},
		{Question: "¿Dónde están ubicados?", Answer: "Estamos en la Calle 10 #20-30."},
	})
	return store
}

func TestFindProductsNormalizedSubstring(t *testing.T) {
	matcher := NewProductMatcher(newCatalogStore())
	ctx := context.Background()

	// Accent-less query matches accented names, case-insensitive.
	matches := matcher.FindProducts(ctx, "jabon")
	if len(matches) != 2 {
		t.Fatalf("FindProducts(jabon) returned %d matches, want 2", len(matches))
	}
	if matches[0].Name != "Jabón Azul" || matches[1].Name != "Jabón Rey" {
		t.Errorf("unexpected match order: %v", matches)
	}

	matches = matcher.FindProducts(ctx, "JABÓN azul")
	if len(matches) != 1 || matches[0].UnitValue != 5000 {
		t.Errorf("FindProducts(JABÓN azul) = %v, want single Jabón Azul", matches)
	}

	if matches := matcher.FindProducts(ctx, "pan"); len(matches) != 0 {
		t.Errorf("FindProducts(pan) = %v, want none", matches)
	}

	// A blank query must not match the whole catalog.
	if matches := matcher.FindProducts(ctx, "   "); len(matches) != 0 {
		t.Errorf("FindProducts(blank) = %v, want none", matches)
	}
}

func TestFindAnswerKeywordOverlap(t *testing.T) {
	matcher := NewFaqMatcher(newCatalogStore())
	ctx := context.Background()

	answer, found := matcher.FindAnswer(ctx, "cuanto cuesta el envio")
	if !found {
		t.Fatal("expected an answer for the shipping question")
	}
	if answer != "El envío cuesta $5000 dentro de la ciudad." {
		t.Errorf("unexpected answer: %q", answer)
	}

	answer, found = matcher.FindAnswer(ctx, "¿qué medios de pago aceptan?")
	if !found || answer != "Aceptamos efectivo contra entrega y transferencia." {
		t.Errorf("payment question: found=%v answer=%q", found, answer)
	}
}

func TestFindAnswerNoUsableTokens(t *testing.T) {
	matcher := NewFaqMatcher(newCatalogStore())
	ctx := context.Background()

	// Everything is a stop word or too short once filtered.
	if _, found := matcher.FindAnswer(ctx, "el de la y un"); found {
		t.Error("expected no answer for stop-word-only question")
	}
	if _, found := matcher.FindAnswer(ctx, "ab cd ef"); found {
		t.Error("expected no answer for short-token question")
	}
	if _, found := matcher.FindAnswer(ctx, ""); found {
		t.Error("expected no answer for empty question")
	}
}

func TestFindAnswerZeroOverlap(t *testing.T) {
	matcher := NewFaqMatcher(newCatalogStore())

	if _, found := matcher.FindAnswer(context.Background(), "horario atencion domingos"); found {
		t.Error("expected no answer when no keyword matches any row")
	}
}

func TestFindAnswerTieKeepsFirstRow(t *testing.T) {
	store := storage.NewMemoryStore()
	store.SeedFaq([]models.FaqEntry{
		{Question: "envío nacional", Answer: "primera"},
		{Question: "envío internacional", Answer: "segunda"},
	})
	matcher := NewFaqMatcher(store)

	answer, found := matcher.FindAnswer(context.Background(), "envio")
	if !found || answer != "primera" {
		t.Errorf("tie resolution: found=%v answer=%q, want first row", found, answer)
	}
}
