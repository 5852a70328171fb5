package pizza

import (
	"strings"

	"golang.org/x/text/cases"
)

// choice maps folded aliases to a canonical label.
type choice struct {
	labels   map[string]string
	fallback string // empty keeps the raw input
}

func (c choice) resolve(raw string) string {
	if label, ok := c.labels[fold(raw)]; ok {
		return label
	}
	if c.fallback == "" {
		return raw
	}
	return c.fallback
}

func aliases(label string, names ...string) map[string]string {
	m := make(map[string]string, len(names))
	for _, n := range names {
		m[n] = label
	}
	return m
}

func merge(ms ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range ms {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// fold lower-cases s with Unicode case folding. Casers are stateful, so
// each call gets its own.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

var (
	sizes = choice{
		labels: merge(
			aliases("Grande", "l", "large", "grande"),
			aliases("Mediana", "m", "medium", "mediana"),
			aliases("Pequeña", "s", "small", "chica", "pequeña"),
		),
		fallback: "Mediana",
	}
	cheeses = choice{
		labels: merge(
			aliases("Sin queso", "no", "none", "sin", "sin queso"),
			aliases("Extra queso", "extra", "doble", "mucho"),
			aliases("Queso normal", "normal", "regular"),
		),
		fallback: "Queso normal",
	}
	sauces = choice{
		labels: merge(
			aliases("Salsa BBQ", "bbq", "barbacoa"),
			aliases("Salsa Picante", "spicy", "picante", "mexicana"),
			aliases("Sin salsa", "no", "sin", "none"),
		),
		fallback: "Salsa de Tomate Clásica",
	}
	mains = choice{
		labels: merge(
			aliases("Pepperoni", "pepperoni", "peperoni"),
			aliases("Jamón", "ham", "jamon", "jamón"),
			aliases("Vegetales Mixtos", "veggie", "vegetales", "vegetariana"),
			aliases("Pollo", "pollo", "chicken"),
		),
		fallback: "Solo Queso",
	}
	seconds = choice{
		labels: merge(
			aliases("Champiñones", "mushrooms", "champiñones", "hongos"),
			aliases("Piña", "piña", "pineapple"),
			aliases("Cebolla", "onion", "cebolla"),
			aliases("Ninguno", "no", "none", "ninguno"),
		),
	}
)

// Builder configures a Pizza one option at a time. Setters accept English or
// Spanish names in any case and return the builder for chaining.
type Builder struct {
	pizza Pizza
}

func NewBuilder() *Builder {
	return &Builder{pizza: Default()}
}

func (b *Builder) Size(s string) *Builder {
	b.pizza.Size = sizes.resolve(s)
	return b
}

func (b *Builder) Cheese(s string) *Builder {
	b.pizza.Cheese = cheeses.resolve(s)
	return b
}

func (b *Builder) TomatoSauce(s string) *Builder {
	b.pizza.TomatoSauce = sauces.resolve(s)
	return b
}

func (b *Builder) MainIngredient(s string) *Builder {
	b.pizza.MainIngredient = mains.resolve(s)
	return b
}

// SecondIngredient keeps unrecognised input verbatim.
func (b *Builder) SecondIngredient(s string) *Builder {
	b.pizza.SecondIngredient = seconds.resolve(s)
	return b
}

// Build returns a copy; later setter calls do not affect it.
func (b *Builder) Build() Pizza {
	return b.pizza
}
