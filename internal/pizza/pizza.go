// Package pizza assembles pizzas step by step through a Builder.
package pizza

import (
	"fmt"
	"strings"
)

// Pizza is a finished order. The zero value is not meaningful; use Default.
type Pizza struct {
	Size             string `json:"size"`
	Cheese           string `json:"cheese"`
	TomatoSauce      string `json:"tomatoSauce"`
	MainIngredient   string `json:"mainIngredient"`
	SecondIngredient string `json:"secondIngredient"`
}

// Default returns a pizza nobody customised yet.
func Default() Pizza {
	return Pizza{
		Size:             "m",
		Cheese:           "normal",
		TomatoSauce:      "normal",
		MainIngredient:   "none",
		SecondIngredient: "none",
	}
}

// Info renders the pizza as a multi-line description.
func (p Pizza) Info() string {
	var b strings.Builder
	b.WriteString("Pizza {\n")
	fmt.Fprintf(&b, "    size: %s\n", p.Size)
	fmt.Fprintf(&b, "    cheese: %s\n", p.Cheese)
	fmt.Fprintf(&b, "    tomato Sauce: %s\n", p.TomatoSauce)
	fmt.Fprintf(&b, "    Main Ingredient: %s\n", p.MainIngredient)
	fmt.Fprintf(&b, "    Second Ingredient: %s\n", p.SecondIngredient)
	b.WriteString("}")
	return b.String()
}
