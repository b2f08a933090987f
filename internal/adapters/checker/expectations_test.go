package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveExpectations(t *testing.T) {
	tests := []struct {
		name      string
		narrative string
		classes   []string
		methods   []string
	}{
		{
			name:      "Component and method",
			narrative: "Create a component named Cart with a method addItem.",
			classes:   []string{"Cart"},
			methods:   []string{"addItem"},
		},
		{
			name:      "Case insensitive",
			narrative: "A Component Named CheckoutForm validating input.",
			classes:   []string{"CheckoutForm"},
		},
		{
			name:      "Multiple methods",
			narrative: "Expose a method addItem and a method removeItem.",
			methods:   []string{"addItem", "removeItem"},
		},
		{
			name:      "No structural phrases",
			narrative: "Show the user a friendly greeting.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := deriveExpectations(tt.narrative)
			assert.Equal(t, tt.classes, exp.classes)
			assert.Equal(t, tt.methods, exp.methods)
		})
	}
}

func TestExpectationsCheck(t *testing.T) {
	exp := expectations{classes: []string{"Cart"}, methods: []string{"addItem"}}

	t.Run("All present", func(t *testing.T) {
		code := "export class Cart {\n  addItem(item: Item): void {}\n}"
		assert.Empty(t, exp.check(code))
	})

	t.Run("Class missing", func(t *testing.T) {
		code := "export class Basket {\n  addItem(item: Item): void {}\n}"
		diags := exp.check(code)
		require.Len(t, diags, 1)
		assert.Equal(t, "Expected class 'Cart' not found in code", diags[0].Message)
	})

	t.Run("Method missing", func(t *testing.T) {
		code := "export class Cart {\n  clear(): void {}\n}"
		diags := exp.check(code)
		require.Len(t, diags, 1)
		assert.Equal(t, "Expected method 'addItem' not found in code", diags[0].Message)
	})

	t.Run("Method name must match exactly", func(t *testing.T) {
		code := "export class Cart {\n  readdItems(): void {}\n}"
		diags := exp.check(code)
		require.Len(t, diags, 1)
		assert.Equal(t, "Expected method 'addItem' not found in code", diags[0].Message)
	})
}
