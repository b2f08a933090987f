package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
)

func TestParseTokenKind(t *testing.T) {
	tests := []struct {
		keyword string
		want    domain.TokenKind
		ok      bool
	}{
		{"Scene", domain.KindScene, true},
		{"scene", domain.KindScene, true},
		{"SCENE", domain.KindScene, true},
		{"Component", domain.KindComponent, true},
		{"Function", domain.KindFunction, true},
		{"Widget", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			got, ok := domain.ParseTokenKind(tt.keyword)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToken_Path(t *testing.T) {
	scene := domain.NewToken(domain.KindScene, "Checkout", nil, 0, "the checkout flow")
	component := domain.NewToken(domain.KindComponent, "PaymentForm", scene, 1, "a payment form")
	function := domain.NewToken(domain.KindFunction, "submit", component, 2, "submits the form")

	assert.Equal(t, "scene:Checkout", scene.PathString())
	assert.Equal(t, "scene:Checkout/component:PaymentForm", component.PathString())
	assert.Equal(t, "scene:Checkout/component:PaymentForm/function:submit", function.PathString())

	assert.Equal(t, component.Path(), domain.NewInternedString(component.PathString()))
	assert.Equal(t, "PaymentForm", function.ParentName())
	assert.Equal(t, "", scene.ParentName())
}

func TestToken_AddRef(t *testing.T) {
	token := domain.NewToken(domain.KindFunction, "submit", nil, 0, "x")
	token.AddRef("Validator")
	token.AddRef("Formatter")
	token.AddRef("Validator")

	assert.Equal(t, []string{"Validator", "Formatter"}, token.Refs)
}

func TestGeneratedFunctionName(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		a := domain.GeneratedFunctionName("PaymentForm", 3, "validate the card number")
		b := domain.GeneratedFunctionName("PaymentForm", 3, "validate the card number")
		assert.Equal(t, a, b)
	})

	t.Run("Prefix and length", func(t *testing.T) {
		name := domain.GeneratedFunctionName("PaymentForm", 3, "validate the card number")
		require.True(t, strings.HasPrefix(name, domain.GeneratedNamePrefix))
		assert.Len(t, name, len(domain.GeneratedNamePrefix)+8)
	})

	t.Run("Changes with position", func(t *testing.T) {
		a := domain.GeneratedFunctionName("PaymentForm", 3, "validate the card number")
		b := domain.GeneratedFunctionName("PaymentForm", 4, "validate the card number")
		assert.NotEqual(t, a, b)
	})

	t.Run("Changes with content", func(t *testing.T) {
		a := domain.GeneratedFunctionName("PaymentForm", 3, "validate the card number")
		b := domain.GeneratedFunctionName("PaymentForm", 3, "validate the expiry date")
		assert.NotEqual(t, a, b)
	})
}
