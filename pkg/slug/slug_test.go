package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"product name", "Walnut Desk Organizer", "walnut-desk-organizer"},
		{"lower words", "foo bar baz", "foo-bar-baz"},
		{"single word", "Simple", "simple"},
		{"all caps", "ALL UPPER CASE", "all-upper-case"},

		{"acute accent", "Café Table", "cafe-table"},
		{"grave and circumflex", "Crème Brûlée Torch", "creme-brulee-torch"},
		{"tilde n", "Jalapeño Planter", "jalapeno-planter"},
		{"umlaut", "Über Lamp", "uber-lamp"},
		{"eszett", "Straße", "strasse"},

		{"punctuation runs", "Hello!!! World???", "hello-world"},
		{"symbols between words", "foo@bar#baz", "foo-bar-baz"},
		{"currency", "price: $100", "price-100"},
		{"ampersand", "one & two", "one-two"},

		{"surrounding spaces", "   hello world   ", "hello-world"},
		{"interior space run", "hello   world", "hello-world"},
		{"tabs", "hello\t\tworld", "hello-world"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.input))
		})
	}
}

func TestGenerate_DegenerateInputs(t *testing.T) {
	assert.Equal(t, "", Generate(""))
	assert.Equal(t, "", Generate("   "))
	assert.Equal(t, "", Generate("!!!"))
	assert.Equal(t, "a", Generate("a"))
	assert.Equal(t, "123", Generate("123"))
}

func TestGenerate_CollapsesHyphenRuns(t *testing.T) {
	assert.Equal(t, "a-b", Generate("a---b"))
	assert.Equal(t, "a-b", Generate("a - - b"))
}

func TestGenerate_TrimsEdgeHyphens(t *testing.T) {
	assert.Equal(t, "hello", Generate("-hello-"))
	assert.Equal(t, "hello", Generate("!hello!"))
}
