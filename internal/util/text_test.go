package util

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Jabón", "jabon"},
		{"  MÁS Café  ", "mas cafe"},
		{"azucar", "azucar"},
		{"PEDIDO", "pedido"},
		{"¿Cuánto cuesta el envío?", "¿cuanto cuesta el envio?"},
		{"", ""},
	}

	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("¿Cuánto cuesta el envío a Bogotá?")
	want := []string{"cuanto", "cuesta", "el", "envio", "a", "bogota"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}

	if got := Tokenize("   "); len(got) != 0 {
		t.Errorf("Tokenize of blanks = %v, want empty", got)
	}
}
