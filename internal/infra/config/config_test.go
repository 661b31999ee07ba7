package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFunctionRoles(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{"vacio", "", map[string]string{}},
		{"solo espacios", "   ", map[string]string{}},
		{
			"dos entradas",
			"caster=123456789012345678,editor=876543210987654321",
			map[string]string{
				"caster": "123456789012345678",
				"editor": "876543210987654321",
			},
		},
		{
			"espacios alrededor",
			" caster = 123456789012345678 , editor=876543210987654321",
			map[string]string{
				"caster": "123456789012345678",
				"editor": "876543210987654321",
			},
		},
		{
			"entrada sin igual se descarta",
			"caster,editor=876543210987654321",
			map[string]string{"editor": "876543210987654321"},
		},
		{
			"id que no es snowflake se descarta",
			"caster=abc,editor=876543210987654321",
			map[string]string{"editor": "876543210987654321"},
		},
		{
			"clave duplicada gana la primera",
			"caster=123456789012345678,caster=876543210987654321",
			map[string]string{"caster": "123456789012345678"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseFunctionRoles(tc.raw))
		})
	}
}

func TestFunctionKeysSorted(t *testing.T) {
	cfg := Config{StreamerFunctionRoles: map[string]string{
		"editor": "1", "caster": "2", "designer": "3",
	}}
	assert.Equal(t, []string{"caster", "designer", "editor"}, cfg.FunctionKeys())
}
