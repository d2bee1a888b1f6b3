package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTeam(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Collingwood", "Collingwood"},
		{"Magpies", "Collingwood"},
		{"Pies", "Collingwood"},
		{"pies", "Collingwood"},
		{"  Pies  ", "Collingwood"},
		{"Greater Western Sydney", "GWS"},
		{"Footscray", "Western Bulldogs"},
		{"Freo", "Fremantle"},
		{"Roos", "North Melbourne"},
		{"Gold Coast Suns", "Gold Coast"},
		{"Unknown FC", "Unknown FC"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTeam(tt.input))
		})
	}
}

func TestNormalizeTeam_AllAliasesRoundTrip(t *testing.T) {
	for canonical, aliases := range teamAliases {
		for _, alias := range aliases {
			assert.Equal(t, canonical, NormalizeTeam(alias), "alias %q", alias)
		}
	}
}
