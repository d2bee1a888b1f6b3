package roster

import "strings"

// teamAliases maps each canonical franchise name to the spellings seen in
// article text and extraction output.
var teamAliases = map[string][]string{
	"Adelaide":         {"Adelaide", "Adelaide Crows", "Crows"},
	"Brisbane":         {"Brisbane", "Brisbane Lions", "Lions"},
	"Carlton":          {"Carlton", "Carlton Blues", "Blues"},
	"Collingwood":      {"Collingwood", "Collingwood Magpies", "Magpies", "Pies"},
	"Essendon":         {"Essendon", "Essendon Bombers", "Bombers", "Dons"},
	"Fremantle":        {"Fremantle", "Fremantle Dockers", "Dockers", "Freo"},
	"Geelong":          {"Geelong", "Geelong Cats", "Cats"},
	"Gold Coast":       {"Gold Coast", "Gold Coast Suns", "Suns"},
	"GWS":              {"GWS", "GWS Giants", "Greater Western Sydney", "Giants"},
	"Hawthorn":         {"Hawthorn", "Hawthorn Hawks", "Hawks"},
	"Melbourne":        {"Melbourne", "Melbourne Demons", "Demons"},
	"North Melbourne":  {"North Melbourne", "North Melbourne Kangaroos", "Kangaroos", "Roos", "North"},
	"Port Adelaide":    {"Port Adelaide", "Port Adelaide Power", "Power", "Port"},
	"Richmond":         {"Richmond", "Richmond Tigers", "Tigers"},
	"St Kilda":         {"St Kilda", "St Kilda Saints", "Saints"},
	"Sydney":           {"Sydney", "Sydney Swans", "Swans"},
	"West Coast":       {"West Coast", "West Coast Eagles", "Eagles"},
	"Western Bulldogs": {"Western Bulldogs", "Bulldogs", "Footscray", "Dogs"},
}

// teamNormalize is the reverse lookup, lowercased alias to canonical name.
var teamNormalize = func() map[string]string {
	m := make(map[string]string)
	for canonical, aliases := range teamAliases {
		for _, alias := range aliases {
			m[strings.ToLower(alias)] = canonical
		}
	}
	return m
}()

// NormalizeTeam maps a club nickname or short name to the canonical
// franchise name, so "Pies", "Magpies" and "Collingwood" are treated
// identically. Unknown names pass through unchanged; empty input stays
// empty.
func NormalizeTeam(team string) string {
	if team == "" {
		return ""
	}
	if canonical, ok := teamNormalize[strings.ToLower(strings.TrimSpace(team))]; ok {
		return canonical
	}
	return team
}
