package extraction

import (
	"strings"

	"github.com/fantasyedge/newsscout/pkg/mentions"
)

// sourceTiers maps publisher names and domains to their trust tier.
// Official club and league properties rank above the mainstream press;
// anything unlisted is "other".
var sourceTiers = map[string]mentions.SourceTier{
	"afl.com.au":             mentions.SourceTierOfficial,
	"AFL Official":           mentions.SourceTierOfficial,
	"adelaidefc.com.au":      mentions.SourceTierOfficial,
	"Adelaide Crows":         mentions.SourceTierOfficial,
	"lions.com.au":           mentions.SourceTierOfficial,
	"Brisbane Lions":         mentions.SourceTierOfficial,
	"carltonfc.com.au":       mentions.SourceTierOfficial,
	"Carlton":                mentions.SourceTierOfficial,
	"collingwoodfc.com.au":   mentions.SourceTierOfficial,
	"Collingwood":            mentions.SourceTierOfficial,
	"essendonfc.com.au":      mentions.SourceTierOfficial,
	"Essendon":               mentions.SourceTierOfficial,
	"fremantlefc.com.au":     mentions.SourceTierOfficial,
	"Fremantle":              mentions.SourceTierOfficial,
	"geelongcats.com.au":     mentions.SourceTierOfficial,
	"Geelong":                mentions.SourceTierOfficial,
	"goldcoastfc.com.au":     mentions.SourceTierOfficial,
	"Gold Coast":             mentions.SourceTierOfficial,
	"gwsgiants.com.au":       mentions.SourceTierOfficial,
	"GWS Giants":             mentions.SourceTierOfficial,
	"hawthornfc.com.au":      mentions.SourceTierOfficial,
	"Hawthorn":               mentions.SourceTierOfficial,
	"melbournefc.com.au":     mentions.SourceTierOfficial,
	"Melbourne":              mentions.SourceTierOfficial,
	"nmfc.com.au":            mentions.SourceTierOfficial,
	"North Melbourne":        mentions.SourceTierOfficial,
	"portadelaidefc.com.au":  mentions.SourceTierOfficial,
	"Port Adelaide":          mentions.SourceTierOfficial,
	"richmondfc.com.au":      mentions.SourceTierOfficial,
	"Richmond":               mentions.SourceTierOfficial,
	"saints.com.au":          mentions.SourceTierOfficial,
	"St Kilda":               mentions.SourceTierOfficial,
	"sydneyswans.com.au":     mentions.SourceTierOfficial,
	"Sydney Swans":           mentions.SourceTierOfficial,
	"westcoasteagles.com.au": mentions.SourceTierOfficial,
	"West Coast":             mentions.SourceTierOfficial,
	"westernbulldogs.com.au": mentions.SourceTierOfficial,
	"Western Bulldogs":       mentions.SourceTierOfficial,

	"The Age":               mentions.SourceTierMajor,
	"theage.com.au":         mentions.SourceTierMajor,
	"Sydney Morning Herald": mentions.SourceTierMajor,
	"smh.com.au":            mentions.SourceTierMajor,
	"ABC News":              mentions.SourceTierMajor,
	"abc.net.au":            mentions.SourceTierMajor,
	"Fox Sports":            mentions.SourceTierMajor,
	"foxsports.com.au":      mentions.SourceTierMajor,
	"Herald Sun":            mentions.SourceTierMajor,
	"heraldsun.com.au":      mentions.SourceTierMajor,
	"7NEWS":                 mentions.SourceTierMajor,
	"7news.com.au":          mentions.SourceTierMajor,
	"news.com.au":           mentions.SourceTierMajor,
	"ESPN":                  mentions.SourceTierMajor,
	"espn.com.au":           mentions.SourceTierMajor,
	"SEN":                   mentions.SourceTierMajor,
	"sen.com.au":            mentions.SourceTierMajor,
}

// SourceTierFor classifies a publisher by its declared name, falling
// back to matching a known domain anywhere in the URL. The second return
// reports whether the source is an official league or club property.
func SourceTierFor(sourceName, url string) (mentions.SourceTier, bool) {
	if tier, ok := sourceTiers[sourceName]; ok {
		return tier, tier == mentions.SourceTierOfficial
	}
	for domain, tier := range sourceTiers {
		if strings.Contains(url, domain) {
			return tier, tier == mentions.SourceTierOfficial
		}
	}
	return mentions.SourceTierOther, false
}
