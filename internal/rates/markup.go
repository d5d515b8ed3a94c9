package rates

// Tier represents a subscription tier of the platform
type Tier string

const (
	TierStarter  Tier = "starter"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// Markup represents the platform margin added on top of the
// processor's base rate
type Markup struct {
	Percent float64
	Fixed   int // in minor currency units
}

// defaultMarkups is the currency-independent markup per tier
var defaultMarkups = map[Tier]Markup{
	TierStarter:  {Percent: 1.0, Fixed: 0},
	TierStandard: {Percent: 0.6, Fixed: 0},
	TierPremium:  {Percent: 0.3, Fixed: 0},
}

// regionalMarkups overrides the default markup for currencies whose
// processor base rates differ materially from the US baseline. A flat
// global markup on top of a ~1.4% EU base and a ~2.7% US base would
// leave end-customer rates inconsistent across regions.
var regionalMarkups = map[string]map[Tier]Markup{
	"EUR": {
		TierStarter:  {Percent: 1.3, Fixed: 0},
		TierStandard: {Percent: 0.9, Fixed: 0},
		TierPremium:  {Percent: 0.5, Fixed: 0},
	},
	"GBP": {
		TierStarter:  {Percent: 1.3, Fixed: 0},
		TierStandard: {Percent: 0.9, Fixed: 0},
		TierPremium:  {Percent: 0.5, Fixed: 0},
	},
	"JPY": {
		TierStarter:  {Percent: 0.7, Fixed: 0},
		TierStandard: {Percent: 0.45, Fixed: 0},
		TierPremium:  {Percent: 0.25, Fixed: 0},
	},
}

// PlatformMarkup returns the markup for the given tier and currency.
// Currencies with a registered regional override use it; anything else
// falls back to the currency-independent default. Unknown tiers get
// the starter markup so pricing display never breaks.
func PlatformMarkup(tier Tier, currency string) Markup {
	if regional, ok := regionalMarkups[currency]; ok {
		if markup, ok := regional[tier]; ok {
			return markup
		}
	}

	if markup, ok := defaultMarkups[tier]; ok {
		return markup
	}
	return defaultMarkups[TierStarter]
}

// EffectiveRate returns the rate a merchant on the given tier pays for
// the given base rate in the given currency
func EffectiveRate(base Rate, tier Tier, currency string) Rate {
	return base.Add(PlatformMarkup(tier, currency))
}
