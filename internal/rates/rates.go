// Package rates composes payment-processor base rates with platform
// markups per subscription tier and currency. The table is static
// configuration: lookups always degrade to the default country rather
// than fail, so pricing pages never break on an unknown country code.
package rates

// Rate represents a transaction rate: a percentage of the amount plus
// a fixed fee in the currency's minor units
type Rate struct {
	Percent float64
	Fixed   int // in minor currency units
}

// ContactlessMode distinguishes how a country prices contactless
// ("tap to pay") authorization relative to its base in-person rate
type ContactlessMode string

const (
	// ContactlessSurcharge adds a fixed fee on top of the in-person rate
	ContactlessSurcharge ContactlessMode = "surcharge"
	// ContactlessSeparate uses a wholly separate rate
	ContactlessSeparate ContactlessMode = "separate_rate"
)

// ContactlessPolicy represents a country's contactless pricing as a
// tagged variant. New countries must declare which mode they use.
type ContactlessPolicy struct {
	Mode      ContactlessMode
	Surcharge int  // in minor units, used for ContactlessSurcharge
	Rate      Rate // used for ContactlessSeparate
}

// CountryRate represents the processor base rates for one country
type CountryRate struct {
	Code        string // ISO 3166-1 alpha-2
	Currency    string // ISO 4217
	InPerson    Rate   // tap to pay / card present
	Manual      Rate   // manually entered or online
	Contactless ContactlessPolicy
}

// DefaultCountry is the fallback for unrecognized country codes
const DefaultCountry = "US"

// countryRates holds exactly one entry per supported country code
var countryRates = map[string]CountryRate{
	"US": {
		Code:     "US",
		Currency: "USD",
		InPerson: Rate{Percent: 2.7, Fixed: 10},
		Manual:   Rate{Percent: 3.5, Fixed: 15},
		Contactless: ContactlessPolicy{
			Mode:      ContactlessSurcharge,
			Surcharge: 5,
		},
	},
	"CA": {
		Code:     "CA",
		Currency: "CAD",
		InPerson: Rate{Percent: 2.7, Fixed: 10},
		Manual:   Rate{Percent: 3.4, Fixed: 15},
		Contactless: ContactlessPolicy{
			Mode:      ContactlessSurcharge,
			Surcharge: 5,
		},
	},
	"GB": {
		Code:     "GB",
		Currency: "GBP",
		InPerson: Rate{Percent: 1.6, Fixed: 5},
		Manual:   Rate{Percent: 2.5, Fixed: 20},
		Contactless: ContactlessPolicy{
			Mode: ContactlessSeparate,
			Rate: Rate{Percent: 1.7, Fixed: 0},
		},
	},
	"IE": {
		Code:     "IE",
		Currency: "EUR",
		InPerson: Rate{Percent: 1.4, Fixed: 5},
		Manual:   Rate{Percent: 2.5, Fixed: 25},
		Contactless: ContactlessPolicy{
			Mode: ContactlessSeparate,
			Rate: Rate{Percent: 1.5, Fixed: 0},
		},
	},
	"FR": {
		Code:     "FR",
		Currency: "EUR",
		InPerson: Rate{Percent: 1.4, Fixed: 5},
		Manual:   Rate{Percent: 2.5, Fixed: 25},
		Contactless: ContactlessPolicy{
			Mode: ContactlessSeparate,
			Rate: Rate{Percent: 1.5, Fixed: 0},
		},
	},
	"AU": {
		Code:     "AU",
		Currency: "AUD",
		InPerson: Rate{Percent: 1.7, Fixed: 0},
		Manual:   Rate{Percent: 3.1, Fixed: 30},
		Contactless: ContactlessPolicy{
			Mode:      ContactlessSurcharge,
			Surcharge: 10,
		},
	},
	"NZ": {
		Code:     "NZ",
		Currency: "NZD",
		InPerson: Rate{Percent: 2.7, Fixed: 0},
		Manual:   Rate{Percent: 2.9, Fixed: 30},
		Contactless: ContactlessPolicy{
			Mode:      ContactlessSurcharge,
			Surcharge: 10,
		},
	},
	"JP": {
		Code:     "JP",
		Currency: "JPY",
		InPerson: Rate{Percent: 3.25, Fixed: 0},
		Manual:   Rate{Percent: 3.6, Fixed: 0},
		Contactless: ContactlessPolicy{
			Mode:      ContactlessSurcharge,
			Surcharge: 0,
		},
	},
	"SG": {
		Code:     "SG",
		Currency: "SGD",
		InPerson: Rate{Percent: 3.0, Fixed: 0},
		Manual:   Rate{Percent: 3.4, Fixed: 50},
		Contactless: ContactlessPolicy{
			Mode:      ContactlessSurcharge,
			Surcharge: 0,
		},
	},
}

// GetCountryRate returns the rate record for the given country code.
// Unknown codes fall back to the default country; this function never
// fails or returns an empty record.
func GetCountryRate(code string) CountryRate {
	if rate, ok := countryRates[code]; ok {
		return rate
	}
	return countryRates[DefaultCountry]
}

// SupportedCountries returns the codes present in the rate table
func SupportedCountries() []string {
	codes := make([]string, 0, len(countryRates))
	for code := range countryRates {
		codes = append(codes, code)
	}
	return codes
}

// EffectiveAuthRate returns the rate charged for a contactless
// authorization in the given country, resolving the country's
// contactless policy
func EffectiveAuthRate(country CountryRate) Rate {
	switch country.Contactless.Mode {
	case ContactlessSeparate:
		return country.Contactless.Rate
	default:
		return Rate{
			Percent: country.InPerson.Percent,
			Fixed:   country.InPerson.Fixed + country.Contactless.Surcharge,
		}
	}
}

// Add returns the rate composed with a platform markup
func (r Rate) Add(m Markup) Rate {
	return Rate{
		Percent: r.Percent + m.Percent,
		Fixed:   r.Fixed + m.Fixed,
	}
}
