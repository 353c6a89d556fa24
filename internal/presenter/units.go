package presenter

import (
	"math"
	"strings"

	"golang.org/x/text/language"
)

const (
	UnitCelsius    = "ºC"
	UnitFahrenheit = "ºF"
)

// fahrenheitRegions are the countries that display temperatures in Fahrenheit.
var fahrenheitRegions = map[string]bool{
	"US": true,
	"LR": true,
	"MM": true,
}

// UnitFor picks the temperature suffix from the locale's region.
// Accepts BCP 47 tags ("en-US"), POSIX style ("en_US.UTF-8") and bare
// upper-case region codes ("US"). Locales without an explicit region get Celsius.
func UnitFor(locale string) string {
	region, ok := regionOf(locale)
	if ok && fahrenheitRegions[region] {
		return UnitFahrenheit
	}
	return UnitCelsius
}

func regionOf(locale string) (string, bool) {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" {
		return "", false
	}

	if locale == strings.ToUpper(locale) && !strings.ContainsAny(locale, "-_") {
		r, err := language.ParseRegion(locale)
		if err != nil {
			return "", false
		}
		return r.String(), true
	}

	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "", false
	}
	r, conf := tag.Region()
	if conf != language.Exact {
		return "", false
	}
	return r.String(), true
}

// Unit systems accepted by the weather API's units parameter.
const (
	SystemMetric   = "metric"
	SystemImperial = "imperial"
	SystemStandard = "standard"
)

// convertTemp re-expresses a temperature fetched in system so it matches
// the display unit. Converted values are rounded to one decimal.
func convertTemp(v float64, system, unit string) float64 {
	var celsius float64
	switch strings.ToLower(system) {
	case SystemImperial:
		if unit == UnitFahrenheit {
			return v
		}
		celsius = (v - 32) * 5 / 9
	case SystemStandard:
		celsius = v - 273.15
	default:
		if unit == UnitCelsius {
			return v
		}
		celsius = v
	}
	if unit == UnitFahrenheit {
		return math.Round((celsius*9/5+32)*10) / 10
	}
	return math.Round(celsius*10) / 10
}
