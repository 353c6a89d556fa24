package presenter

import "sort"

// Icon is a symbolic drawable name understood by the display surface.
type Icon string

const (
	IconSunny     Icon = "sunny"
	IconCloud     Icon = "cloud"
	IconRainy     Icon = "rainy"
	IconStorm     Icon = "storm"
	IconSnowflake Icon = "snowflake"
)

var iconsByCode = map[string]Icon{
	"01d": IconSunny,
	"02d": IconCloud,
	"03d": IconCloud,
	"04d": IconCloud,
	"05d": IconRainy,
	"06d": IconStorm,
	"07d": IconSnowflake,
	"08d": IconCloud,
	"09d": IconCloud,
	"10d": IconCloud,
	"11d": IconCloud,
	"12d": IconRainy,
	"13d": IconSnowflake,
}

// IconFor maps an API icon code. ok is false for codes outside the table.
func IconFor(code string) (icon Icon, ok bool) {
	icon, ok = iconsByCode[code]
	return
}

// KnownIconCodes lists every mapped code in ascending order.
func KnownIconCodes() []string {
	codes := make([]string, 0, len(iconsByCode))
	for code := range iconsByCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
