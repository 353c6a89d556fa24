package presenter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fakhrymubarak/weather-now/internal/model"
)

func samplePayload() *model.WeatherResponse {
	return &model.WeatherResponse{
		Name: "Seoul",
		Weather: []model.Condition{
			{ID: 800, Main: "Clear", Description: "clear sky", Icon: "01d"},
			{ID: 500, Main: "Rain", Description: "light rain", Icon: "12d"},
		},
		Main: model.Main{Temp: 21.5, TempMin: 19, TempMax: 23.4, Humidity: 56},
		Wind: model.Wind{Speed: 3.6},
		Sys:  model.Sys{Country: "KR", Sunrise: 1697664000, Sunset: 1697704200},
	}
}

func TestUnitFor(t *testing.T) {
	fahrenheit := []string{"en-US", "en_US", "en_US.UTF-8", "es-US", "en-LR", "my-MM", "my_MM", "US", "LR", "MM"}
	for _, locale := range fahrenheit {
		assert.Equal(t, UnitFahrenheit, UnitFor(locale), locale)
	}

	celsius := []string{"en-GB", "ko-KR", "ko_KR", "fr-CA", "de", "en", "KR", "", "C", "POSIX", "not a locale"}
	for _, locale := range celsius {
		assert.Equal(t, UnitCelsius, UnitFor(locale), locale)
	}
}

func TestIconFor_KnownCodes(t *testing.T) {
	want := map[string]Icon{
		"01d": IconSunny,
		"02d": IconCloud, "03d": IconCloud, "04d": IconCloud,
		"05d": IconRainy,
		"06d": IconStorm,
		"07d": IconSnowflake,
		"08d": IconCloud, "09d": IconCloud, "10d": IconCloud, "11d": IconCloud,
		"12d": IconRainy,
		"13d": IconSnowflake,
	}

	require.Len(t, KnownIconCodes(), len(want))
	for _, code := range KnownIconCodes() {
		icon, ok := IconFor(code)
		assert.True(t, ok, code)
		assert.Equal(t, want[code], icon, code)
	}
}

func TestIconFor_Unknown(t *testing.T) {
	for _, code := range []string{"", "01n", "50d", "99d", "sunny"} {
		icon, ok := IconFor(code)
		assert.False(t, ok, code)
		assert.Empty(t, icon)
	}
}

func TestKnownIconCodes_Sorted(t *testing.T) {
	codes := KnownIconCodes()
	assert.Equal(t, "01d", codes[0])
	assert.Equal(t, "13d", codes[len(codes)-1])
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0, time.UTC))

	seoul := time.FixedZone("KST", 9*60*60)
	assert.Equal(t, "09:00", FormatClock(0, seoul))

	newYork := time.FixedZone("EST", -5*60*60)
	assert.Equal(t, "19:00", FormatClock(0, newYork))

	// 2023-10-18T21:20:00Z
	assert.Equal(t, "21:20", FormatClock(1697664000, time.UTC))
	assert.Equal(t, FormatClock(1697664000, seoul), FormatClock(1697664000, seoul))
}

func TestToDisplay(t *testing.T) {
	p := New(time.UTC, SystemMetric)
	view := p.ToDisplay(samplePayload(), "ko-KR")

	assert.Equal(t, "Clear", view.Condition)
	assert.Equal(t, "clear sky", view.Description)
	assert.Equal(t, "sunny", view.Icon)
	assert.Equal(t, "21.5ºC", view.Temperature)
	assert.Equal(t, "min 19ºC", view.TempMin)
	assert.Equal(t, "max 23.4ºC", view.TempMax)
	assert.Equal(t, "56%", view.Humidity)
	assert.Equal(t, "3.6", view.WindSpeed)
	assert.Equal(t, "Seoul", view.City)
	assert.Equal(t, "KR", view.Country)
	assert.Equal(t, "21:20", view.Sunrise)
	assert.Equal(t, "08:30", view.Sunset)
	assert.Equal(t, UnitCelsius, view.Unit)
}

func TestToDisplay_FahrenheitLocale(t *testing.T) {
	view := New(time.UTC, SystemMetric).ToDisplay(samplePayload(), "en-US")
	assert.Equal(t, "70.7ºF", view.Temperature)
	assert.Equal(t, "min 66.2ºF", view.TempMin)
	assert.Equal(t, "max 74.1ºF", view.TempMax)
	assert.Equal(t, UnitFahrenheit, view.Unit)
}

func TestToDisplay_MetricConvertedForFahrenheitLocale(t *testing.T) {
	payload := samplePayload()
	payload.Main = model.Main{Temp: 18.5, TempMin: 15, TempMax: 20}

	view := New(time.UTC, SystemMetric).ToDisplay(payload, "en-US")
	assert.Equal(t, "65.3ºF", view.Temperature)
	assert.Equal(t, "min 59ºF", view.TempMin)
	assert.Equal(t, "max 68ºF", view.TempMax)
}

func TestToDisplay_ImperialPayload(t *testing.T) {
	payload := samplePayload()
	payload.Main = model.Main{Temp: 65.3, TempMin: 59, TempMax: 68}

	us := New(time.UTC, SystemImperial).ToDisplay(payload, "en-US")
	assert.Equal(t, "65.3ºF", us.Temperature, "already Fahrenheit")

	kr := New(time.UTC, SystemImperial).ToDisplay(payload, "ko-KR")
	assert.Equal(t, "18.5ºC", kr.Temperature)
	assert.Equal(t, "min 15ºC", kr.TempMin)
	assert.Equal(t, "max 20ºC", kr.TempMax)
}

func TestConvertTemp(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		system string
		unit   string
		want   float64
	}{
		{"metric to celsius", 18.5, SystemMetric, UnitCelsius, 18.5},
		{"metric to fahrenheit", 0, SystemMetric, UnitFahrenheit, 32},
		{"metric to fahrenheit negative", -40, SystemMetric, UnitFahrenheit, -40},
		{"imperial to fahrenheit", 65.3, SystemImperial, UnitFahrenheit, 65.3},
		{"imperial to celsius", 212, SystemImperial, UnitCelsius, 100},
		{"standard to celsius", 294.65, SystemStandard, UnitCelsius, 21.5},
		{"standard to fahrenheit", 273.15, SystemStandard, UnitFahrenheit, 32},
		{"unknown system treated as metric", 10, "", UnitFahrenheit, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, convertTemp(tt.value, tt.system, tt.unit), 1e-9)
		})
	}
}

func TestToDisplay_UnknownIcon(t *testing.T) {
	payload := samplePayload()
	payload.Weather[0].Icon = "50n"

	view := New(time.UTC, SystemMetric).ToDisplay(payload, "en-GB")
	assert.Equal(t, "Clear", view.Condition)
	assert.Empty(t, view.Icon)
}

func TestToDisplay_EmptyWeather(t *testing.T) {
	payload := samplePayload()
	payload.Weather = nil

	view := New(time.UTC, SystemMetric).ToDisplay(payload, "en-GB")
	assert.Empty(t, view.Condition)
	assert.Empty(t, view.Description)
	assert.Empty(t, view.Icon)
	assert.Equal(t, "Seoul", view.City)
}

func TestToDisplay_NilPayload(t *testing.T) {
	assert.Equal(t, model.DisplayModel{}, New(nil, "").ToDisplay(nil, "en-US"))
}
