package model

// WeatherResponse is the subset of the OpenWeatherMap current weather payload
// the app reads. It is also the exact form persisted in the cache.
type WeatherResponse struct {
	Name    string      `json:"name"`
	Weather []Condition `json:"weather"`
	Main    Main        `json:"main"`
	Wind    Wind        `json:"wind"`
	Sys     Sys         `json:"sys"`
}

// Condition is one entry of the weather sequence. Only the first is rendered.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Main struct {
	Temp     float64 `json:"temp"`
	TempMin  float64 `json:"temp_min"`
	TempMax  float64 `json:"temp_max"`
	Humidity int     `json:"humidity"`
}

type Wind struct {
	Speed float64 `json:"speed"`
}

type Sys struct {
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

// Country returns the country code reported under sys.
func (w *WeatherResponse) Country() string {
	return w.Sys.Country
}

// PrimaryCondition returns the first weather entry, if any.
func (w *WeatherResponse) PrimaryCondition() (Condition, bool) {
	if w == nil || len(w.Weather) == 0 {
		return Condition{}, false
	}
	return w.Weather[0], true
}
