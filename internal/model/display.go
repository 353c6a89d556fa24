package model

// DisplayModel holds display-ready strings, one per UI slot.
// Empty strings mean the slot keeps its default.
type DisplayModel struct {
	Condition   string `json:"condition"`
	Description string `json:"description"`
	Temperature string `json:"temperature"`
	TempMin     string `json:"temp_min"`
	TempMax     string `json:"temp_max"`
	Humidity    string `json:"humidity"`
	WindSpeed   string `json:"wind_speed"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Sunrise     string `json:"sunrise"`
	Sunset      string `json:"sunset"`
	Icon        string `json:"icon,omitempty"`
	Unit        string `json:"unit"`
}
