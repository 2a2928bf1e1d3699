package weather

// mockEpoch anchors the mock forecast so repeated calls are identical.
const mockEpoch int64 = 1640995200

func MockCurrent(city string) Current {
	return Current{
		City:          city,
		Country:       "Unknown",
		Temperature:   22.5,
		FeelsLike:     24.0,
		Humidity:      65,
		Pressure:      1013,
		Description:   "partly cloudy",
		Icon:          "02d",
		WindSpeed:     3.2,
		WindDirection: 180,
		Visibility:    10000,
		Sunrise:       1640995200,
		Sunset:        1641038400,
	}
}

// MockForecast returns 40 entries (5 days x 8 slots), 3 hours apart.
func MockForecast(city string) Forecast {
	entries := make([]Entry, 40)
	for i := range entries {
		entries[i] = Entry{
			DateTime:    mockEpoch + int64(i)*10800,
			Temperature: float64(20 + i%10),
			FeelsLike:   float64(22 + i%8),
			Humidity:    60 + i%20,
			Description: "partly cloudy",
			Icon:        "02d",
			WindSpeed:   2.5 + float64(i%3),
			Pop:         0.1 + float64(i%5)*0.1,
		}
	}
	return Forecast{City: city, Country: "Unknown", Forecast: entries}
}
