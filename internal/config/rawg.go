package config

// RawgConfig controls how we talk to the RAWG catalog API.
type RawgConfig struct {
	BaseURL       string
	APIKey        string
	Timeout       Duration
	RatePerSecond float64
	Burst         int
}

func loadRawg() RawgConfig {
	return RawgConfig{
		BaseURL:       envOrDefault(envRawgBaseURL, defaultRawgBaseURL),
		APIKey:        envOrDefault(envRawgAPIKey, ""),
		Timeout:       durationEnvOrDefault(envRawgTimeout, defaultRawgTimeout),
		RatePerSecond: floatEnvOrDefault(envRawgRate, defaultRawgRate),
		Burst:         intEnvOrDefault(envRawgBurst, defaultRawgBurst),
	}
}
