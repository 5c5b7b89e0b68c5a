package rawg

import "time"

const (
	providerName       = "rawg"
	defaultBaseURL     = "https://api.rawg.io/api"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBodyBytes  = 512
)
