package nhle

import "time"

const (
	providerName       = "nhle"
	defaultBaseURL     = "https://api-web.nhle.com/v1"
	defaultHTTPTimeout = 10 * time.Second
	dateLayout         = "2006-01-02"
)
