package yahoo

import "time"

const (
	providerName       = "yahoo"
	defaultBaseURL     = "https://fantasysports.yahooapis.com/fantasy/v2"
	defaultHTTPTimeout = 15 * time.Second
	contentTypeXML     = "application/xml"
	maxBodyBytes       = 4 << 20
	coverageDate       = "date"
)
