package tweetie

import stealth "github.com/anatolykoptev/go-stealth"

// defaultUserAgent is the fallback User-Agent when no browser profile is configured.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// restHeaders returns the headers for a signed v1.1 REST request.
func restHeaders(authorization, userAgent string) map[string]string {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	h := map[string]string{
		"authorization":   authorization,
		"user-agent":      userAgent,
		"accept":          "application/json",
		"accept-language": "en-US,en;q=0.9",
		"accept-encoding": "gzip, deflate, br",
	}
	if ch := stealth.ClientHintsHeaders(userAgent); ch != nil {
		for k, v := range ch {
			h[k] = v
		}
	}
	return h
}

// restHeaderOrder keeps header order stable for TLS fingerprint consistency.
var restHeaderOrder = []string{
	"authorization",
	"sec-ch-ua",
	"sec-ch-ua-mobile",
	"sec-ch-ua-platform",
	"user-agent",
	"accept",
	"accept-language",
	"accept-encoding",
}
