package tweetie

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
)

// generateNonce returns a random 32-byte hex string for the oauth_nonce parameter.
func generateNonce() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 16)
	}
	return hex.EncodeToString(b)
}

// oauthParams holds the per-request protocol parameters so signing is reproducible in tests.
type oauthParams struct {
	nonce     string
	timestamp int64
}

// authorizationHeader builds the OAuth1 HMAC-SHA1 Authorization header for a request.
// rawURL must not carry a query; query parameters go in params.
func authorizationHeader(creds *Credentials, method, rawURL string, params url.Values, p oauthParams) (string, error) {
	oauthValues := map[string]string{
		"oauth_consumer_key":     creds.ConsumerKey,
		"oauth_nonce":            p.nonce,
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        strconv.FormatInt(p.timestamp, 10),
		"oauth_token":            creds.AccessToken,
		"oauth_version":          "1.0",
	}

	base := signatureBase(method, rawURL, params, oauthValues)
	signer := &oauth1.HMACSigner{ConsumerSecret: creds.ConsumerSecret}
	sig, err := signer.Sign(creds.AccessTokenSecret, base)
	if err != nil {
		return "", fmt.Errorf("oauth sign: %w", err)
	}
	oauthValues["oauth_signature"] = sig

	keys := make([]string, 0, len(oauthValues))
	for k := range oauthValues {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("OAuth ")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(percentEncode(k))
		b.WriteString(`="`)
		b.WriteString(percentEncode(oauthValues[k]))
		b.WriteString(`"`)
	}
	return b.String(), nil
}

// signatureBase builds the RFC 5849 signature base string.
func signatureBase(method, rawURL string, params url.Values, oauthValues map[string]string) string {
	type pair struct{ k, v string }
	var pairs []pair
	for k, vs := range params {
		for _, v := range vs {
			pairs = append(pairs, pair{percentEncode(k), percentEncode(v)})
		}
	}
	for k, v := range oauthValues {
		pairs = append(pairs, pair{percentEncode(k), percentEncode(v)})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].k != pairs[j].k {
			return pairs[i].k < pairs[j].k
		}
		return pairs[i].v < pairs[j].v
	})

	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = p.k + "=" + p.v
	}

	return strings.ToUpper(method) + "&" + percentEncode(baseURL(rawURL)) + "&" + percentEncode(strings.Join(parts, "&"))
}

// baseURL lowercases scheme and host and drops default ports, query and fragment.
func baseURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	if (scheme == "https" && strings.HasSuffix(host, ":443")) || (scheme == "http" && strings.HasSuffix(host, ":80")) {
		host = host[:strings.LastIndexByte(host, ':')]
	}
	return scheme + "://" + host + u.EscapedPath()
}

// percentEncode escapes everything except the RFC 3986 unreserved set.
func percentEncode(s string) string {
	const hexDigits = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hexDigits[c>>4])
			b.WriteByte(hexDigits[c&0x0F])
		}
	}
	return b.String()
}
