package token

import (
	"maps"
	"strings"
	"time"

	"github.com/benedict-erwin/store-console/pkg/logger"
	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ExpiryLeeway treats a token this close to its exp as already expired,
// so a request is not raced against server-side expiry.
const ExpiryLeeway = 5 * time.Second

const defaultCacheSize = 128

// Claims is the decoded payload segment of a session token
type Claims jwt.MapClaims

// ExpiresAt returns the exp claim; ok is false when it is missing or not numeric
func (c Claims) ExpiresAt() (time.Time, bool) {
	exp, err := jwt.MapClaims(c).GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// String returns a string claim or "" when absent or of another type
func (c Claims) String(name string) string {
	if v, ok := c[name].(string); ok {
		return v
	}
	return ""
}

// Subject returns the sub claim
func (c Claims) Subject() string {
	return c.String("sub")
}

// Codec decodes token payloads and answers expiry questions
type Codec struct {
	parser *jwt.Parser
	cache  *lru.Cache[string, Claims]
	now    func() time.Time
}

// NewCodec creates a codec with a bounded claims cache. now may be nil.
func NewCodec(cacheSize int, now func() time.Time) *Codec {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	if now == nil {
		now = time.Now
	}
	// only fails for a non-positive size
	cache, _ := lru.New[string, Claims](cacheSize)
	return &Codec{
		parser: jwt.NewParser(jwt.WithPaddingAllowed()),
		cache:  cache,
		now:    now,
	}
}

var defaultCodec = NewCodec(defaultCacheSize, nil)

// DecodeClaims decodes with the package codec
func DecodeClaims(token string) (Claims, bool) {
	return defaultCodec.DecodeClaims(token)
}

// IsExpired checks expiry with the package codec
func IsExpired(token string) bool {
	return defaultCodec.IsExpired(token)
}

// DecodeClaims reads the payload segment without verifying the signature.
// Malformed tokens are logged and reported as absent, never as an error.
func (c *Codec) DecodeClaims(token string) (Claims, bool) {
	if cached, ok := c.cache.Get(token); ok {
		return maps.Clone(cached), true
	}

	log := logger.WithScope("tokenCodec")
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		log.Debug().Int("segments", len(parts)).Msg("Invalid token: missing payload segment")
		return nil, false
	}

	// accept both alphabets; the payload is nominally base64url
	segment := strings.NewReplacer("+", "-", "/", "_").Replace(parts[1])
	payload, err := c.parser.DecodeSegment(segment)
	if err != nil {
		log.Debug().Err(err).Msg("Invalid token: payload is not base64")
		return nil, false
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil || claims == nil {
		log.Debug().Err(err).Msg("Invalid token: payload is not a JSON object")
		return nil, false
	}

	c.cache.Add(token, claims)
	return maps.Clone(claims), true
}

// IsExpired is true for an empty or undecodable token, a missing or
// non-numeric exp, or when now is within ExpiryLeeway of exp or past it.
func (c *Codec) IsExpired(token string) bool {
	if token == "" {
		return true
	}
	claims, ok := c.DecodeClaims(token)
	if !ok {
		return true
	}
	exp, ok := claims.ExpiresAt()
	if !ok {
		return true
	}
	return !c.now().Before(exp.Add(-ExpiryLeeway))
}
