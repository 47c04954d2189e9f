// Package share encodes valuation results into self-contained, expiring
// tokens that can travel in a URL fragment.
package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/ppiankov/casevalue/internal/model"
)

// DefaultTTL is how long a shared result stays live
const DefaultTTL = 10 * 24 * time.Hour

const wireVersion = 1

// Token is an opaque, URL-safe share token
type Token string

// Shared is a decoded token
type Shared struct {
	Result    model.ValuationResult `json:"result"`
	Context   model.ShareContext    `json:"context"`
	IssuedAt  time.Time             `json:"issued_at"`
	ExpiresAt time.Time             `json:"expires_at"`
}

// wire is the compact token payload. Times are unix milliseconds.
type wire struct {
	V   int                   `json:"v"`
	R   model.ValuationResult `json:"r"`
	C   model.ShareContext    `json:"c"`
	Iat int64                 `json:"iat"`
	Exp int64                 `json:"exp"`
}

// Codec issues and reads share tokens
type Codec struct {
	ttl time.Duration
	now func() time.Time
}

// NewCodec creates a new codec. A non-positive ttl uses DefaultTTL; a nil
// clock uses time.Now.
func NewCodec(ttl time.Duration, now func() time.Time) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Codec{ttl: ttl, now: now}
}

// TTL returns the token lifetime
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Encode packs a result and its context into a token
func (c *Codec) Encode(result model.ValuationResult, ctx model.ShareContext) (Token, error) {
	issued := c.now()
	payload := wire{
		V:   wireVersion,
		R:   result,
		C:   ctx,
		Iat: issued.UnixMilli(),
		Exp: issued.Add(c.ttl).UnixMilli(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal share payload: %w", err)
	}
	return Token(base64.RawURLEncoding.EncodeToString(data)), nil
}

// Decode unpacks a token. An expired token still returns its contents with an
// error wrapping model.ErrExpired, so callers can offer to recompute.
func (c *Codec) Decode(token Token) (Shared, error) {
	if token == "" {
		return Shared{}, fmt.Errorf("empty token: %w", model.ErrMalformed)
	}

	data, err := base64.RawURLEncoding.DecodeString(string(token))
	if err != nil {
		return Shared{}, fmt.Errorf("decode token: %w", model.ErrMalformed)
	}

	var payload wire
	if err := json.Unmarshal(data, &payload); err != nil {
		return Shared{}, fmt.Errorf("parse token payload: %w", model.ErrMalformed)
	}
	if payload.V != wireVersion {
		return Shared{}, fmt.Errorf("unsupported token version %d: %w", payload.V, model.ErrMalformed)
	}
	if payload.Exp <= 0 || payload.Iat > payload.Exp {
		return Shared{}, fmt.Errorf("invalid token lifetime: %w", model.ErrMalformed)
	}
	if !validResult(payload.R) {
		return Shared{}, fmt.Errorf("invalid token result: %w", model.ErrMalformed)
	}

	shared := Shared{
		Result:    payload.R,
		Context:   payload.C,
		IssuedAt:  time.UnixMilli(payload.Iat).UTC(),
		ExpiresAt: time.UnixMilli(payload.Exp).UTC(),
	}

	if c.now().UnixMilli() > payload.Exp {
		return shared, fmt.Errorf("token expired at %s: %w", shared.ExpiresAt.Format(time.RFC3339), model.ErrExpired)
	}
	return shared, nil
}

// DaysUntilExpiry returns whole days left before expiresAt, rounded up, never negative
func (c *Codec) DaysUntilExpiry(expiresAt time.Time) int {
	left := expiresAt.Sub(c.now())
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Hours() / 24))
}

func validResult(r model.ValuationResult) bool {
	for _, v := range []float64{r.Value, r.LowRange, r.HighRange} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.LowRange <= r.Value && r.Value <= r.HighRange
}
