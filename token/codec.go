package token

import (
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrInvalidToken covers malformed tokens and bad signatures. Expiry is not
// an ErrInvalidToken case: Verify exposes the expiry claim and leaves the
// policy decision to the caller (IsValidFor folds it in).
var ErrInvalidToken = errors.New("invalid token")

// TypeClaim marks the kind of token in the signed claims. Access tokens
// carry no type claim; refresh tokens carry TypeRefresh.
const (
	TypeClaim   = "type"
	TypeRefresh = "refresh"
)

// Codec signs and verifies compact HS256 tokens. It holds no persistent
// state; validity of a signed token is a pure function of the secret key,
// the clock, and the token bytes. Server-side revocation lives in the
// ledger, not here.
type Codec struct {
	key     []byte
	nowFunc func() time.Time
}

type CodecOption func(*Codec)

// WithNowFunc sets the clock (primarily for testing).
func WithNowFunc(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowFunc = now
	}
}

// NewCodec derives the HMAC key from a base64-encoded server secret.
func NewCodec(secret string, options ...CodecOption) (*Codec, error) {
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, errors.Wrap(err, "[NewCodec] secret must be base64")
	}
	if len(key) < 32 {
		return nil, errors.New("[NewCodec] secret must decode to at least 32 bytes")
	}

	c := &Codec{
		key:     key,
		nowFunc: time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Issue builds a signed token with subject, issued-at = now and
// expiry = now + ttl. Extra claims are merged in before the registered
// claims so they cannot override them. The jti claim makes every
// issuance distinct even within the same second, so the ledger's
// unique token column never collides.
func (c *Codec) Issue(subject string, extraClaims map[string]any, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{}
	for k, v := range extraClaims {
		claims[k] = v
	}
	claims["sub"] = subject
	claims["jti"] = uuid.New().String()
	claims["iat"] = c.nowFunc().Unix()
	claims["exp"] = c.nowFunc().Add(ttl).Unix()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", errors.Wrap(err, "[Codec.Issue] failed to sign token")
	}
	return signed, nil
}

// IssueRefresh issues a token carrying the refresh type marker.
func (c *Codec) IssueRefresh(subject string, ttl time.Duration) (string, error) {
	return c.Issue(subject, map[string]any{TypeClaim: TypeRefresh}, ttl)
}

// Verify parses the token and checks its signature. It does not reject
// expired tokens; the expiry claim is returned for the caller to judge.
func (c *Codec) Verify(raw string) (jwt.MapClaims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	parsed, err := parser.Parse(raw, c.verificationKey)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SubjectOf extracts the subject from a verified token.
func (c *Codec) SubjectOf(raw string) (string, error) {
	claims, err := c.Verify(raw)
	if err != nil {
		return "", err
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidToken
	}
	return subject, nil
}

// IsValidFor reports whether the token carries a valid signature, names
// expectedSubject and has not passed its expiry claim. Side-effect free;
// it says nothing about server-side revocation.
func (c *Codec) IsValidFor(raw, expectedSubject string) bool {
	claims, err := c.Verify(raw)
	if err != nil {
		return false
	}

	subject, err := claims.GetSubject()
	if err != nil || subject != expectedSubject {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.After(c.nowFunc())
}

// IsRefresh reports whether the verified claims carry the refresh marker.
func IsRefresh(claims jwt.MapClaims) bool {
	t, _ := claims[TypeClaim].(string)
	return t == TypeRefresh
}

func (c *Codec) verificationKey(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
	}
	return c.key, nil
}
