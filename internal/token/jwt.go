// Package token implements the signed access-token codec. A JWT
// instance is immutable after construction and safe to share across
// concurrent callers.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/auth2api/auth2-server/internal/model"
)

// Claims is the signed token body. Subject carries the user id;
// application and client ids carry the issuing context.
type Claims struct {
	jwt.RegisteredClaims
	ApplicationID string `json:"application_id"`
	ClientID      string `json:"client_id"`
}

// PayloadData is what callers provide at mint time. Timestamps are
// set by the codec.
type PayloadData struct {
	UserID        string
	ApplicationID string
	ClientID      string
}

// Config selects the signing algorithm, its key material, and the
// token lifetimes. HMAC algorithms take SecretKey; the asymmetric
// families take PEM-encoded PrivateKey/PublicKey.
type Config struct {
	Algorithm string
	// AccessTokenLifetime is in minutes.
	AccessTokenLifetime int
	// RefreshTokenLifetime is in days.
	RefreshTokenLifetime int
	SecretKey            string
	PrivateKey           string
	PublicKey            string
}

// JWT mints and verifies signed, time-bounded tokens independent of
// the signing algorithm.
type JWT struct {
	method          jwt.SigningMethod
	accessLifetime  time.Duration
	refreshLifetime int
	encodingKey     any
	decodingKey     any
}

// New builds a codec from cfg. It fails fast on an unsupported
// algorithm or missing key material for the algorithm family.
func New(cfg Config) (*JWT, error) {
	method, err := signingMethod(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	j := &JWT{
		method:          method,
		accessLifetime:  time.Duration(cfg.AccessTokenLifetime) * time.Minute,
		refreshLifetime: cfg.RefreshTokenLifetime,
	}

	switch method.(type) {
	case *jwt.SigningMethodHMAC:
		if cfg.SecretKey == "" {
			return nil, model.NewError(model.KindEncodingKey, "secret key is required for HMAC algorithms", nil)
		}
		j.encodingKey = []byte(cfg.SecretKey)
		j.decodingKey = []byte(cfg.SecretKey)

	case *jwt.SigningMethodRSA:
		priv, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.PrivateKey))
		if err != nil {
			return nil, model.NewError(model.KindEncodingKey, "invalid RSA private key", err)
		}
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKey))
		if err != nil {
			return nil, model.NewError(model.KindDecodingKey, "invalid RSA public key", err)
		}
		j.encodingKey = priv
		j.decodingKey = pub

	case *jwt.SigningMethodECDSA:
		priv, err := jwt.ParseECPrivateKeyFromPEM([]byte(cfg.PrivateKey))
		if err != nil {
			return nil, model.NewError(model.KindEncodingKey, "invalid ECDSA private key", err)
		}
		pub, err := jwt.ParseECPublicKeyFromPEM([]byte(cfg.PublicKey))
		if err != nil {
			return nil, model.NewError(model.KindDecodingKey, "invalid ECDSA public key", err)
		}
		j.encodingKey = priv
		j.decodingKey = pub

	case *jwt.SigningMethodEd25519:
		priv, err := jwt.ParseEdPrivateKeyFromPEM([]byte(cfg.PrivateKey))
		if err != nil {
			return nil, model.NewError(model.KindEncodingKey, "invalid EdDSA private key", err)
		}
		pub, err := jwt.ParseEdPublicKeyFromPEM([]byte(cfg.PublicKey))
		if err != nil {
			return nil, model.NewError(model.KindDecodingKey, "invalid EdDSA public key", err)
		}
		j.encodingKey = priv
		j.decodingKey = pub
	}

	return j, nil
}

// RefreshTokenLifetime returns the configured refresh lifetime in days.
func (j *JWT) RefreshTokenLifetime() int {
	return j.refreshLifetime
}

// AccessTokenLifetime returns the configured access lifetime.
func (j *JWT) AccessTokenLifetime() time.Duration {
	return j.accessLifetime
}

// Generate mints a signed access token for data. iat and nbf are set
// to now, exp to now plus the configured access lifetime.
func (j *JWT) Generate(data PayloadData) (model.AccessToken, error) {
	if j.encodingKey == nil {
		return model.AccessToken{}, model.NewError(model.KindEncodingKey, "no encoding key configured", nil)
	}

	now := time.Now()
	expiresAt := now.Add(j.accessLifetime)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   data.UserID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		ApplicationID: data.ApplicationID,
		ClientID:      data.ClientID,
	}

	signed, err := jwt.NewWithClaims(j.method, claims).SignedString(j.encodingKey)
	if err != nil {
		return model.AccessToken{}, model.NewError(model.KindTokenGeneration, "failed to sign access token", err)
	}

	return model.AccessToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// Parse verifies signature and expiry and returns the claims. An
// expired signature surfaces as model.ErrExpiredToken; every other
// failure (malformed token, wrong algorithm, bad signature) is a
// decoding error. Callers react differently: expired means
// unauthenticated, malformed is worth logging as a possible attack.
func (j *JWT) Parse(tokenString string) (Claims, error) {
	if j.decodingKey == nil {
		return Claims{}, model.NewError(model.KindDecodingKey, "no decoding key configured", nil)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, j.keyFunc,
		jwt.WithValidMethods([]string{j.method.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, model.ErrExpiredToken
		}
		return Claims{}, model.NewError(model.KindDecodingKey, "failed to parse access token", err)
	}
	if !parsed.Valid {
		return Claims{}, model.NewError(model.KindDecodingKey, "invalid access token", nil)
	}

	return *claims, nil
}

func (j *JWT) keyFunc(t *jwt.Token) (any, error) {
	if t.Method.Alg() != j.method.Alg() {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return j.decodingKey, nil
}

func signingMethod(algorithm string) (jwt.SigningMethod, error) {
	switch algorithm {
	case "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	case "RS256":
		return jwt.SigningMethodRS256, nil
	case "RS384":
		return jwt.SigningMethodRS384, nil
	case "RS512":
		return jwt.SigningMethodRS512, nil
	case "ES256":
		return jwt.SigningMethodES256, nil
	case "ES384":
		return jwt.SigningMethodES384, nil
	case "ES512":
		return jwt.SigningMethodES512, nil
	case "EdDSA":
		return jwt.SigningMethodEdDSA, nil
	default:
		return nil, model.NewError(model.KindInvalidArguments,
			fmt.Sprintf("invalid or unsupported algorithm: %s", algorithm), nil)
	}
}
