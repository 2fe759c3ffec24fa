package token

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auth2api/auth2-server/internal/model"
)

func hmacConfig(algorithm string) Config {
	return Config{
		Algorithm:            algorithm,
		AccessTokenLifetime:  15,
		RefreshTokenLifetime: 7,
		SecretKey:            "secret",
	}
}

func rsaKeyPair(t *testing.T) (string, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	return string(privPEM), string(pubPEM)
}

func ecdsaKeyPair(t *testing.T) (string, string) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	privDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)
	privPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: privDER})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	return string(privPEM), string(pubPEM)
}

func ed25519KeyPair(t *testing.T) (string, string) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	privDER, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)
	privPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})
	pubDER, err := x509.MarshalPKIXPublicKey(pub)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	return string(privPEM), string(pubPEM)
}

func TestJWT_Roundtrip_AllAlgorithms(t *testing.T) {
	rsaPriv, rsaPub := rsaKeyPair(t)
	ecPriv, ecPub := ecdsaKeyPair(t)
	edPriv, edPub := ed25519KeyPair(t)

	configs := []Config{
		hmacConfig("HS256"),
		hmacConfig("HS384"),
		hmacConfig("HS512"),
		{Algorithm: "RS256", AccessTokenLifetime: 15, RefreshTokenLifetime: 7, PrivateKey: rsaPriv, PublicKey: rsaPub},
		{Algorithm: "ES256", AccessTokenLifetime: 15, RefreshTokenLifetime: 7, PrivateKey: ecPriv, PublicKey: ecPub},
		{Algorithm: "EdDSA", AccessTokenLifetime: 15, RefreshTokenLifetime: 7, PrivateKey: edPriv, PublicKey: edPub},
	}

	for _, cfg := range configs {
		t.Run(cfg.Algorithm, func(t *testing.T) {
			j, err := New(cfg)
			require.NoError(t, err)

			access, err := j.Generate(PayloadData{UserID: "user-1", ApplicationID: "app-1", ClientID: "client-1"})
			require.NoError(t, err)
			require.NotEmpty(t, access.Token)
			assert.WithinDuration(t, time.Now().Add(15*time.Minute), access.ExpiresAt, 5*time.Second)

			claims, err := j.Parse(access.Token)
			require.NoError(t, err)
			assert.Equal(t, "user-1", claims.Subject)
			assert.Equal(t, "app-1", claims.ApplicationID)
			assert.Equal(t, "client-1", claims.ClientID)
			assert.Equal(t, access.ExpiresAt.Unix(), claims.ExpiresAt.Unix())
			assert.False(t, claims.IssuedAt.IsZero())
			assert.False(t, claims.NotBefore.IsZero())
		})
	}
}

func TestJWT_Parse_Expired(t *testing.T) {
	cfg := hmacConfig("HS256")
	cfg.AccessTokenLifetime = -1
	j, err := New(cfg)
	require.NoError(t, err)

	access, err := j.Generate(PayloadData{UserID: "user-1"})
	require.NoError(t, err)

	_, err = j.Parse(access.Token)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrExpiredToken)
	assert.Equal(t, model.KindExpiredToken, model.ErrorKind(err))
}

func TestJWT_Parse_Malformed(t *testing.T) {
	j, err := New(hmacConfig("HS512"))
	require.NoError(t, err)

	_, err = j.Parse("not-a-token")
	require.Error(t, err)
	assert.False(t, errors.Is(err, model.ErrExpiredToken))
	assert.Equal(t, model.KindDecodingKey, model.ErrorKind(err))
}

func TestJWT_Parse_WrongAlgorithm(t *testing.T) {
	signer, err := New(hmacConfig("HS256"))
	require.NoError(t, err)
	verifier, err := New(hmacConfig("HS512"))
	require.NoError(t, err)

	access, err := signer.Generate(PayloadData{UserID: "user-1"})
	require.NoError(t, err)

	_, err = verifier.Parse(access.Token)
	require.Error(t, err)
	assert.False(t, errors.Is(err, model.ErrExpiredToken))
}

func TestJWT_Parse_WrongKey(t *testing.T) {
	signer, err := New(hmacConfig("HS256"))
	require.NoError(t, err)

	other := hmacConfig("HS256")
	other.SecretKey = "another-secret"
	verifier, err := New(other)
	require.NoError(t, err)

	access, err := signer.Generate(PayloadData{UserID: "user-1"})
	require.NoError(t, err)

	_, err = verifier.Parse(access.Token)
	require.Error(t, err)
	assert.Equal(t, model.KindDecodingKey, model.ErrorKind(err))
}

func TestJWT_New_UnsupportedAlgorithm(t *testing.T) {
	_, err := New(Config{Algorithm: "HS1024", SecretKey: "secret"})
	require.Error(t, err)
	assert.Equal(t, model.KindInvalidArguments, model.ErrorKind(err))
}

func TestJWT_New_MissingKeyMaterial(t *testing.T) {
	_, err := New(Config{Algorithm: "HS256"})
	require.Error(t, err)
	assert.Equal(t, model.KindEncodingKey, model.ErrorKind(err))

	_, err = New(Config{Algorithm: "RS256"})
	require.Error(t, err)
	assert.Equal(t, model.KindEncodingKey, model.ErrorKind(err))

	rsaPriv, _ := rsaKeyPair(t)
	_, err = New(Config{Algorithm: "RS256", PrivateKey: rsaPriv})
	require.Error(t, err)
	assert.Equal(t, model.KindDecodingKey, model.ErrorKind(err))
}

func TestJWT_Lifetimes(t *testing.T) {
	j, err := New(hmacConfig("HS256"))
	require.NoError(t, err)

	assert.Equal(t, 7, j.RefreshTokenLifetime())
	assert.Equal(t, 15*time.Minute, j.AccessTokenLifetime())
}
