package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	// Secret is the HMAC-SHA256 key. Used when no RSA key is configured.
	Secret string

	// PublicKeyPEM enables RS256 validation-only mode.
	PublicKeyPEM string

	Issuer     string
	Expiration time.Duration
}

// Enabled reports whether any verification key is configured.
func (c JWTConfig) Enabled() bool {
	return c.Secret != "" || c.PublicKeyPEM != ""
}

// JWTService issues and validates tokens.
type JWTService struct {
	config    JWTConfig
	publicKey any
	method    jwt.SigningMethod
}

// NewJWTService creates a new JWTService with the given configuration.
// A PublicKeyPEM selects RS256 validation; otherwise Secret selects HS256.
func NewJWTService(cfg JWTConfig) (*JWTService, error) {
	svc := &JWTService{config: cfg}

	switch {
	case cfg.PublicKeyPEM != "":
		pubKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
		}
		svc.publicKey = pubKey
		svc.method = jwt.SigningMethodRS256
	case cfg.Secret != "":
		svc.publicKey = []byte(cfg.Secret)
		svc.method = jwt.SigningMethodHS256
	default:
		return nil, fmt.Errorf("jwt configuration requires PublicKeyPEM or Secret")
	}

	if svc.config.Expiration == 0 {
		svc.config.Expiration = time.Hour
	}

	return svc, nil
}

// GenerateToken signs a token for clientID. Only available in HS256 mode.
func (s *JWTService) GenerateToken(clientID string, roles []string) (string, error) {
	if s.method != jwt.SigningMethodHS256 {
		return "", fmt.Errorf("cannot generate token: service is in validation-only mode")
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   clientID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		ClientID: clientID,
		Roles:    roles,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT token string.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{s.method.Alg()})}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.publicKey, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
