// Package auth issues and validates session tokens and hashes passwords.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered claims plus the token scope. The subject is the
// user id; the JWT id makes every issued token distinct, even for two logins
// of the same user within one second.
type Claims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

// GenerateToken signs an HS256 token for userID with scope "auth".
// A zero validityDuration issues a token without expiry; such tokens stay
// valid until they are removed from the user's token set.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	jti, err := common.MakeRandHexString(16)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(now),
			ID:       jti,
		},
		Scope: common.AuthScope,
	}
	if validityDuration != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(validityDuration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies the signature, expiry and scope of tokenString
// and returns its subject. Expired tokens yield common.ErrTokenExpired; every
// other failure yields common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Scope != common.AuthScope || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}

// TokenIssuer binds the signing secret and lifetime used by the services.
type TokenIssuer struct {
	secretKey []byte
	validity  time.Duration
}

func NewTokenIssuer(secretKey string, validity time.Duration) *TokenIssuer {
	return &TokenIssuer{secretKey: []byte(secretKey), validity: validity}
}

// Issue returns a new signed token for userID.
func (i *TokenIssuer) Issue(userID string) (string, error) {
	return GenerateToken(userID, i.secretKey, i.validity)
}

// Validate returns the user id asserted by token.
func (i *TokenIssuer) Validate(token string) (string, error) {
	return GetUserIDFromToken(token, i.secretKey)
}
