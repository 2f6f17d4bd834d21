package authenticator

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenEngine signs and verifies short-lived tokens whose payload is an
// arbitrary json-encodable object.
type TokenEngine struct {
	secret string
}

func NewTokenEngine(secret string) TokenEngine {
	return TokenEngine{secret: secret}
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Data json.RawMessage `json:"data"`
}

func (e TokenEngine) Generate(expiration time.Duration, obj any) (string, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
		},
		Data: data,
	})

	return token.SignedString([]byte(e.secret))
}

func (e TokenEngine) Verify(token string, obj any) error {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}

		return []byte(e.secret), nil
	})
	if err != nil {
		return err
	}

	if !parsed.Valid {
		return errors.New("invalid token")
	}

	return json.Unmarshal(claims.Data, obj)
}
