package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin     = "admin"
	RoleLibrarian = "librarian"
)

// Principal はリクエストを実行している職員。
type Principal struct {
	Subject string
	Role    string
}

// Issuer は HS256 トークンの発行と検証を行う。
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 10 * time.Hour
	}
	return &Issuer{secret: secret, ttl: ttl, now: time.Now}
}

// Issue は sub / role / iat / exp を持つトークンを返す。
func (i *Issuer) Issue(subject, role string) (string, error) {
	if subject == "" {
		return "", errors.New("subject is empty")
	}
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(i.ttl).Unix(),
	})
	return token.SignedString(i.secret)
}

// Parse は署名・期限・sub を検証して Principal を返す。
func (i *Issuer) Parse(tokenStr string) (Principal, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || token == nil || !token.Valid {
		return Principal{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, errors.New("invalid claims")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Principal{}, errors.New("invalid sub")
	}

	role, _ := claims["role"].(string)
	return Principal{Subject: sub, Role: role}, nil
}
