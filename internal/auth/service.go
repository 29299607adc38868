package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type AuthService struct{ hmac []byte }

func NewAuthService(secret string) *AuthService { return &AuthService{hmac: []byte(secret)} }

type Claims struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Role    string `json:"role"` // "student" | "teacher" | "admin"
	GroupID string `json:"group_id,omitempty"`
	jwt.RegisteredClaims
}

func (a *AuthService) IssueJWT(sub, name, role, groupID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Sub:     sub,
		Name:    name,
		Role:    role,
		GroupID: groupID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "studylink",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(8 * time.Hour)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.hmac)
}

func (a *AuthService) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.hmac, nil
	})
	if err != nil || !token.Valid {
		return nil, err
	}
	c, _ := token.Claims.(*Claims)
	return c, nil
}
