package util

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims 身份提供方签发的令牌，只消费 email 和 full_name
type Claims struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}

// Identity 当前请求的用户身份
type Identity struct {
	Email    string
	FullName string
}

// DisplayName 没有姓名时显示 Guest
func (i *Identity) DisplayName() string {
	if i == nil || strings.TrimSpace(i.FullName) == "" {
		return GuestDisplayName
	}
	return i.FullName
}

func (i *Identity) EmailAddress() string {
	if i == nil {
		return ""
	}
	return strings.TrimSpace(i.Email)
}

func GenerateJWT(email, fullName, secret string, expiration time.Duration) (string, error) {
	claims := &Claims{
		Email:    email,
		FullName: fullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}

func GetIdentityFromContext(c *gin.Context) *Identity {
	v, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return nil
	}
	identity, ok := v.(*Identity)
	if !ok {
		return nil
	}
	return identity
}

func GetSessionIDFromContext(c *gin.Context) string {
	return c.GetString(ContextKeySession)
}
