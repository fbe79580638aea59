package util

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DashboardClaims 仪表盘链接携带的签名信息
type DashboardClaims struct {
	TeacherID string `json:"teacher_id"`
	jwt.RegisteredClaims
}

// GenerateDashboardToken 为教师仪表盘链接签发短期令牌
func GenerateDashboardToken(teacherID, secret string, expiration time.Duration) (string, error) {
	claims := &DashboardClaims{
		TeacherID: teacherID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseDashboardToken 校验链接令牌并返回教师标识
func ParseDashboardToken(tokenString, secret string) (*DashboardClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &DashboardClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*DashboardClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, err
}
