package jwt

import (
	"activity-partner/config"
	"time"

	"github.com/golang-jwt/jwt"
)

// Claims 由认证服务签发，本服务只负责校验
type Claims struct {
	UserID uint `json:"user_id"`
	RoleID int  `json:"role_id"`
	jwt.StandardClaims
}

// CreateToken 签发 token，仅供本地调试与测试使用
func CreateToken(userID uint, roleID int) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RoleID: roleID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(time.Duration(config.Get().JWT.AccessExpire) * time.Second).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.Get().JWT.AccessSecret))
}

func ParseToken(tokenString string) (*Claims, bool) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(config.Get().JWT.AccessSecret), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, false
	}
	return claims, true
}
