package token

import (
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/hertz-contrib/jwt"

	"StudyCheck/config"
	"StudyCheck/pkg/errors"
)

const (
	IdentityKey = "mid"
)

var (
	// 这个实例会被 middleware 和 token 包共同使用
	sharedGenerator *jwt.HertzJWTMiddleware
)

func Init() error {
	var err error
	sharedGenerator, err = jwt.New(&jwt.HertzJWTMiddleware{
		Key:         []byte(config.Cfg.JWTSecret),
		Timeout:     time.Duration(config.Cfg.JWTExpireMinutes) * time.Minute,
		MaxRefresh:  time.Duration(config.Cfg.JWTRefreshDays) * 24 * time.Hour,
		IdentityKey: IdentityKey,
		TimeFunc:    time.Now,
	})

	if err != nil {
		return fmt.Errorf("failed to initialize token generator: %w", err)
	}

	return nil
}

// GetGenerator 获取共享的 token 生成器（供 middleware 使用）
func GetGenerator() *jwt.HertzJWTMiddleware {
	return sharedGenerator
}

// GenerateToken 为指定成员签发 access token（成员账号体系在外部系统，
// 这里只负责校验与携带身份）
func GenerateToken(memberID string) (accessToken string, expiresIn int, err error) {
	if sharedGenerator == nil {
		return "", 0, errors.ErrTokenGeneratorNotInitialized
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(config.Cfg.JWTExpireMinutes) * time.Minute)

	claims := jwtv5.MapClaims{
		IdentityKey: memberID,
		"iat":       now.Unix(),
		"exp":       expiresAt.Unix(),
	}

	tokenObj := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	accessToken, err = tokenObj.SignedString([]byte(config.Cfg.JWTSecret))
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate access token: %w", err)
	}

	expiresIn = int(time.Until(expiresAt).Seconds())
	if expiresIn < 0 {
		expiresIn = 0
	}

	return accessToken, expiresIn, nil
}

// ParseMemberID 校验 token 并取出成员 ID
func ParseMemberID(tokenString string) (memberID string, err error) {
	token, err := jwtv5.ParseWithClaims(tokenString, jwtv5.MapClaims{}, func(token *jwtv5.Token) (interface{}, error) {
		if token.Method != jwtv5.SigningMethodHS256 {
			return nil, fmt.Errorf("%w: %v, expected HS256", errors.ErrUnexpectedSigningMethod, token.Header["alg"])
		}
		return []byte(config.Cfg.JWTSecret), nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", errors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwtv5.MapClaims)
	if !ok {
		return "", errors.ErrInvalidTokenClaims
	}

	mid, ok := claims[IdentityKey].(string)
	if !ok {
		if midFloat, ok := claims[IdentityKey].(float64); ok {
			mid = fmt.Sprintf("%.0f", midFloat)
		} else {
			return "", errors.ErrMemberIDNotFound
		}
	}

	return mid, nil
}
