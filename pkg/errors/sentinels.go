package errors

import "errors"

// token 包使用的哨兵错误，区别于带错误码的业务错误。
var (
	ErrTokenGeneratorNotInitialized = errors.New("token generator is not initialized")
	ErrUnexpectedSigningMethod      = errors.New("unexpected signing method")
	ErrInvalidToken                 = errors.New("invalid token")
	ErrInvalidTokenClaims           = errors.New("invalid token claims")
	ErrInvalidTokenType             = errors.New("invalid token type")
	ErrMemberIDNotFound             = errors.New("member id not found in token claims")
)
