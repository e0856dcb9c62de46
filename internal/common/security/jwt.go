package security

import (
	"context"
	"errors"
	"time"

	"newsdesk/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateAccessToken issues a short-lived access token carrying the user's
// identity and role.
func GenerateAccessToken(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(config.AppConfig.JWTAccessExp).Unix(),
		"iat":     time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// GenerateRefreshToken issues a long-lived refresh token. The returned jti is
// recorded in the refresh store; the token is only honored while it is live.
func GenerateRefreshToken(userID string) (tokenString, jti string, err error) {
	jti = uuid.NewString()
	claims := jwt.MapClaims{
		"user_id": userID,
		"typ":     "refresh",
		"jti":     jti,
		"exp":     time.Now().Add(config.AppConfig.JWTRefreshExp).Unix(),
		"iat":     time.Now().Unix(),
	}
	_, tokenString, err = TokenAuth.Encode(claims)
	return tokenString, jti, err
}

// DecodeRefreshToken verifies a refresh token's signature and shape and
// returns its user_id and jti claims.
func DecodeRefreshToken(tokenString string) (userID, jti string, err error) {
	token, err := TokenAuth.Decode(tokenString)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", "", errors.New("invalid refresh token claims")
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return "", "", errors.New("not a refresh token")
	}
	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", "", errors.New("user_id claim is missing or not a string")
	}
	jti, ok = claims["jti"].(string)
	if !ok {
		return "", "", errors.New("jti claim is missing or not a string")
	}
	return userID, jti, nil
}

// Helper functions to extract claims, can be used in middleware or services
func GetUserIDFromClaims(claims map[string]interface{}) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetUserRoleFromClaims(claims map[string]interface{}) (string, error) {
	role, ok := claims["role"].(string)
	if !ok {
		return "", errors.New("role claim is missing or not a string")
	}
	return role, nil
}
