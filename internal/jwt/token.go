package jwt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"venue-booking-backend/utils"

	"github.com/golang-jwt/jwt"
)

func appendRoleChar(token string, role Role) string {
	switch role {
	case RoleAdmin:
		return token + "1"
	}
	return token
}

func expectedRoleChar(role Role) string {
	switch role {
	case RoleAdmin:
		return "1"
	}
	return ""
}

func CreateToken(admin Admin, role Role, validUntil int64) (string, error) {
	secret, ok := RoleSecrets[role]
	if !ok {
		return "", fmt.Errorf("invalid role specified")
	}

	if validUntil == 0 {
		now := time.Now()
		validUntil = now.Add(time.Minute * 15).Unix()
	}

	claims := jwt.MapClaims{
		"id":    admin.Id,
		"email": admin.Email,
		"exp":   validUntil,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return appendRoleChar(tokenString, role), nil
}

func CreateTokenWithRefresh(admin Admin, role Role, validUntil int64) (TokenResponse, error) {
	accessToken, err := CreateToken(admin, role, validUntil)
	if err != nil {
		return TokenResponse{}, err
	}

	refreshTokenRaw := utils.CreateToken()
	refreshToken := appendRoleChar(refreshTokenRaw, role)

	adminData := map[string]string{
		"id":    admin.Id,
		"email": admin.Email,
	}
	adminDataJSON, _ := json.Marshal(adminData)

	err = RedisClient.Set(context.Background(), refreshTokenRaw, adminDataJSON, RefreshTokenTTL).Err()
	if err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ParseToken validates an access token, including the trailing role char.
func ParseToken(tokenString string, role Role) (jwt.MapClaims, error) {
	if len(tokenString) == 0 {
		return nil, fmt.Errorf("token string is empty")
	}

	if tokenString[len(tokenString)-1:] != expectedRoleChar(role) {
		return nil, fmt.Errorf("invalid role character in token")
	}
	tokenString = tokenString[:len(tokenString)-1]

	secret, ok := RoleSecrets[role]
	if !ok {
		return nil, fmt.Errorf("invalid role specified")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// RefreshTokens swaps a refresh token held in Redis for a fresh access/refresh
// pair equivalent to the original issue.
func RefreshTokens(refreshToken string, role Role) (TokenResponse, error) {
	if len(refreshToken) == 0 {
		return TokenResponse{}, fmt.Errorf("refresh token is empty")
	}

	if refreshToken[len(refreshToken)-1:] != expectedRoleChar(role) {
		return TokenResponse{}, fmt.Errorf("invalid role character in token")
	}
	raw := refreshToken[:len(refreshToken)-1]

	data, err := RedisClient.Get(context.Background(), raw).Result()
	if err != nil {
		return TokenResponse{}, fmt.Errorf("refresh token not found")
	}

	var adminData map[string]string
	if err := json.Unmarshal([]byte(data), &adminData); err != nil {
		return TokenResponse{}, fmt.Errorf("corrupt refresh token payload")
	}

	if err := RedisClient.Del(context.Background(), raw).Err(); err != nil {
		return TokenResponse{}, err
	}

	return CreateTokenWithRefresh(Admin{
		Id:    adminData["id"],
		Email: adminData["email"],
	}, role, 0)
}
