package middleware

import (
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"rewards-server/internal/infrastructure/config"
	otelinfra "rewards-server/internal/infrastructure/observability/otel"
)

// ContextKeyMemberID 認証済み会員IDを保持するコンテキストキー
const ContextKeyMemberID = "member_id"

// AuthMiddleware JWT認証ミドルウェア
// member_idクレームを検証してコンテキストに設定する
func AuthMiddleware(cfg *config.JWTConfig, logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn(ctx, "Missing authorization header", nil)
				return c.JSON(401, ErrorResponse{
					Error:   "unauthorized",
					Message: "Missing authorization header",
				})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				logger.Warn(ctx, "Invalid authorization header format", nil)
				return c.JSON(401, ErrorResponse{
					Error:   "unauthorized",
					Message: "Invalid authorization header format",
				})
			}

			tokenString := parts[1]

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(cfg.Secret), nil
			})

			if err != nil || !token.Valid {
				fields := map[string]interface{}{}
				if err != nil {
					fields["error"] = err.Error()
				}
				logger.Warn(ctx, "Invalid token", fields)
				return c.JSON(401, ErrorResponse{
					Error:   "unauthorized",
					Message: "Invalid or expired token",
				})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				logger.Warn(ctx, "Invalid token claims", nil)
				return c.JSON(401, ErrorResponse{
					Error:   "unauthorized",
					Message: "Invalid token claims",
				})
			}

			memberID, ok := memberIDFromClaims(claims)
			if !ok {
				logger.Warn(ctx, "Missing member_id in token claims", nil)
				return c.JSON(401, ErrorResponse{
					Error:   "unauthorized",
					Message: "Missing member_id in token",
				})
			}

			c.Set(ContextKeyMemberID, memberID)

			return next(c)
		}
	}
}

// OptionalAuthMiddleware トークンがある場合のみ会員IDをコンテキストに設定する
// トークンなし・無効なトークンでも拒否せず匿名として続行する
func OptionalAuthMiddleware(cfg *config.JWTConfig, logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return next(c)
			}

			token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(cfg.Secret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn(c.Request().Context(), "Ignoring invalid token on optional auth", nil)
				return next(c)
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return next(c)
			}

			if memberID, ok := memberIDFromClaims(claims); ok {
				c.Set(ContextKeyMemberID, memberID)
			}

			return next(c)
		}
	}
}

// memberIDFromClaims member_idクレームを取得する
// JSONの数値はfloat64にデコードされるため文字列と数値の両方を受け付ける
func memberIDFromClaims(claims jwt.MapClaims) (int64, bool) {
	switch v := claims["member_id"].(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return 0, false
		}
		return id, true
	case float64:
		id := int64(v)
		if id <= 0 {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}

// MemberIDFromContext コンテキストから認証済み会員IDを取得する
func MemberIDFromContext(c echo.Context) (int64, bool) {
	id, ok := c.Get(ContextKeyMemberID).(int64)
	return id, ok
}
