package tenant

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session payload carried in the signed access token.
type Claims struct {
	Phone         string
	Role          string
	ApartmentCode string
}

// GetClaims extracts the session claims from the verified JWT in context.
func GetClaims(c *fiber.Ctx) (*Claims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, errors.New("no token in context")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	phone, _ := mapClaims["phone"].(string)
	if phone == "" {
		return nil, errors.New("missing phone claim")
	}
	role, _ := mapClaims["role"].(string)
	code, _ := mapClaims["apartment_code"].(string)

	return &Claims{Phone: phone, Role: role, ApartmentCode: code}, nil
}
