package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/repository"
	infraRepo "github.com/tomdro61/shop-pilot-sub001/internal/infrastructure/repository"
	"github.com/tomdro61/shop-pilot-sub001/internal/presentation/http/dto/response"
)

// ShopIDHeader identifies the acting shop on API requests. The hosted
// frontend sets it after login; the public intake pages resolve the shop
// from the subdomain instead.
const ShopIDHeader = "X-Shop-ID"

// ExtractShopFromHost extracts the shop slug from a subdomain,
// e.g. "main-street-auto.shoppilot.app" -> "main-street-auto".
func ExtractShopFromHost(host string) (string, error) {
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	parts := strings.Split(host, ".")
	if len(parts) < 3 {
		return "", errors.New("no subdomain")
	}
	return parts[0], nil
}

// ShopMiddleware resolves the acting shop from the X-Shop-ID header or the
// request's subdomain and places it in both the Gin context and the request
// context the repositories scope by.
func ShopMiddleware(shopRepo repository.ShopRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if idStr := c.GetHeader(ShopIDHeader); idStr != "" {
			shopID, err := uuid.Parse(idStr)
			if err != nil {
				response.BadRequest(c, "Invalid shop ID")
				c.Abort()
				return
			}

			shop, err := shopRepo.GetByID(c.Request.Context(), shopID)
			if err != nil || shop == nil {
				response.NotFound(c, "Shop not found")
				c.Abort()
				return
			}

			bindShop(c, shop.ID)
			c.Set("shop", shop)
			c.Next()
			return
		}

		slug, err := ExtractShopFromHost(c.Request.Host)
		if err != nil {
			response.BadRequest(c, "Shop context required")
			c.Abort()
			return
		}

		shop, err := shopRepo.GetBySlug(c.Request.Context(), slug)
		if err != nil || shop == nil {
			response.NotFound(c, "Shop not found")
			c.Abort()
			return
		}

		bindShop(c, shop.ID)
		c.Set("shop", shop)
		c.Next()
	}
}

func bindShop(c *gin.Context, shopID uuid.UUID) {
	c.Set("shop_id", shopID)
	ctx := infraRepo.WithShop(c.Request.Context(), shopID)
	c.Request = c.Request.WithContext(ctx)
}

// GetShopID retrieves the shop ID from the Gin context
func GetShopID(c *gin.Context) uuid.UUID {
	shopID, exists := c.Get("shop_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := shopID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
