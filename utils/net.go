package utils

import "github.com/gofiber/fiber/v2"

func IPAddress(c *fiber.Ctx) string {
	ipAddress := c.Get("CF-Connecting-IP")
	if ipAddress == "" {
		ipAddress = c.Get("X-Real-Ip")
	}
	if ipAddress == "" {
		ipAddress = c.Get("X-Forwarded-For")
	}
	if ipAddress == "" {
		ipAddress = c.IP()
	}
	return ipAddress
}
