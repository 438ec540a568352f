package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/middleware"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/services"
)

// OTPHandler handles phone verification requests
type OTPHandler struct {
	otp *services.OTPService
}

// NewOTPHandler creates a new OTP handler
func NewOTPHandler(otp *services.OTPService) *OTPHandler {
	return &OTPHandler{otp: otp}
}

type sendCodeRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type verifyCodeRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// SendCode issues a verification code for the authenticated user's phone
func (h *OTPHandler) SendCode(c *fiber.Ctx) error {
	var req sendCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	confirmation, err := h.otp.RequestCode(middleware.UserID(c), req.Phone)
	switch {
	case errors.Is(err, services.ErrInvalidPhoneFormat):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrDispatchFailed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send verification code",
		})
	}

	return c.JSON(fiber.Map{
		"message":      "Verification code sent",
		"confirmation": confirmation,
	})
}

// VerifyCode checks the submitted code and marks the phone verified
func (h *OTPHandler) VerifyCode(c *fiber.Ctx) error {
	var req verifyCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	err := h.otp.VerifyCode(middleware.UserID(c), req.Phone, req.Code)
	if errors.Is(err, services.ErrInvalidOrExpired) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to verify code",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Phone number verified",
	})
}
