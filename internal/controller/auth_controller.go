package controller

import (
	"github.com/ayaxan7/seller-dashboard/internal/dto"
	"github.com/ayaxan7/seller-dashboard/internal/service"
	"github.com/ayaxan7/seller-dashboard/pkg/errs"
	"github.com/ayaxan7/seller-dashboard/pkg/response"
	"github.com/ayaxan7/seller-dashboard/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	service service.AuthService
}

func CreateAuthController(e *echo.Group, service service.AuthService, isLoggedIn echo.MiddlewareFunc) {
	ac := AuthController{
		service: service,
	}
	e.POST("/auth/register", ac.Register)
	e.POST("/auth/login", ac.Login)
	e.POST("/auth/logout", ac.Logout, isLoggedIn)
	e.GET("/auth/session", ac.Session)
	e.GET("/auth/me", ac.Me, isLoggedIn)
}

func (c *AuthController) Register(e echo.Context) error {
	payload := dto.AuthRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "Register").Msg("")
	}

	if payload.ConfirmPassword != "" && payload.Password != payload.ConfirmPassword {
		return response.WriteErrorResponse(e, errs.ErrPasswordMismatch, nil)
	}

	sess, err := c.service.SignUp(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", map[string]string{
		"vendorId": sess.VendorID,
		"email":    sess.Email,
	})
}

func (c *AuthController) Login(e echo.Context) error {
	payload := dto.AuthRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "Login").Msg("")
	}

	respPayload, err := c.service.SignIn(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", respPayload)
}

func (c *AuthController) Logout(e echo.Context) error {
	c.service.SignOut()

	return response.WriteSuccessResponse(e, "", nil)
}

// Me returns the vendor identity carried by the verified token, independent
// of the in-process session store.
func (c *AuthController) Me(e echo.Context) error {
	externalID, email := utils.ExtractTokenUser(e)
	if externalID == "" {
		return response.WriteErrorResponse(e, errs.ErrNotLoggedIn, nil)
	}

	return response.WriteSuccessResponse(e, "", map[string]string{
		"vendorId": externalID,
		"email":    email,
	})
}

// Session reports whether a vendor identity is active; the client uses it
// once at startup to pick the initial screen.
func (c *AuthController) Session(e echo.Context) error {
	return response.WriteSuccessResponse(e, "", map[string]bool{
		"loggedIn": c.service.IsLoggedIn(),
	})
}
