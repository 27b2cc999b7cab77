package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bike-catalog-admin/internal/auth"
	"github.com/iliyamo/bike-catalog-admin/internal/middleware"
)

// AuthHandler serves admin login and the current-admin endpoint.
type AuthHandler struct {
	Auth *auth.Authenticator
}

func NewAuthHandler(a *auth.Authenticator) *AuthHandler {
	return &AuthHandler{Auth: a}
}

// ----- DTOs -----

// loginReq fields are pointers so an absent field can be told apart from an
// empty one. Empty credentials are checked like any other and fail with 401.
type loginReq struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type adminResp struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// Login handles POST /api/v1/admin/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid request body")
	}
	if req.Username == nil || req.Password == nil {
		return detail(c, http.StatusUnprocessableEntity, "username and password are required")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	tok, err := h.Auth.Login(ctx, *req.Username, *req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return middleware.Unauthorized(c, middleware.DetailInvalidCredentials)
		}
		return internalError(c, "login", err)
	}
	return c.JSON(http.StatusOK, tokenResp{AccessToken: tok.AccessToken, TokenType: tok.TokenType})
}

// Me handles GET /api/v1/admin/me and echoes the authenticated admin.
func (h *AuthHandler) Me(c echo.Context) error {
	a, ok := middleware.CurrentAdmin(c)
	if !ok {
		return middleware.Unauthorized(c, middleware.DetailNotAuthenticated)
	}
	return c.JSON(http.StatusOK, adminResp{ID: a.ID, Username: a.Username})
}
