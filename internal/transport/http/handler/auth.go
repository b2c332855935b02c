package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/authd/internal/domain"
	"github.com/ErlanBelekov/authd/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Login(ctx context.Context, in usecase.LoginInput) (*domain.AuthResult, error)
	Register(ctx context.Context, in usecase.RegisterInput) (*domain.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	Profile(ctx context.Context, id string) (*domain.PublicUser, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type registerRequest struct {
	Email     string `json:"email"     binding:"required,email"`
	Phone     string `json:"phone"     binding:"required"`
	FirstName string `json:"firstName"`
	BirthDay  string `json:"birthDay"`
	Password  string `json:"password"  binding:"required,min=8"`
}

type authResponse struct {
	User         domain.PublicUser `json:"user"`
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !h.bind(c, &req) {
		return
	}

	res, err := h.authUsecase.Login(c.Request.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, "login", err, errInvalidPassword)
		return
	}
	c.JSON(http.StatusOK, toResponse(res))
}

// POST /api/auth/login/access-token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if !h.bind(c, &req) {
		return
	}

	res, err := h.authUsecase.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.fail(c, "refresh", err, errInvalidRefreshToken)
		return
	}
	c.JSON(http.StatusOK, toResponse(res))
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !h.bind(c, &req) {
		return
	}

	res, err := h.authUsecase.Register(c.Request.Context(), usecase.RegisterInput{
		Email:     req.Email,
		Phone:     req.Phone,
		FirstName: req.FirstName,
		BirthDay:  req.BirthDay,
		Password:  req.Password,
	})
	if err != nil {
		h.fail(c, "register", err, errUnauthorized)
		return
	}
	c.JSON(http.StatusOK, toResponse(res))
}

// GET /api/auth/me requires middleware.Auth.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUsecase.Profile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.fail(c, "profile", err, errUnauthorized)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return false
	}
	return true
}

// fail maps domain errors onto status codes. Store and other internal errors
// are logged and answered with a generic message.
func (h *AuthHandler) fail(c *gin.Context, op string, err error, unauthorizedMsg string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": unauthorizedMsg})
	case errors.Is(err, domain.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": errEmailRegistered})
	case errors.Is(err, domain.ErrDuplicatePhone):
		c.JSON(http.StatusBadRequest, gin.H{"error": errPhoneRegistered})
	default:
		h.logger.ErrorContext(c.Request.Context(), op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}

func toResponse(res *domain.AuthResult) authResponse {
	return authResponse{
		User:         res.User,
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errInvalidBody
	}

	fe := verrs[0]
	switch {
	case fe.Field() == "Password" && fe.Tag() == "min":
		return errPasswordTooShort
	case fe.Tag() == "email":
		return "Email must be a valid email address"
	case fe.Tag() == "required":
		return fmt.Sprintf("%s is required", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
