package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-share-api/internal/application/ports"
	"file-share-api/internal/interface/api/rest/dto/auth"
	"file-share-api/internal/interface/api/rest/dto/user"
	"file-share-api/internal/interface/api/rest/middleware"
	"file-share-api/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger      *zap.Logger
	authService ports.AuthService
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	authService ports.AuthService,
	tokens ports.TokenService,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		authService: authService,
	}

	required := middleware.AuthMiddleware(tokens)
	r.POST(RouteRegister, ac.RegisterHandler)
	r.POST(RouteLogin, ac.LoginHandler)
	r.GET(RouteMe, required, ac.MeHandler)
	r.POST(RouteLogout, required, ac.LogoutHandler)
	r.PUT(RouteProfile, required, ac.UpdateProfileHandler)
	r.PUT(RouteChangePassword, required, ac.ChangePasswordHandler)

	return ac
}

func (ac *AuthController) RegisterHandler(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json", nil)
		return
	}
	if errs := validator.ValidateRegister(req); errs != nil {
		badRequest(c, "invalid request body", errs)
		return
	}

	s, err := ac.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(c, ac.logger, err, "failed to register")
		return
	}

	c.JSON(http.StatusCreated, auth.ToResponse(*s))
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json", nil)
		return
	}
	if errs := validator.ValidateLogin(req); errs != nil {
		badRequest(c, "invalid request body", errs)
		return
	}

	s, err := ac.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, ac.logger, err, "failed to login")
		return
	}

	c.JSON(http.StatusOK, auth.ToResponse(*s))
}

func (ac *AuthController) MeHandler(c *gin.Context) {
	id, _ := middleware.Identity(c)

	u, err := ac.authService.Me(c.Request.Context(), id.UserID)
	if err != nil {
		writeError(c, ac.logger, err, "failed to get a user")
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

// LogoutHandler only acknowledges: tokens are stateless and expire on their own.
func (ac *AuthController) LogoutHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (ac *AuthController) UpdateProfileHandler(c *gin.Context) {
	var req auth.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json", nil)
		return
	}
	if errs := validator.ValidateProfile(req); errs != nil {
		badRequest(c, "invalid request body", errs)
		return
	}

	id, _ := middleware.Identity(c)
	u, err := ac.authService.UpdateProfile(c.Request.Context(), id.UserID, req.Name, req.Email)
	if err != nil {
		writeError(c, ac.logger, err, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (ac *AuthController) ChangePasswordHandler(c *gin.Context) {
	var req auth.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json", nil)
		return
	}
	if errs := validator.ValidateChangePassword(req); errs != nil {
		badRequest(c, "invalid request body", errs)
		return
	}

	id, _ := middleware.Identity(c)
	if err := ac.authService.ChangePassword(c.Request.Context(), id.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, ac.logger, err, "failed to change password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
