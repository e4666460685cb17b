package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"apexfit/api/internal/apperr"
	"apexfit/api/internal/models"
	"apexfit/api/internal/security"
	"apexfit/api/internal/service"
)

type registerRequest struct {
	Email        string   `json:"email" binding:"required,email"`
	Password     string   `json:"password" binding:"required,min=8"`
	Name         string   `json:"name" binding:"required"`
	Age          *int     `json:"age"`
	Sex          *string  `json:"sex"`
	HeightCm     *float64 `json:"heightCm"`
	WeightKg     *float64 `json:"weightKg"`
	Goal         *string  `json:"goal"`
	FitnessLevel *string  `json:"fitnessLevel"`
	Equipment    *string  `json:"equipment"`
	DaysPerWeek  *int     `json:"daysPerWeek"`
}

type authResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	DeviceID     string       `json:"deviceId"`
	User         userResponse `json:"user"`
}

type userResponse struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Status       string   `json:"status"`
	Age          *int     `json:"age,omitempty"`
	Sex          *string  `json:"sex,omitempty"`
	HeightCm     *float64 `json:"heightCm,omitempty"`
	WeightKg     *float64 `json:"weightKg,omitempty"`
	Goal         *string  `json:"goal,omitempty"`
	FitnessLevel *string  `json:"fitnessLevel,omitempty"`
	Equipment    *string  `json:"equipment,omitempty"`
	DaysPerWeek  *int     `json:"daysPerWeek,omitempty"`
}

func toUserResponse(user models.User) userResponse {
	return userResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Role:         string(user.Role),
		Status:       string(user.Status),
		Age:          user.Age,
		Sex:          user.Sex,
		HeightCm:     user.HeightCm,
		WeightKg:     user.WeightKg,
		Goal:         user.Goal,
		FitnessLevel: user.FitnessLevel,
		Equipment:    user.Equipment,
		DaysPerWeek:  user.DaysPerWeek,
	}
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Wrap(apperr.CodeBadRequest, "Invalid registration payload.", err))
		return
	}

	result, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		Age:          req.Age,
		Sex:          req.Sex,
		HeightCm:     req.HeightCm,
		WeightKg:     req.WeightKg,
		Goal:         req.Goal,
		FitnessLevel: req.FitnessLevel,
		Equipment:    req.Equipment,
		DaysPerWeek:  req.DaysPerWeek,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			h.fail(c, apperr.Wrap(apperr.CodeEmailTaken, "That email is already registered.", err))
			return
		}
		h.fail(c, apperr.Wrap(apperr.CodeBadRequest, "Registration failed.", err))
		return
	}

	sendAuthResponse(c, result)
}

type loginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	DeviceID   string `json:"deviceId"`
	DeviceName string `json:"deviceName"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Wrap(apperr.CodeBadRequest, "Invalid login payload.", err))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), service.LoginInput{
		Email:      req.Email,
		Password:   req.Password,
		DeviceID:   req.DeviceID,
		DeviceName: req.DeviceName,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
	})
	if err != nil {
		if errors.Is(err, service.ErrUserSuspended) {
			h.fail(c, apperr.Wrap(apperr.CodeForbidden, "This account is suspended.", err))
			return
		}
		h.fail(c, apperr.Wrap(apperr.CodeUnauthorized, "Invalid email or password.", err))
		return
	}

	sendAuthResponse(c, result)
}

type refreshRequest struct {
	UserID       string `json:"userId" binding:"required"`
	DeviceID     string `json:"deviceId" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func (h HandlerSet) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Wrap(apperr.CodeBadRequest, "Invalid refresh payload.", err))
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), service.RefreshInput{
		UserID:       req.UserID,
		DeviceID:     req.DeviceID,
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		h.fail(c, apperr.Wrap(apperr.CodeUnauthorized, "Session refresh failed.", err))
		return
	}

	sendAuthResponse(c, result)
}

type logoutRequest struct {
	UserID   string `json:"userId" binding:"required"`
	DeviceID string `json:"deviceId" binding:"required"`
}

func (h HandlerSet) Logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Wrap(apperr.CodeBadRequest, "Invalid logout payload.", err))
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.UserID, req.DeviceID); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func sendAuthResponse(c *gin.Context, result service.AuthResult) {
	c.JSON(http.StatusOK, authResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		DeviceID:     result.DeviceID,
		User:         toUserResponse(result.User),
	})
}

func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("current_user")
	if !exists {
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	return user, ok
}

func (h HandlerSet) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		h.fail(c, apperr.New(apperr.CodeUnauthorized, "Unauthorized."))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": toUserResponse(user),
	})
}

type sessionResponse struct {
	ID         string    `json:"id"`
	DeviceID   string    `json:"deviceId"`
	DeviceName string    `json:"deviceName"`
	IPAddress  string    `json:"ipAddress"`
	UserAgent  string    `json:"userAgent"`
	LastSeenAt time.Time `json:"lastSeenAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
	Current    bool      `json:"current"`
}

func (h HandlerSet) ListSessions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		h.fail(c, apperr.New(apperr.CodeUnauthorized, "Unauthorized."))
		return
	}

	claimsVal, _ := c.Get("access_claims")
	claims, ok := claimsVal.(security.AccessClaims)
	if !ok {
		h.fail(c, apperr.New(apperr.CodeUnauthorized, "Unauthorized."))
		return
	}

	sessions, err := h.sessions.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]sessionResponse, 0, len(sessions))
	for _, session := range sessions {
		resp = append(resp, sessionResponse{
			ID:         session.ID,
			DeviceID:   session.DeviceID,
			DeviceName: session.DeviceName,
			IPAddress:  session.IPAddress,
			UserAgent:  session.UserAgent,
			LastSeenAt: session.LastSeenAt,
			ExpiresAt:  session.ExpiresAt,
			Current:    session.ID == claims.SessionID,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": resp,
	})
}

func (h HandlerSet) RevokeSession(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		h.fail(c, apperr.New(apperr.CodeUnauthorized, "Unauthorized."))
		return
	}

	deviceID := c.Param("deviceId")
	if deviceID == "" {
		h.fail(c, apperr.New(apperr.CodeBadRequest, "deviceId required."))
		return
	}

	claimsVal, _ := c.Get("access_claims")
	claims, ok := claimsVal.(security.AccessClaims)
	if !ok {
		h.fail(c, apperr.New(apperr.CodeUnauthorized, "Unauthorized."))
		return
	}
	if claims.DeviceID == deviceID {
		h.fail(c, apperr.New(apperr.CodeBadRequest, "Cannot revoke the current device."))
		return
	}

	if err := h.sessions.DeleteByDevice(c.Request.Context(), user.ID, deviceID); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
