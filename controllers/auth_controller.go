package controllers

import (
	"laundrypos/pkg/resp"
	"laundrypos/services"
	"laundrypos/utils"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

type AuthController struct{ Svc *services.AuthService }

func NewAuthController(s *services.AuthService) *AuthController { return &AuthController{Svc: s} }

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, w, err := a.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, gin.H{
		"token":  token,
		"worker": w,
		"name":   w.FullName(),
	})
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	w, err := a.Svc.Me(c.Request.Context(), utils.CurrentWorkerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, w)
}

// PATCH /auth/password
func (a *AuthController) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := a.Svc.ChangePassword(c.Request.Context(), utils.CurrentSession(c), req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "password changed"})
}

// POST /auth/logout
func (a *AuthController) Logout(c *gin.Context) {
	a.Svc.Logout(c.Request.Context(), utils.CurrentSession(c))
	resp.OK(c, gin.H{"message": "logged out"})
}
