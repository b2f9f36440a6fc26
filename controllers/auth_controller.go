package controllers

import (
	"errors"

	"github.com/Shenoy-shank05/zoomoeats/entity"
	"github.com/Shenoy-shank05/zoomoeats/pkg/resp"
	"github.com/Shenoy-shank05/zoomoeats/services"
	"github.com/Shenoy-shank05/zoomoeats/utils"

	"github.com/gin-gonic/gin"
)

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
}
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	Auth  *services.AuthService
	Users *services.UserService
}

func NewAuthController(auth *services.AuthService, users *services.UserService) *AuthController {
	return &AuthController{Auth: auth, Users: users}
}

func userOut(u *entity.User) gin.H {
	return gin.H{"id": u.ID, "email": u.Email, "name": u.Name, "phone": u.Phone, "role": u.Role}
}

// POST /auth/signup
func (a *AuthController) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := a.Auth.Signup(req.Email, req.Password, req.Name, req.Phone)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, userOut(u))
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, u, err := a.Auth.Login(req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		resp.Unauthorized(c, err.Error())
		return
	}
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "user": userOut(u)})
}

// GET /users/me
func (a *AuthController) Me(c *gin.Context) {
	u, err := a.Users.Me(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, userOut(u))
}

// PATCH /users/me
func (a *AuthController) UpdateMe(c *gin.Context) {
	var in services.UpdateMeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := a.Users.UpdateMe(utils.CurrentUserID(c), in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, userOut(u))
}

// GET /users/me/addresses
func (a *AuthController) ListAddresses(c *gin.Context) {
	rows, err := a.Users.ListAddresses(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rows)
}

// POST /users/me/addresses
func (a *AuthController) AddAddress(c *gin.Context) {
	var in services.AddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	addr, err := a.Users.AddAddress(utils.CurrentUserID(c), in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, addr)
}
