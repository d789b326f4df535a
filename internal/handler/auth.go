package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/prajvalpatil/cashbook-prototype/internal/ledger"
	"github.com/prajvalpatil/cashbook-prototype/internal/store"
	"github.com/prajvalpatil/cashbook-prototype/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves login for the fixed seeded accounts.
type AuthHandler struct {
	Store     *store.Store
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthHandler(st *store.Store, jwtSecret string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthHandler{
		Store:     st,
		JWTSecret: jwtSecret,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
	}
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin member"`
}

// Login checks username, password and role together: a valid password
// under the wrong role is still rejected.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	user, err := h.Store.UserByUsername(req.Username)
	if err != nil {
		if ledger.IsNotFound(err) {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid credentials or role")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "lookup failed")
		}
		return
	}

	if user.Role != req.Role {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid credentials or role")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid credentials or role")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, user.Role, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "generate token failed")
		return
	}

	util.Success(c, util.Response{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
			"name":     user.Name,
		},
	})
}

// GetMe returns the current session user.
func GetMe(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	util.Success(c, util.Response{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
			"name":     user.Name,
		},
	})
}
