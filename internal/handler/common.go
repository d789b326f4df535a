package handler

import (
	"net/http"

	"github.com/prajvalpatil/cashbook-prototype/internal/ledger"
	"github.com/prajvalpatil/cashbook-prototype/internal/middleware"
	"github.com/prajvalpatil/cashbook-prototype/internal/models"
	"github.com/prajvalpatil/cashbook-prototype/internal/util"

	"github.com/gin-gonic/gin"
)

// requireUser fetches the authenticated user or writes the auth error.
func requireUser(c *gin.Context) (*models.User, bool) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}
	return user, true
}

// requireAdmin additionally rejects non-admin users.
func requireAdmin(c *gin.Context) (*models.User, bool) {
	user, ok := requireUser(c)
	if !ok {
		return nil, false
	}
	if user.Role != "admin" {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "admin only")
		return nil, false
	}
	return user, true
}

// respondError maps core errors onto the response envelope.
func respondError(c *gin.Context, err error) {
	switch {
	case ledger.IsValidation(err):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	case ledger.IsNotFound(err):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, err.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "operation failed, please retry")
	}
}
