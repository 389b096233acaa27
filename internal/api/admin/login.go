package admin

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lakectf/gamed/internal/auth"
	"github.com/lakectf/gamed/internal/util"
)

func (h *Handler) login(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.Admin.Token.Password)) != 1 {
		util.Error(c, http.StatusUnauthorized, fmt.Errorf("invalid password"))
		return
	}

	token, err := auth.GenerateAdminJWT(h.cfg.Admin.Token.Secret, h.cfg.Admin.Token.ExpireHours)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, err)
		return
	}

	util.Success(c, gin.H{"token": token}, "Login successful")
}
