package users

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/errdefs"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/handlers/common"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Create stores a username/password account.
// Every failure answers 400 {"error": "Error creating user", "details": ...}.
func (h *Handler) Create(c *gin.Context) {
	var in service.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		h.fail(c, fmt.Errorf("%w: malformed JSON body", errdefs.ErrValidation))
		return
	}
	a, err := h.users.CreateUser(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    gin.H{"username": a.Username},
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	details := "Internal error."
	if status, _ := common.StatusOf(err); status == http.StatusInternalServerError {
		h.logger.Error("create account failed", zap.Error(err))
	} else {
		details = common.Message(err)
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Error creating user", "details": details})
}
