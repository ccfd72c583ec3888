package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/usergateway/internal/credentials"
	"github.com/gogotex/usergateway/internal/gateway"
	"github.com/gogotex/usergateway/internal/users"
	"github.com/gogotex/usergateway/pkg/logger"
	"github.com/gogotex/usergateway/pkg/middleware"
)

// RegisterRequest is the body of POST /api/register
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UsersHandler holds dependencies
type UsersHandler struct {
	svc *users.Service
}

func NewUsersHandler(svc *users.Service) *UsersHandler {
	return &UsersHandler{svc: svc}
}

// Register routes under /api
func (h *UsersHandler) Register(rg *gin.RouterGroup) {
	api := rg.Group("/api")
	api.POST("/register", h.RegisterUser)
	api.GET("/users", h.ListUsers)
}

// RegisterUser stores one user and answers with its stored representation.
func (h *UsersHandler) RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	u, err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		status := createStatus(err)
		logger.Warnf("register failed (request=%s status=%d): %v", middleware.GetRequestID(c), status, err)
		c.JSON(status, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, u)
}

// ListUsers returns every stored user.
func (h *UsersHandler) ListUsers(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		logger.Warnf("list users failed (request=%s): %v", middleware.GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func createStatus(err error) int {
	if errors.Is(err, credentials.ErrRejected) {
		return http.StatusBadRequest
	}
	switch gateway.KindOf(err) {
	case gateway.KindValidation:
		return http.StatusBadRequest
	case gateway.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
