package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medi-ai-go/internal/model"
	"medi-ai-go/internal/repository"
	"medi-ai-go/internal/service"
	"medi-ai-go/pkg/log"
)

// AuthHandler 负责处理认证和用户资料相关的 API 请求。
type AuthHandler struct {
	userService service.UserService
}

// NewAuthHandler 创建一个新的 AuthHandler 实例。
func NewAuthHandler(userService service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// RegisterRequest 定义了用户注册 API 的请求体结构。
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// Register 处理用户注册请求。
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing required fields",
			"message": "Name, email, and password are required",
		})
		return
	}

	user, tokenString, err := h.userService.Register(req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid email",
				"message": "Please provide a valid email address",
			})
		case errors.Is(err, service.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Weak password",
				"message": "Password must be at least 8 characters long",
			})
		case errors.Is(err, service.ErrEmailExists):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "User already exists",
				"message": "An account with this email already exists",
			})
		default:
			log.Errorf("registration failed for '%s': %v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Registration failed",
				"message": "Failed to create account",
			})
		}
		return
	}

	log.Infof("User '%s' registered successfully", user.Email)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created successfully",
		"user":    user,
		"token":   tokenString,
	})
}

// LoginRequest 定义了用户登录 API 的请求体结构。
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login 处理用户登录请求。
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing credentials",
			"message": "Email and password are required",
		})
		return
	}

	user, tokenString, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid credentials",
				"message": "Email or password is incorrect",
			})
			return
		}
		log.Errorf("login failed for '%s': %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Login failed",
			"message": "Failed to authenticate user",
		})
		return
	}

	log.Infof("User '%s' logged in successfully", user.Email)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    user,
		"token":   tokenString,
	})
}

// GetProfile 获取当前登录用户的资料。用户已由 AuthMiddleware 注入上下文。
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve current user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateProfileRequest 定义了资料更新 API 的请求体结构，缺省字段不修改。
type UpdateProfileRequest struct {
	Name    *string        `json:"name"`
	Phone   *string        `json:"phone"`
	Profile *model.Profile `json:"profile"`
}

// UpdateProfile 处理 PUT /api/auth/profile。
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve current user"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid payload",
			"message": "Request body must be a JSON object",
		})
		return
	}

	updated, err := h.userService.UpdateProfile(user.ID, service.ProfileUpdate{
		Name:    req.Name,
		Phone:   req.Phone,
		Profile: req.Profile,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "User not found",
				"message": "User account not found",
			})
			return
		}
		log.Errorf("profile update failed for '%s': %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to update profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    updated,
	})
}

// Logout 把当前 token 加入黑名单。
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := h.userService.Logout(tokenString); err != nil {
		log.Error("logout failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Logout failed",
			"message": "Failed to revoke token",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

// UploadAvatar 处理 POST /api/auth/avatar（multipart 表单，字段名 avatar）。
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve current user"})
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing file",
			"message": "An 'avatar' file field is required",
		})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid file",
			"message": "Could not read uploaded file",
		})
		return
	}
	defer file.Close()

	updated, err := h.userService.UploadAvatar(
		c.Request.Context(), user.ID,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"),
		file, fileHeader.Size,
	)
	if err != nil {
		if errors.Is(err, service.ErrAvatarDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "Avatar storage unavailable",
				"message": "Avatar uploads are not enabled on this deployment",
			})
			return
		}
		log.Errorf("avatar upload failed for '%s': %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Upload failed",
			"message": "Failed to store avatar",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": updated})
}

// currentUser 从上下文取出 AuthMiddleware 注入的用户对象。
func currentUser(c *gin.Context) (*model.User, bool) {
	userValue, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := userValue.(*model.User)
	return user, ok
}
