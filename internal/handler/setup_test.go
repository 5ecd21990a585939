package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"medi-ai-go/internal/config"
	"medi-ai-go/internal/handler"
	"medi-ai-go/internal/middleware"
	"medi-ai-go/internal/repository"
	"medi-ai-go/internal/service"
	"medi-ai-go/pkg/llm"
	"medi-ai-go/pkg/token"
)

// fakeLLMClient 是测试用的上游客户端替身，记录调用次数。
type fakeLLMClient struct {
	calls    int
	response string
	err      error
}

func (f *fakeLLMClient) Complete(context.Context, string, *llm.GenerationParams) (string, error) {
	f.calls++
	return f.response, f.err
}

// newTestRouter 按 main.go 的路由表组装一个不依赖外部服务的测试引擎：
// 进程内用户存储、无 Redis、无 MinIO、注入的假 LLM 客户端。
func newTestRouter(fake llm.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)

	userRepo := repository.NewMemoryUserRepository()
	jwtManager := token.NewJWTManager("test-secret-123", 7)
	userService := service.NewUserService(userRepo, jwtManager, nil, config.MinIOConfig{})
	assistantService := service.NewAssistantService(fake, nil)
	doctorService := service.NewDoctorService()

	r := gin.New()
	api := r.Group("/api")

	medicalHandler := handler.NewMedicalHandler(assistantService, doctorService, nil)
	medical := api.Group("/medical")
	{
		medical.POST("/query", middleware.OptionalAuthMiddleware(jwtManager, userService), medicalHandler.Query)
		medical.GET("/categories", medicalHandler.Categories)
		medical.POST("/nearby-doctors", medicalHandler.NearbyDoctors)
		medical.GET("/history", middleware.AuthMiddleware(jwtManager, userService), medicalHandler.History)
	}

	authHandler := handler.NewAuthHandler(userService)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		authed := auth.Group("/")
		authed.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			authed.GET("/profile", authHandler.GetProfile)
			authed.PUT("/profile", authHandler.UpdateProfile)
			authed.POST("/logout", authHandler.Logout)
		}
	}

	return r
}

// doRequest 发送一个 JSON 请求并返回 recorder。
func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody 把响应体解码到 map。
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return m
}
