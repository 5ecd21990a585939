// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medi-ai-go/internal/model"
	"medi-ai-go/internal/repository"
	"medi-ai-go/internal/service"
	"medi-ai-go/pkg/log"
)

// disclaimer 随每个成功的查询响应返回。
const disclaimer = "This AI does not replace professional medical advice. Always consult a licensed healthcare provider for medical decisions."

// MedicalHandler 负责处理医疗问答相关的 API 请求。
type MedicalHandler struct {
	assistantService service.AssistantService
	doctorService    service.DoctorService
	historyRepo      repository.HistoryRepository // 可为 nil（未配置 Redis）
}

// NewMedicalHandler 创建一个新的 MedicalHandler 实例。
func NewMedicalHandler(assistantService service.AssistantService, doctorService service.DoctorService, historyRepo repository.HistoryRepository) *MedicalHandler {
	return &MedicalHandler{
		assistantService: assistantService,
		doctorService:    doctorService,
		historyRepo:      historyRepo,
	}
}

// QueryRequest 定义了医疗查询 API 的请求体结构。
type QueryRequest struct {
	Query     string          `json:"query"`
	QueryType string          `json:"queryType"`
	Location  *model.Location `json:"location"`
}

// Query 处理 POST /api/medical/query。
func (h *MedicalHandler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Query is required",
			"message": "Please provide a valid medical query",
		})
		return
	}

	result, err := h.assistantService.Query(c.Request.Context(), req.Query, req.QueryType, req.Location)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Query is required",
				"message": "Please provide a valid medical query",
			})
			return
		}
		log.Errorf("medical query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to process medical query",
			"message": service.ErrUpstream.Error(),
		})
		return
	}

	// 登录用户的查询追加到历史记录；失败只记日志，不影响响应
	if h.historyRepo != nil {
		if userValue, ok := c.Get("user"); ok {
			if user, ok := userValue.(*model.User); ok {
				record := model.QueryRecord{
					Query:     req.Query,
					QueryType: asString(result["queryType"]),
					Timestamp: time.Now(),
				}
				if err := h.historyRepo.AppendQuery(c.Request.Context(), user.ID, record); err != nil {
					log.Warnf("failed to append query history for user %s: %v", user.ID, err)
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       result,
		"disclaimer": disclaimer,
	})
}

// Categories 处理 GET /api/medical/categories，返回固定的四个类别。
func (h *MedicalHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": []model.Category{
			{ID: "symptoms", Name: "Symptom Analysis", Description: "Describe your symptoms to get possible conditions", Icon: "🩺"},
			{ID: "disease", Name: "Disease Information", Description: "Learn about specific diseases and conditions", Icon: "📋"},
			{ID: "medication", Name: "Medication Guide", Description: "Get information about medications", Icon: "💊"},
			{ID: "general", Name: "General Health", Description: "Ask general health-related questions", Icon: "❤️"},
		},
	})
}

// NearbyDoctorsRequest 定义了附近医生检索 API 的请求体结构。
type NearbyDoctorsRequest struct {
	Location  *model.Location `json:"location"`
	Specialty string          `json:"specialty"`
}

// NearbyDoctors 处理 POST /api/medical/nearby-doctors。
func (h *MedicalHandler) NearbyDoctors(c *gin.Context) {
	var req NearbyDoctorsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Location == nil || req.Location.City == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Location is required",
			"message": "Please provide a location with a city",
		})
		return
	}

	doctors := h.doctorService.Search(*req.Location, req.Specialty)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"doctors":  doctors,
		"location": req.Location,
	})
}

// History 处理 GET /api/medical/history，返回当前用户最近的查询。
func (h *MedicalHandler) History(c *gin.Context) {
	userValue, exists := c.Get("user")
	user, ok := userValue.(*model.User)
	if !exists || !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve current user"})
		return
	}

	if h.historyRepo == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "history": []model.QueryRecord{}})
		return
	}

	records, err := h.historyRepo.GetRecentQueries(c.Request.Context(), user.ID, 20)
	if err != nil {
		log.Errorf("failed to load query history for user %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load history",
			"message": "Could not load query history",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "history": records})
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
