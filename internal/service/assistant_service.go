package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medi-ai-go/internal/model"
	"medi-ai-go/pkg/llm"
	"medi-ai-go/pkg/log"
)

// AssistantService 定义了医疗问答的业务接口。
type AssistantService interface {
	// Query 校验查询文本，构建 prompt，单次调用上游模型并把回答强制解析为结果对象。
	// 返回的 map 即响应中的 data 字段，未知的模型字段原样保留。
	Query(ctx context.Context, text, queryType string, loc *model.Location) (map[string]interface{}, error)
}

type assistantService struct {
	llmClient  llm.Client
	classifier Classifier // 可为 nil，此时缺失的 queryType 直接落到 general
}

// NewAssistantService 创建一个新的 AssistantService 实例。
// classifier 传 nil 时禁用关键词推断。
func NewAssistantService(llmClient llm.Client, classifier Classifier) AssistantService {
	return &assistantService{
		llmClient:  llmClient,
		classifier: classifier,
	}
}

// Query 是查询管线的入口。每次调用无共享状态、无副作用落盘，
// 上游失败只尝试一次，不做重试或退避。
func (s *assistantService) Query(ctx context.Context, text, queryType string, loc *model.Location) (map[string]interface{}, error) {
	// 1. 校验：空白查询在任何外呼之前失败
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyQuery
	}

	// 2. 类别归一。echo 回显调用方提交的原始字符串；
	// 仅当调用方什么都没给且启用了分类器时，才用推断结果补位。
	category := model.ParseCategory(queryType)
	echo := queryType
	if echo == "" {
		if s.classifier != nil {
			category = s.classifier.Classify(trimmed)
		}
		echo = string(category)
	}

	q := model.MedicalQuery{
		Text:        trimmed,
		Category:    category,
		RawCategory: echo,
		Location:    loc,
	}

	// 3. 构建 prompt 并单次调用上游
	prompt := BuildPrompt(q.Category, q.Text, q.Location)
	raw, err := s.llmClient.Complete(ctx, prompt, nil)
	if err != nil {
		log.Errorf("assistant upstream call failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	// 4. 强制解析，总是成功（最差回退为原文形态）
	result := Coerce(raw, q.RawCategory, time.Now())
	if !result.Parsed {
		log.Warnf("assistant response was not valid JSON, falling back to raw text (len=%d)", len(raw))
	}
	return result.Fields, nil
}
