package service

import (
	"strings"

	"medi-ai-go/internal/model"
)

// Classifier 从查询文本推断类别，是一个可替换的策略接口。
// 当前实现是关键词匹配；换成真正的分类模型时查询管线不需要改动。
type Classifier interface {
	Classify(text string) model.QueryCategory
}

// keywordClassifier 按关键词表猜测类别，任何词都不命中时回到 general。
type keywordClassifier struct{}

// NewKeywordClassifier 创建一个基于关键词的 Classifier。
func NewKeywordClassifier() Classifier {
	return keywordClassifier{}
}

var (
	medicationKeywords = []string{
		"medication", "medicine", "drug", "tablet", "pill", "capsule",
		"syrup", "dose", "dosage", "prescription", "antibiotic",
	}
	symptomKeywords = []string{
		"pain", "ache", "fever", "cough", "headache", "nausea", "dizzy",
		"fatigue", "tired", "sore", "hurt", "swelling", "rash", "symptom",
	}
	diseaseKeywords = []string{
		"diabetes", "cancer", "asthma", "hypertension", "arthritis",
		"disease", "condition", "infection", "syndrome", "disorder",
	}
)

func (keywordClassifier) Classify(text string) model.QueryCategory {
	lower := strings.ToLower(text)
	for _, kw := range medicationKeywords {
		if strings.Contains(lower, kw) {
			return model.CategoryMedication
		}
	}
	for _, kw := range symptomKeywords {
		if strings.Contains(lower, kw) {
			return model.CategorySymptoms
		}
	}
	for _, kw := range diseaseKeywords {
		if strings.Contains(lower, kw) {
			return model.CategoryDisease
		}
	}
	return model.CategoryGeneral
}
