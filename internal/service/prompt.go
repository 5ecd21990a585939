package service

import (
	"fmt"
	"strings"

	"medi-ai-go/internal/model"
)

// systemPrompt 是发给上游模型的固定策略说明，约定输出的 JSON 结构与安全规则。
const systemPrompt = `You are a professional medical assistant AI. Your role is to provide clear, structured, and accurate medical information while maintaining strict safety guidelines.

IMPORTANT GUIDELINES:
1. Always provide information in a structured format
2. Never provide personalized prescriptions or diagnoses
3. Always recommend consulting a licensed healthcare provider
4. Include emergency warning signs when relevant
5. Provide general information only, not specific medical advice
6. Always include a disclaimer

FORMAT YOUR RESPONSE AS JSON with the following structure:
{
  "overview": "Brief overview of the condition/topic",
  "possibleConditions": ["condition1", "condition2"] (for symptom queries),
  "symptoms": ["symptom1", "symptom2"],
  "causes": ["cause1", "cause2"],
  "riskFactors": ["factor1", "factor2"],
  "commonMedications": [
    {
      "name": "medication name",
      "type": "tablet/syrup/injection",
      "generalDosage": "general dosage info (non-personalized)",
      "purpose": "what it treats"
    }
  ],
  "warnings": ["warning1", "warning2"],
  "whenToSeeDoctor": ["situation1", "situation2"],
  "emergencySymptoms": ["emergency1", "emergency2"],
  "preventiveMeasures": ["measure1", "measure2"]
}

Ensure all medical information is accurate, up-to-date, and presented in a way that's easy for patients to understand.`

// categoryFraming 是从类别标签到问题铺垫句的纯映射，default 分支是 general。
func categoryFraming(category model.QueryCategory, query string) string {
	switch category {
	case model.CategorySymptoms:
		return fmt.Sprintf(`The user is describing symptoms: "%s". Provide possible conditions, their explanations, and when to seek medical help.`, query)
	case model.CategoryDisease:
		return fmt.Sprintf(`The user is asking about a disease/condition: "%s". Provide comprehensive information about this condition.`, query)
	case model.CategoryMedication:
		return fmt.Sprintf(`The user is asking about medication: "%s". Provide general information about this medication, its uses, and safety guidelines.`, query)
	default:
		return fmt.Sprintf(`The user has a general medical question: "%s". Provide helpful, accurate medical information.`, query)
	}
}

// locationClause 在用户提交了位置时，追加一句让模型补充附近设施的说明。
func locationClause(loc *model.Location) string {
	if loc == nil || loc.City == "" {
		return ""
	}
	place := loc.City
	if loc.State != "" {
		place += ", " + loc.State
	}
	if loc.Country != "" {
		place += ", " + loc.Country
	}
	return fmt.Sprintf("The user is located in %s. Where relevant, include nearby medical facilities and the kind of specialists to look for in that area.", place)
}

// BuildPrompt 拼接系统策略、类别铺垫句和可选的位置说明，生成最终 prompt。
func BuildPrompt(category model.QueryCategory, query string, loc *model.Location) string {
	parts := []string{systemPrompt, categoryFraming(category, query)}
	if clause := locationClause(loc); clause != "" {
		parts = append(parts, clause)
	}
	parts = append(parts, "Provide your response in the JSON format specified above.")
	return strings.Join(parts, "\n\n")
}
