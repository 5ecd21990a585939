package service

import (
	"encoding/json"
	"strings"
	"time"
)

// CoercedResult 是对上游模型原始输出做强制解析后的带标签结果。
// Parsed 为 true 时 Fields 是模型输出里解析出的 JSON 对象（未知字段原样保留）；
// 为 false 时 Fields 是 {overview, rawResponse} 的原文回退形态。
type CoercedResult struct {
	Fields map[string]interface{}
	Parsed bool
}

// extractJSONSpan 返回原文中从第一个 '{' 到最后一个 '}' 的最宽子串。
// 注意这是贪婪匹配：若原文包含多个独立的 {...} 块，取到的跨度会把
// 中间的散文一并吞进去，导致解析失败并回退到原文形态。
// 为了与既有客户端行为兼容，保留这一语义（见 DESIGN.md）。
func extractJSONSpan(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(raw, "}")
	if end < start {
		return "", false
	}
	return raw[start : end+1], true
}

// Coerce 把上游返回的自由文本强制转换为结果对象。
// 对任意字符串输入都是全函数：永远不返回错误、不 panic。
// queryType 和 timestamp 总是最后写入，覆盖模型自己产出的同名字段。
func Coerce(raw, queryType string, now time.Time) CoercedResult {
	var fields map[string]interface{}
	parsed := false

	if span, ok := extractJSONSpan(raw); ok {
		if err := json.Unmarshal([]byte(span), &fields); err == nil {
			parsed = true
		}
	}
	if !parsed {
		fields = map[string]interface{}{
			"overview":    raw,
			"rawResponse": raw,
		}
	}

	fields["queryType"] = queryType
	fields["timestamp"] = now.UTC().Format(time.RFC3339)
	return CoercedResult{Fields: fields, Parsed: parsed}
}
