package service

import (
	"strings"
	"testing"
	"time"
)

// Coerce 必须是全函数：任何输入都能得到带 queryType 与 timestamp 的对象，绝不 panic。
func TestCoerceIsTotal(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	inputs := []string{
		"",
		"plain prose with no braces",
		"{",
		"}",
		"}{",
		"{broken json",
		"{\"overview\": }",
		`{"overview":"ok"}`,
		"prose before {\"overview\":\"embedded\"} prose after",
		strings.Repeat("{", 1000),
	}

	for _, in := range inputs {
		got := Coerce(in, "general", now)
		if got.Fields == nil {
			t.Fatalf("Coerce(%q) returned nil fields", in)
		}
		if got.Fields["queryType"] != "general" {
			t.Errorf("Coerce(%q): queryType = %v, want general", in, got.Fields["queryType"])
		}
		if got.Fields["timestamp"] != "2025-06-01T12:00:00Z" {
			t.Errorf("Coerce(%q): timestamp = %v", in, got.Fields["timestamp"])
		}
	}
}

func TestCoerceValidJSON(t *testing.T) {
	now := time.Now()
	got := Coerce(`{"overview":"x","symptoms":["a","b"]}`, "symptoms", now)

	if !got.Parsed {
		t.Fatal("expected parsed result")
	}
	if got.Fields["overview"] != "x" {
		t.Errorf("overview = %v, want x", got.Fields["overview"])
	}
	symptoms, ok := got.Fields["symptoms"].([]interface{})
	if !ok || len(symptoms) != 2 || symptoms[0] != "a" || symptoms[1] != "b" {
		t.Errorf("symptoms = %v, want [a b]", got.Fields["symptoms"])
	}
	if got.Fields["queryType"] != "symptoms" {
		t.Errorf("queryType = %v", got.Fields["queryType"])
	}
}

// 模型输出里多余的未知字段必须原样保留，不做任何模式校验。
func TestCoerceKeepsUnknownFields(t *testing.T) {
	got := Coerce(`{"overview":"x","vendorExtra":{"a":1}}`, "general", time.Now())
	if !got.Parsed {
		t.Fatal("expected parsed result")
	}
	if _, ok := got.Fields["vendorExtra"]; !ok {
		t.Error("unknown field vendorExtra was dropped")
	}
}

// 模型自己产出的 queryType/timestamp 必须被调用方的值覆盖。
func TestCoerceOverwritesReservedFields(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	got := Coerce(`{"queryType":"model-made-this-up","timestamp":"1999-01-01"}`, "disease", now)
	if got.Fields["queryType"] != "disease" {
		t.Errorf("queryType = %v, want disease", got.Fields["queryType"])
	}
	if got.Fields["timestamp"] != "2025-06-01T12:00:00Z" {
		t.Errorf("timestamp = %v", got.Fields["timestamp"])
	}
}

func TestCoerceProseFallback(t *testing.T) {
	raw := "Diabetes is a condition."
	got := Coerce(raw, "general", time.Now())

	if got.Parsed {
		t.Fatal("expected fallback result")
	}
	if got.Fields["overview"] != raw {
		t.Errorf("overview = %v, want raw text", got.Fields["overview"])
	}
	if got.Fields["rawResponse"] != raw {
		t.Errorf("rawResponse = %v, want raw text", got.Fields["rawResponse"])
	}
	// 回退形态下只有这四个字段
	if len(got.Fields) != 4 {
		t.Errorf("fallback fields = %v, want exactly overview/rawResponse/queryType/timestamp", got.Fields)
	}
}

// 两个独立 JSON 块时，最宽跨度把中间散文一起吞掉导致解析失败，必须回退到原文形态。
// 这钉住的是既有的贪婪匹配行为，见 DESIGN.md。
func TestCoerceGreedySpan(t *testing.T) {
	raw := `noise {"a":1} middle {"b":2} tail`
	got := Coerce(raw, "general", time.Now())

	if got.Parsed {
		t.Fatal("greedy span should not parse as JSON")
	}
	if got.Fields["overview"] != raw || got.Fields["rawResponse"] != raw {
		t.Errorf("fallback shape = %v, want raw text in overview and rawResponse", got.Fields)
	}
}

func TestExtractJSONSpan(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{`{"a":1}`, `{"a":1}`, true},
		{`x {"a":1} y`, `{"a":1}`, true},
		{`x {"a":1} y {"b":2} z`, `{"a":1} y {"b":2}`, true},
		{"no braces", "", false},
		{"only open {", "", false},
		{"} reversed {", "", false},
	}
	for _, tt := range tests {
		got, ok := extractJSONSpan(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("extractJSONSpan(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
