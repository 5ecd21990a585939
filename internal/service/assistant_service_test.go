package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"medi-ai-go/internal/model"
	"medi-ai-go/pkg/llm"
)

// fakeLLMClient 记录调用次数和收到的 prompt，按预设返回回答或错误。
type fakeLLMClient struct {
	calls      int
	lastPrompt string
	response   string
	err        error
}

func (f *fakeLLMClient) Complete(_ context.Context, prompt string, _ *llm.GenerationParams) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.response, f.err
}

// 全空白查询必须在任何外呼之前失败。
func TestQueryRejectsBlankBeforeUpstreamCall(t *testing.T) {
	fake := &fakeLLMClient{response: "unused"}
	svc := NewAssistantService(fake, nil)

	for _, q := range []string{"", "   ", "\n\t "} {
		_, err := svc.Query(context.Background(), q, "general", nil)
		if !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("Query(%q): err = %v, want ErrEmptyQuery", q, err)
		}
	}
	if fake.calls != 0 {
		t.Errorf("upstream called %d times for blank queries, want 0", fake.calls)
	}
}

func TestQueryUpstreamFailure(t *testing.T) {
	fake := &fakeLLMClient{err: errors.New("quota exceeded")}
	svc := NewAssistantService(fake, nil)

	_, err := svc.Query(context.Background(), "what is asthma", "disease", nil)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
	// 单次尝试，不重试
	if fake.calls != 1 {
		t.Errorf("upstream called %d times, want exactly 1", fake.calls)
	}
}

func TestQueryCoercesAndEchoesCategory(t *testing.T) {
	fake := &fakeLLMClient{response: `{"overview":"Asthma overview"}`}
	svc := NewAssistantService(fake, nil)

	result, err := svc.Query(context.Background(), "what is asthma", "disease", nil)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result["overview"] != "Asthma overview" {
		t.Errorf("overview = %v", result["overview"])
	}
	if result["queryType"] != "disease" {
		t.Errorf("queryType = %v, want disease", result["queryType"])
	}
	if result["timestamp"] == nil {
		t.Error("timestamp missing")
	}
}

// 无法识别的类别字符串原样回显，prompt 落到 general 铺垫句。
func TestQueryUnrecognizedCategory(t *testing.T) {
	fake := &fakeLLMClient{response: "not json"}
	svc := NewAssistantService(fake, nil)

	result, err := svc.Query(context.Background(), "help", "homeopathy", nil)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result["queryType"] != "homeopathy" {
		t.Errorf("queryType = %v, want verbatim echo", result["queryType"])
	}
	if !strings.Contains(fake.lastPrompt, "general medical question") {
		t.Error("prompt did not fall back to the general framing")
	}
}

// 缺失 queryType 且未启用分类器时，默认落到 general。
func TestQueryDefaultsToGeneral(t *testing.T) {
	fake := &fakeLLMClient{response: "{}"}
	svc := NewAssistantService(fake, nil)

	result, err := svc.Query(context.Background(), "tell me something", "", nil)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result["queryType"] != "general" {
		t.Errorf("queryType = %v, want general", result["queryType"])
	}
}

// 启用分类器后，缺失的 queryType 由关键词推断补位。
func TestQueryClassifierFallback(t *testing.T) {
	fake := &fakeLLMClient{response: "{}"}
	svc := NewAssistantService(fake, NewKeywordClassifier())

	result, err := svc.Query(context.Background(), "I have a headache and fever", "", nil)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result["queryType"] != "symptoms" {
		t.Errorf("queryType = %v, want symptoms", result["queryType"])
	}
	if !strings.Contains(fake.lastPrompt, "describing symptoms") {
		t.Error("prompt did not use the symptoms framing")
	}
	// 调用方显式给出的 queryType 不被分类器覆盖
	result, err = svc.Query(context.Background(), "I have a headache", "disease", nil)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result["queryType"] != "disease" {
		t.Errorf("queryType = %v, want disease", result["queryType"])
	}
}

func TestQueryIncludesLocationClause(t *testing.T) {
	fake := &fakeLLMClient{response: "{}"}
	svc := NewAssistantService(fake, nil)

	loc := &model.Location{City: "Austin", State: "TX", Country: "USA"}
	if _, err := svc.Query(context.Background(), "knee pain", "symptoms", loc); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if !strings.Contains(fake.lastPrompt, "Austin, TX, USA") {
		t.Error("prompt missing location clause")
	}

	fake2 := &fakeLLMClient{response: "{}"}
	svc2 := NewAssistantService(fake2, nil)
	if _, err := svc2.Query(context.Background(), "knee pain", "symptoms", nil); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if strings.Contains(fake2.lastPrompt, "located in") {
		t.Error("prompt has a location clause without a location")
	}
}

func TestBuildPromptContainsPolicy(t *testing.T) {
	prompt := BuildPrompt(model.CategoryMedication, "ibuprofen", nil)
	for _, want := range []string{
		"professional medical assistant",
		"FORMAT YOUR RESPONSE AS JSON",
		`asking about medication: "ibuprofen"`,
		"JSON format specified above",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
