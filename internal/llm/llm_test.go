package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"aasaasi/config"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entrySchema() *Schema {
	return &Schema{
		Name: "test-entry",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"meaning":  map[string]any{"type": "string"},
				"examples": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"required": []any{"meaning"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"valid", `{"meaning":"a thing","examples":["one"]}`, false},
		{"missing required", `{"examples":[]}`, true},
		{"wrong type", `{"meaning":3}`, true},
		{"not json", `meaning: thing`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(entrySchema(), tt.text)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var inv *ErrInvalidResponse
			assert.ErrorAs(t, err, &inv)
		})
	}

	assert.NoError(t, validateResponse(nil, "anything"))
}

func TestCleanModelOutput(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanModelOutput("```json\n{\"a\":1}\n```"))
	assert.Equal(t, "# Title", cleanModelOutput("```markdown\n# Title\n```"))
	assert.Equal(t, "plain", cleanModelOutput("  plain \n"))
}

func TestHTTPStatus(t *testing.T) {
	base := errors.New("boom")
	tests := []struct {
		err  error
		want int
	}{
		{&ErrUnauthorized{}, http.StatusUnauthorized},
		{&ErrUnauthorized{Err: base}, http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", &ErrRateLimit{Err: base}), http.StatusTooManyRequests},
		{&ErrTimeout{Err: base}, http.StatusGatewayTimeout},
		{&ErrProviderUnavailable{Err: base}, http.StatusBadGateway},
		{&ErrInvalidResponse{Err: base}, http.StatusBadGateway},
	}
	for _, tt := range tests {
		got, msg := HTTPStatus(tt.err)
		assert.Equal(t, tt.want, got, tt.err.Error())
		assert.NotEmpty(t, msg)
	}
}

func TestClassifyGeneric(t *testing.T) {
	var timeout *ErrTimeout
	assert.ErrorAs(t, classifyGeneric(context.DeadlineExceeded), &timeout)

	var unauth *ErrUnauthorized
	assert.ErrorAs(t, classifyGeneric(errors.New("Incorrect API key provided")), &unauth)

	var limited *ErrRateLimit
	assert.ErrorAs(t, classifyGeneric(errors.New("insufficient_quota")), &limited)
}

func TestWantsJSONAndExtract(t *testing.T) {
	assert.True(t, WantsJSON("Define 'book'. Reply with JSON only."))
	assert.True(t, WantsJSON("please RETURN JSON"))
	assert.False(t, WantsJSON("what does jsonify mean"))

	assert.Equal(t, `{"a":{"b":1}}`, ExtractJSONObject("```json\n{\"a\":{\"b\":1}}\n```"))
	assert.Equal(t, "no braces", ExtractJSONObject("no braces"))
}

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	return &OpenAIProvider{client: openai.NewClientWithConfig(cfg), model: "gpt-4o-mini"}
}

func chatCompletion(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
	}
}

func TestOpenAIProvider_Generate(t *testing.T) {
	var got openai.ChatCompletionRequest
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletion("```json\n{\"meaning\":\"ok\"}\n```"))
	})

	resp, err := p.Generate(context.Background(), Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
		Schema:   entrySchema(),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"meaning":"ok"}`, resp.Text)

	require.Len(t, got.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONSchema, got.ResponseFormat.Type)
}

func TestOpenAIProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{http.StatusUnauthorized, `{"error":{"message":"Incorrect API key","type":"invalid_request_error","code":"invalid_api_key"}}`, func(t *testing.T, err error) {
			var e *ErrUnauthorized
			assert.ErrorAs(t, err, &e)
		}},
		{http.StatusTooManyRequests, `{"error":{"message":"slow down","type":"requests","code":"rate_limit_exceeded"}}`, func(t *testing.T, err error) {
			var e *ErrRateLimit
			assert.ErrorAs(t, err, &e)
		}},
		{http.StatusInternalServerError, `{"error":{"message":"oops","type":"server_error"}}`, func(t *testing.T, err error) {
			var e *ErrProviderUnavailable
			assert.ErrorAs(t, err, &e)
		}},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := p.Generate(context.Background(), UserPrompt("", "hi", 0))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestMockProvider(t *testing.T) {
	m := NewMockProvider(MockResponse{Text: `{"meaning":"x"}`}, MockResponse{Err: &ErrTimeout{}})

	resp, err := m.Generate(context.Background(), Request{Schema: entrySchema()})
	require.NoError(t, err)
	assert.Equal(t, `{"meaning":"x"}`, resp.Text)

	_, err = m.Generate(context.Background(), Request{})
	var timeout *ErrTimeout
	assert.ErrorAs(t, err, &timeout)

	_, err = m.Generate(context.Background(), Request{})
	var unavailable *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 3, m.CallCount())
}

func TestNewProvider_MissingKeyIsUnconfigured(t *testing.T) {
	cfg := &config.Config{}
	cfg.AI.Provider = config.ProviderOpenAI

	p, err := NewProvider(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, Configured(p))

	_, err = p.Generate(context.Background(), Request{})
	status, _ := HTTPStatus(err)
	assert.Equal(t, http.StatusUnauthorized, status)
}
