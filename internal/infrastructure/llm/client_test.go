package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/chat"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/config"
)

func newTestClient(serverURL string) *Client {
	return NewClient(&config.LLMConfig{
		BaseURL:       serverURL,
		APIKey:        "test-key",
		Model:         "test-model",
		Timeout:       5 * time.Second,
		StreamTimeout: 5 * time.Second,
	})
}

func TestGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "김치찌개는 돼지고기와 묵은지로 끓이면 맛있어요."}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 20, "completion_tokens": 15, "total_tokens": 35}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.Generate(context.Background(), "김치찌개 레시피 알려줘", Options{})

	require.NoError(t, err)
	assert.Contains(t, result, "김치찌개")
}

func TestGenerate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "upstream unavailable"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Generate(context.Background(), "테스트", Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, chat.ErrGenerationFailure)
}

func TestGenerate_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.httpClient.Timeout = 50 * time.Millisecond

	_, err := client.Generate(context.Background(), "테스트", Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, chat.ErrGenerationTimeout)
}

func TestGenerateStream_Fragments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)

		lines := []string{
			`data: {"choices":[{"delta":{"content":"먼저 "},"finish_reason":""}]}`,
			`data: {"choices":[{"delta":{"content":"묵은지를 "},"finish_reason":""}]}`,
			`data: {"choices":[{"delta":{"content":"준비하세요."},"finish_reason":""}]}`,
			`data: [DONE]`,
		}
		for _, line := range lines {
			_, _ = w.Write([]byte(line + "\n\n"))
			flusher.Flush()
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	fragments, errCh, err := client.GenerateStream(context.Background(), "김치찌개 만드는 법", Options{})
	require.NoError(t, err)

	var collected string
	for fragment := range fragments {
		collected += fragment
	}

	assert.Equal(t, "먼저 묵은지를 준비하세요.", collected)
	assert.NoError(t, <-errCh)
}

func TestGenerateStream_MalformedChunksSkipped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: {not json}\n\n"))
		_, _ = w.Write([]byte(`data: {"choices":[{"delta":{"content":"정상 단편"},"finish_reason":""}]}` + "\n\n"))
		_, _ = w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	fragments, errCh, err := client.GenerateStream(context.Background(), "테스트", Options{})
	require.NoError(t, err)

	var collected string
	for fragment := range fragments {
		collected += fragment
	}

	assert.Equal(t, "정상 단편", collected)
	assert.NoError(t, <-errCh)
}

func TestGenerateStream_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, _, err := client.GenerateStream(context.Background(), "테스트", Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, chat.ErrGenerationFailure)
}
