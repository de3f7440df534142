package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/chat"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/config"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/log"
)

// Options 생성 호출 옵션
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Client 텍스트 생성 서비스 클라이언트 (OpenAI 호환 Chat API).
// 엔진은 생성 실패를 불투명 오류로 다루며 자체 재시도하지 않는다.
type Client struct {
	baseURL       string
	apiKey        string
	model         string
	httpClient    *http.Client
	streamTimeout time.Duration
	logger        *slog.Logger
}

// ChatRequest Chat API 요청
type ChatRequest struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Stream      bool      `json:"stream,omitempty"`
}

// Message Chat 메시지
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse Chat API 응답
type ChatResponse struct {
	ID      string `json:"id,omitempty"`
	Model   string `json:"model,omitempty"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// streamChunk 스트리밍 응답의 단편
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// NewClient 생성 클라이언트 생성
func NewClient(cfg *config.LLMConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		streamTimeout: cfg.StreamTimeout,
		logger:        log.NewModuleLogger("llm", "client"),
	}
}

// Generate 프롬프트에 대한 전체 응답 생성
func (c *Client) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	reqBody := ChatRequest{
		Messages:    []Message{{Role: "user", Content: prompt}},
		Model:       c.model,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	c.logger.Debug("sending generation request",
		"url", url,
		"model", c.model,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.asGenerationError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d: %s", chat.ErrGenerationFailure, resp.StatusCode, string(body))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", chat.ErrGenerationFailure, err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", chat.ErrGenerationFailure)
	}

	c.logger.Info("generation completed",
		"model", c.model,
		"tokens", chatResp.Usage.TotalTokens,
	)
	return chatResp.Choices[0].Message.Content, nil
}

// GenerateStream 스트리밍 생성. 텍스트 단편 채널을 반환하며,
// 단편 소비자(전송 루프)가 유일한 수신자다.
func (c *Client) GenerateStream(ctx context.Context, prompt string, opts Options) (<-chan string, <-chan error, error) {
	reqBody := ChatRequest{
		Messages:    []Message{{Role: "user", Content: prompt}},
		Model:       c.model,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		Stream:      true,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal stream request: %w", err)
	}

	streamCtx, cancel := context.WithTimeout(ctx, c.streamTimeout)

	url := fmt.Sprintf("%s/chat/completions", c.baseURL)
	req, err := http.NewRequestWithContext(streamCtx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to create stream request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Accept", "text/event-stream")

	// 스트리밍은 클라이언트 전역 타임아웃 대신 컨텍스트로 제어한다
	streamClient := &http.Client{}
	resp, err := streamClient.Do(req)
	if err != nil {
		cancel()
		return nil, nil, c.asGenerationError(err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		cancel()
		return nil, nil, fmt.Errorf("%w: status %d: %s", chat.ErrGenerationFailure, resp.StatusCode, string(body))
	}

	fragments := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		defer close(fragments)
		defer close(errCh)
		defer cancel()
		defer func() { _ = resp.Body.Close() }()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 512*1024)

		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || !strings.HasPrefix(line, "data:") {
				continue
			}
			payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if payload == "[DONE]" {
				return
			}

			var chunk streamChunk
			if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
				c.logger.Warn("malformed stream chunk skipped", "error", err)
				continue
			}
			if len(chunk.Choices) == 0 {
				continue
			}
			if content := chunk.Choices[0].Delta.Content; content != "" {
				select {
				case fragments <- content:
				case <-streamCtx.Done():
					errCh <- c.asGenerationError(streamCtx.Err())
					return
				}
			}
			if chunk.Choices[0].FinishReason != "" {
				return
			}
		}

		if err := scanner.Err(); err != nil {
			errCh <- c.asGenerationError(err)
		}
	}()

	return fragments, errCh, nil
}

// setHeaders 공통 헤더 설정
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
}

// asGenerationError 전송 오류를 도메인 오류로 변환. 타임아웃은 구분한다.
func (c *Client) asGenerationError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", chat.ErrGenerationTimeout, err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", chat.ErrGenerationTimeout, err)
	}
	return fmt.Errorf("%w: %v", chat.ErrGenerationFailure, err)
}
