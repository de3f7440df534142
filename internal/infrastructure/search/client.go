package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"log/slog"

	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/chat"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/config"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/log"
)

// Filters 검색 필터. Allergies는 결과에서 제외할 알레르기 성분.
type Filters struct {
	Allergies   []string
	Preferences []string
	Limit       int
}

// Client 레시피 검색 서비스 클라이언트
type Client struct {
	baseURL      string
	httpClient   *http.Client
	defaultLimit int
	logger       *slog.Logger
}

// searchRequest 검색 서비스 요청
type searchRequest struct {
	Query       string   `json:"query"`
	Allergies   []string `json:"allergies,omitempty"`
	Preferences []string `json:"preferences,omitempty"`
	Limit       int      `json:"limit"`
}

// searchResponse 검색 서비스 응답
type searchResponse struct {
	Recipes []struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"recipes"`
	Total int `json:"total"`
}

// NewClient 검색 클라이언트 생성
func NewClient(cfg *config.SearchConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		defaultLimit: cfg.Limit,
		logger:       log.NewModuleLogger("search", "client"),
	}
}

// Search 질의에 맞는 레시피 목록 조회. 결과 위치는 1부터 순서대로 매긴다.
func (c *Client) Search(ctx context.Context, query string, filters Filters) ([]chat.RecipeReference, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = c.defaultLimit
	}

	reqBody := searchRequest{
		Query:       query,
		Allergies:   filters.Allergies,
		Preferences: filters.Preferences,
		Limit:       limit,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	url := fmt.Sprintf("%s/search", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("search service returned status %d: %s", resp.StatusCode, string(body))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]chat.RecipeReference, 0, len(searchResp.Recipes))
	for i, recipe := range searchResp.Recipes {
		results = append(results, chat.RecipeReference{
			ID:               recipe.ID,
			Title:            recipe.Title,
			ShortDescription: recipe.Description,
			Position:         i + 1,
		})
	}

	c.logger.Debug("search completed",
		"query", query,
		"results", len(results),
	)
	return results, nil
}
