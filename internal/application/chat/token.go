package chat

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

func init() {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// countTokens 텍스트 토큰 수 계산.
// cl100k_base 인코딩을 사용하고, 인코딩 로드 실패 시 문자 수 기반 추정으로 대체한다.
func countTokens(text string) int {
	if text == "" {
		return 0
	}

	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			encoding = enc
		}
	})

	if encoding == nil {
		// 한국어 혼합 텍스트 대략치: 문자 2개당 토큰 1개
		return utf8.RuneCountInString(text)/2 + 1
	}
	return len(encoding.Encode(text, nil, nil))
}
