package patterns

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"log/slog"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/domain/intent"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/infrastructure/log"
)

// patternFile 패턴 오버라이드 파일 형식
type patternFile struct {
	Intents map[string]intent.PatternSpec `yaml:"intents"`
}

// Loader 의도 패턴 파일 로더. 파일 변경을 감지해 분류기에 반영한다.
type Loader struct {
	path       string
	classifier *intent.Classifier
	watcher    *fsnotify.Watcher
	logger     *slog.Logger

	// 에디터 저장 시 중복 이벤트 방지용 디바운스
	debounceDelay time.Duration
	debounceTimer *time.Timer
	debounceMu    sync.Mutex

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewLoader 패턴 로더 생성. path가 비어 있으면 기본 패턴만 사용한다.
func NewLoader(path string, classifier *intent.Classifier) *Loader {
	return &Loader{
		path:          path,
		classifier:    classifier,
		logger:        log.NewModuleLogger("patterns", "loader"),
		debounceDelay: 500 * time.Millisecond,
		stopCh:        make(chan struct{}),
	}
}

// Start 초기 로드 후 파일 감시 시작
func (l *Loader) Start() error {
	if l.path == "" {
		l.logger.Info("no pattern file configured, using built-in patterns")
		return nil
	}

	if err := l.reload(); err != nil {
		// 시작 시점의 로드 실패는 기본 패턴으로 계속 동작한다
		l.logger.Warn("initial pattern load failed, keeping built-in patterns", "error", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create pattern watcher: %w", err)
	}
	l.watcher = watcher

	// 파일이 rename으로 교체되는 에디터를 위해 디렉터리를 감시한다
	if err := watcher.Add(filepath.Dir(l.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch pattern directory: %w", err)
	}

	l.wg.Add(1)
	go l.watchLoop()

	l.logger.Info("pattern file watcher started", "path", l.path)
	return nil
}

// Stop 파일 감시 중지
func (l *Loader) Stop() {
	close(l.stopCh)
	if l.watcher != nil {
		_ = l.watcher.Close()
	}
	l.wg.Wait()

	l.debounceMu.Lock()
	if l.debounceTimer != nil {
		l.debounceTimer.Stop()
	}
	l.debounceMu.Unlock()
}

// Reload 패턴 파일을 즉시 다시 읽는다
func (l *Loader) Reload() error {
	return l.reload()
}

// reload 파일을 읽어 분류기에 적용. 실패 시 기존 패턴 유지.
func (l *Loader) reload() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("failed to read pattern file: %w", err)
	}

	var file patternFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse pattern file: %w", err)
	}
	if len(file.Intents) == 0 {
		return fmt.Errorf("pattern file has no intents section")
	}

	specs := make(map[intent.Type]intent.PatternSpec, len(file.Intents))
	for name, spec := range file.Intents {
		specs[intent.Type(name)] = spec
	}

	if err := l.classifier.SetPatterns(specs); err != nil {
		return fmt.Errorf("failed to apply patterns: %w", err)
	}

	l.logger.Info("intent patterns reloaded", "path", l.path, "intents", len(specs))
	return nil
}

// watchLoop 파일 이벤트 처리 루프
func (l *Loader) watchLoop() {
	defer l.wg.Done()

	for {
		select {
		case <-l.stopCh:
			return

		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(l.path) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				l.scheduleReload()
			}

		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			l.logger.Error("pattern watcher error", "error", err)
		}
	}
}

// scheduleReload 디바운스 후 재로드
func (l *Loader) scheduleReload() {
	l.debounceMu.Lock()
	defer l.debounceMu.Unlock()

	if l.debounceTimer != nil {
		l.debounceTimer.Stop()
	}
	l.debounceTimer = time.AfterFunc(l.debounceDelay, func() {
		if err := l.reload(); err != nil {
			l.logger.Warn("pattern reload failed, previous patterns kept", "error", err)
		}
	})
}
