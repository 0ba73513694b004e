package service

import (
	"context"
	"encoding/json"
	"lawyer_exam_backend/internal/model"
	"lawyer_exam_backend/internal/util"
	"lawyer_exam_backend/pkg/logger"
	"os"
	"sync"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// translationsKey is the Redis hash holding one JSON table per language.
const translationsKey = "translations"

// TranslationService serves the UI string tables. Tables live in Redis so
// they can be replaced at runtime; when Redis holds nothing, the bundled
// file is used instead. Tables are loaded once and kept in memory until
// Invalidate is called.
type TranslationService struct {
	rdb          *redis.Client
	fallbackPath string

	mu     sync.RWMutex
	tables map[string]json.RawMessage
	loaded bool
}

func NewTranslationService(rdb *redis.Client, fallbackPath string) *TranslationService {
	return &TranslationService{
		rdb:          rdb,
		fallbackPath: fallbackPath,
	}
}

func (s *TranslationService) ensureLoaded(ctx context.Context) (map[string]json.RawMessage, error) {
	s.mu.RLock()
	if s.loaded {
		tables := s.tables
		s.mu.RUnlock()
		return tables, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.tables, nil
	}

	tables, err := s.loadFromRedis(ctx)
	if err != nil {
		logger.Log.Warn("translations unavailable in redis, using bundled file", zap.Error(err))
	}
	if len(tables) == 0 {
		tables, err = s.loadFromFile()
		if err != nil {
			return nil, err
		}
	}

	s.tables = tables
	s.loaded = true
	return tables, nil
}

func (s *TranslationService) loadFromRedis(ctx context.Context) (map[string]json.RawMessage, error) {
	if s.rdb == nil {
		return nil, nil
	}
	entries, err := s.rdb.HGetAll(ctx, translationsKey).Result()
	if err != nil {
		return nil, err
	}
	tables := make(map[string]json.RawMessage, len(entries))
	for lang, table := range entries {
		tables[lang] = json.RawMessage(table)
	}
	return tables, nil
}

func (s *TranslationService) loadFromFile() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.fallbackPath)
	if err != nil {
		return nil, err
	}
	var tables map[string]json.RawMessage
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

// All returns every language table.
func (s *TranslationService) All(ctx context.Context) (map[string]json.RawMessage, error) {
	return s.ensureLoaded(ctx)
}

// ForLanguage returns one language's table, falling back to Kazakh when the
// requested code has no table. The language actually served is returned.
func (s *TranslationService) ForLanguage(ctx context.Context, lang string) (string, json.RawMessage, error) {
	tables, err := s.ensureLoaded(ctx)
	if err != nil {
		return "", nil, err
	}

	table, ok := tables[lang]
	if !ok {
		lang = model.LangKazakh
		table = tables[lang]
	}
	return lang, table, nil
}

// Replace stores a new table for the language and drops the in-memory copy
// so the next read picks it up. Anything but a JSON object is rejected.
func (s *TranslationService) Replace(ctx context.Context, lang string, table json.RawMessage) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(table, &doc); err != nil || doc == nil {
		return util.ErrInvalidTranslation
	}

	if s.rdb != nil {
		if err := s.rdb.HSet(ctx, translationsKey, lang, string(table)).Err(); err != nil {
			return err
		}
	}

	s.Invalidate()
	return nil
}

// Invalidate forces a reload on the next read.
func (s *TranslationService) Invalidate() {
	s.mu.Lock()
	s.tables = nil
	s.loaded = false
	s.mu.Unlock()
}
