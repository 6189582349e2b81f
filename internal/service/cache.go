// cache.go — LRU-кэш результатов экспорта с TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus-метрики кэша.
var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "em_cache_hits_total",
		Help: "Общее количество попаданий в LRU-кэш результатов экспорта.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "em_cache_misses_total",
		Help: "Общее количество промахов LRU-кэша результатов экспорта.",
	})
)

// CacheService — LRU-кэш результатов экспорта с автоматическим TTL.
// Экспорт идентичной выборки в пределах TTL отдаётся из памяти без
// обращения к БД. Каждый экземпляр модуля имеет собственный in-memory
// кэш (per-instance, stateless архитектура).
type CacheService struct {
	cache *expirable.LRU[string, *ExportResult]
}

// NewCacheService создаёт LRU-кэш с указанным максимальным размером и TTL.
// maxSize — максимальное количество записей в кэше.
// ttl — время жизни записи после добавления.
func NewCacheService(maxSize int, ttl time.Duration) *CacheService {
	cache := expirable.NewLRU[string, *ExportResult](maxSize, nil, ttl)
	return &CacheService{cache: cache}
}

// Get возвращает результат экспорта из кэша по ключу выборки.
// Возвращает (результат, true) при hit или (nil, false) при miss.
// Обновляет Prometheus-метрики hit/miss.
func (c *CacheService) Get(key string) (*ExportResult, bool) {
	val, ok := c.cache.Get(key)
	if ok {
		cacheHitsTotal.Inc()
		return val, true
	}
	cacheMissesTotal.Inc()
	return nil, false
}

// Set добавляет или обновляет запись в кэше.
func (c *CacheService) Set(key string, result *ExportResult) {
	c.cache.Add(key, result)
}

// Purge полностью очищает кэш (инвалидация при изменении реестра).
func (c *CacheService) Purge() {
	c.cache.Purge()
}
