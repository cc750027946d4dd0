package utils

import (
	"sync"
	"time"
)

// Metrics содержит метрики приложения
type Metrics struct {
	mu sync.RWMutex

	// Метрики запросов
	TotalRequests   int64
	FailedRequests  int64
	RequestLatency  time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time

	// Метрики клиентов
	CustomersCreated int64
	CustomersDeleted int64

	// Метрики кредитов
	CreditsCreated      int64
	CreditLookups       int64
	RejectedCredits     int64
	OwnershipMismatches int64

	// Метрики ошибок
	ErrorCount    int64
	LastErrorTime time.Time
	ErrorTypes    map[string]int64
}

var (
	metrics     *Metrics
	metricsOnce sync.Once
)

// GetMetrics возвращает экземпляр метрик
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			ErrorTypes: make(map[string]int64),
		}
	})
	return metrics
}

// RecordRequest записывает метрики запроса
func (m *Metrics) RecordRequest(duration time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests++
	m.RequestLatency += duration
	m.AverageLatency = m.RequestLatency / time.Duration(m.TotalRequests)
	m.LastRequestTime = time.Now()

	if failed {
		m.FailedRequests++
	}
}

// RecordCustomerOperation записывает метрики операции с клиентом
func (m *Metrics) RecordCustomerOperation(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch operation {
	case "create":
		m.CustomersCreated++
	case "delete":
		m.CustomersDeleted++
	}
}

// RecordCreditOperation записывает метрики операции с кредитом
func (m *Metrics) RecordCreditOperation(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch operation {
	case "create":
		m.CreditsCreated++
	case "lookup":
		m.CreditLookups++
	case "reject":
		m.RejectedCredits++
	case "mismatch":
		m.OwnershipMismatches++
	}
}

// RecordError записывает метрики ошибки
func (m *Metrics) RecordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ErrorCount++
	m.LastErrorTime = time.Now()

	errorType := "unknown"
	if err != nil {
		errorType = err.Error()
	}

	m.ErrorTypes[errorType]++
}

// GetMetricsSnapshot возвращает снимок текущих метрик
func (m *Metrics) GetMetricsSnapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	errorTypes := make(map[string]int64, len(m.ErrorTypes))
	for k, v := range m.ErrorTypes {
		errorTypes[k] = v
	}

	return map[string]interface{}{
		"total_requests":       m.TotalRequests,
		"failed_requests":      m.FailedRequests,
		"average_latency":      m.AverageLatency.String(),
		"customers_created":    m.CustomersCreated,
		"customers_deleted":    m.CustomersDeleted,
		"credits_created":      m.CreditsCreated,
		"credit_lookups":       m.CreditLookups,
		"rejected_credits":     m.RejectedCredits,
		"ownership_mismatches": m.OwnershipMismatches,
		"error_count":          m.ErrorCount,
		"last_error_time":      m.LastErrorTime,
		"error_types":          errorTypes,
	}
}

// ResetMetrics сбрасывает все метрики
func (m *Metrics) ResetMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalRequests = 0
	m.FailedRequests = 0
	m.RequestLatency = 0
	m.AverageLatency = 0
	m.CustomersCreated = 0
	m.CustomersDeleted = 0
	m.CreditsCreated = 0
	m.CreditLookups = 0
	m.RejectedCredits = 0
	m.OwnershipMismatches = 0
	m.ErrorCount = 0
	m.ErrorTypes = make(map[string]int64)
}
