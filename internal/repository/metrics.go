package repository

import (
	"context"
	"time"

	"task_manager_api/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	StoreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_store_operations_total",
			Help: "Task store operations by backend, operation and result",
		},
		[]string{"backend", "op", "result"},
	)
	StoreLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "task_store_operation_duration_seconds",
			Help:    "Task store operation latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "op"},
	)
)

func init() {
	prometheus.MustRegister(StoreOps)
	prometheus.MustRegister(StoreLatency)
}

// InstrumentedStore records a counter and a latency sample for every call.
type InstrumentedStore struct {
	next    TaskStore
	backend string
}

func Instrument(next TaskStore, backend string) *InstrumentedStore {
	return &InstrumentedStore{next: next, backend: backend}
}

// Backend is the driver name used as the metrics label.
func (s *InstrumentedStore) Backend() string {
	return s.backend
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error, found bool) {
	result := "ok"
	switch {
	case err != nil:
		result = "error"
	case !found:
		result = "not_found"
	}
	StoreOps.WithLabelValues(s.backend, op, result).Inc()
	StoreLatency.WithLabelValues(s.backend, op).Observe(time.Since(start).Seconds())
}

func (s *InstrumentedStore) Create(ctx context.Context, userID int64, nt domain.NewTask) (*domain.Task, error) {
	start := time.Now()
	t, err := s.next.Create(ctx, userID, nt)
	s.observe(opCreate, start, err, true)
	return t, err
}

func (s *InstrumentedStore) List(ctx context.Context, userID int64) ([]*domain.Task, error) {
	start := time.Now()
	tasks, err := s.next.List(ctx, userID)
	s.observe(opList, start, err, true)
	return tasks, err
}

func (s *InstrumentedStore) Get(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	start := time.Now()
	t, err := s.next.Get(ctx, userID, taskID)
	s.observe(opGet, start, err, t != nil)
	return t, err
}

func (s *InstrumentedStore) Update(ctx context.Context, userID, taskID int64, nt domain.NewTask) (bool, error) {
	start := time.Now()
	ok, err := s.next.Update(ctx, userID, taskID, nt)
	s.observe(opUpdate, start, err, ok)
	return ok, err
}

func (s *InstrumentedStore) Delete(ctx context.Context, userID, taskID int64) (bool, error) {
	start := time.Now()
	ok, err := s.next.Delete(ctx, userID, taskID)
	s.observe(opDelete, start, err, ok)
	return ok, err
}

func (s *InstrumentedStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

func (s *InstrumentedStore) Close() {
	s.next.Close()
}
