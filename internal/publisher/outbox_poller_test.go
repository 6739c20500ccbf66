package publisher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MuzzammilWits/HoodGoods-sub000/internal/repository"
	"github.com/google/uuid"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockOutboxRepository struct {
	mu           sync.Mutex
	Events       []repository.OutboxEvent
	GetErr       error
	MarkErr      error
	ProcessedIDs []int64
}

func (m *MockOutboxRepository) GetUnprocessedEvents(_ context.Context, _ int) ([]repository.OutboxEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	events := m.Events
	m.Events = nil // each batch is returned once
	return events, nil
}

func (m *MockOutboxRepository) MarkEventAsProcessed(_ context.Context, eventID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MarkErr != nil {
		return m.MarkErr
	}
	m.ProcessedIDs = append(m.ProcessedIDs, eventID)
	return nil
}

func (m *MockOutboxRepository) processedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ProcessedIDs)
}

type MockEventWriter struct {
	Messages []kafkaGo.Message
	WriteErr error
	Closed   bool
}

func (m *MockEventWriter) WriteMessages(_ context.Context, msgs ...kafkaGo.Message) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Messages = append(m.Messages, msgs...)
	return nil
}

func (m *MockEventWriter) Close() error {
	m.Closed = true
	return nil
}

func newTestPoller(repo repository.OutboxRepository, writer EventWriter) *OutboxPoller {
	return &OutboxPoller{
		timeout:   time.Second,
		eventTick: 10 * time.Millisecond,
		batchSize: 100,
		repo:      repo,
		writer:    writer,
	}
}

func TestProcessUnpublishedEvents_PublishesAndMarks(t *testing.T) {
	orderID1 := uuid.New()
	orderID2 := uuid.New()
	repo := &MockOutboxRepository{
		Events: []repository.OutboxEvent{
			{ID: 1, OrderID: orderID1, Payload: []byte(`{"order_id":"1"}`)},
			{ID: 2, OrderID: orderID2, Payload: []byte(`{"order_id":"2"}`)},
		},
	}
	writer := &MockEventWriter{}
	poller := newTestPoller(repo, writer)

	poller.processUnpublishedEvents(context.Background())

	require.Len(t, writer.Messages, 2)
	assert.Equal(t, []byte(orderID1.String()), writer.Messages[0].Key)
	assert.Equal(t, []byte(`{"order_id":"1"}`), writer.Messages[0].Value)
	assert.Equal(t, []byte(orderID2.String()), writer.Messages[1].Key)

	assert.Equal(t, []int64{1, 2}, repo.ProcessedIDs)
}

func TestProcessUnpublishedEvents_PublishFailureLeavesEventUnmarked(t *testing.T) {
	repo := &MockOutboxRepository{
		Events: []repository.OutboxEvent{
			{ID: 1, OrderID: uuid.New(), Payload: []byte(`{}`)},
		},
	}
	writer := &MockEventWriter{WriteErr: errors.New("broker unavailable")}
	poller := newTestPoller(repo, writer)

	poller.processUnpublishedEvents(context.Background())

	// Unmarked events get retried on the next tick.
	assert.Empty(t, repo.ProcessedIDs)
}

func TestProcessUnpublishedEvents_FetchErrorSkipsPublish(t *testing.T) {
	repo := &MockOutboxRepository{GetErr: errors.New("db down")}
	writer := &MockEventWriter{}
	poller := newTestPoller(repo, writer)

	poller.processUnpublishedEvents(context.Background())

	assert.Empty(t, writer.Messages)
}

func TestProcessUnpublishedEvents_MarkErrorDoesNotStopBatch(t *testing.T) {
	repo := &MockOutboxRepository{
		Events: []repository.OutboxEvent{
			{ID: 1, OrderID: uuid.New(), Payload: []byte(`{}`)},
			{ID: 2, OrderID: uuid.New(), Payload: []byte(`{}`)},
		},
		MarkErr: errors.New("update failed"),
	}
	writer := &MockEventWriter{}
	poller := newTestPoller(repo, writer)

	poller.processUnpublishedEvents(context.Background())

	// Both events were still published even though marking failed.
	assert.Len(t, writer.Messages, 2)
}

func TestRun_DrainsOnTickAndStopsOnCancel(t *testing.T) {
	repo := &MockOutboxRepository{
		Events: []repository.OutboxEvent{
			{ID: 7, OrderID: uuid.New(), Payload: []byte(`{}`)},
		},
	}
	writer := &MockEventWriter{}
	poller := newTestPoller(repo, writer)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return repo.processedCount() == 1
	}, time.Second, 10*time.Millisecond, "event was not processed")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after context cancellation")
	}
}

func TestClose_ClosesWriter(t *testing.T) {
	writer := &MockEventWriter{}
	poller := newTestPoller(&MockOutboxRepository{}, writer)

	poller.Close()

	assert.True(t, writer.Closed)
}
