package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tablepay/internal/kafka"
	"tablepay/internal/logger"
	"tablepay/internal/models"
)

func TestProducerMockModePublishes(t *testing.T) {
	producer, err := kafka.NewProducer(nil, true, logger.NewLogger())
	require.NoError(t, err)
	defer producer.Close()

	err = producer.PublishPaymentEvent(&models.PaymentEvent{
		Type:      "payment.completed",
		PaymentID: "pay-001",
		Timestamp: time.Now(),
	})
	assert.NoError(t, err)

	// Unknown event types route to the catch-all topic without error.
	err = producer.PublishPaymentEvent(&models.PaymentEvent{
		Type:      "payment.something.else",
		PaymentID: "pay-001",
	})
	assert.NoError(t, err)
}

func TestOrderConsumerHandlerProcessesMessage(t *testing.T) {
	testOrder := &models.Order{
		ID:          "order-kafka-1",
		TableID:     "table-001",
		Subtotal:    100,
		VATAmount:   15,
		TotalAmount: 115,
		Status:      models.OrderConfirmed,
	}

	var received *models.Order
	handler := &kafka.OrderConsumerHandler{
		Handler: func(order *models.Order) error {
			received = order
			return nil
		},
	}

	mockSession := &MockConsumerGroupSession{}
	mockSession.On("MarkMessage", mock.Anything, "").Return()

	msgChan := make(chan *sarama.ConsumerMessage, 2)
	mockClaim := &MockConsumerGroupClaim{}
	mockClaim.On("Messages").Return(msgChan)

	orderJSON, err := json.Marshal(testOrder)
	require.NoError(t, err)

	msgChan <- &sarama.ConsumerMessage{
		Topic: "order.confirmed",
		Value: orderJSON,
	}
	close(msgChan)

	require.NoError(t, handler.ConsumeClaim(mockSession, mockClaim))

	require.NotNil(t, received)
	assert.Equal(t, testOrder.ID, received.ID)
	assert.Equal(t, testOrder.TableID, received.TableID)
	mockSession.AssertExpectations(t)
}

func TestOrderConsumerHandlerSkipsBadPayload(t *testing.T) {
	called := false
	handler := &kafka.OrderConsumerHandler{
		Handler: func(order *models.Order) error {
			called = true
			return nil
		},
	}

	mockSession := &MockConsumerGroupSession{}

	msgChan := make(chan *sarama.ConsumerMessage, 1)
	mockClaim := &MockConsumerGroupClaim{}
	mockClaim.On("Messages").Return(msgChan)

	msgChan <- &sarama.ConsumerMessage{
		Topic: "order.confirmed",
		Value: []byte("not json"),
	}
	close(msgChan)

	require.NoError(t, handler.ConsumeClaim(mockSession, mockClaim))

	// Malformed messages are skipped and left unmarked.
	assert.False(t, called)
	mockSession.AssertNotCalled(t, "MarkMessage", mock.Anything, mock.Anything)
}

// Mock implementations for Sarama interfaces

type MockConsumerGroupSession struct {
	mock.Mock
}

func (m *MockConsumerGroupSession) Claims() map[string][]int32 {
	args := m.Called()
	return args.Get(0).(map[string][]int32)
}

func (m *MockConsumerGroupSession) MemberID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConsumerGroupSession) GenerationID() int32 {
	args := m.Called()
	return int32(args.Int(0))
}

func (m *MockConsumerGroupSession) MarkOffset(topic string, partition int32, offset int64, metadata string) {
	m.Called(topic, partition, offset, metadata)
}

func (m *MockConsumerGroupSession) Commit() {
	m.Called()
}

func (m *MockConsumerGroupSession) ResetOffset(topic string, partition int32, offset int64, metadata string) {
	m.Called(topic, partition, offset, metadata)
}

func (m *MockConsumerGroupSession) MarkMessage(msg *sarama.ConsumerMessage, metadata string) {
	m.Called(msg, metadata)
}

func (m *MockConsumerGroupSession) Context() context.Context {
	args := m.Called()
	return args.Get(0).(context.Context)
}

type MockConsumerGroupClaim struct {
	mock.Mock
}

func (m *MockConsumerGroupClaim) Topic() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockConsumerGroupClaim) Partition() int32 {
	args := m.Called()
	return int32(args.Int(0))
}

func (m *MockConsumerGroupClaim) InitialOffset() int64 {
	args := m.Called()
	return int64(args.Int(0))
}

func (m *MockConsumerGroupClaim) HighWaterMarkOffset() int64 {
	args := m.Called()
	return int64(args.Int(0))
}

func (m *MockConsumerGroupClaim) Messages() <-chan *sarama.ConsumerMessage {
	args := m.Called()
	return args.Get(0).(chan *sarama.ConsumerMessage)
}
