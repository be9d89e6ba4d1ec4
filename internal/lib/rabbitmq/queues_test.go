package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAlertQueues(t *testing.T) {
	queues := GetAlertQueues()

	assert.Len(t, queues, 2)
	assert.Contains(t, queues, QueueConfig{QueueName: "alert.expiring", RoutingKey: RoutingKeyExpiring})
	assert.Contains(t, queues, QueueConfig{QueueName: "alert.expired", RoutingKey: RoutingKeyExpired})
}
