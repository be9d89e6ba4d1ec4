package rabbitmq

// QueueConfig binds a queue name to a routing key on the alerts exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Routing keys for the two alert kinds.
const (
	RoutingKeyExpiring = "expiring"
	RoutingKeyExpired  = "expired"
)

// GetAlertQueues returns the queues the notifier consumes.
func GetAlertQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "alert.expiring", RoutingKey: RoutingKeyExpiring},
		{QueueName: "alert.expired", RoutingKey: RoutingKeyExpired},
	}
}
