package rabbitmq

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

func GetArticleQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "articles.lifecycle", RoutingKey: "article.*"},
		// при необходимости дополнительные очереди для других потребителей
	}
}
