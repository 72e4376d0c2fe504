package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"StudyCheck/storage/mq"
)

const (
	sweepQueue              = "scheduler.evaluation.sweep"
	githubVerifyResultQueue = "verify.github.result"
)

// DeclareTopology 声明交换机与队列，worker 与 scheduler 启动时都调用，幂等。
// scheduler.delayed 依赖 rabbitmq-delayed-message-exchange 插件
func DeclareTopology() error {
	conn := mq.Connection()
	if conn == nil {
		return fmt.Errorf("RabbitMQ connection is nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel for topology: %w", err)
	}
	defer ch.Close()

	// 延迟交换机，x-delayed-type 决定延迟到期后的路由行为
	err = ch.ExchangeDeclare(
		delayedExchange,
		"x-delayed-message",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		amqp.Table{"x-delayed-type": "topic"},
	)
	if err != nil {
		return fmt.Errorf("failed to declare delayed exchange: %w", err)
	}

	// 核验请求走普通 topic 交换机，外部轮询器自带队列绑定
	err = ch.ExchangeDeclare(
		verifyExchange,
		"topic",
		true, false, false, false, nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare verify exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(sweepQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare sweep queue: %w", err)
	}

	if err := ch.QueueBind(sweepQueue, sweepRoutingKey, delayedExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind sweep queue: %w", err)
	}

	// 轮询器的核验回执队列，worker 消费后回写提交记录
	if _, err := ch.QueueDeclare(githubVerifyResultQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare github verify result queue: %w", err)
	}

	if err := ch.QueueBind(githubVerifyResultQueue, githubVerifyResultKey, verifyExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind github verify result queue: %w", err)
	}

	return nil
}
