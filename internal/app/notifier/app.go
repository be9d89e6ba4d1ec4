// Package notifier assembles the alert mail pipeline: the AMQP consumers
// and the SMTP sender.
package notifier

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/afrikanet/satellite-console/internal/config"
	"github.com/afrikanet/satellite-console/internal/lib/rabbitmq"
	"github.com/afrikanet/satellite-console/internal/lib/smtp"
	notifierservice "github.com/afrikanet/satellite-console/internal/services/notifier"
)

// App owns the notifier's long-lived resources.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *notifierservice.SenderService
	logger        *slog.Logger
}

// New builds the App: AMQP connection, queue bindings and the sender.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.Rabbit.RabbitURL, cfg.Rabbit.ConnectRetries, cfg.Rabbit.ConnectDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetAlertQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)
	senderService := notifierservice.NewSenderService(transport, cfg.SMTP.OperatorEmail, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run consumes the alert queues until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumeMessages(ctx, a.ch, "alert.expiring", a.senderService.SendExpiringAlert)
	if err != nil {
		a.logger.Error("failed to start alert.expiring consumer", slog.Any("err", err))
		return err
	}

	err = rabbitmq.ConsumeMessages(ctx, a.ch, "alert.expired", a.senderService.SendExpiredAlert)
	if err != nil {
		a.logger.Error("failed to start alert.expired consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("notifier shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	return nil
}
