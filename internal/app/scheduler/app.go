// Package scheduler assembles the expiration scanner: storage, the AMQP
// channel and the periodic scan service.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/afrikanet/satellite-console/internal/config"
	"github.com/afrikanet/satellite-console/internal/lib/rabbitmq"
	"github.com/afrikanet/satellite-console/internal/lifecycle"
	schedulerservice "github.com/afrikanet/satellite-console/internal/services/scheduler"
	"github.com/afrikanet/satellite-console/internal/storage"
)

// App owns the scanner's long-lived resources.
type App struct {
	conn         *amqp.Connection
	ch           *amqp.Channel
	service      *schedulerservice.Service
	scanInterval time.Duration
	logger       *slog.Logger
}

type alertPublisher struct {
	ch *amqp.Channel
}

func (p *alertPublisher) Publish(routingKey string, message any) error {
	return rabbitmq.PublishMessage(p.ch, rabbitmq.AlertsExchange, routingKey, message)
}

// New builds the App: storage, AMQP connection and the scan service.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	conn, err := rabbitmq.Connect(cfg.Rabbit.RabbitURL, cfg.Rabbit.ConnectRetries, cfg.Rabbit.ConnectDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetAlertQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	window := lifecycle.Window(cfg.Lifecycle.WarningWindowDays)
	service := schedulerservice.New(db, &alertPublisher{ch: ch}, window, logger)

	return &App{
		conn:         conn,
		ch:           ch,
		service:      service,
		scanInterval: cfg.Rabbit.ScanInterval,
		logger:       logger,
	}, nil
}

// Run scans until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	err := a.service.Run(ctx, a.scanInterval)

	a.logger.Info("scheduler shutting down gracefully")
	if closeErr := a.ch.Close(); closeErr != nil {
		a.logger.Error("failed to close channel", slog.Any("err", closeErr))
	}
	if closeErr := a.conn.Close(); closeErr != nil {
		a.logger.Error("failed to close connection", slog.Any("err", closeErr))
	}
	return err
}
