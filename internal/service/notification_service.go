package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/visitor-service/internal/config"
	"github.com/spec-kit/visitor-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventVisitorRegistered, n.handleVisitorRegistered)
	n.dispatcher.Subscribe(events.EventVisitorCheckedIn, n.handleVisitorCheckedIn)
	n.dispatcher.Subscribe(events.EventVisitorCheckedOut, n.handleVisitorCheckedOut)
	n.dispatcher.Subscribe(events.EventPassIssued, n.handlePassIssued)
}

func (n *NotificationService) handleVisitorRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("VisitorRegistered", zap.String("visitor_id", event.VisitorID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleVisitorCheckedIn(ctx context.Context, event events.Event) error {
	n.logger.Info("VisitorCheckedIn", zap.String("visitor_id", event.VisitorID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleVisitorCheckedOut(ctx context.Context, event events.Event) error {
	n.logger.Info("VisitorCheckedOut", zap.String("visitor_id", event.VisitorID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handlePassIssued(ctx context.Context, event events.Event) error {
	n.logger.Info("PassIssued", zap.String("visitor_id", event.VisitorID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("visitor_id", event.VisitorID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("visitor_id", event.VisitorID),
		zap.String("event_type", string(event.Type)))
}
