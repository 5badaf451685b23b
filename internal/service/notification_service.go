package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/incident-report-service/internal/config"
	"github.com/spec-kit/incident-report-service/internal/events"
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
	n.dispatcher.Subscribe(events.EventReportCreated, n.handleReportCreated)
	n.dispatcher.Subscribe(events.EventReportStatusChanged, n.handleReportStatusChanged)
	n.dispatcher.Subscribe(events.EventReportDeleted, n.handleReportDeleted)
}

func (n *NotificationService) handleReportCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ReportCreated", zap.String("report_id", event.ReportID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleReportStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("ReportStatusChanged", zap.String("report_id", event.ReportID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleReportDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("ReportDeleted", zap.String("report_id", event.ReportID))
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("report_id", event.ReportID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("report_id", event.ReportID),
		zap.String("event_type", string(event.Type)))
}
