package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/catalog-admin/internal/config"
	"github.com/spec-kit/catalog-admin/internal/events"
)

// NotificationService handles emitting notifications for domain events.
// Actual SMS/webhook delivery is an external collaborator; this service
// owns only the dispatch decision and logs the stub.
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
	n.dispatcher.Subscribe(events.EventCustomerOTPRequested, n.handleOTPRequested)
	n.dispatcher.Subscribe(events.EventAdminLoggedIn, n.handleAdminLoggedIn)
	n.dispatcher.Subscribe(events.EventOrderStatusChanged, n.handleOrderStatusChanged)
}

func (n *NotificationService) handleOTPRequested(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.CustomerOTPRequestedPayload)
	if !ok {
		return nil
	}
	// The code is delivered over the SMS gateway, never through logs.
	n.logger.Info("CustomerOTPRequested", zap.String("phone", maskPhone(payload.Phone)))
	n.sendSMSStub(ctx, payload.Phone)
	return nil
}

func (n *NotificationService) handleAdminLoggedIn(ctx context.Context, event events.Event) error {
	n.logger.Info("AdminLoggedIn", zap.Any("payload", event.Payload))
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) handleOrderStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderStatusChanged", zap.Any("payload", event.Payload))
	n.sendWebhookStub(ctx, event)
	return nil
}

func (n *NotificationService) sendSMSStub(_ context.Context, phone string) {
	if strings.TrimSpace(n.cfg.SMSSender) == "" {
		return
	}
	n.logger.Debug("sendSMSStub",
		zap.String("sender", n.cfg.SMSSender),
		zap.String("phone", maskPhone(phone)))
}

func (n *NotificationService) sendWebhookStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}

func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
