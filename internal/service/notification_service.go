package service

import (
	"context"
	"encoding/json"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ministerio-antioquia/antioquia-api/internal/dto"
	"github.com/ministerio-antioquia/antioquia-api/internal/models"
	appErrors "github.com/ministerio-antioquia/antioquia-api/pkg/errors"
	"github.com/ministerio-antioquia/antioquia-api/pkg/jobs"
)

type subscriptionStore interface {
	Save(ctx context.Context, sub *models.PushSubscription) error
	List(ctx context.Context) ([]models.PushSubscription, error)
	DeleteByEndpoint(ctx context.Context, endpoint string) error
}

type pushSender func(message []byte, sub *webpush.Subscription, opts *webpush.Options) (*http.Response, error)

// PushOptions carries the VAPID credentials for Web Push delivery.
type PushOptions struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subscriber      string
	Workers         int
}

type pushMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
}

type deliveryJob struct {
	Subscription models.PushSubscription
	Payload      []byte
}

// NotificationService registers browsers for Web Push and fans broadcasts
// out through a background worker queue, so admin requests return before
// any push endpoint is contacted.
type NotificationService struct {
	subs      subscriptionStore
	queue     *jobs.Queue
	send      pushSender
	options   PushOptions
	validator *validator.Validate
	logger    *zap.Logger
}

// NotificationServiceOption configures the service.
type NotificationServiceOption func(*NotificationService)

// WithPushSender overrides the delivery function, used by tests.
func WithPushSender(send pushSender) NotificationServiceOption {
	return func(s *NotificationService) {
		if send != nil {
			s.send = send
		}
	}
}

// NewNotificationService constructs the service and its delivery queue.
func NewNotificationService(subs subscriptionStore, options PushOptions, validate *validator.Validate, logger *zap.Logger, opts ...NotificationServiceOption) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	svc := &NotificationService{
		subs:      subs,
		send:      webpush.SendNotification,
		options:   options,
		validator: validate,
		logger:    logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	svc.queue = jobs.NewQueue("push-delivery", svc.deliver, jobs.QueueConfig{
		Workers: options.Workers,
		Logger:  logger,
	})
	return svc
}

// Start launches the delivery workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the delivery workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// Subscribe stores a browser subscription, refreshing keys on repeats.
func (s *NotificationService) Subscribe(ctx context.Context, req dto.SubscribeRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subscription payload")
	}
	sub := &models.PushSubscription{
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	}
	if err := s.subs.Save(ctx, sub); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store subscription")
	}
	return nil
}

// Broadcast enqueues one delivery per stored subscription and returns how
// many were queued.
func (s *NotificationService) Broadcast(ctx context.Context, req dto.BroadcastRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid broadcast payload")
	}
	payload, err := json.Marshal(pushMessage{Title: req.Title, Body: req.Body, URL: req.URL})
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode notification")
	}

	subs, err := s.subs.List(ctx)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subscriptions")
	}

	queued := 0
	for _, sub := range subs {
		job := jobs.Job{
			ID:      uuid.NewString(),
			Type:    "push",
			Payload: deliveryJob{Subscription: sub, Payload: payload},
		}
		if err := s.queue.Enqueue(job); err != nil {
			s.logger.Warn("failed to enqueue push delivery",
				zap.String("endpoint", sub.Endpoint), zap.Error(err))
			continue
		}
		queued++
	}
	return queued, nil
}

// deliver sends one notification. Endpoints answering 404 or 410 are gone
// for good, so their subscriptions are pruned instead of retried.
func (s *NotificationService) deliver(ctx context.Context, job jobs.Job) error {
	delivery, ok := job.Payload.(deliveryJob)
	if !ok {
		s.logger.Error("unexpected push job payload", zap.String("job_id", job.ID))
		return nil
	}

	resp, err := s.send(delivery.Payload, &webpush.Subscription{
		Endpoint: delivery.Subscription.Endpoint,
		Keys: webpush.Keys{
			P256dh: delivery.Subscription.P256dh,
			Auth:   delivery.Subscription.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.options.Subscriber,
		VAPIDPublicKey:  s.options.VAPIDPublicKey,
		VAPIDPrivateKey: s.options.VAPIDPrivateKey,
		TTL:             60,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		if err := s.subs.DeleteByEndpoint(ctx, delivery.Subscription.Endpoint); err != nil {
			s.logger.Warn("failed to prune dead subscription",
				zap.String("endpoint", delivery.Subscription.Endpoint), zap.Error(err))
		}
		return nil
	}
	return nil
}
