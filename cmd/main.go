package main

import (
	"context"
	"encoding/json"

	paymentV1 "github.com/antinvestor/apis/go/payment/v1"
	"github.com/antinvestor/bkash-api"
	"github.com/antinvestor/bkash-api/config"
	"github.com/antinvestor/bkash-api/service/events"
	"github.com/antinvestor/bkash-api/service/handler"
	"github.com/antinvestor/bkash-api/service/models"
	"github.com/antinvestor/bkash-api/service/router"
	"github.com/antinvestor/bkash-api/service/token"
	"github.com/pitabwire/frame"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const lifecycleTopic = "bkash.lifecycle"

func main() {
	serviceName := "service_bkash_api"
	bkashConfig, err := frame.ConfigFromEnv[config.BkashConfig]()
	if err != nil {
		panic(err)
	}

	ctx, service := frame.NewService(serviceName, frame.WithConfig(&bkashConfig))
	defer service.Stop(ctx)
	logger := service.Log(ctx).WithField("type", "main")

	clientConfig := bkashConfig.ClientConfig()
	clientOptions := []bkash.Option{
		bkash.WithLogger(logrus.NewEntry(logrus.StandardLogger()).WithField("service", serviceName)),
	}

	if bkashConfig.RedisURL != "" {
		store, storeErr := token.NewRedisStoreFromURL(bkashConfig.RedisURL, clientConfig.Credentials.AppKey)
		if storeErr != nil {
			logger.WithError(storeErr).Fatal("could not configure redis token store")
		}
		clientOptions = append(clientOptions, bkash.WithTokenStore(store))
	}

	relay := &events.Relay{Service: service}
	if bkashConfig.PaymentServiceURI != "" {
		clientConn, dialErr := grpc.DialContext(
			ctx,
			bkashConfig.PaymentServiceURI,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
		if dialErr != nil {
			logger.WithError(dialErr).Error("Failed to connect to payment service")
		} else {
			relay.PaymentClient = paymentV1.NewPaymentServiceClient(clientConn)
			logger.WithField("endpoint", bkashConfig.PaymentServiceURI).Info("connected to payment service")
		}
	}

	clientOptions = append(clientOptions, bkash.WithWebhookCallback(
		func(ctx context.Context, webhook events.Webhook) error {
			var notification models.WebhookNotification
			if unmarshalErr := json.Unmarshal(webhook.Raw, &notification); unmarshalErr != nil {
				return unmarshalErr
			}
			return service.Emit(ctx, relay.Name(), &notification)
		}))

	client, err := bkash.New(clientConfig, clientOptions...)
	if err != nil {
		logger.WithError(err).Fatal("could not create bkash client")
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			logger.WithError(closeErr).Warn("could not close bkash client")
		}
	}()

	client.Subscribe(func(event bkash.Event) {
		if publishErr := service.Publish(ctx, lifecycleTopic, event); publishErr != nil {
			logger.WithError(publishErr).WithField("event", event.Type).Warn("could not publish lifecycle event")
		}
	})

	js := &handler.JobServer{
		Service:  service,
		Webhooks: client.WebhookHandler(),
	}

	serviceOptions := []frame.Option{
		frame.WithHTTPHandler(router.NewRouter(js, clientConfig.GetWebhookPath())),
		frame.WithRegisterEvents(relay),
		frame.WithRegisterPublisher(lifecycleTopic, bkashConfig.EventsPublisherURL),
	}

	service.Init(ctx, serviceOptions...)

	logger.WithField("port", bkashConfig.HTTPPort).Info("bKash API service starting")
	if runErr := service.Run(ctx, bkashConfig.HTTPPort); runErr != nil {
		logger.WithError(runErr).Fatal("Failed to run bKash API service")
	}
}
