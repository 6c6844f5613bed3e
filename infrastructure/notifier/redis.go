// Package notifier publica as mudanças feitas pelo pipeline para que a UI
// receba atualizações filtradas por tabela e usuário.
package notifier

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/metrics-sync-api/internal/config"
	"github.com/vfg2006/metrics-sync-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const channelPrefix = "changes"

// subscriberBuffer é o tamanho do canal entregue ao assinante
const subscriberBuffer = 64

func NewRedisClient(cfg config.Redis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// ChannelName monta o canal changes:<tabela>:<usuário>
func ChannelName(table, userID string) string {
	return fmt.Sprintf("%s:%s:%s", channelPrefix, table, userID)
}

type RedisNotifier struct {
	client redis.UniversalClient
}

func NewRedisNotifier(client redis.UniversalClient) *RedisNotifier {
	return &RedisNotifier{
		client: client,
	}
}

func (n *RedisNotifier) Publish(ctx context.Context, event domain.ChangeEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("erro ao serializar evento: %w", err)
	}

	channel := ChannelName(event.Table, event.UserID)
	if err := n.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("erro ao publicar em %s: %w", channel, err)
	}

	return nil
}

// Subscribe entrega os eventos de uma tabela para um usuário até ctx terminar
// ou a função de fechamento ser chamada.
func (n *RedisNotifier) Subscribe(ctx context.Context, table, userID string) (<-chan domain.ChangeEvent, func() error, error) {
	channel := ChannelName(table, userID)

	pubsub := n.client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("erro ao assinar %s: %w", channel, err)
	}

	events := make(chan domain.ChangeEvent, subscriberBuffer)
	messages := pubsub.Channel()

	go func() {
		defer close(events)

		for {
			select {
			case <-ctx.Done():
				_ = pubsub.Close()
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}

				event, err := DecodeEvent(msg.Payload)
				if err != nil {
					logrus.WithFields(logrus.Fields{
						"channel": channel,
						"error":   err.Error(),
					}).Warn("Evento de mudança inválido descartado")
					continue
				}

				select {
				case events <- event:
				case <-ctx.Done():
					_ = pubsub.Close()
					return
				}
			}
		}
	}()

	return events, pubsub.Close, nil
}

func DecodeEvent(payload string) (domain.ChangeEvent, error) {
	var event domain.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return domain.ChangeEvent{}, fmt.Errorf("erro ao desserializar evento: %w", err)
	}
	return event, nil
}

// Noop é usado quando o Redis está desabilitado
type Noop struct{}

func (Noop) Publish(_ context.Context, event domain.ChangeEvent) error {
	logrus.WithFields(logrus.Fields{
		"table":     event.Table,
		"user_id":   event.UserID,
		"operation": event.Operation,
	}).Debug("Notificação de mudança ignorada: redis desabilitado")
	return nil
}
