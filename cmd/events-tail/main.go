// Команда events-tail читает топик событий заказов и печатает их содержимое.
// Инструмент для отладки интеграции: позволяет убедиться, что события
// публикуются и корректно декодируются, не поднимая полноценного консьюмера.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderflow/internal/messaging/kafka"
)

const (
	defaultTailLimit   = 100
	defaultIdleTimeout = 2 * time.Second
)

type config struct {
	brokers     []string
	topic       string
	limit       int
	fromNewest  bool
	idleTimeout time.Duration
}

type offsetClient interface {
	GetOffset(topic string, partition int32, time int64) (int64, error)
	Partitions(topic string) ([]int32, error)
	Close() error
}

type partitionConsumer interface {
	Messages() <-chan *sarama.ConsumerMessage
	Errors() <-chan *sarama.ConsumerError
	Close() error
}

type partitionConsumerSource interface {
	ConsumePartition(topic string, partition int32, offset int64) (partitionConsumer, error)
	Close() error
}

type saramaConsumerAdapter struct {
	consumer sarama.Consumer
}

func (a saramaConsumerAdapter) ConsumePartition(topic string, partition int32, offset int64) (partitionConsumer, error) {
	pc, err := a.consumer.ConsumePartition(topic, partition, offset)
	if err != nil {
		return nil, err
	}
	return pc, nil
}

func (a saramaConsumerAdapter) Close() error {
	if a.consumer == nil {
		return nil
	}
	return a.consumer.Close()
}

var newTailDependencies = func(cfg config) (offsetClient, partitionConsumerSource, error) {
	consumerConfig := sarama.NewConfig()
	consumerConfig.Consumer.Return.Errors = true

	client, err := sarama.NewClient(cfg.brokers, consumerConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("create kafka client: %w", err)
	}

	rawConsumer, err := sarama.NewConsumerFromClient(client)
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("create kafka consumer: %w", err)
	}

	return client, saramaConsumerAdapter{consumer: rawConsumer}, nil
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)

	cfg, err := readConfig()
	if err != nil {
		fail("%v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		fail("events tail failed: %v", err)
	}
}

func readConfig() (config, error) {
	var (
		brokersRaw string
		cfg        config
	)

	flag.StringVar(&brokersRaw, "brokers", "", "Kafka brokers as comma-separated list (fallback: ORDERFLOW_KAFKA_BROKERS)")
	flag.StringVar(&cfg.topic, "topic", kafka.TopicOrderEvents, "topic to tail")
	flag.IntVar(&cfg.limit, "limit", defaultTailLimit, "max number of messages to print")
	flag.BoolVar(&cfg.fromNewest, "from-newest", false, "print latest messages first (bounded by limit)")
	flag.DurationVar(&cfg.idleTimeout, "idle-timeout", defaultIdleTimeout, "idle timeout per partition")
	flag.Parse()

	if strings.TrimSpace(brokersRaw) == "" {
		brokersRaw = os.Getenv("ORDERFLOW_KAFKA_BROKERS")
	}

	cfg.brokers = parseBrokers(brokersRaw)
	if len(cfg.brokers) == 0 {
		return config{}, fmt.Errorf("kafka brokers are required (-brokers or ORDERFLOW_KAFKA_BROKERS)")
	}
	if strings.TrimSpace(cfg.topic) == "" {
		return config{}, fmt.Errorf("topic is required")
	}
	if cfg.limit <= 0 {
		return config{}, fmt.Errorf("limit must be > 0")
	}
	if cfg.idleTimeout <= 0 {
		return config{}, fmt.Errorf("idle-timeout must be > 0")
	}

	return cfg, nil
}

func parseBrokers(raw string) []string {
	chunks := strings.Split(raw, ",")
	brokers := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		broker := strings.TrimSpace(chunk)
		if broker == "" {
			continue
		}
		brokers = append(brokers, broker)
	}
	return brokers
}

func run(ctx context.Context, cfg config) error {
	log.WithFields(log.Fields{
		"topic":       cfg.topic,
		"limit":       cfg.limit,
		"from_newest": cfg.fromNewest,
	}).Info("starting events tail")

	client, consumer, err := newTailDependencies(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if consumer != nil {
			_ = consumer.Close()
		}
		if client != nil {
			_ = client.Close()
		}
	}()

	return runTail(ctx, cfg, client, consumer)
}

func runTail(ctx context.Context, cfg config, client offsetClient, consumer partitionConsumerSource) error {
	if client == nil || consumer == nil {
		return fmt.Errorf("kafka client and consumer are required")
	}

	partitions, err := client.Partitions(cfg.topic)
	if err != nil {
		return fmt.Errorf("get partitions for topic %s: %w", cfg.topic, err)
	}
	if len(partitions) == 0 {
		log.WithField("topic", cfg.topic).Warn("topic has no partitions")
		return nil
	}
	sort.Slice(partitions, func(i, j int) bool { return partitions[i] < partitions[j] })

	var printed int
	for _, partition := range partitions {
		if printed >= cfg.limit {
			break
		}

		count, err := tailPartition(ctx, consumer, client, cfg, partition, cfg.limit-printed)
		if err != nil {
			return err
		}
		printed += count
	}

	log.WithField("printed", printed).Info("events tail finished")
	return nil
}

func tailPartition(
	ctx context.Context,
	consumer partitionConsumerSource,
	client offsetClient,
	cfg config,
	partition int32,
	limit int,
) (int, error) {
	if limit <= 0 {
		return 0, nil
	}

	oldest, err := client.GetOffset(cfg.topic, partition, sarama.OffsetOldest)
	if err != nil {
		return 0, fmt.Errorf("get oldest offset for partition %d: %w", partition, err)
	}
	newest, err := client.GetOffset(cfg.topic, partition, sarama.OffsetNewest)
	if err != nil {
		return 0, fmt.Errorf("get newest offset for partition %d: %w", partition, err)
	}
	if newest <= oldest {
		return 0, nil
	}

	startOffset := oldest
	if cfg.fromNewest {
		startOffset = newest - int64(limit)
		if startOffset < oldest {
			startOffset = oldest
		}
	}

	pc, err := consumer.ConsumePartition(cfg.topic, partition, startOffset)
	if err != nil {
		return 0, fmt.Errorf("consume partition %d: %w", partition, err)
	}
	defer func() { _ = pc.Close() }()

	idleTimer := time.NewTimer(cfg.idleTimeout)
	defer idleTimer.Stop()

	var printed int
	for printed < limit {
		select {
		case <-ctx.Done():
			return printed, ctx.Err()
		case err := <-pc.Errors():
			if err != nil {
				return printed, fmt.Errorf("partition %d consumer error: %w", partition, err)
			}
		case msg, ok := <-pc.Messages():
			if !ok || msg == nil {
				return printed, nil
			}

			if !idleTimer.Stop() {
				select {
				case <-idleTimer.C:
				default:
				}
			}
			idleTimer.Reset(cfg.idleTimeout)

			if msg.Offset >= newest {
				return printed, nil
			}

			printEvent(msg)
			printed++

			if msg.Offset+1 >= newest {
				return printed, nil
			}
		case <-idleTimer.C:
			return printed, nil
		}
	}

	return printed, nil
}

// printEvent печатает событие в структурированном виде; сообщения, которые
// не декодируются как события заказов, выводятся как сырые байты.
func printEvent(msg *sarama.ConsumerMessage) {
	fields := log.Fields{
		"partition": msg.Partition,
		"offset":    msg.Offset,
		"key":       string(msg.Key),
	}

	event, err := decodeOrderEvent(msg.Value)
	if err != nil {
		fields["raw"] = string(msg.Value)
		log.WithFields(fields).Warn("message is not an order event")
		return
	}

	fields["event_type"] = event.EventType
	fields["order_id"] = event.OrderID
	fields["customer_id"] = event.CustomerID
	fields["total_amount"] = event.TotalAmount
	fields["items"] = len(event.Items)
	log.WithFields(fields).Info("order event")
}

func decodeOrderEvent(value []byte) (kafka.OrderCreatedEvent, error) {
	var event kafka.OrderCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return kafka.OrderCreatedEvent{}, fmt.Errorf("decode order event: %w", err)
	}
	if event.EventType == "" || event.OrderID == "" {
		return kafka.OrderCreatedEvent{}, fmt.Errorf("missing event_type or order_id")
	}
	return event, nil
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
