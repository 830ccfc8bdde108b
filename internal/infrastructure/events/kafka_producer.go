// Package events publica los cambios de usuarios en Kafka.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/company-admin/internal/application/ports"
	"github.com/jhoicas/company-admin/pkg/config"
	"github.com/jhoicas/company-admin/pkg/logger"
)

// ErrQueueFull se devuelve cuando el buffer de eventos está lleno y el evento se descarta.
var ErrQueueFull = errors.New("cola de eventos llena")

var jsonMarshal = json.Marshal

const (
	queueSize    = 1000
	writeTimeout = 10 * time.Second
)

var _ ports.EventPublisher = (*Producer)(nil)

// KafkaWriter subconjunto de *kafka.Writer usado por el productor.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publica de forma asíncrona: Publish encola y un goroutine escribe en Kafka.
// La clave del mensaje es el ID de usuario, así los eventos de un usuario quedan
// en la misma partición y en orden.
type Producer struct {
	writer    KafkaWriter
	events    chan ports.UserEvent
	log       *logger.Logger
	closeChan chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewProducer crea el tópico si no existe y arranca el loop de escritura.
func NewProducer(cfg config.KafkaConfig, log *logger.Logger) (*Producer, error) {
	if !cfg.Enabled() {
		return nil, errors.New("kafka: sin brokers configurados")
	}
	conn, err := kafka.Dial("tcp", cfg.Brokers[0])
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             cfg.Topic,
		NumPartitions:     3,
		ReplicationFactor: 1,
	})
	if err != nil {
		log.Warn().Err(err).Str("topic", cfg.Topic).Msg("no se pudo crear el tópico (puede existir)")
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Balancer: &kafka.Hash{},
		Topic:    cfg.Topic,
	}
	return newProducer(writer, queueSize, log), nil
}

func newProducer(writer KafkaWriter, size int, log *logger.Logger) *Producer {
	p := &Producer{
		writer:    writer,
		events:    make(chan ports.UserEvent, size),
		log:       log.Component("kafka_producer"),
		closeChan: make(chan struct{}),
	}
	p.wg.Add(1)
	go p.eventLoop()
	return p
}

// Publish encola los eventos sin bloquear. Si la cola se llena descarta el
// resto y devuelve ErrQueueFull.
func (p *Producer) Publish(_ context.Context, events ...ports.UserEvent) error {
	for _, e := range events {
		select {
		case p.events <- e:
		default:
			p.log.Warn().Str("event_type", e.Type).Int64("user_id", e.UserID).Msg("cola de kafka llena, se descarta el evento")
			return ErrQueueFull
		}
	}
	return nil
}

func (p *Producer) eventLoop() {
	defer p.wg.Done()
	for {
		select {
		case e := <-p.events:
			p.sendEvent(context.Background(), e)
		case <-p.closeChan:
			// vaciar lo pendiente antes de salir
			for {
				select {
				case e := <-p.events:
					p.sendEvent(context.Background(), e)
				default:
					return
				}
			}
		}
	}
}

func (p *Producer) sendEvent(ctx context.Context, e ports.UserEvent) {
	value, err := jsonMarshal(e)
	if err != nil {
		p.log.Error().Err(err).Int64("user_id", e.UserID).Msg("no se pudo serializar el evento")
		return
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(e.UserID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type)},
		},
	})
	if err != nil {
		p.log.Error().Err(err).Str("event_type", e.Type).Int64("user_id", e.UserID).Msg("no se pudo publicar el evento")
	}
}

// Close detiene el loop tras vaciar la cola y cierra el writer.
func (p *Producer) Close() error {
	var err error
	p.closeOnce.Do(func() {
		close(p.closeChan)
		p.wg.Wait()
		err = p.writer.Close()
	})
	return err
}
