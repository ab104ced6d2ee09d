package events

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	SnapshotMessageKind string = "smartstow.moveplanner.events.snapshot"
	defaultTopic        string = "smartstow.moveplanner.events"
	eventSource         string = "smartstow.moveplanner"
)

// Writer is the interface to be implemented by the underlying writer.
type Writer interface {
	Write(ctx context.Context, topic string, e cloudevents.Event) error
	Close(ctx context.Context) error
}

// EventProducer is a wrapper around a Writer with the buffer.
// Events are queued and written by a background goroutine so a slow writer never blocks the caller.
type EventProducer struct {
	buffer           *buffer
	startConsumingCh chan any
	doneCh           chan any
	stoppedCh        chan any
	closeOnce        sync.Once
	closeErr         error
	writer           Writer
	topic            string
}

func NewEventProducer(w Writer, opts ...ProducerOptions) *EventProducer {
	ep := &EventProducer{
		buffer:           newBuffer(),
		startConsumingCh: make(chan any, 1),
		doneCh:           make(chan any),
		stoppedCh:        make(chan any),
		writer:           w,
		topic:            defaultTopic,
	}

	for _, o := range opts {
		o(ep)
	}

	go ep.run()
	return ep
}

func (ep *EventProducer) Write(ctx context.Context, kind string, body io.Reader) error {
	d, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	ep.buffer.PushBack(&message{
		Kind: kind,
		Data: d,
	})

	// wake the consumer; a pending wake-up is enough
	select {
	case ep.startConsumingCh <- struct{}{}:
	default:
	}

	return nil
}

// WriteSnapshotEvent publishes a snapshot lifecycle event.
func (ep *EventProducer) WriteSnapshotEvent(ctx context.Context, e SnapshotEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return ep.Write(ctx, SnapshotMessageKind, bytes.NewReader(data))
}

// Close flushes the queued events and closes the writer.
// Events still queued when the timeout expires are dropped. Calling Close again returns the first result.
func (ep *EventProducer) Close() error {
	ep.closeOnce.Do(func() {
		ep.closeErr = ep.close()
	})
	return ep.closeErr
}

func (ep *EventProducer) close() error {
	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	g, ctx := errgroup.WithContext(closeCtx)
	g.Go(func() error {
		close(ep.doneCh)
		select {
		case <-ep.stoppedCh:
		case <-ctx.Done():
			zap.S().Named("event_producer").Warnw("closing before the queue drained", "pending", ep.buffer.Size())
		}
		return ep.writer.Close(ctx)
	})
	if err := g.Wait(); err != nil {
		zap.S().Errorf("event producer closed with error: %s", err)
		return err
	}

	zap.S().Named("event producer").Info("event producer closed")

	return nil
}

func (ep *EventProducer) run() {
	defer close(ep.stoppedCh)

	for {
		msg := ep.buffer.Pop()
		if msg == nil {
			select {
			case <-ep.startConsumingCh:
				continue
			case <-ep.doneCh:
			}
			// a Write may have raced the close
			if msg = ep.buffer.Pop(); msg == nil {
				return
			}
		}

		e := cloudevents.NewEvent()
		e.SetID(uuid.NewString())
		e.SetSource(eventSource)
		e.SetType(msg.Kind)
		e.SetTime(time.Now())
		_ = e.SetData(*cloudevents.StringOfApplicationJSON(), msg.Data)

		if err := ep.writer.Write(context.TODO(), ep.topic, e); err != nil {
			zap.S().Named("event_producer").Errorw("failed to send message", "error", err, "event", e)
		}
	}
}
