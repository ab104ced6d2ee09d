package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("producer", func() {
	It("writes events in order", func() {
		w := newTestWriter()
		ep := NewEventProducer(w, WithOutputTopic("moves"))

		Expect(ep.Write(context.TODO(), "kind1", bytes.NewReader([]byte(`{"n":1}`)))).To(Succeed())
		Expect(ep.Write(context.TODO(), "kind2", bytes.NewReader([]byte(`{"n":2}`)))).To(Succeed())

		Eventually(w.Count).Should(Equal(2))
		messages := w.Events()
		Expect(messages[0].Type()).To(Equal("kind1"))
		Expect(messages[1].Type()).To(Equal("kind2"))
		Expect(messages[0].Source()).To(Equal(eventSource))
		Expect(w.Topic()).To(Equal("moves"))

		Expect(ep.Close()).To(Succeed())
	})

	It("writes snapshot events", func() {
		w := newTestWriter()
		ep := NewEventProducer(w)
		defer ep.Close()

		Expect(ep.WriteSnapshotEvent(context.TODO(), SnapshotEvent{
			SnapshotID: "7c5e2a4e-0000-4000-8000-000000000001",
			Action:     SnapshotSaved,
			Label:      "home",
		})).To(Succeed())

		Eventually(w.Count).Should(Equal(1))
		e := w.Events()[0]
		Expect(e.Type()).To(Equal(SnapshotMessageKind))
		Expect(w.Topic()).To(Equal(defaultTopic))

		var payload SnapshotEvent
		Expect(json.Unmarshal(e.Data(), &payload)).To(Succeed())
		Expect(payload.Action).To(Equal(SnapshotSaved))
		Expect(payload.Label).To(Equal("home"))
	})

	It("flushes queued events on close", func() {
		w := newTestWriter()
		ep := NewEventProducer(w)

		for i := 0; i < 1000; i++ {
			Expect(ep.Write(context.TODO(), "kind", bytes.NewReader([]byte(fmt.Sprintf(`{"n":%d}`, i))))).To(Succeed())
		}
		Expect(ep.Close()).To(Succeed())

		Expect(w.Count()).To(Equal(1000))
		Expect(w.Closed()).To(Equal(1))
	})

	It("can be closed twice", func() {
		w := newTestWriter()
		ep := NewEventProducer(w)

		Expect(ep.Close()).To(Succeed())
		Expect(func() { _ = ep.Close() }).NotTo(Panic())
		Expect(w.Closed()).To(Equal(1))
	})
})

type testwriter struct {
	lock     sync.Mutex
	messages []cloudevents.Event
	topic    string
	closed   int
}

func newTestWriter() *testwriter {
	return &testwriter{messages: []cloudevents.Event{}}
}

func (t *testwriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.messages = append(t.messages, e)
	t.topic = topic
	return nil
}

func (t *testwriter) Close(_ context.Context) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.closed++
	return nil
}

func (t *testwriter) Closed() int {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.closed
}

func (t *testwriter) Count() int {
	t.lock.Lock()
	defer t.lock.Unlock()
	return len(t.messages)
}

func (t *testwriter) Events() []cloudevents.Event {
	t.lock.Lock()
	defer t.lock.Unlock()
	return append([]cloudevents.Event(nil), t.messages...)
}

func (t *testwriter) Topic() string {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.topic
}
