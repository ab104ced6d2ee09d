package events

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("buffer", func() {
	It("keeps messages in arrival order", func() {
		buffer := newBuffer()

		buffer.PushBack(&message{Kind: SnapshotMessageKind, Data: []byte("msg1")})
		Expect(buffer.Size()).To(Equal(1))
		Expect(buffer.head).To(BeIdenticalTo(buffer.tail))

		buffer.PushBack(&message{Kind: SnapshotMessageKind, Data: []byte("msg2")})
		buffer.PushBack(&message{Kind: SnapshotMessageKind, Data: []byte("msg3")})
		Expect(buffer.Size()).To(Equal(3))
		Expect(buffer.head.Data).To(Equal([]byte("msg1")))
		Expect(buffer.tail.Data).To(Equal([]byte("msg3")))

		for _, want := range []string{"msg1", "msg2", "msg3"} {
			m := buffer.Pop()
			Expect(m).NotTo(BeNil())
			Expect(string(m.Data)).To(Equal(want))
		}
		Expect(buffer.Size()).To(Equal(0))
		Expect(buffer.head).To(BeNil())
		Expect(buffer.tail).To(BeNil())
	})

	It("returns nil when empty", func() {
		buffer := newBuffer()
		Expect(buffer.Pop()).To(BeNil())

		buffer.PushBack(&message{Kind: SnapshotMessageKind, Data: []byte("msg1")})
		Expect(buffer.Pop()).NotTo(BeNil())
		Expect(buffer.Pop()).To(BeNil())
	})
})
