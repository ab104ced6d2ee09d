package service_test

import (
	"context"
	"errors"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	"github.com/smartstow/move-planner/internal/config"
	"github.com/smartstow/move-planner/internal/events"
	"github.com/smartstow/move-planner/internal/household"
	"github.com/smartstow/move-planner/internal/reference"
	"github.com/smartstow/move-planner/internal/service"
	"github.com/smartstow/move-planner/internal/store"
	"github.com/smartstow/move-planner/pkg/migrations"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

const insertSnapshotStm = "INSERT INTO saved_snapshots (id, label, schema_version, table_version, record, created_at, updated_at) VALUES ('%s', '%s', 'smartstow.snapshot/v1', '3.0', '%s', ?, ?);"

var _ = Describe("snapshot service", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		srv    *service.SnapshotService
	)

	busySnapshot := func() household.Snapshot {
		snapshot := household.NewSnapshot(household.NewHomeProfile(reference.Tier3Bed, reference.DensityAboveAverage, 3, 2))
		snapshot.SetHobby(reference.HobbyMusician, reference.IntensityPro)
		snapshot.SetHobby(reference.HobbyGarden, reference.IntensityMin)
		snapshot.SetPieceCount(reference.PieceSofa, 2)
		return snapshot
	}

	BeforeAll(func() {
		cfg := config.NewDefault()
		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())
		Expect(migrations.MigrateStore(db, cfg)).To(Succeed())

		s = store.NewStore(db)
		gormdb = db
		srv = service.NewSnapshotService(s, nil)
	})

	AfterAll(func() {
		s.Close()
	})

	Context("save", func() {
		It("saves and reads back a snapshot", func() {
			saved, err := srv.Save(context.TODO(), service.SnapshotForm{Label: "  family home ", Snapshot: busySnapshot()})
			Expect(err).To(BeNil())
			Expect(saved.ID).NotTo(Equal(uuid.Nil))
			Expect(saved.Label).To(Equal("family home"))
			Expect(saved.TableVersion).To(Equal(reference.DefaultVersion))
			Expect(saved.Restored).To(BeTrue())

			got, err := srv.Get(context.TODO(), saved.ID)
			Expect(err).To(BeNil())
			Expect(got.Restored).To(BeTrue())
			Expect(got.Snapshot).To(Equal(busySnapshot().Normalize()))
		})

		It("requires a label", func() {
			_, err := srv.Save(context.TODO(), service.SnapshotForm{Label: "   ", Snapshot: busySnapshot()})
			var invalid *service.ErrInvalidInput
			Expect(errors.As(err, &invalid)).To(BeTrue())
		})

		AfterEach(func() {
			gormdb.Exec("DELETE FROM saved_snapshots;")
		})
	})

	Context("get", func() {
		It("falls back to the default snapshot when the record is damaged", func() {
			id := uuid.New()
			now := time.Now()
			tx := gormdb.Exec(fmt.Sprintf(insertSnapshotStm, id, "broken", `{"schemaVersion":"smartstow.snapshot/v0"}`), now, now)
			Expect(tx.Error).To(BeNil())

			got, err := srv.Get(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(got.Restored).To(BeFalse())
			Expect(got.RestoreError).NotTo(BeEmpty())
			Expect(got.Label).To(Equal("broken"))
			Expect(got.Snapshot).To(Equal(household.DefaultSnapshot()))
		})

		It("falls back when the record is not json", func() {
			id := uuid.New()
			now := time.Now()
			tx := gormdb.Exec(fmt.Sprintf(insertSnapshotStm, id, "garbage", "not json"), now, now)
			Expect(tx.Error).To(BeNil())

			got, err := srv.Get(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(got.Restored).To(BeFalse())
		})

		It("returns not found for a missing snapshot", func() {
			_, err := srv.Get(context.TODO(), uuid.New())
			var notFound *service.ErrResourceNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})

		AfterEach(func() {
			gormdb.Exec("DELETE FROM saved_snapshots;")
		})
	})

	Context("update", func() {
		It("replaces label, table and inputs", func() {
			saved, err := srv.Save(context.TODO(), service.SnapshotForm{Label: "home", Snapshot: household.DefaultSnapshot()})
			Expect(err).To(BeNil())

			updated, err := srv.Update(context.TODO(), saved.ID, service.SnapshotForm{
				Label:        "home v2",
				TableVersion: "2.0",
				Snapshot:     busySnapshot(),
			})
			Expect(err).To(BeNil())
			Expect(updated.ID).To(Equal(saved.ID))
			Expect(updated.Label).To(Equal("home v2"))
			Expect(updated.TableVersion).To(Equal("2.0"))
			Expect(updated.Snapshot).To(Equal(busySnapshot().Normalize()))

			count := 0
			Expect(gormdb.Raw("SELECT COUNT(*) FROM saved_snapshots;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("fails to update a missing snapshot", func() {
			_, err := srv.Update(context.TODO(), uuid.New(), service.SnapshotForm{Label: "x", Snapshot: busySnapshot()})
			var notFound *service.ErrResourceNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())

			// the rolled back transaction released the connection
			_, err = srv.Save(context.TODO(), service.SnapshotForm{Label: "after", Snapshot: busySnapshot()})
			Expect(err).To(BeNil())
		})

		It("validates before touching the store", func() {
			_, err := srv.Update(context.TODO(), uuid.New(), service.SnapshotForm{Label: ""})
			var invalid *service.ErrInvalidInput
			Expect(errors.As(err, &invalid)).To(BeTrue())
		})

		AfterEach(func() {
			gormdb.Exec("DELETE FROM saved_snapshots;")
		})
	})

	Context("list and delete", func() {
		It("lists with filters", func() {
			for _, form := range []service.SnapshotForm{
				{Label: "Lake house", TableVersion: "3.0"},
				{Label: "city house", TableVersion: "2.0"},
				{Label: "studio", TableVersion: "3.0"},
			} {
				form.Snapshot = household.DefaultSnapshot()
				_, err := srv.Save(context.TODO(), form)
				Expect(err).To(BeNil())
			}

			all, err := srv.List(context.TODO(), service.SnapshotFilter{})
			Expect(err).To(BeNil())
			Expect(all).To(HaveLen(3))

			houses, err := srv.List(context.TODO(), service.SnapshotFilter{Label: "house"})
			Expect(err).To(BeNil())
			Expect(houses).To(HaveLen(2))

			classic, err := srv.List(context.TODO(), service.SnapshotFilter{TableVersion: "2.0"})
			Expect(err).To(BeNil())
			Expect(classic).To(HaveLen(1))
			Expect(classic[0].Label).To(Equal("city house"))

			page, err := srv.List(context.TODO(), service.SnapshotFilter{Limit: 2})
			Expect(err).To(BeNil())
			Expect(page).To(HaveLen(2))
		})

		It("deletes a snapshot", func() {
			saved, err := srv.Save(context.TODO(), service.SnapshotForm{Label: "gone", Snapshot: household.DefaultSnapshot()})
			Expect(err).To(BeNil())

			Expect(srv.Delete(context.TODO(), saved.ID)).To(Succeed())

			err = srv.Delete(context.TODO(), saved.ID)
			var notFound *service.ErrResourceNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})

		AfterEach(func() {
			gormdb.Exec("DELETE FROM saved_snapshots;")
		})
	})

	Context("events", func() {
		It("publishes the snapshot lifecycle", func() {
			w := newTestWriter()
			ep := events.NewEventProducer(w)
			defer ep.Close()
			srvWithEvents := service.NewSnapshotService(s, ep)

			saved, err := srvWithEvents.Save(context.TODO(), service.SnapshotForm{Label: "home", Snapshot: household.DefaultSnapshot()})
			Expect(err).To(BeNil())
			_, err = srvWithEvents.Update(context.TODO(), saved.ID, service.SnapshotForm{Label: "home v2", Snapshot: household.DefaultSnapshot()})
			Expect(err).To(BeNil())
			Expect(srvWithEvents.Delete(context.TODO(), saved.ID)).To(Succeed())

			Eventually(w.Count).Should(Equal(3))

			actions := []events.SnapshotAction{}
			for _, e := range w.Events() {
				Expect(e.Type()).To(Equal(events.SnapshotMessageKind))
				var payload events.SnapshotEvent
				Expect(json.Unmarshal(e.Data(), &payload)).To(Succeed())
				Expect(payload.SnapshotID).To(Equal(saved.ID.String()))
				actions = append(actions, payload.Action)
			}
			Expect(actions).To(Equal([]events.SnapshotAction{events.SnapshotSaved, events.SnapshotUpdated, events.SnapshotDeleted}))
		})

		It("does not publish failed operations", func() {
			w := newTestWriter()
			ep := events.NewEventProducer(w)
			defer ep.Close()
			srvWithEvents := service.NewSnapshotService(s, ep)

			_, err := srvWithEvents.Save(context.TODO(), service.SnapshotForm{Label: ""})
			Expect(err).NotTo(BeNil())
			Expect(srvWithEvents.Delete(context.TODO(), uuid.New())).NotTo(Succeed())

			Consistently(w.Count, "200ms").Should(Equal(0))
		})

		AfterEach(func() {
			gormdb.Exec("DELETE FROM saved_snapshots;")
		})
	})
})

type testwriter struct {
	lock     sync.Mutex
	messages []cloudevents.Event
}

func newTestWriter() *testwriter {
	return &testwriter{messages: []cloudevents.Event{}}
}

func (t *testwriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.messages = append(t.messages, e)
	return nil
}

func (t *testwriter) Close(_ context.Context) error {
	return nil
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
