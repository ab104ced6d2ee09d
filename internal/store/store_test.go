package store_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartstow/move-planner/internal/config"
	st "github.com/smartstow/move-planner/internal/store"
	"github.com/smartstow/move-planner/internal/store/model"
	"github.com/smartstow/move-planner/pkg/migrations"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func newSavedSnapshot(label, tableVersion string) model.SavedSnapshot {
	return model.SavedSnapshot{
		Label:         label,
		SchemaVersion: "smartstow.snapshot/v1",
		TableVersion:  tableVersion,
		Record:        `{"schemaVersion":"smartstow.snapshot/v1"}`,
	}
}

var _ = Describe("Store", Ordered, func() {
	var (
		store  st.Store
		gormDB *gorm.DB
	)

	BeforeAll(func() {
		cfg := config.NewDefault()
		db, err := st.InitDB(cfg)
		Expect(err).To(BeNil())
		gormDB = db
		Expect(migrations.MigrateStore(db, cfg)).To(Succeed())

		store = st.NewStore(db)
		Expect(store).ToNot(BeNil())
	})

	AfterAll(func() {
		store.Close()
	})

	Context("transaction", func() {
		It("insert a snapshot successfully", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			snapshot, err := store.Snapshot().Create(ctx, newSavedSnapshot("home", "3.0"))
			Expect(snapshot).ToNot(BeNil())
			Expect(err).To(BeNil())

			// commit
			_, cerr := st.Commit(ctx)
			Expect(cerr).To(BeNil())

			count := 0
			err = gormDB.Raw("SELECT COUNT(*) from saved_snapshots;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("rollback a snapshot successfully", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			snapshot, err := store.Snapshot().Create(ctx, newSavedSnapshot("home", "3.0"))
			Expect(snapshot).ToNot(BeNil())
			Expect(err).To(BeNil())

			// count in the same transaction
			snapshots, err := store.Snapshot().List(ctx, st.NewSnapshotQueryFilter(), nil)
			Expect(err).To(BeNil())
			Expect(snapshots).To(HaveLen(1))

			// rollback
			_, cerr := st.Rollback(ctx)
			Expect(cerr).To(BeNil())

			count := 0
			err = gormDB.Raw("SELECT COUNT(*) from saved_snapshots;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(0))
		})

		It("reuses the transaction already in the context", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())
			nested, err := store.NewTransactionContext(ctx)
			Expect(err).To(BeNil())
			Expect(st.FromContext(nested)).To(BeIdenticalTo(st.FromContext(ctx)))

			_, err = st.Rollback(ctx)
			Expect(err).To(BeNil())
		})

		It("commit without a transaction is a no-op", func() {
			ctx := context.TODO()
			newCtx, err := st.Commit(ctx)
			Expect(err).To(BeNil())
			Expect(newCtx).To(Equal(ctx))
		})

		AfterEach(func() {
			gormDB.Exec("DELETE from saved_snapshots;")
		})
	})

	Context("snapshot", func() {
		It("creates a snapshot with a generated id", func() {
			snapshot, err := store.Snapshot().Create(context.TODO(), newSavedSnapshot("home", "3.0"))
			Expect(err).To(BeNil())
			Expect(snapshot.ID).NotTo(Equal(uuid.Nil))
			Expect(snapshot.CreatedAt.IsZero()).To(BeFalse())
		})

		It("keeps a caller provided id", func() {
			id := uuid.New()
			m := newSavedSnapshot("home", "3.0")
			m.ID = id
			_, err := store.Snapshot().Create(context.TODO(), m)
			Expect(err).To(BeNil())

			got, err := store.Snapshot().Get(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(got.ID).To(Equal(id))
			Expect(got.Label).To(Equal("home"))
			Expect(got.Record).To(Equal(m.Record))
		})

		It("refuses a duplicated id", func() {
			m := newSavedSnapshot("home", "3.0")
			m.ID = uuid.New()
			_, err := store.Snapshot().Create(context.TODO(), m)
			Expect(err).To(BeNil())

			_, err = store.Snapshot().Create(context.TODO(), m)
			Expect(err).To(MatchError(st.ErrDuplicateKey))
		})

		It("returns not found for a missing snapshot", func() {
			_, err := store.Snapshot().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})

		It("updates a snapshot", func() {
			created, err := store.Snapshot().Create(context.TODO(), newSavedSnapshot("home", "3.0"))
			Expect(err).To(BeNil())

			created.Label = "cabin"
			created.TableVersion = "2.0"
			created.Record = `{"changed":true}`
			updated, err := store.Snapshot().Update(context.TODO(), *created)
			Expect(err).To(BeNil())
			Expect(updated.Label).To(Equal("cabin"))
			Expect(updated.TableVersion).To(Equal("2.0"))
			Expect(updated.Record).To(Equal(`{"changed":true}`))
			Expect(updated.UpdatedAt).To(BeTemporally(">=", created.CreatedAt))
		})

		It("fails to update a missing snapshot", func() {
			m := newSavedSnapshot("home", "3.0")
			m.ID = uuid.New()
			_, err := store.Snapshot().Update(context.TODO(), m)
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})

		It("deletes a snapshot", func() {
			created, err := store.Snapshot().Create(context.TODO(), newSavedSnapshot("home", "3.0"))
			Expect(err).To(BeNil())

			Expect(store.Snapshot().Delete(context.TODO(), created.ID)).To(Succeed())
			_, err = store.Snapshot().Get(context.TODO(), created.ID)
			Expect(err).To(MatchError(st.ErrRecordNotFound))

			err = store.Snapshot().Delete(context.TODO(), created.ID)
			Expect(err).To(MatchError(st.ErrRecordNotFound))
		})

		It("lists snapshots with filters and options", func() {
			for _, label := range []string{"Home", "home office", "cabin"} {
				_, err := store.Snapshot().Create(context.TODO(), newSavedSnapshot(label, "3.0"))
				Expect(err).To(BeNil())
			}
			_, err := store.Snapshot().Create(context.TODO(), newSavedSnapshot("garage", "2.0"))
			Expect(err).To(BeNil())

			all, err := store.Snapshot().List(context.TODO(), st.NewSnapshotQueryFilter(), nil)
			Expect(err).To(BeNil())
			Expect(all).To(HaveLen(4))

			homes, err := store.Snapshot().List(context.TODO(), st.NewSnapshotQueryFilter().ByLabelLike("HOME"), nil)
			Expect(err).To(BeNil())
			Expect(homes).To(HaveLen(2))

			classic, err := store.Snapshot().List(context.TODO(), st.NewSnapshotQueryFilter().ByTableVersion("2.0"), nil)
			Expect(err).To(BeNil())
			Expect(classic).To(HaveLen(1))
			Expect(classic[0].Label).To(Equal("garage"))

			page, err := store.Snapshot().List(context.TODO(), nil,
				st.NewSnapshotQueryOptions().WithSortOrder(st.SortByLabel).WithLimit(2).WithOffset(1))
			Expect(err).To(BeNil())
			Expect(page).To(HaveLen(2))
			Expect(page[0].Label).To(Equal("cabin"))
			Expect(page[1].Label).To(Equal("garage"))

			count, err := store.Snapshot().Count(context.TODO(), st.NewSnapshotQueryFilter().ByTableVersion("3.0"))
			Expect(err).To(BeNil())
			Expect(count).To(BeEquivalentTo(3))
		})

		It("filters by id", func() {
			a, err := store.Snapshot().Create(context.TODO(), newSavedSnapshot("a", "3.0"))
			Expect(err).To(BeNil())
			_, err = store.Snapshot().Create(context.TODO(), newSavedSnapshot("b", "3.0"))
			Expect(err).To(BeNil())

			got, err := store.Snapshot().List(context.TODO(), st.NewSnapshotQueryFilter().ByID([]uuid.UUID{a.ID}), nil)
			Expect(err).To(BeNil())
			Expect(got).To(HaveLen(1))
			Expect(got[0].ID).To(Equal(a.ID))
		})

		AfterEach(func() {
			gormDB.Exec("DELETE from saved_snapshots;")
		})
	})

	Context("statistics", func() {
		It("counts snapshots by table version", func() {
			for _, v := range []string{"3.0", "3.0", "2.0"} {
				_, err := store.Snapshot().Create(context.TODO(), newSavedSnapshot("home", v))
				Expect(err).To(BeNil())
			}

			stats, err := store.Statistics(context.TODO())
			Expect(err).To(BeNil())
			Expect(stats.Total).To(Equal(3))
			Expect(stats.TotalByTableVersion).To(Equal(map[string]int{"3.0": 2, "2.0": 1}))
		})

		It("is empty without snapshots", func() {
			stats, err := store.Statistics(context.TODO())
			Expect(err).To(BeNil())
			Expect(stats.Total).To(BeZero())
		})

		AfterEach(func() {
			gormDB.Exec("DELETE from saved_snapshots;")
		})
	})
})
