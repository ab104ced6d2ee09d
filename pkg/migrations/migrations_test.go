package migrations_test

import (
	"os"
	"path"

	"github.com/smartstow/move-planner/internal/config"
	"github.com/smartstow/move-planner/internal/store"
	"github.com/smartstow/move-planner/pkg/migrations"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("migrations", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	tableExists := func(name string) bool {
		count := 0
		tx := gormdb.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?;", name).Scan(&count)
		Expect(tx.Error).To(BeNil())
		return count == 1
	}

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
	})

	AfterAll(func() {
		s.Close()
	})

	Context("store migrations", Ordered, func() {
		It("fails to migrate the db -- migration folder does not exists", func() {
			cfg := config.NewDefault()
			cfg.Service.MigrationFolder = "some folder"
			err := migrations.MigrateStore(gormdb, cfg)
			Expect(err).NotTo(BeNil())
			Expect(tableExists("saved_snapshots")).To(BeFalse())
		})

		It("fails to migrate the db -- migration folder is a file", func() {
			currentFolder, err := os.Getwd()
			Expect(err).To(BeNil())
			cfg := config.NewDefault()
			cfg.Service.MigrationFolder = path.Join(currentFolder, "migrations.go")

			err = migrations.MigrateStore(gormdb, cfg)
			Expect(err).NotTo(BeNil())
			Expect(err.Error()).To(ContainSubstring("is not a folder"))
		})

		It("successfully migrate the db with the embedded migrations", func() {
			err := migrations.MigrateStore(gormdb, config.NewDefault())
			Expect(err).To(BeNil())
			Expect(tableExists("saved_snapshots")).To(BeTrue())
			Expect(tableExists("goose_db_version")).To(BeTrue())
		})

		It("successfully migrate the db from a folder", func() {
			currentFolder, err := os.Getwd()
			Expect(err).To(BeNil())
			cfg := config.NewDefault()
			cfg.Service.MigrationFolder = path.Join(currentFolder, "sql")

			err = migrations.MigrateStore(gormdb, cfg)
			Expect(err).To(BeNil())
			Expect(tableExists("saved_snapshots")).To(BeTrue())
		})

		It("is a no-op when run twice", func() {
			Expect(migrations.MigrateStore(gormdb, config.NewDefault())).To(Succeed())
			Expect(migrations.MigrateStore(gormdb, config.NewDefault())).To(Succeed())

			count := 0
			tx := gormdb.Raw("SELECT COUNT(*) FROM goose_db_version WHERE version_id > 0;").Scan(&count)
			Expect(tx.Error).To(BeNil())
			Expect(count).To(Equal(2))
		})

		AfterEach(func() {
			gormdb.Exec("DROP TABLE IF EXISTS saved_snapshots;")
			gormdb.Exec("DROP TABLE IF EXISTS goose_db_version;")
		})
	})
})
