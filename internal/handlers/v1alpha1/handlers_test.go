package v1alpha1_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/smartstow/move-planner/api/v1alpha1"
	"github.com/smartstow/move-planner/internal/config"
	handlers "github.com/smartstow/move-planner/internal/handlers/v1alpha1"
	hh "github.com/smartstow/move-planner/internal/household"
	"github.com/smartstow/move-planner/internal/service"
	"github.com/smartstow/move-planner/internal/store"
	"github.com/smartstow/move-planner/pkg/migrations"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

const insertSnapshotStm = "INSERT INTO saved_snapshots (id, label, schema_version, table_version, record, created_at, updated_at) VALUES ('%s', '%s', 'smartstow.snapshot/v1', '3.0', '%s', ?, ?);"

var _ = Describe("v1alpha1 handlers", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		router *chi.Mux
	)

	do := func(method, path string, body any) *httptest.ResponseRecorder {
		var reader *bytes.Reader
		switch b := body.(type) {
		case nil:
			reader = bytes.NewReader(nil)
		case string:
			reader = bytes.NewReader([]byte(b))
		default:
			data, err := json.Marshal(b)
			Expect(err).To(BeNil())
			reader = bytes.NewReader(data)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	decode := func(rec *httptest.ResponseRecorder, v any) {
		Expect(json.Unmarshal(rec.Body.Bytes(), v)).To(Succeed())
	}

	household := func() *v1alpha1.Household {
		return &v1alpha1.Household{
			Home:      &v1alpha1.HomeProfile{Tier: "2bed", Density: "average", Occupants: 2, Helpers: 1},
			Hobbies:   map[string]string{"cycling": "high"},
			Furniture: map[string]int{"sofa": 1, "bed": 2},
		}
	}

	BeforeAll(func() {
		cfg := config.NewDefault()
		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())
		Expect(migrations.MigrateStore(db, cfg)).To(Succeed())

		s = store.NewStore(db)
		gormdb = db

		registry, err := service.NewReferenceRegistry("")
		Expect(err).To(BeNil())

		h := handlers.NewServiceHandler(
			service.NewEstimationService(registry, cfg.Service.Reference.Version),
			service.NewSnapshotService(s, nil),
			service.NewReportService(),
		)
		router = chi.NewRouter()
		h.Register(router)
	})

	AfterAll(func() {
		s.Close()
	})

	Context("health", func() {
		It("reports ok", func() {
			rec := do(http.MethodGet, "/health", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var status v1alpha1.Status
			decode(rec, &status)
			Expect(status.Status).To(Equal(v1alpha1.StatusOK))
		})
	})

	Context("estimates", func() {
		It("estimates a household", func() {
			rec := do(http.MethodPost, "/api/v1/estimates", v1alpha1.EstimateRequest{Household: household()})
			Expect(rec.Code).To(Equal(http.StatusOK))

			var estimate v1alpha1.Estimate
			decode(rec, &estimate)
			Expect(estimate.TableVersion).To(Equal("3.0"))
			Expect(estimate.Truck.Classes).NotTo(BeEmpty())
			Expect(estimate.Truck.Recommendation).NotTo(BeEmpty())
			Expect(estimate.Supplies.Boxes.Min).To(BeNumerically("<=", estimate.Supplies.Boxes.Max))
			Expect(estimate.Labor.FurniturePieces).To(BeNumerically(">=", 3))
			Expect(estimate.Display.Boxes).NotTo(BeEmpty())
			Expect(estimate.Plan.Name).NotTo(BeEmpty())
		})

		It("estimates with an older table and the tier furniture", func() {
			h := household()
			h.UseTierDefaults = true
			h.Furniture = nil
			rec := do(http.MethodPost, "/api/v1/estimates", v1alpha1.EstimateRequest{Household: h, TableVersion: "2.0"})
			Expect(rec.Code).To(Equal(http.StatusOK))

			var estimate v1alpha1.Estimate
			decode(rec, &estimate)
			Expect(estimate.TableVersion).To(Equal("2.0"))
			Expect(estimate.Labor.HousePieces).To(BeNumerically(">", 0))
		})

		It("reads avg as the average intensity", func() {
			withAvg := household()
			withAvg.Hobbies = map[string]string{"ski": "avg"}
			withAverage := household()
			withAverage.Hobbies = map[string]string{"ski": "average"}

			rec := do(http.MethodPost, "/api/v1/estimates", v1alpha1.EstimateRequest{Household: withAvg})
			Expect(rec.Code).To(Equal(http.StatusOK))
			var got v1alpha1.Estimate
			decode(rec, &got)

			rec = do(http.MethodPost, "/api/v1/estimates", v1alpha1.EstimateRequest{Household: withAverage})
			Expect(rec.Code).To(Equal(http.StatusOK))
			var want v1alpha1.Estimate
			decode(rec, &want)

			Expect(got).To(Equal(want))
		})

		It("clamps very large counts", func() {
			h := household()
			h.Home.Occupants = math.MaxInt
			h.Home.Helpers = math.MaxInt
			h.Furniture = map[string]int{"sofa": math.MaxInt}

			rec := do(http.MethodPost, "/api/v1/estimates", v1alpha1.EstimateRequest{Household: h})
			Expect(rec.Code).To(Equal(http.StatusOK))

			var estimate v1alpha1.Estimate
			decode(rec, &estimate)
			Expect(estimate.Supplies.WardrobeBoxes).To(BeNumerically(">", 0))
			Expect(estimate.Supplies.VacuumBags).To(BeNumerically(">", 0))
			Expect(estimate.Labor.Helpers).To(Equal(hh.MaxHelpers))
			Expect(estimate.Labor.HousePieces).To(Equal(hh.MaxCount))
			Expect(estimate.Labor.PackingHours.Min).To(BeNumerically(">", 0))
			Expect(estimate.Labor.PackingHours.Min).To(BeNumerically("<=", estimate.Labor.PackingHours.Max))
		})

		It("rejects an empty body", func() {
			rec := do(http.MethodPost, "/api/v1/estimates", nil)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var apiErr v1alpha1.Error
			decode(rec, &apiErr)
			Expect(apiErr.Message).To(Equal("empty body"))
		})

		It("rejects malformed json", func() {
			rec := do(http.MethodPost, "/api/v1/estimates", `{"household":`)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects an unknown home size", func() {
			h := household()
			h.Home.Tier = "castle"
			rec := do(http.MethodPost, "/api/v1/estimates", v1alpha1.EstimateRequest{Household: h})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var apiErr v1alpha1.Error
			decode(rec, &apiErr)
			Expect(apiErr.Message).To(ContainSubstring("castle"))
		})

		It("rejects an unknown reference table", func() {
			rec := do(http.MethodPost, "/api/v1/estimates", v1alpha1.EstimateRequest{Household: household(), TableVersion: "9.9"})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))

			var apiErr v1alpha1.Error
			decode(rec, &apiErr)
			Expect(apiErr.Message).To(ContainSubstring("9.9"))
		})
	})

	Context("reports", func() {
		It("renders a csv plan", func() {
			rec := do(http.MethodPost, "/api/v1/estimates/report?format=csv", v1alpha1.ReportRequest{Household: household()})
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(HavePrefix("text/csv"))
			Expect(rec.Header().Get("Content-Disposition")).To(ContainSubstring("attachment"))
			Expect(rec.Body.String()).To(ContainSubstring("MOVE PLAN"))
		})

		It("renders html by default", func() {
			rec := do(http.MethodPost, "/api/v1/estimates/report", v1alpha1.ReportRequest{Household: household(), Title: "Our move"})
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(HavePrefix("text/html"))
			Expect(rec.Body.String()).To(ContainSubstring("Our move"))
		})

		It("rejects an unsupported format", func() {
			rec := do(http.MethodPost, "/api/v1/estimates/report?format=pdf", v1alpha1.ReportRequest{Household: household()})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("reference tables", func() {
		It("lists the presets with the default flagged", func() {
			rec := do(http.MethodGet, "/api/v1/reference-tables", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var tables v1alpha1.ReferenceTableList
			decode(rec, &tables)
			Expect(len(tables)).To(BeNumerically(">=", 2))

			defaults := 0
			for _, t := range tables {
				if t.Default {
					defaults++
					Expect(t.Version).To(Equal("3.0"))
				}
			}
			Expect(defaults).To(Equal(1))
		})

		It("describes one table", func() {
			rec := do(http.MethodGet, "/api/v1/reference-tables/3.0", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var table v1alpha1.ReferenceTable
			decode(rec, &table)
			Expect(table.Version).To(Equal("3.0"))
			Expect(table.HomeTiers).To(ContainElement("studio"))
			Expect(table.Hobbies).NotTo(BeEmpty())
			Expect(table.Trucks[len(table.Trucks)-1].MaxSpace).To(BeNil())
		})

		It("returns not found for an unknown table", func() {
			rec := do(http.MethodGet, "/api/v1/reference-tables/9.9", nil)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Context("snapshots", func() {
		It("creates, reads, updates and deletes a snapshot", func() {
			rec := do(http.MethodPost, "/api/v1/snapshots", v1alpha1.SnapshotCreate{Label: "family home", Household: household()})
			Expect(rec.Code).To(Equal(http.StatusCreated))

			var created v1alpha1.Snapshot
			decode(rec, &created)
			Expect(created.Id).NotTo(Equal(uuid.Nil))
			Expect(created.Restored).To(BeTrue())
			Expect(created.TableVersion).To(Equal("3.0"))
			Expect(created.Household.Hobbies).To(HaveKeyWithValue("cycling", "high"))

			rec = do(http.MethodGet, "/api/v1/snapshots/"+created.Id.String(), nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var got v1alpha1.Snapshot
			decode(rec, &got)
			Expect(got.Household.Furniture).To(HaveKeyWithValue("bed", 2))

			updated := household()
			updated.Home.Tier = "studio"
			rec = do(http.MethodPut, "/api/v1/snapshots/"+created.Id.String(), v1alpha1.SnapshotUpdate{Label: "studio", TableVersion: "2.0", Household: updated})
			Expect(rec.Code).To(Equal(http.StatusOK))
			decode(rec, &got)
			Expect(got.Label).To(Equal("studio"))
			Expect(got.TableVersion).To(Equal("2.0"))
			Expect(got.Household.Home.Tier).To(Equal("studio"))

			rec = do(http.MethodDelete, "/api/v1/snapshots/"+created.Id.String(), nil)
			Expect(rec.Code).To(Equal(http.StatusNoContent))

			rec = do(http.MethodGet, "/api/v1/snapshots/"+created.Id.String(), nil)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("lists snapshots with a label filter", func() {
			for _, label := range []string{"Lake house", "city house", "studio"} {
				rec := do(http.MethodPost, "/api/v1/snapshots", v1alpha1.SnapshotCreate{Label: label, Household: household()})
				Expect(rec.Code).To(Equal(http.StatusCreated))
			}

			rec := do(http.MethodGet, "/api/v1/snapshots?label=house", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var list v1alpha1.SnapshotList
			decode(rec, &list)
			Expect(list).To(HaveLen(2))

			rec = do(http.MethodGet, "/api/v1/snapshots?limit=1", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			decode(rec, &list)
			Expect(list).To(HaveLen(1))

			rec = do(http.MethodGet, "/api/v1/snapshots?limit=many", nil)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects an invalid label", func() {
			rec := do(http.MethodPost, "/api/v1/snapshots", v1alpha1.SnapshotCreate{Label: "home$$$", Household: household()})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects an invalid id", func() {
			rec := do(http.MethodGet, "/api/v1/snapshots/not-a-uuid", nil)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns not found when updating a missing snapshot", func() {
			rec := do(http.MethodPut, "/api/v1/snapshots/"+uuid.NewString(), v1alpha1.SnapshotUpdate{Label: "ghost", Household: household()})
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("estimates a stored snapshot", func() {
			rec := do(http.MethodPost, "/api/v1/snapshots", v1alpha1.SnapshotCreate{Label: "home", Household: household()})
			Expect(rec.Code).To(Equal(http.StatusCreated))
			var created v1alpha1.Snapshot
			decode(rec, &created)

			rec = do(http.MethodGet, fmt.Sprintf("/api/v1/snapshots/%s/estimate?tableVersion=2.0", created.Id), nil)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var res v1alpha1.SnapshotEstimate
			decode(rec, &res)
			Expect(res.Snapshot.Restored).To(BeTrue())
			Expect(res.Estimate.TableVersion).To(Equal("2.0"))
		})

		It("estimates the default household when the stored record is damaged", func() {
			id := uuid.New()
			now := time.Now()
			tx := gormdb.Exec(fmt.Sprintf(insertSnapshotStm, id, "broken", "not json"), now, now)
			Expect(tx.Error).To(BeNil())

			rec := do(http.MethodGet, fmt.Sprintf("/api/v1/snapshots/%s/estimate", id), nil)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var res v1alpha1.SnapshotEstimate
			decode(rec, &res)
			Expect(res.Snapshot.Restored).To(BeFalse())
			Expect(res.Snapshot.RestoreError).NotTo(BeNil())
			Expect(res.Snapshot.Household.Home.Tier).To(Equal("2bed"))
			Expect(res.Estimate.Truck.Recommendation).NotTo(BeEmpty())
		})

		AfterEach(func() {
			gormdb.Exec("DELETE FROM saved_snapshots;")
		})
	})
})
