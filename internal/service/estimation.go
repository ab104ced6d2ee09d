package service

import (
	"context"
	"errors"

	"github.com/smartstow/move-planner/internal/estimation"
	"github.com/smartstow/move-planner/internal/estimation/calculators"
	"github.com/smartstow/move-planner/internal/household"
	"github.com/smartstow/move-planner/internal/reference"
	"github.com/smartstow/move-planner/pkg/log"
	"github.com/smartstow/move-planner/pkg/metrics"
)

// EstimationService runs household snapshots through the estimation Engine against a
// reference table picked from the registry.
type EstimationService struct {
	registry       *reference.Registry
	engine         *estimation.Engine
	defaultVersion string
	logger         *log.StructuredLogger
}

// NewEstimationService creates an EstimationService with every calculator registered.
// An empty defaultVersion falls back to reference.DefaultVersion.
func NewEstimationService(registry *reference.Registry, defaultVersion string) *EstimationService {
	if defaultVersion == "" {
		defaultVersion = reference.DefaultVersion
	}
	return &EstimationService{
		registry:       registry,
		engine:         calculators.NewEngine(),
		defaultVersion: defaultVersion,
		logger:         log.NewDebugLogger("estimation_service"),
	}
}

// NewReferenceRegistry loads the embedded presets and, when tableFile is set, one more table from disk.
func NewReferenceRegistry(tableFile string) (*reference.Registry, error) {
	registry, err := reference.LoadPresets()
	if err != nil {
		return nil, err
	}
	if tableFile == "" {
		return registry, nil
	}

	table, err := reference.LoadFile(tableFile)
	if err != nil {
		return nil, err
	}
	if err := registry.Add(table); err != nil {
		return nil, err
	}
	return registry, nil
}

func (es *EstimationService) DefaultVersion() string {
	return es.defaultVersion
}

// Table returns the table for version, or the default table when version is empty.
func (es *EstimationService) Table(version string) (*reference.Table, error) {
	if version == "" {
		version = es.defaultVersion
	}
	table, err := es.registry.Lookup(version)
	if err != nil {
		return nil, NewErrTableNotFound(version)
	}
	return table, nil
}

func (es *EstimationService) Tables() []*reference.Table {
	return es.registry.Tables()
}

// Estimate computes the result for snapshot with the table named by version.
func (es *EstimationService) Estimate(ctx context.Context, snapshot household.Snapshot, version string) (*estimation.Result, error) {
	tracer := es.logger.WithContext(ctx).Operation("estimate").
		WithString("table_version", version).
		WithString("home_tier", string(snapshot.Home.Tier)).
		WithString("density", string(snapshot.Home.Density)).
		WithInt("hobbies", len(snapshot.Hobbies)).
		Build()

	table, err := es.Table(version)
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	result, err := es.engine.Estimate(table, snapshot)
	if err != nil {
		metrics.IncreaseEstimateFailuresTotalMetric(table.Version)
		var cfgErr *reference.ErrConfiguration
		if errors.As(err, &cfgErr) {
			tracer.Error(err).WithString("kind", "configuration").Log()
		} else {
			tracer.Error(err).Log()
		}
		return nil, err
	}

	metrics.IncreaseEstimatesTotalMetric(result.TableVersion, result.Plan)
	metrics.ObserveEstimatedVolume(result.TotalVolume)
	for _, truck := range result.Trucks {
		metrics.IncreaseTruckRecommendationMetric(truck)
	}

	tracer.Success().
		WithString("table_version", result.TableVersion).
		WithFloat("total_volume", result.TotalVolume).
		WithString("truck", result.TruckRecommendation()).
		WithString("plan", result.Plan).
		Log()

	return &result, nil
}
