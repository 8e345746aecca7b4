package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nithishcb360/recruit-sub001/internal/cache"
	"github.com/nithishcb360/recruit-sub001/internal/config"
	"github.com/nithishcb360/recruit-sub001/internal/events"
	"github.com/nithishcb360/recruit-sub001/internal/localstore"
	"github.com/nithishcb360/recruit-sub001/internal/remote"
	"github.com/nithishcb360/recruit-sub001/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	// GenerationURL enables the HTTP generation provider; empty uses the
	// built-in template provider.
	GenerationURL     string
	GenerationTimeout time.Duration

	// SyncOnStartup retries pending backend deletes during Initialize.
	SyncOnStartup bool

	// CleanupOnStartup rewrites the local store dropping malformed entries.
	CleanupOnStartup bool

	DefaultTimeout time.Duration
}

// DefaultServiceManagerConfig mirrors the runtime defaults.
func DefaultServiceManagerConfig(cfg *config.Config) ServiceManagerConfig {
	return ServiceManagerConfig{
		GenerationURL:     cfg.GenerationURL,
		GenerationTimeout: 30 * time.Second,
		SyncOnStartup:     true,
		CleanupOnStartup:  true,
		DefaultTimeout:    30 * time.Second,
	}
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	client    *remote.Client
	store     *localstore.Store
	logger    *slog.Logger
	validator *validator.Validator
	bus       *events.Bus
	recorder  *events.Recorder
	cacheMgr  *cache.CacheManager
	config    ServiceManagerConfig

	// Service instances
	templateService   TemplateService
	responseService   ResponseService
	jobService        JobService
	departmentService DepartmentService
	candidateService  CandidateService
	importService     ImportService
	dashboardService  DashboardService
	generationService GenerationService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(client *remote.Client, store *localstore.Store, logger *slog.Logger, v *validator.Validator, bus *events.Bus, recorder *events.Recorder, cacheMgr *cache.CacheManager, cfg ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		client:    client,
		store:     store,
		logger:    logger,
		validator: v,
		bus:       bus,
		recorder:  recorder,
		cacheMgr:  cacheMgr,
		config:    cfg,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	if sm.config.CleanupOnStartup {
		if err := sm.store.Cleanup(); err != nil {
			return fmt.Errorf("local store cleanup failed: %w", err)
		}
		sm.logger.Info("Local store cleanup completed")
	}

	sm.templateService = NewTemplateService(sm.client, sm.store, sm.logger, sm.validator, sm.bus, sm.cacheMgr)
	sm.logger.Info("Template service initialized")

	sm.responseService = NewResponseService(sm.client, sm.store, sm.templateService, sm.logger, sm.validator, sm.bus)
	sm.logger.Info("Response service initialized")

	sm.jobService = NewJobService(sm.client, sm.logger, sm.validator, sm.bus, sm.cacheMgr)
	sm.logger.Info("Job service initialized")

	sm.departmentService = NewDepartmentService(sm.client, sm.logger, sm.validator)
	sm.logger.Info("Department service initialized")

	sm.candidateService = NewCandidateService(sm.client, sm.logger, sm.validator, sm.bus, sm.cacheMgr)
	sm.logger.Info("Candidate service initialized")

	sm.importService = NewImportService(sm.candidateService, sm.logger)
	sm.logger.Info("Import service initialized")

	sm.dashboardService = NewDashboardService(sm.client, sm.store, sm.recorder, sm.cacheMgr, sm.logger)
	sm.logger.Info("Dashboard service initialized")

	var provider Provider
	if sm.config.GenerationURL != "" {
		provider = NewHTTPProvider(sm.config.GenerationURL, sm.config.GenerationTimeout)
		sm.logger.Info("Generation service initialized", "provider", "http")
	} else {
		provider = NewTemplateProvider()
		sm.logger.Info("Generation service initialized", "provider", "template")
	}
	sm.generationService = NewGenerationService(provider, sm.logger, sm.validator)

	if sm.config.SyncOnStartup {
		if err := sm.templateService.SyncLocal(ctx); err != nil {
			// A failed sync pass is retried on later writes; it never
			// blocks startup.
			sm.logger.Warn("startup sync pass failed", "error", err)
		}
	}

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters
func (sm *serviceManager) Template() TemplateService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.templateService
}

func (sm *serviceManager) Response() ResponseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.responseService
}

func (sm *serviceManager) Job() JobService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.jobService
}

func (sm *serviceManager) Department() DepartmentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.departmentService
}

func (sm *serviceManager) Candidate() CandidateService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.candidateService
}

func (sm *serviceManager) Import() ImportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.importService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.dashboardService
}

func (sm *serviceManager) Generation() GenerationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.generationService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	// The local store must answer; the backend and cache may be down and
	// the service still serves degraded reads.
	if _, err := sm.store.Templates(); err != nil {
		return fmt.Errorf("local store health check failed: %w", err)
	}

	if sm.cacheMgr != nil {
		if err := sm.cacheMgr.HealthCheck(ctx); err != nil && err != cache.ErrCacheNotAvailable {
			sm.logger.Warn("cache health check failed", "error", err)
		}
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.recorder != nil {
		sm.recorder.Stop()
	}
	if sm.bus != nil {
		if err := sm.bus.Close(); err != nil {
			sm.logger.Error("Failed to close event bus", "error", err)
		}
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}

// IsInitialized returns whether the service manager has been initialized
func (sm *serviceManager) IsInitialized() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.initialized
}

// WithTimeout creates a context with the default timeout
func (sm *serviceManager) WithTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, sm.config.DefaultTimeout)
}
