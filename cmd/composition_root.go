package cmd

import (
	"time"

	apphttp "resto/internal/adapters/in/http"
	"resto/internal/adapters/out/postgres"
	"resto/internal/adapters/out/postgres/accessrepo"
	"resto/internal/core/application/usecases/commands"
	"resto/internal/core/application/usecases/queries"
	"resto/internal/core/domain/services"
	"resto/internal/jobs"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// CompositionRoot wires the object graph once at startup. Handlers are
// cheap value types; the root hands out fresh ones on demand.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	registry   *services.CachedRuleRegistry
	evaluator  services.PermissionEvaluator
	logger     zerolog.Logger
}

// NewCompositionRoot builds the root over an open database connection.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger zerolog.Logger) CompositionRoot {
	registry := services.NewCachedRuleRegistry(accessrepo.NewGormRuleRepository(gormDB))

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   registry,
		evaluator:  services.NewPermissionEvaluator(registry),
		logger:     logger,
	}
}

// RuleRegistry exposes the shared cached registry.
func (c *CompositionRoot) RuleRegistry() *services.CachedRuleRegistry {
	return c.registry
}

// PermissionEvaluator exposes the shared evaluator.
func (c *CompositionRoot) PermissionEvaluator() services.PermissionEvaluator {
	return c.evaluator
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) crossUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.evaluator)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.crossUoWFactory(), c.evaluator)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.evaluator)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoWFactory(), c.evaluator)
}

func (c *CompositionRoot) CreateSetCourierActivityCommandHandler() commands.SetCourierActivityCommandHandler {
	return commands.NewSetCourierActivityCommandHandler(c.courierUoWFactory(), c.evaluator)
}

func (c *CompositionRoot) CreateUpsertPermissionRuleCommandHandler() commands.UpsertPermissionRuleCommandHandler {
	return commands.NewUpsertPermissionRuleCommandHandler(c.registry, c.evaluator)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPermissionRulesQueryHandler() queries.GetPermissionRulesQueryHandler {
	return queries.NewGetPermissionRulesQueryHandler(c.registry)
}

// CreateHTTPServer assembles the REST server over all handlers.
func (c *CompositionRoot) CreateHTTPServer() *apphttp.Server {
	return apphttp.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAssignCourierCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateCreateCourierCommandHandler(),
		c.CreateSetCourierActivityCommandHandler(),
		c.CreateUpsertPermissionRuleCommandHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.CreateGetAllCouriersQueryHandler(),
		c.CreateGetPermissionRulesQueryHandler(),
		c.evaluator,
		c.logger,
	)
}

// CreateJobManager assembles the background jobs.
func (c *CompositionRoot) CreateJobManager(paymentTTL time.Duration) *jobs.JobManager {
	return jobs.NewJobManager(
		c.orderUoWFactory(),
		c.CreateChangeOrderStatusCommandHandler(),
		paymentTTL,
		c.logger,
	)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
