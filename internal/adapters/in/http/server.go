// Package http exposes the application over REST. Identity arrives in
// headers (X-Role, X-User-Id, X-Courier-Id) from the authenticating
// gateway upstream; this layer builds the actor, routes to the command
// and query handlers, and maps domain error kinds to status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"resto/internal/core/application/usecases/commands"
	"resto/internal/core/application/usecases/queries"
	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/kernel"
	"resto/internal/core/domain/model/order"
	"resto/internal/core/domain/services"
	"resto/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler        commands.CreateOrderCommandHandler
	assignCourierHandler      commands.AssignCourierCommandHandler
	changeOrderStatusHandler  commands.ChangeOrderStatusCommandHandler
	createCourierHandler      commands.CreateCourierCommandHandler
	setCourierActivityHandler commands.SetCourierActivityCommandHandler
	upsertRuleHandler         commands.UpsertPermissionRuleCommandHandler

	getActiveOrdersHandler    queries.GetActiveOrdersQueryHandler
	getAllCouriersHandler     queries.GetAllCouriersQueryHandler
	getPermissionRulesHandler queries.GetPermissionRulesQueryHandler

	evaluator services.PermissionEvaluator
	logger    zerolog.Logger
}

// NewServer creates an HTTP server over the given handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	createCourierHandler commands.CreateCourierCommandHandler,
	setCourierActivityHandler commands.SetCourierActivityCommandHandler,
	upsertRuleHandler commands.UpsertPermissionRuleCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getAllCouriersHandler queries.GetAllCouriersQueryHandler,
	getPermissionRulesHandler queries.GetPermissionRulesQueryHandler,
	evaluator services.PermissionEvaluator,
	logger zerolog.Logger,
) *Server {
	return &Server{
		createOrderHandler:        createOrderHandler,
		assignCourierHandler:      assignCourierHandler,
		changeOrderStatusHandler:  changeOrderStatusHandler,
		createCourierHandler:      createCourierHandler,
		setCourierActivityHandler: setCourierActivityHandler,
		upsertRuleHandler:         upsertRuleHandler,
		getActiveOrdersHandler:    getActiveOrdersHandler,
		getAllCouriersHandler:     getAllCouriersHandler,
		getPermissionRulesHandler: getPermissionRulesHandler,
		evaluator:                 evaluator,
		logger:                    logger,
	}
}

// RegisterRoutes wires the server's endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/active", s.GetActiveOrders)
	v1.POST("/orders/:id/assign-courier", s.AssignCourier)
	v1.POST("/orders/:id/status", s.ChangeOrderStatus)

	v1.GET("/couriers", s.GetCouriers)
	v1.POST("/couriers", s.CreateCourier)
	v1.POST("/couriers/:id/activity", s.SetCourierActivity)

	v1.GET("/privileges", s.GetPermissionRules)
	v1.PUT("/privileges", s.UpsertPermissionRule)

	v1.GET("/menu", s.GetMenu)
}

// Error is the uniform error payload.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// actor builds the command actor from the identity headers.
func (s *Server) actor(ctx echo.Context) (commands.Actor, error) {
	role, err := access.RoleFromString(ctx.Request().Header.Get("X-Role"))
	if err != nil {
		return commands.Actor{}, err
	}

	return commands.NewActor(
		role,
		ctx.Request().Header.Get("X-User-Id"),
		ctx.Request().Header.Get("X-Courier-Id"),
	)
}

// writeError maps domain error kinds to HTTP status codes. Unrecognized
// errors are logged with full detail and surfaced as an opaque 500.
func (s *Server) writeError(ctx echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrPermissionDenied):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrPreconditionFailed):
		code = http.StatusBadRequest
	default:
		s.logger.Error().Err(err).
			Str("path", ctx.Request().URL.Path).
			Msg("request failed")
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

func (s *Server) unauthorized(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusUnauthorized, Error{
		Code:    http.StatusUnauthorized,
		Message: "unknown role: " + err.Error(),
	})
}

// OrderResponse is the order representation returned by the API.
type OrderResponse struct {
	ID             string     `json:"id"`
	Number         string     `json:"number"`
	CustomerID     string     `json:"customerId"`
	DeliveryMethod string     `json:"deliveryMethod"`
	PaymentMethod  string     `json:"paymentMethod"`
	Status         string     `json:"status"`
	CourierID      *string    `json:"courierId,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	NextStatuses   []string   `json:"nextStatuses"`
}

func orderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:             o.ID().String(),
		Number:         o.Number(),
		CustomerID:     o.CustomerID().String(),
		DeliveryMethod: o.DeliveryMethod().String(),
		PaymentMethod:  o.PaymentMethod().String(),
		Status:         o.Status().String(),
		CompletedAt:    o.CompletedAt(),
		NextStatuses:   make([]string, 0),
	}

	if courierID := o.Courier(); courierID != nil {
		id := courierID.String()
		resp.CourierID = &id
	}

	for _, next := range o.ValidNextStatuses() {
		resp.NextStatuses = append(resp.NextStatuses, next.String())
	}

	return resp
}

// CreateOrderRequest is the payload for POST /api/v1/orders.
type CreateOrderRequest struct {
	Number         string `json:"number"`
	CustomerID     string `json:"customerId"`
	DeliveryMethod string `json:"deliveryMethod"`
	PaymentMethod  string `json:"paymentMethod"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return s.writeError(ctx, errs.NewValueIsInvalidError("body"))
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	deliveryMethod, err := order.DeliveryMethodFromString(req.DeliveryMethod)
	if err != nil {
		return s.writeError(ctx, err)
	}

	paymentMethod, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), req.Number, customerID, deliveryMethod, paymentMethod, actor,
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderResponse(created))
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	reqCtx := access.Context{UserID: actor.UserID(), CourierID: actor.CourierID()}
	err = s.evaluator.Require(
		ctx.Request().Context(), actor.Role(), access.ResourceOrder, access.ActionRead, reqCtx,
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return s.writeError(ctx, err)
	}

	type activeOrder struct {
		ID             string  `json:"id"`
		Number         string  `json:"number"`
		CustomerID     string  `json:"customerId"`
		DeliveryMethod string  `json:"deliveryMethod"`
		PaymentMethod  string  `json:"paymentMethod"`
		Status         string  `json:"status"`
		CourierID      *string `json:"courierId,omitempty"`
	}

	response := make([]activeOrder, 0, len(orders))
	for _, o := range orders {
		item := activeOrder{
			ID:             o.ID.String(),
			Number:         o.Number,
			CustomerID:     o.CustomerID.String(),
			DeliveryMethod: o.DeliveryMethod.String(),
			PaymentMethod:  o.PaymentMethod.String(),
			Status:         o.Status.String(),
		}
		if o.CourierID != nil {
			id := o.CourierID.String()
			item.CourierID = &id
		}
		response = append(response, item)
	}

	return ctx.JSON(http.StatusOK, response)
}

// AssignCourierRequest is the payload for POST /api/v1/orders/:id/assign-courier.
type AssignCourierRequest struct {
	CourierID string `json:"courierId"`
}

// AssignCourier handles POST /api/v1/orders/:id/assign-courier.
func (s *Server) AssignCourier(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req AssignCourierRequest
	if err = ctx.Bind(&req); err != nil {
		return s.writeError(ctx, errs.NewValueIsInvalidError("body"))
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID, actor)
	if err != nil {
		return s.writeError(ctx, err)
	}

	updated, err := s.assignCourierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponse(updated))
}

// ChangeOrderStatusRequest is the payload for POST /api/v1/orders/:id/status.
type ChangeOrderStatusRequest struct {
	Status string `json:"status"`
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req ChangeOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return s.writeError(ctx, errs.NewValueIsInvalidError("body"))
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, actor)
	if err != nil {
		return s.writeError(ctx, err)
	}

	updated, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponse(updated))
}

// CourierResponse is the courier representation returned by the API.
type CourierResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	err = s.evaluator.Require(
		ctx.Request().Context(), actor.Role(), access.ResourceCourier, access.ActionRead,
		access.Context{UserID: actor.UserID()},
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	couriers, err := s.getAllCouriersHandler.Handle(ctx.Request().Context(), queries.NewGetAllCouriersQuery())
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]CourierResponse, 0, len(couriers))
	for _, c := range couriers {
		response = append(response, CourierResponse{
			ID:       c.ID.String(),
			Name:     c.Name,
			IsActive: c.IsActive,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateCourierRequest is the payload for POST /api/v1/couriers.
type CreateCourierRequest struct {
	Name string `json:"name"`
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	var req CreateCourierRequest
	if err = ctx.Bind(&req); err != nil {
		return s.writeError(ctx, errs.NewValueIsInvalidError("body"))
	}

	cmd, err := commands.NewCreateCourierCommand(kernel.NewUUID(), req.Name, actor)
	if err != nil {
		return s.writeError(ctx, err)
	}

	created, err := s.createCourierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CourierResponse{
		ID:       created.ID().String(),
		Name:     created.Name(),
		IsActive: created.IsActive(),
	})
}

// SetCourierActivityRequest is the payload for POST /api/v1/couriers/:id/activity.
type SetCourierActivityRequest struct {
	Active bool `json:"active"`
}

// SetCourierActivity handles POST /api/v1/couriers/:id/activity.
func (s *Server) SetCourierActivity(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req SetCourierActivityRequest
	if err = ctx.Bind(&req); err != nil {
		return s.writeError(ctx, errs.NewValueIsInvalidError("body"))
	}

	cmd, err := commands.NewSetCourierActivityCommand(courierID, req.Active, actor)
	if err != nil {
		return s.writeError(ctx, err)
	}

	updated, err := s.setCourierActivityHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CourierResponse{
		ID:       updated.ID().String(),
		Name:     updated.Name(),
		IsActive: updated.IsActive(),
	})
}

// RuleResponse is the rule representation returned by the API.
type RuleResponse struct {
	Role       string            `json:"role"`
	Resource   string            `json:"resource"`
	Action     string            `json:"action"`
	Allowed    bool              `json:"allowed"`
	Conditions access.Conditions `json:"conditions"`
}

func ruleResponses(rules map[access.Role][]access.Rule) map[string][]RuleResponse {
	response := make(map[string][]RuleResponse, len(rules))
	for role, roleRules := range rules {
		items := make([]RuleResponse, 0, len(roleRules))
		for _, rule := range roleRules {
			items = append(items, RuleResponse{
				Role:       rule.Role().String(),
				Resource:   rule.Resource().String(),
				Action:     rule.Action().String(),
				Allowed:    rule.Allowed(),
				Conditions: rule.Conditions(),
			})
		}
		response[role.String()] = items
	}
	return response
}

// GetPermissionRules handles GET /api/v1/privileges. The optional role
// query parameter narrows the matrix to one role.
func (s *Server) GetPermissionRules(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	err = s.evaluator.Require(
		ctx.Request().Context(), actor.Role(), access.ResourcePrivilege, access.ActionRead,
		access.Context{UserID: actor.UserID()},
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query := queries.NewGetPermissionRulesQuery()
	if roleParam := ctx.QueryParam("role"); roleParam != "" {
		role, roleErr := access.RoleFromString(roleParam)
		if roleErr != nil {
			return s.writeError(ctx, roleErr)
		}
		if query, err = queries.NewGetPermissionRulesQueryForRole(role); err != nil {
			return s.writeError(ctx, err)
		}
	}

	matrix, err := s.getPermissionRulesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ruleResponses(matrix.Rules))
}

// UpsertPermissionRuleRequest is the payload for PUT /api/v1/privileges.
type UpsertPermissionRuleRequest struct {
	Role       string            `json:"role"`
	Resource   string            `json:"resource"`
	Action     string            `json:"action"`
	Allowed    bool              `json:"allowed"`
	Conditions access.Conditions `json:"conditions"`
}

// UpsertPermissionRule handles PUT /api/v1/privileges.
func (s *Server) UpsertPermissionRule(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	var req UpsertPermissionRuleRequest
	if err = ctx.Bind(&req); err != nil {
		return s.writeError(ctx, errs.NewValueIsInvalidError("body"))
	}

	role, err := access.RoleFromString(req.Role)
	if err != nil {
		return s.writeError(ctx, err)
	}
	resource, err := access.ResourceFromString(req.Resource)
	if err != nil {
		return s.writeError(ctx, err)
	}
	action, err := access.ActionFromString(req.Action)
	if err != nil {
		return s.writeError(ctx, err)
	}

	rule, err := access.NewRule(role, resource, action, req.Allowed, req.Conditions)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewUpsertPermissionRuleCommand(rule, actor)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.upsertRuleHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MenuItem is one navigation entry in the role-filtered menu.
type MenuItem struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// menuEntries lists the navigation surface with the permission probes
// each entry needs. Entries with several probes show when any passes.
func menuEntries() []struct {
	item   MenuItem
	checks []services.Check
} {
	return []struct {
		item   MenuItem
		checks []services.Check
	}{
		{MenuItem{"Menu", "/menu"}, []services.Check{
			{Resource: access.ResourceMenu, Action: access.ActionRead},
		}},
		{MenuItem{"Orders", "/orders"}, []services.Check{
			{Resource: access.ResourceOrder, Action: access.ActionRead},
			{Resource: access.ResourceOrder, Action: access.ActionCreate},
		}},
		{MenuItem{"Couriers", "/couriers"}, []services.Check{
			{Resource: access.ResourceCourier, Action: access.ActionRead},
		}},
		{MenuItem{"Analytics", "/analytics"}, []services.Check{
			{Resource: access.ResourceAnalytics, Action: access.ActionRead},
		}},
		{MenuItem{"Settings", "/settings"}, []services.Check{
			{Resource: access.ResourceSettings, Action: access.ActionRead},
		}},
		{MenuItem{"Privileges", "/privileges"}, []services.Check{
			{Resource: access.ResourcePrivilege, Action: access.ActionRead},
		}},
	}
}

// GetMenu handles GET /api/v1/menu: the navigation entries the actor's
// role may see.
func (s *Server) GetMenu(ctx echo.Context) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return s.unauthorized(ctx, err)
	}

	items := make([]MenuItem, 0)
	for _, entry := range menuEntries() {
		visible, anyErr := s.evaluator.HasAny(ctx.Request().Context(), actor.Role(), entry.checks)
		if anyErr != nil {
			return s.writeError(ctx, anyErr)
		}
		if visible {
			items = append(items, entry.item)
		}
	}

	return ctx.JSON(http.StatusOK, items)
}
