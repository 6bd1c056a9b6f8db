package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apphttp "resto/internal/adapters/in/http"
	"resto/internal/core/application/usecases/commands"
	"resto/internal/core/application/usecases/queries"
	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/courier"
	"resto/internal/core/domain/model/kernel"
	"resto/internal/core/domain/model/order"
	"resto/internal/core/domain/services"
	"resto/internal/core/ports"
	"resto/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory rule and aggregate store standing in for
// postgres in these endpoint tests.
type memoryStore struct {
	orders   map[string]*order.Order
	couriers map[string]*courier.Courier
	rules    map[access.Role][]access.Rule
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		orders:   make(map[string]*order.Order),
		couriers: make(map[string]*courier.Courier),
		rules:    make(map[access.Role][]access.Rule),
	}
}

func (m *memoryStore) RulesFor(_ context.Context, role access.Role) ([]access.Rule, error) {
	return m.rules[role], nil
}

func (m *memoryStore) Upsert(_ context.Context, rule access.Rule) error {
	m.rules[rule.Role()] = append(m.rules[rule.Role()], rule)
	return nil
}

type memoryOrderRepo struct{ store *memoryStore }

func (r memoryOrderRepo) Add(_ context.Context, aggregate *order.Order) error {
	r.store.orders[aggregate.ID().String()] = aggregate
	return nil
}

func (r memoryOrderRepo) Update(_ context.Context, aggregate *order.Order) error {
	r.store.orders[aggregate.ID().String()] = aggregate
	return nil
}

func (r memoryOrderRepo) UpdateStatusFrom(_ context.Context, aggregate *order.Order, _ order.Status) error {
	r.store.orders[aggregate.ID().String()] = aggregate
	return nil
}

func (r memoryOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	o, ok := r.store.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}

func (r memoryOrderRepo) GetByNumber(_ context.Context, number string) (*order.Order, error) {
	for _, o := range r.store.orders {
		if o.Number() == number {
			return o, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order", number)
}

func (r memoryOrderRepo) GetAllActive(_ context.Context) ([]*order.Order, error) {
	return nil, nil
}

func (r memoryOrderRepo) GetStalePaymentPending(_ context.Context, _ time.Time) ([]*order.Order, error) {
	return nil, nil
}

type memoryCourierRepo struct{ store *memoryStore }

func (r memoryCourierRepo) Add(_ context.Context, aggregate *courier.Courier) error {
	r.store.couriers[aggregate.ID().String()] = aggregate
	return nil
}

func (r memoryCourierRepo) Update(_ context.Context, aggregate *courier.Courier) error {
	r.store.couriers[aggregate.ID().String()] = aggregate
	return nil
}

func (r memoryCourierRepo) Get(_ context.Context, id kernel.UUID) (*courier.Courier, error) {
	c, ok := r.store.couriers[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("courier", id.String())
	}
	return c, nil
}

func (r memoryCourierRepo) GetAll(_ context.Context) ([]*courier.Courier, error) {
	return nil, nil
}

type memoryUoW struct{ store *memoryStore }

func (u memoryUoW) Begin(_ context.Context) error              { return nil }
func (u memoryUoW) Commit(_ context.Context) error             { return nil }
func (u memoryUoW) Rollback(_ context.Context) error           { return nil }
func (u memoryUoW) OrderRepository() ports.OrderRepository     { return memoryOrderRepo{u.store} }
func (u memoryUoW) CourierRepository() ports.CourierRepository { return memoryCourierRepo{u.store} }

type memoryOrderUoWFactory struct{ store *memoryStore }

func (f memoryOrderUoWFactory) Create() commands.OrderUoW { return memoryUoW{f.store} }

type memoryUoWFactory struct{ store *memoryStore }

func (f memoryUoWFactory) Create() commands.UoW { return memoryUoW{f.store} }

type memoryCourierUoWFactory struct{ store *memoryStore }

func (f memoryCourierUoWFactory) Create() commands.CourierUoW { return memoryUoW{f.store} }

func (m *memoryStore) seedRule(t *testing.T, role access.Role, resource access.Resource,
	action access.Action, conditions access.Conditions,
) {
	t.Helper()
	rule, err := access.NewRule(role, resource, action, true, conditions)
	require.NoError(t, err)
	m.rules[role] = append(m.rules[role], rule)
}

type ruleRegistryAdapter struct{ store *memoryStore }

func (a ruleRegistryAdapter) RulesFor(ctx context.Context, role access.Role) ([]access.Rule, error) {
	return a.store.RulesFor(ctx, role)
}

func (a ruleRegistryAdapter) AllRules(_ context.Context) (map[access.Role][]access.Rule, error) {
	return a.store.rules, nil
}

func newTestServer(t *testing.T, store *memoryStore) *echo.Echo {
	t.Helper()

	evaluator := services.NewPermissionEvaluator(store)
	logger := zerolog.Nop()

	server := apphttp.NewServer(
		commands.NewCreateOrderCommandHandler(memoryOrderUoWFactory{store}, evaluator),
		commands.NewAssignCourierCommandHandler(memoryUoWFactory{store}, evaluator),
		commands.NewChangeOrderStatusCommandHandler(memoryOrderUoWFactory{store}, evaluator),
		commands.NewCreateCourierCommandHandler(memoryCourierUoWFactory{store}, evaluator),
		commands.NewSetCourierActivityCommandHandler(memoryCourierUoWFactory{store}, evaluator),
		commands.NewUpsertPermissionRuleCommandHandler(store, evaluator),
		queries.GetActiveOrdersQueryHandler{},
		queries.GetAllCouriersQueryHandler{},
		queries.NewGetPermissionRulesQueryHandler(ruleRegistryAdapter{store}),
		evaluator,
		logger,
	)

	e := echo.New()
	server.RegisterRoutes(e)
	return e
}

func doRequest(e *echo.Echo, method, path, role, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if role != "" {
		req.Header.Set("X-Role", role)
		req.Header.Set("X-User-Id", "u-1")
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServer_UnknownRole_Unauthorized(t *testing.T) {
	e := newTestServer(t, newMemoryStore())

	rec := doRequest(e, http.MethodGet, "/api/v1/orders/active", "CHEF", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/menu", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_CreateOrder_Success(t *testing.T) {
	store := newMemoryStore()
	store.seedRule(t, access.RoleAdmin, access.ResourceOrder, access.ActionManage, access.Conditions{})
	e := newTestServer(t, store)

	body := `{"number":"A-0001","customerId":"` + kernel.NewUUID().String() +
		`","deliveryMethod":"DIANTAR","paymentMethod":"CASH"}`
	rec := doRequest(e, http.MethodPost, "/api/v1/orders", "ADMIN", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp apphttp.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ORDERED", resp.Status)
	assert.ElementsMatch(t, []string{"PROCESSED", "CANCELLED"}, resp.NextStatuses)
}

func TestServer_CreateOrder_PermissionDenied(t *testing.T) {
	// No rules at all: fail closed.
	e := newTestServer(t, newMemoryStore())

	body := `{"number":"A-0002","customerId":"` + kernel.NewUUID().String() +
		`","deliveryMethod":"DIANTAR","paymentMethod":"CASH"}`
	rec := doRequest(e, http.MethodPost, "/api/v1/orders", "CUSTOMER", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServer_CreateOrder_UnknownPaymentMethod(t *testing.T) {
	store := newMemoryStore()
	store.seedRule(t, access.RoleAdmin, access.ResourceOrder, access.ActionManage, access.Conditions{})
	e := newTestServer(t, store)

	body := `{"number":"A-0003","customerId":"` + kernel.NewUUID().String() +
		`","deliveryMethod":"DIANTAR","paymentMethod":"BARTER"}`
	rec := doRequest(e, http.MethodPost, "/api/v1/orders", "ADMIN", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_ChangeOrderStatus_InvalidTransition(t *testing.T) {
	store := newMemoryStore()
	store.seedRule(t, access.RoleAdmin, access.ResourceOrder, access.ActionManage, access.Conditions{})
	e := newTestServer(t, store)

	placed, err := order.NewOrder(
		kernel.NewUUID(), "A-0004", kernel.NewUUID(), order.Diantar, order.Cash,
	)
	require.NoError(t, err)
	store.orders[placed.ID().String()] = placed

	rec := doRequest(
		e, http.MethodPost, "/api/v1/orders/"+placed.ID().String()+"/status",
		"ADMIN", `{"status":"COMPLETED"}`,
	)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_ChangeOrderStatus_CourierPrecondition(t *testing.T) {
	store := newMemoryStore()
	store.seedRule(t, access.RoleAdmin, access.ResourceOrder, access.ActionManage, access.Conditions{})
	e := newTestServer(t, store)

	placed, err := order.RestoreOrder(
		kernel.NewUUID(), "A-0005", kernel.NewUUID(),
		order.Diantar, order.Cash, order.StatusProcessed, nil, nil,
	)
	require.NoError(t, err)
	store.orders[placed.ID().String()] = placed

	rec := doRequest(
		e, http.MethodPost, "/api/v1/orders/"+placed.ID().String()+"/status",
		"ADMIN", `{"status":"ON_DELIVERY"}`,
	)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "assign courier first")
}

func TestServer_ChangeOrderStatus_NotFound(t *testing.T) {
	store := newMemoryStore()
	store.seedRule(t, access.RoleAdmin, access.ResourceOrder, access.ActionManage, access.Conditions{})
	e := newTestServer(t, store)

	rec := doRequest(
		e, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/status",
		"ADMIN", `{"status":"PROCESSED"}`,
	)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_UpsertPermissionRule_ForbiddenForCustomer(t *testing.T) {
	store := newMemoryStore()
	store.seedRule(t, access.RoleCustomer, access.ResourceOrder, access.ActionRead,
		access.Conditions{OwnOnly: true})
	e := newTestServer(t, store)

	body := `{"role":"CUSTOMER","resource":"ORDER","action":"DELETE","allowed":true}`
	rec := doRequest(e, http.MethodPut, "/api/v1/privileges", "CUSTOMER", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServer_Menu_FilteredByRole(t *testing.T) {
	store := newMemoryStore()
	for _, resource := range access.AllResources() {
		store.seedRule(t, access.RoleAdmin, resource, access.ActionManage, access.Conditions{})
	}
	store.seedRule(t, access.RoleCourier, access.ResourceOrder, access.ActionRead,
		access.Conditions{AssignedOnly: true})
	e := newTestServer(t, store)

	rec := doRequest(e, http.MethodGet, "/api/v1/menu", "ADMIN", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var adminItems []apphttp.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &adminItems))
	assert.Len(t, adminItems, 6)

	// The courier's only rule is conditional, and the menu probe carries
	// no order context, so nothing shows.
	rec = doRequest(e, http.MethodGet, "/api/v1/menu", "COURIER", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var courierItems []apphttp.MenuItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &courierItems))
	assert.Empty(t, courierItems)
}

func TestServer_Health(t *testing.T) {
	e := newTestServer(t, newMemoryStore())
	rec := doRequest(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
