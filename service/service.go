package service

import (
	"context"
	"log/slog"
	"strings"

	"inventory-dashboard/assistant"
	"inventory-dashboard/journal"
	models "inventory-dashboard/model"
	"inventory-dashboard/store"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	store     store.Store
	journal   journal.Journal
	assistant Assistant
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewService wires the store with a journal and an assistant. A nil
// journal records nothing, a nil assistant always answers with its
// fallback text and a nil logger uses slog.Default.
func NewService(s store.Store, j journal.Journal, a Assistant, logger *slog.Logger) *Service {
	if j == nil {
		j = journal.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if a == nil {
		a = assistant.NewGateway(assistant.Unavailable{}, assistant.DefaultModels(), assistant.WithLogger(logger))
	}
	return &Service{
		store:     s,
		journal:   j,
		assistant: a,
		logger:    logger,
		tracer:    otel.Tracer("inventory-dashboard/service"),
	}
}

// --- products ---

func (s *Service) ListProducts(ctx context.Context) []models.Product {
	return s.store.ListProducts()
}

func (s *Service) GetProduct(ctx context.Context, id string) (models.Product, error) {
	p, ok := s.store.GetProductByID(id)
	if !ok {
		return models.Product{}, store.ErrProductNotFound
	}
	return p, nil
}

func (s *Service) CreateProduct(ctx context.Context, np models.NewProduct) models.Product {
	ctx, span := s.tracer.Start(ctx, "service.CreateProduct")
	defer span.End()

	p := s.store.AddProduct(np)
	span.SetAttributes(attribute.String("product.id", p.ID))
	s.logger.InfoContext(ctx, "product created", "product_id", p.ID, "sku", p.SKU)
	s.record(ctx, journal.EntityProduct, p.ID, journal.ActionCreated, p)
	return p
}

func (s *Service) UpdateProduct(ctx context.Context, p models.Product) error {
	ctx, span := s.tracer.Start(ctx, "service.UpdateProduct", trace.WithAttributes(attribute.String("product.id", p.ID)))
	defer span.End()

	if err := s.store.UpdateProduct(p); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "product updated", "product_id", p.ID)
	s.record(ctx, journal.EntityProduct, p.ID, journal.ActionUpdated, p)
	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "service.DeleteProduct", trace.WithAttributes(attribute.String("product.id", id)))
	defer span.End()

	if err := s.store.DeleteProduct(id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "product deleted", "product_id", id)
	s.record(ctx, journal.EntityProduct, id, journal.ActionDeleted, nil)
	return nil
}

// --- orders ---

func (s *Service) ListOrders(ctx context.Context) []models.Order {
	return s.store.ListOrders()
}

func (s *Service) GetOrder(ctx context.Context, id string) (OrderView, error) {
	o, ok := s.store.GetOrderByID(id)
	if !ok {
		return OrderView{}, store.ErrOrderNotFound
	}
	return s.view(o), nil
}

func (s *Service) CreateOrder(ctx context.Context, no models.NewOrder) models.Order {
	ctx, span := s.tracer.Start(ctx, "service.CreateOrder")
	defer span.End()

	o := s.store.AddOrder(no)
	span.SetAttributes(attribute.String("order.id", o.ID))
	s.logger.InfoContext(ctx, "order created", "order_id", o.ID, "items", len(o.Items), "total", o.Total.String())
	s.record(ctx, journal.EntityOrder, o.ID, journal.ActionCreated, o)
	return o
}

func (s *Service) UpdateOrder(ctx context.Context, o models.Order) (models.Order, error) {
	ctx, span := s.tracer.Start(ctx, "service.UpdateOrder", trace.WithAttributes(attribute.String("order.id", o.ID)))
	defer span.End()

	updated, err := s.store.UpdateOrder(o)
	if err != nil {
		return models.Order{}, err
	}
	s.logger.InfoContext(ctx, "order updated", "order_id", o.ID, "total", updated.Total.String())
	s.record(ctx, journal.EntityOrder, o.ID, journal.ActionUpdated, updated)
	return updated, nil
}

func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "service.DeleteOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	if err := s.store.DeleteOrder(id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "order deleted", "order_id", id)
	s.record(ctx, journal.EntityOrder, id, journal.ActionDeleted, nil)
	return nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	ctx, span := s.tracer.Start(ctx, "service.UpdateOrderStatus", trace.WithAttributes(
		attribute.String("order.id", id),
		attribute.String("order.status", string(status)),
	))
	defer span.End()

	o, err := s.store.UpdateOrderStatus(id, status)
	if err != nil {
		return models.Order{}, err
	}
	s.logger.InfoContext(ctx, "order status changed", "order_id", id, "status", status)
	s.record(ctx, journal.EntityOrder, id, journal.ActionStatusChanged, map[string]models.OrderStatus{"status": status})
	return o, nil
}

func (s *Service) AddOrderItem(ctx context.Context, orderID, productID string, qty int) (OrderView, error) {
	ctx, span := s.tracer.Start(ctx, "service.AddOrderItem", trace.WithAttributes(
		attribute.String("order.id", orderID),
		attribute.String("product.id", productID),
	))
	defer span.End()

	o, err := s.store.AddOrderItem(orderID, productID, qty)
	if err != nil {
		return OrderView{}, err
	}
	s.logger.InfoContext(ctx, "order item added", "order_id", orderID, "product_id", productID, "quantity", qty)
	s.record(ctx, journal.EntityOrder, orderID, journal.ActionItemAdded, map[string]any{"product_id": productID, "quantity": qty})
	return s.view(o), nil
}

func (s *Service) RemoveOrderItem(ctx context.Context, orderID, productID string) (OrderView, error) {
	ctx, span := s.tracer.Start(ctx, "service.RemoveOrderItem", trace.WithAttributes(
		attribute.String("order.id", orderID),
		attribute.String("product.id", productID),
	))
	defer span.End()

	o, err := s.store.RemoveOrderItem(orderID, productID)
	if err != nil {
		return OrderView{}, err
	}
	s.logger.InfoContext(ctx, "order item removed", "order_id", orderID, "product_id", productID)
	s.record(ctx, journal.EntityOrder, orderID, journal.ActionItemRemoved, map[string]string{"product_id": productID})
	return s.view(o), nil
}

// view resolves product names. Lines whose product was deleted keep their
// frozen price and quantity and show the placeholder name.
func (s *Service) view(o models.Order) OrderView {
	v := OrderView{Order: o, Lines: make([]ItemView, 0, len(o.Items))}
	for _, it := range o.Items {
		line := ItemView{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Subtotal(),
		}
		if p, ok := s.store.GetProductByID(it.ProductID); ok {
			line.ProductName = p.Name
		} else {
			line.ProductName = models.DeletedProductName
			line.ProductDeleted = true
		}
		v.Lines = append(v.Lines, line)
	}
	return v
}

// --- dashboard ---

func (s *Service) Dashboard(ctx context.Context) Dashboard {
	products := s.store.ListProducts()
	orders := s.store.ListOrders()
	low := LowStockProducts(products)
	return Dashboard{
		TotalRevenue:     TotalRevenue(orders),
		OrderCount:       len(orders),
		ProductCount:     len(products),
		LowStockCount:    len(low),
		RecentOrders:     RecentOrders(orders),
		LowStockProducts: head(low, DashboardListLimit),
	}
}

// --- user & settings ---

func (s *Service) User(ctx context.Context) models.User {
	return s.store.User()
}

func (s *Service) UpdateUser(ctx context.Context, p models.UserPatch) models.User {
	ctx, span := s.tracer.Start(ctx, "service.UpdateUser")
	defer span.End()

	u := s.store.UpdateUser(p)
	span.SetAttributes(attribute.String("user.id", u.ID))
	s.logger.InfoContext(ctx, "user updated", "user_id", u.ID)
	s.record(ctx, journal.EntityUser, u.ID, journal.ActionUpdated, p)
	return u
}

func (s *Service) Settings(ctx context.Context) models.Settings {
	return s.store.Settings()
}

func (s *Service) UpdateSettings(ctx context.Context, p models.SettingsPatch) models.Settings {
	ctx, span := s.tracer.Start(ctx, "service.UpdateSettings")
	defer span.End()

	settings := s.store.UpdateSettings(p)
	s.logger.InfoContext(ctx, "settings updated", "theme", settings.Theme)
	s.record(ctx, journal.EntitySettings, "", journal.ActionUpdated, p)
	return settings
}

// --- assistant ---

// DescribeProduct does not call the assistant when either input is blank.
func (s *Service) DescribeProduct(ctx context.Context, productName, keywords string) string {
	if strings.TrimSpace(productName) == "" || strings.TrimSpace(keywords) == "" {
		return assistant.GuidanceMessage
	}
	return s.assistant.GenerateDescription(ctx, productName, keywords)
}

func (s *Service) ForecastStock(ctx context.Context) string {
	return s.assistant.ForecastStock(ctx, s.store.ListProducts(), s.store.ListOrders())
}

func (s *Service) SummarizeOrders(ctx context.Context) string {
	return s.assistant.SummarizeOrders(ctx, s.store.ListOrders())
}

// --- activity ---

func (s *Service) Activity(ctx context.Context, limit int) ([]journal.Entry, error) {
	return s.journal.Recent(ctx, limit)
}

// record never fails the caller; the change already happened.
func (s *Service) record(ctx context.Context, entity journal.Entity, id string, action journal.Action, payload any) {
	if err := s.journal.Record(ctx, journal.NewEntry(ctx, entity, id, action, payload)); err != nil {
		s.logger.WarnContext(ctx, "journal write failed", "entity", entity, "entity_id", id, "action", action, "error", err)
	}
}
