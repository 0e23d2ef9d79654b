package service

import (
	"context"
	"errors"
	"fmt"

	"backoffice/internal/dto"
	"backoffice/internal/infra"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderTransitions lists the legal status moves. Anything absent is rejected
// as a conflict: delivered and cancelled are terminal.
var OrderTransitions = map[string][]string{
	model.OrderPending:   {model.OrderPaid, model.OrderCancelled},
	model.OrderPaid:      {model.OrderShipped, model.OrderCancelled},
	model.OrderShipped:   {model.OrderDelivered},
	model.OrderDelivered: {},
	model.OrderCancelled: {},
}

// OrderService covers the orders admin page: list/filter, status advance,
// invoice PDF export.
type OrderService interface {
	List(ctx context.Context, q dto.OrderListQuery) (*dto.OrderListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*dto.OrderResponse, error)
	// InvoicePDF generates (or regenerates) the invoice file and returns its
	// path on disk.
	InvoicePDF(ctx context.Context, id uuid.UUID) (string, error)
}

type orderService struct {
	repo       repository.OrderRepository
	invoiceDir string
}

func NewOrderService(repo repository.OrderRepository, invoiceDir string) OrderService {
	return &orderService{repo: repo, invoiceDir: invoiceDir}
}

func mapOrder(o model.Order, withItems bool) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:            o.ID,
		Number:        o.Number,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Status:        o.Status,
		Total:         o.Total,
		CreatedAt:     o.CreatedAt,
	}
	if withItems {
		resp.Items = make([]dto.OrderItemResponse, 0, len(o.Items))
		for _, it := range o.Items {
			resp.Items = append(resp.Items, dto.OrderItemResponse{
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				UnitPrice:   it.UnitPrice,
				Quantity:    it.Quantity,
			})
		}
	}
	return resp
}

func (s *orderService) List(ctx context.Context, q dto.OrderListQuery) (*dto.OrderListResponse, error) {
	if q.Status != "" {
		if _, ok := OrderTransitions[q.Status]; !ok {
			return nil, fmt.Errorf("%w : statut inconnu", ErrInvalid)
		}
	}
	list, total, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, mapOrder(o, false))
	}
	page, perPage := q.Page, q.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 25
	}
	return &dto.OrderListResponse{Items: items, Total: total, Page: page, PerPage: perPage}, nil
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	o, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapOrder(*o, true)
	return &resp, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*dto.OrderResponse, error) {
	if _, ok := OrderTransitions[status]; !ok {
		return nil, fmt.Errorf("%w : statut inconnu", ErrInvalid)
	}

	o, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range OrderTransitions[o.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, conflict(fmt.Sprintf("transition interdite : %s → %s", o.Status, status))
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	o.Status = status
	resp := mapOrder(*o, true)
	return &resp, nil
}

func (s *orderService) InvoicePDF(ctx context.Context, id uuid.UUID) (string, error) {
	o, err := s.findOrder(ctx, id)
	if err != nil {
		return "", err
	}
	if o.Status == model.OrderPending || o.Status == model.OrderCancelled {
		return "", conflict("aucune facture pour une commande non payée ou annulée")
	}
	return infra.GenerateInvoicePDF(o, s.invoiceDir)
}

func (s *orderService) findOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w : commande", ErrNotFound)
		}
		return nil, err
	}
	return o, nil
}
