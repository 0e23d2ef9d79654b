package service

import (
	"context"
	"errors"
	"fmt"

	"backoffice/internal/dto"
	"backoffice/internal/model"
	"backoffice/internal/repository"
	"backoffice/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SupplierService covers the suppliers admin page and the product import
// flow: a sync request creates an ImportJob row and enqueues it; the page
// then polls the job while the worker runs it. Cancellation is advisory —
// the worker checks the flag between feed pages and decides when to stop.
type SupplierService interface {
	Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error)
	List(ctx context.Context) ([]dto.SupplierResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Sync(ctx context.Context, id uuid.UUID, requestedBy uuid.UUID, notifyEmail string) (*dto.ImportJobResponse, error)
	GetImportJob(ctx context.Context, jobID uuid.UUID) (*dto.ImportJobResponse, error)
	ListImportJobs(ctx context.Context, supplierID uuid.UUID, limit int) ([]dto.ImportJobResponse, error)
	CancelImport(ctx context.Context, jobID uuid.UUID) error
}

type supplierService struct {
	repo        repository.SupplierRepository
	productRepo repository.ProductRepository
	jobRepo     repository.ImportJobRepository
	dispatcher  *worker.Dispatcher
}

func NewSupplierService(repo repository.SupplierRepository, productRepo repository.ProductRepository, jobRepo repository.ImportJobRepository, dispatcher *worker.Dispatcher) SupplierService {
	return &supplierService{repo: repo, productRepo: productRepo, jobRepo: jobRepo, dispatcher: dispatcher}
}

func mapSupplier(s model.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		ContactEmail: s.ContactEmail,
		Phone:        s.Phone,
		FeedURL:      s.FeedURL,
		IsActive:     s.IsActive,
	}
}

func mapImportJob(j model.ImportJob) dto.ImportJobResponse {
	return dto.ImportJobResponse{
		ID:         j.ID,
		SupplierID: j.SupplierID,
		Status:     j.Status,
		Processed:  j.Processed,
		Created:    j.Created,
		Updated:    j.Updated,
		Failed:     j.Failed,
		Log:        j.Log,
		Error:      j.Error,
		StartedAt:  j.StartedAt,
		FinishedAt: j.FinishedAt,
		CreatedAt:  j.CreatedAt,
	}
}

func (s *supplierService) Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, conflict("un fournisseur porte déjà ce nom")
	}

	sup := &model.Supplier{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		FeedURL:      req.FeedURL,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	resp := mapSupplier(*sup)
	return &resp, nil
}

func (s *supplierService) Get(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error) {
	sup, err := s.findSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := mapSupplier(*sup)
	return &resp, nil
}

func (s *supplierService) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, sup := range list {
		out = append(out, mapSupplier(sup))
	}
	return out, nil
}

func (s *supplierService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	sup, err := s.findSupplier(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != sup.Name {
		existing, err := s.repo.FindByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, conflict("un fournisseur porte déjà ce nom")
		}
		sup.Name = *req.Name
	}
	if req.ContactEmail != nil {
		sup.ContactEmail = req.ContactEmail
	}
	if req.Phone != nil {
		sup.Phone = req.Phone
	}
	if req.FeedURL != nil {
		sup.FeedURL = req.FeedURL
	}
	if req.IsActive != nil {
		sup.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	resp := mapSupplier(*sup)
	return &resp, nil
}

// Delete deactivates a supplier. Suppliers still referenced by products are
// kept but reported, mirroring the category delete guard.
func (s *supplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findSupplier(ctx, id); err != nil {
		return err
	}
	inUse, err := s.productRepo.CountBySupplier(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return conflictCount(fmt.Sprintf("impossible de supprimer : le fournisseur est utilisé par %d produit(s)", inUse), int(inUse))
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *supplierService) Sync(ctx context.Context, id uuid.UUID, requestedBy uuid.UUID, notifyEmail string) (*dto.ImportJobResponse, error) {
	sup, err := s.findSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	if sup.FeedURL == nil || *sup.FeedURL == "" {
		return nil, fmt.Errorf("%w : aucun flux produit configuré pour ce fournisseur", ErrInvalid)
	}

	active, err := s.jobRepo.CountActiveBySupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, conflict("une synchronisation est déjà en cours pour ce fournisseur")
	}

	job := &model.ImportJob{
		SupplierID:  id,
		RequestedBy: requestedBy,
		Status:      model.ImportPending,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	if err := s.dispatcher.EnqueueImport(ctx, worker.ImportJobPayload{
		JobID:       job.ID,
		SupplierID:  id,
		NotifyEmail: notifyEmail,
	}); err != nil {
		return nil, err
	}

	resp := mapImportJob(*job)
	return &resp, nil
}

func (s *supplierService) GetImportJob(ctx context.Context, jobID uuid.UUID) (*dto.ImportJobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w : import", ErrNotFound)
		}
		return nil, err
	}
	resp := mapImportJob(*job)
	return &resp, nil
}

func (s *supplierService) ListImportJobs(ctx context.Context, supplierID uuid.UUID, limit int) ([]dto.ImportJobResponse, error) {
	if _, err := s.findSupplier(ctx, supplierID); err != nil {
		return nil, err
	}
	list, err := s.jobRepo.ListBySupplier(ctx, supplierID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ImportJobResponse, 0, len(list))
	for _, j := range list {
		out = append(out, mapImportJob(j))
	}
	return out, nil
}

// CancelImport sets the advisory cancel flag. The worker acknowledges it
// between feed pages; a job already in a terminal status is rejected.
func (s *supplierService) CancelImport(ctx context.Context, jobID uuid.UUID) error {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w : import", ErrNotFound)
		}
		return err
	}
	if job.Finished() {
		return conflict("cet import est déjà terminé")
	}
	return s.dispatcher.RequestImportCancel(ctx, jobID)
}

func (s *supplierService) findSupplier(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w : fournisseur", ErrNotFound)
		}
		return nil, err
	}
	return sup, nil
}
