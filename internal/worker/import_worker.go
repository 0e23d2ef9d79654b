package worker

// import_worker.go
// Processes supplier synchronization jobs from QueueImport: walks the
// supplier's paginated feed, upserts products on (supplier_id, supplier_ref)
// and keeps the ImportJob row updated so the admin page can poll progress.
// The advisory cancel flag is checked between pages — the page in flight is
// always finished first.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/infra"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	feedMaxAttempts  = 3
	feedRetryBackoff = 2 * time.Second
	importSKUFormat  = "IMP-%05d"
)

// ImportJobPayload is the job envelope sent to QueueImport.
type ImportJobPayload struct {
	JobID       uuid.UUID `json:"job_id"`
	SupplierID  uuid.UUID `json:"supplier_id"`
	NotifyEmail string    `json:"notify_email"`
}

// ImportWorker runs one supplier synchronization end to end.
type ImportWorker struct {
	jobRepo      repository.ImportJobRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	feed         *infra.FeedClient
	cb           *infra.CircuitBreaker
	rdb          *redis.Client
	dispatcher   *Dispatcher
}

func NewImportWorker(jobRepo repository.ImportJobRepository, supplierRepo repository.SupplierRepository, productRepo repository.ProductRepository, feed *infra.FeedClient, cb *infra.CircuitBreaker, rdb *redis.Client, dispatcher *Dispatcher) *ImportWorker {
	return &ImportWorker{
		jobRepo:      jobRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		feed:         feed,
		cb:           cb,
		rdb:          rdb,
		dispatcher:   dispatcher,
	}
}

// Process executes one import job.
func (w *ImportWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ImportJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("import_worker: invalid payload")
		SendToDLQ(ctx, w.rdb, QueueImport, "import", raw, fmt.Sprintf("payload: %v", err), 0)
		return
	}

	job, err := w.jobRepo.FindByID(ctx, payload.JobID)
	if err != nil {
		log.Error().Err(err).Str("job_id", payload.JobID.String()).Msg("import_worker: job not found")
		return
	}
	if job.Finished() {
		log.Warn().Str("job_id", job.ID.String()).Str("status", job.Status).Msg("import_worker: job already finished — skipping")
		return
	}

	// Cancelled while still queued.
	if cancelRequested(ctx, w.rdb, job.ID) {
		w.finish(ctx, job, model.ImportCancelled, "annulé avant démarrage")
		return
	}

	supplier, err := w.supplierRepo.FindByID(ctx, job.SupplierID)
	if err != nil || supplier.FeedURL == nil || *supplier.FeedURL == "" {
		w.fail(ctx, job, raw, "fournisseur introuvable ou sans flux produit")
		return
	}

	now := time.Now()
	job.Status = model.ImportRunning
	job.StartedAt = &now
	appendLog(job, fmt.Sprintf("synchronisation démarrée pour %s", supplier.Name))
	if err := w.jobRepo.Update(ctx, job); err != nil {
		log.Error().Err(err).Str("job_id", job.ID.String()).Msg("import_worker: failed to mark running")
		return
	}

	for page := 1; ; page++ {
		feedPage, err := w.fetchPage(ctx, *supplier.FeedURL, page)
		if err != nil {
			w.fail(ctx, job, raw, fmt.Sprintf("page %d inaccessible : %v", page, err))
			return
		}

		for _, item := range feedPage.Items {
			if err := w.upsertItem(ctx, job, item); err != nil {
				job.Failed++
				appendLog(job, fmt.Sprintf("réf %s ignorée : %v", item.Ref, err))
			}
			job.Processed++
		}
		appendLog(job, fmt.Sprintf("page %d : %d article(s) traité(s)", page, len(feedPage.Items)))
		if err := w.jobRepo.Update(ctx, job); err != nil {
			log.Error().Err(err).Str("job_id", job.ID.String()).Msg("import_worker: progress update failed")
		}

		if feedPage.NextPage == nil {
			break
		}
		// Advisory cancellation: acknowledged between pages only.
		if cancelRequested(ctx, w.rdb, job.ID) {
			w.finish(ctx, job, model.ImportCancelled, fmt.Sprintf("annulé après la page %d", page))
			w.notify(ctx, payload.NotifyEmail, job, supplier.Name)
			return
		}
	}

	w.finish(ctx, job, model.ImportDone, fmt.Sprintf("terminé : %d traités, %d créés, %d mis à jour, %d en échec",
		job.Processed, job.Created, job.Updated, job.Failed))
	w.notify(ctx, payload.NotifyEmail, job, supplier.Name)
}

// fetchPage retries transient feed failures with linear backoff, each
// attempt going through the circuit breaker. An open breaker counts as a
// failed attempt and waits like any other error.
func (w *ImportWorker) fetchPage(ctx context.Context, feedURL string, page int) (*infra.FeedPage, error) {
	var result *infra.FeedPage
	var lastErr error
	for attempt := 1; attempt <= feedMaxAttempts; attempt++ {
		lastErr = w.cb.Execute(func() error {
			p, err := w.feed.FetchPage(ctx, feedURL, page)
			if err != nil {
				return err
			}
			result = p
			return nil
		})
		if lastErr == nil {
			return result, nil
		}
		if attempt == feedMaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * feedRetryBackoff):
		}
	}
	return nil, lastErr
}

func (w *ImportWorker) upsertItem(ctx context.Context, job *model.ImportJob, item infra.FeedItem) error {
	if item.Ref == "" || item.Name == "" {
		return errors.New("réf ou nom manquant")
	}

	existing, err := w.productRepo.FindBySupplierRef(ctx, job.SupplierID, item.Ref)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if existing != nil {
		existing.Name = item.Name
		existing.Slug = model.Slugify(item.Name)
		existing.Description = item.Description
		existing.Price = item.Price
		existing.Stock = item.Stock
		if err := w.productRepo.Update(ctx, existing); err != nil {
			return err
		}
		job.Updated++
		return nil
	}

	seq, err := w.productRepo.NextSKUSequence(ctx, "IMP-")
	if err != nil {
		return err
	}
	ref := item.Ref
	p := &model.Product{
		SKU:         fmt.Sprintf(importSKUFormat, seq),
		Name:        item.Name,
		Slug:        model.Slugify(item.Name),
		Description: item.Description,
		SupplierID:  &job.SupplierID,
		SupplierRef: &ref,
		Price:       item.Price,
		Stock:       item.Stock,
		IsActive:    true,
	}
	if err := w.productRepo.Create(ctx, p); err != nil {
		return err
	}
	job.Created++
	return nil
}

func (w *ImportWorker) finish(ctx context.Context, job *model.ImportJob, status, line string) {
	now := time.Now()
	job.Status = status
	job.FinishedAt = &now
	appendLog(job, line)
	if err := w.jobRepo.Update(ctx, job); err != nil {
		log.Error().Err(err).Str("job_id", job.ID.String()).Msg("import_worker: failed to finalize job")
	}
	log.Info().
		Str("job_id", job.ID.String()).
		Str("status", status).
		Int("processed", job.Processed).
		Msg("import_worker: job finished")
}

func (w *ImportWorker) fail(ctx context.Context, job *model.ImportJob, raw json.RawMessage, reason string) {
	msg := reason
	job.Error = &msg
	w.finish(ctx, job, model.ImportFailed, "échec : "+reason)
	SendToDLQ(ctx, w.rdb, QueueImport, "import", raw, reason, feedMaxAttempts)
}

func (w *ImportWorker) notify(ctx context.Context, to string, job *model.ImportJob, supplierName string) {
	if to == "" {
		return
	}
	body := fmt.Sprintf(
		"Synchronisation %s — fournisseur %s\n\nTraités : %d\nCréés : %d\nMis à jour : %d\nEn échec : %d\n",
		job.Status, supplierName, job.Processed, job.Created, job.Updated, job.Failed)
	if err := w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		To:      to,
		Subject: fmt.Sprintf("Import %s : %s", supplierName, job.Status),
		Body:    body,
	}); err != nil {
		log.Warn().Err(err).Str("job_id", job.ID.String()).Msg("import_worker: failed to enqueue report email")
	}
}

func appendLog(job *model.ImportJob, line string) {
	stamp := time.Now().Format("15:04:05")
	job.Log += fmt.Sprintf("[%s] %s\n", stamp, line)
}
