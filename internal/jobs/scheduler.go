package jobs

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/Nivaldeir/erp-easy-remote/internal/common"
	"github.com/Nivaldeir/erp-easy-remote/internal/repositories"
	"github.com/Nivaldeir/erp-easy-remote/internal/services"
)

// Scheduler runs the recurring ledger maintenance jobs.
type Scheduler struct {
	scheduler     gocron.Scheduler
	payableRepo   repositories.AccountPayableRepository
	payableSvc    services.AccountsPayableService
	workspaceRepo repositories.WorkspaceRepository
}

func NewScheduler(payableRepo repositories.AccountPayableRepository, payableSvc services.AccountsPayableService, workspaceRepo repositories.WorkspaceRepository) *Scheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	s := &Scheduler{
		scheduler:     scheduler,
		payableRepo:   payableRepo,
		payableSvc:    payableSvc,
		workspaceRepo: workspaceRepo,
	}
	s.registerJobs()
	return s
}

func (s *Scheduler) Start() {
	log.Printf("Starting background job scheduler")
	s.scheduler.Start()
}

func (s *Scheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return s.scheduler.Shutdown()
}

func (s *Scheduler) registerJobs() {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(s.sweepOverdue, context.Background()),
		gocron.WithName("overdue-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create overdue sweep job: %v", err)
	}

	_, err = s.scheduler.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(s.refreshSummaries, context.Background()),
		gocron.WithName("summary-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create summary refresh job: %v", err)
	}
}

// sweepOverdue flips PENDING entries whose due date passed local midnight
// to LATE.
func (s *Scheduler) sweepOverdue(ctx context.Context) error {
	cutoff := common.StartOfDay(time.Now())
	count, err := s.payableRepo.MarkOverdue(ctx, cutoff)
	if err != nil {
		log.Printf("Overdue sweep failed: %v", err)
		return err
	}
	if count > 0 {
		log.Printf("Overdue sweep marked %d entries LATE", count)
	}
	return nil
}

// refreshSummaries recomputes the cached dashboard buckets for every
// workspace so reads stay warm between writes.
func (s *Scheduler) refreshSummaries(ctx context.Context) error {
	workspaces, err := s.workspaceRepo.ListAll(ctx, 1000, 0)
	if err != nil {
		log.Printf("Failed to list workspaces for summary refresh: %v", err)
		return err
	}

	for _, workspace := range workspaces {
		if _, err := s.payableSvc.RefreshSummary(ctx, workspace.ID); err != nil {
			log.Printf("Failed to refresh summary for workspace %s: %v", workspace.ID.String(), err)
		}
	}
	return nil
}
