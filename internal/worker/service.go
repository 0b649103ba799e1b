package worker

import (
	"context"
	"errors"
	"time"

	"github.com/mobipos/mobipos/internal/config"
	"github.com/mobipos/mobipos/internal/logger"
	"github.com/mobipos/mobipos/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	loanDueScanInterval = time.Hour
)

// Service is the async queue consumer service
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService creates the queue consumer service
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name returns the service name
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start runs the consumer until the server shuts down
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.LoanRepo != nil {
		go s.runLoanDueScanLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop shuts the consumer down
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runLoanDueScanLoop periodically re-enqueues reminders for unsettled
// installments that are past their due date.
func (s *Service) runLoanDueScanLoop(ctx context.Context) {
	if s == nil || s.consumer == nil {
		return
	}
	runOnce := func() {
		if err := s.scanDueInstallments(); err != nil {
			logger.Warnw("worker_loan_due_scan_failed", "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(loanDueScanInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

func (s *Service) scanDueInstallments() error {
	installments, err := s.consumer.LoanRepo.ListDueInstallments(time.Now())
	if err != nil {
		return err
	}
	for _, installment := range installments {
		if installment.Loan == nil {
			continue
		}
		err := s.consumer.QueueClient.EnqueueLoanDueReminder(queue.LoanDueReminderPayload{
			LoanID:        installment.LoanID,
			InstallmentID: installment.ID,
			ShopID:        installment.Loan.ShopID,
		})
		if err != nil {
			logger.Warnw("worker_loan_due_enqueue_failed",
				"loan_id", installment.LoanID, "installment_id", installment.ID, "error", err)
		}
	}
	return nil
}
