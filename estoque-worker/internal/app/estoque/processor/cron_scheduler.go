package processor

import (
	"context"

	"fichaspro/estoque-worker/internal/app/estoque/service"
	"fichaspro/pkg/logger"

	"github.com/robfig/cron/v3"
)

type CronScheduler struct {
	cron       *cron.Cron
	estoqueSvc service.EstoqueServiceInterface
}

func NewCronScheduler(estoqueSvc service.EstoqueServiceInterface) *CronScheduler {
	zl := logger.Logger()
	cronLogger := cron.PrintfLogger(&zl)

	// скан не запускается повторно, пока предыдущий не закончился
	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	return &CronScheduler{
		cron:       c,
		estoqueSvc: estoqueSvc,
	}
}

// Start регистрирует скан остатков и один раз выполняет его сразу
func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting cron scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		s.runScan(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()

	logger.Info().Msg("Performing initial low-stock scan...")
	s.runScan(ctx)

	return nil
}

func (s *CronScheduler) runScan(ctx context.Context) {
	if err := s.estoqueSvc.ScanEstoqueBaixo(ctx); err != nil {
		logger.Error().Err(err).Msg("Low-stock scan failed")
	}
}

func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
