package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCronScheduler(t *testing.T) {
	svc := new(MockEstoqueService)

	scheduler := NewCronScheduler(svc)

	assert.NotNil(t, scheduler.cron)
	assert.Equal(t, svc, scheduler.estoqueSvc)
	assert.Empty(t, scheduler.GetEntries())
}

func TestCronScheduler_Start_RunsInitialScan(t *testing.T) {
	svc := new(MockEstoqueService)
	scheduler := NewCronScheduler(svc)
	svc.On("ScanEstoqueBaixo", mock.Anything).Return(nil)

	err := scheduler.Start(context.Background(), "@every 30m")
	require.NoError(t, err)
	defer scheduler.Stop()

	assert.Len(t, scheduler.GetEntries(), 1)
	svc.AssertNumberOfCalls(t, "ScanEstoqueBaixo", 1)
}

func TestCronScheduler_Start_InvalidSchedule(t *testing.T) {
	svc := new(MockEstoqueService)
	scheduler := NewCronScheduler(svc)

	err := scheduler.Start(context.Background(), "invalid cron expression")

	assert.Error(t, err)
	svc.AssertNotCalled(t, "ScanEstoqueBaixo", mock.Anything)
}

func TestCronScheduler_Start_InitialScanErrorDoesNotStopScheduler(t *testing.T) {
	svc := new(MockEstoqueService)
	scheduler := NewCronScheduler(svc)
	svc.On("ScanEstoqueBaixo", mock.Anything).Return(errors.New("db unavailable"))

	err := scheduler.Start(context.Background(), "@every 30m")

	assert.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)
	scheduler.Stop()
}

func TestCronScheduler_JobExecution(t *testing.T) {
	svc := new(MockEstoqueService)
	scheduler := NewCronScheduler(svc)

	scans := make(chan struct{}, 10)
	svc.On("ScanEstoqueBaixo", mock.Anything).
		Run(func(mock.Arguments) { scans <- struct{}{} }).
		Return(nil)

	// @every меньше секунды cron округляет до секунды
	require.NoError(t, scheduler.Start(context.Background(), "@every 1s"))
	defer scheduler.Stop()

	<-scans // начальный скан
	select {
	case <-scans:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduled scan did not run")
	}
}
