package usecase

import (
	"context"
	"sync"
	"time"

	"blognest-api/internal/view"
	pkgLog "blognest-api/pkg/log"
)

// Flusher periodically drains the view buffer into the durable store.
type Flusher struct {
	l        pkgLog.Logger
	uc       view.UseCase
	interval time.Duration

	quit chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

func NewFlusher(l pkgLog.Logger, uc view.UseCase, interval time.Duration) *Flusher {
	return &Flusher{
		l:        l,
		uc:       uc,
		interval: interval,
		quit:     make(chan struct{}),
	}
}

func (f *Flusher) Start() {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()

		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := f.uc.Flush(context.Background()); err != nil {
					f.l.Warnf(context.Background(), "internal.view.usecase.Flusher: %v", err)
				}
			case <-f.quit:
				return
			}
		}
	}()
}

// Shutdown stops the loop and runs one final flush so buffered views
// survive a restart.
func (f *Flusher) Shutdown(ctx context.Context) error {
	f.once.Do(func() {
		close(f.quit)
	})
	f.wg.Wait()
	return f.uc.Flush(ctx)
}
