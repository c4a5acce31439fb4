package worker

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/solarleads/internal/usecase"
)

const DefaultInterval = time.Hour

type PassRunner interface {
	RunPass(ctx context.Context) usecase.PassResult
}

// TickerFunc devolve o canal de ticks e a função que para o ticker.
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// FollowUpWorker roda uma passada ao iniciar e depois a cada intervalo.
type FollowUpWorker struct {
	runner    PassRunner
	interval  time.Duration
	logger    logrus.FieldLogger
	newTicker TickerFunc

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewFollowUpWorker(runner PassRunner, interval time.Duration, logger logrus.FieldLogger) *FollowUpWorker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &FollowUpWorker{
		runner:    runner,
		interval:  interval,
		logger:    logger,
		newTicker: realTicker,
	}
}

// WithTicker troca o relógio do worker (testes).
func (w *FollowUpWorker) WithTicker(fn TickerFunc) *FollowUpWorker {
	w.newTicker = fn
	return w
}

// Start bloqueia até o ctx ser cancelado ou Stop ser chamado.
func (w *FollowUpWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		w.logger.Warn("⚠️ Follow-up Worker já está rodando")
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	w.running, w.cancel, w.done = true, cancel, done
	w.mu.Unlock()

	defer func() {
		cancel()
		w.mu.Lock()
		w.running, w.cancel = false, nil
		w.mu.Unlock()
		close(done)
	}()

	w.logger.WithField("interval", w.interval.String()).Info("🕒 Follow-up Worker iniciado")

	tick, stop := w.newTicker(w.interval)
	defer stop()

	w.RunNow(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("⚠️ Follow-up Worker encerrado")
			return
		case <-tick:
			w.RunNow(ctx)
		}
	}
}

// Stop cancela o loop e espera ele terminar. Pode ser chamado mais de uma vez.
func (w *FollowUpWorker) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// RunNow executa uma passada fora do agendamento (gatilho manual). Um pânico
// no runner não derruba o timer.
func (w *FollowUpWorker) RunNow(ctx context.Context) (result usecase.PassResult) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.WithField("panic", r).Error("❌ Passada de follow-up abortada")
		}
	}()
	return w.runner.RunPass(ctx)
}
