package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/carousell/ct-go/pkg/logger"
	"go.uber.org/fx"

	"github.com/fluxofest/live-chat/internal/config"
	"github.com/fluxofest/live-chat/internal/engine"
	"github.com/fluxofest/live-chat/internal/hub"
	"github.com/fluxofest/live-chat/internal/models"
)

// EngineRegistry owns one engagement engine per active room. Engines are
// created lazily on first use and torn down when the room expires, taking
// their buffer, pins and hype meter with them.
type EngineRegistry struct {
	mu      sync.Mutex
	cfg     engine.Config
	engines map[string]*engine.Engine
}

func NewEngineRegistry(conf *config.Config) *EngineRegistry {
	return &EngineRegistry{
		cfg: engine.Config{
			BufferSize:      conf.Engine.BufferSize,
			FluxoDwell:      conf.Engine.FluxoDwell,
			OverlayDuration: conf.Engine.OverlayDuration,
		},
		engines: make(map[string]*engine.Engine),
	}
}

// Get returns the engine for roomID, creating it on first use.
func (r *EngineRegistry) Get(roomID string) *engine.Engine {
	r.mu.Lock()
	defer r.mu.Unlock()
	eng, ok := r.engines[roomID]
	if !ok {
		eng = engine.New(roomID, r.cfg)
		r.engines[roomID] = eng
	}
	return eng
}

// Peek returns the engine for roomID without creating one.
func (r *EngineRegistry) Peek(roomID string) (*engine.Engine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	eng, ok := r.engines[roomID]
	return eng, ok
}

// Remove discards a room's engine and all its live state.
func (r *EngineRegistry) Remove(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.engines, roomID)
}

// TickAll advances every engine one step and collects their events.
func (r *EngineRegistry) TickAll(now time.Time) []models.Event {
	r.mu.Lock()
	engines := make([]*engine.Engine, 0, len(r.engines))
	for _, eng := range r.engines {
		engines = append(engines, eng)
	}
	r.mu.Unlock()

	var events []models.Event
	for _, eng := range engines {
		events = append(events, eng.Tick(now)...)
	}
	return events
}

// StartEngineLoop drives the per-room tick (hype decay, pin sweep, fluxo
// dwell, overlay expiry) at the configured cadence. The loop is owned by the
// fx lifecycle: started once on boot, stopped as a unit on shutdown so no
// periodic work leaks.
func StartEngineLoop(
	lc fx.Lifecycle,
	conf *config.Config,
	registry *EngineRegistry,
	h *hub.Hub,
) {
	log := logger.MustNamed("engine")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(conf.Engine.TickInterval)
				defer ticker.Stop()
				log.Infow("engine loop started", "interval", conf.Engine.TickInterval)
				for {
					select {
					case <-ctx.Done():
						return
					case now := <-ticker.C:
						h.BroadcastAll(registry.TickAll(now))
					}
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			<-done
			log.Infow("engine loop stopped")
			return nil
		},
	})
}
