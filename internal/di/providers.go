package di

import (
	"github.com/kcaldas/tabslimiter/pkg/access"
	"github.com/kcaldas/tabslimiter/pkg/config"
	"github.com/kcaldas/tabslimiter/pkg/events"
	"github.com/kcaldas/tabslimiter/pkg/host"
	"github.com/kcaldas/tabslimiter/pkg/limiter"
	"github.com/kcaldas/tabslimiter/pkg/scenario"
)

// ProvideClock starts the simulated clock at the fixed scenario epoch.
func ProvideClock() *scenario.Clock {
	return scenario.NewClock(scenario.Start)
}

// ProvideBus provides a fresh event bus per simulation.
func ProvideBus() *events.InMemoryBus {
	return events.NewEventBus()
}

// ProvideTracker reads file access times from disk.
func ProvideTracker() *access.Tracker {
	return access.NewTracker()
}

// ProvideEngine creates an engine reloading settings from disk and wires
// it to sub.
func ProvideEngine(h host.Host, tracker *access.Tracker, settings *config.Settings, sub events.Subscriber) *limiter.Engine {
	engine := limiter.NewEngine(h, tracker, limiter.WithConfigSource(settings))
	engine.Subscribe(sub)
	return engine
}
