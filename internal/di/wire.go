//go:build wireinject

package di

import (
	"io"

	"github.com/google/wire"
	"github.com/kcaldas/tabslimiter/pkg/config"
	"github.com/kcaldas/tabslimiter/pkg/events"
	"github.com/kcaldas/tabslimiter/pkg/host"
	"github.com/kcaldas/tabslimiter/pkg/limiter"
	"github.com/kcaldas/tabslimiter/pkg/scenario"
)

var simulationSet = wire.NewSet(
	ProvideClock,
	ProvideBus,
	scenario.NewFileTimes,
	scenario.NewHost,
	scenario.NewTracker,
	scenario.NewConfigSource,
	scenario.NewEngine,
	scenario.NewRunner,
)

// InitializeRunner builds a simulator for sc. fallback supplies settings
// when the scenario has none.
func InitializeRunner(sc *scenario.Scenario, fallback limiter.ConfigSource, out io.Writer) *scenario.Runner {
	wire.Build(simulationSet)
	return nil
}

// InitializeEngine builds the limiter for an editor integration and
// subscribes it to the editor's lifecycle notifications.
func InitializeEngine(h host.Host, settingsPath string, sub events.Subscriber) *limiter.Engine {
	wire.Build(ProvideTracker, config.NewSettings, ProvideEngine)
	return nil
}
