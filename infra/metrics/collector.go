package metrics

import (
	"github.com/kilianp07/taxisim/core/events"
	"github.com/kilianp07/taxisim/core/logger"
	coremetrics "github.com/kilianp07/taxisim/core/metrics"
	"github.com/kilianp07/taxisim/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and counts every event on
// sinks implementing EventRecorder. The returned function unsubscribes.
// Recording errors are logged and never interrupt the publisher.
func StartEventCollector(bus *eventbus.Bus[events.Event], sink coremetrics.MetricsSink, log logger.Logger) (stop func()) {
	rec, ok := sink.(coremetrics.EventRecorder)
	if bus == nil || !ok {
		return func() {}
	}
	log = logger.OrNop(log)
	return bus.Subscribe(func(ev events.Event) {
		if err := rec.RecordEvent(ev.Type()); err != nil {
			log.Warnf("record event %s: %v", ev.Type(), err)
		}
	})
}
