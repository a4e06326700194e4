package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicaflow/console/internal/platform/listview"
	"github.com/clinicaflow/console/internal/platform/websocket"
)

// Topic is the websocket topic carrying the live queue.
const Topic = "queue"

// Live is the unfiltered board pushed to the public display.
type Live struct {
	Entries    []View          `json:"entries"`
	Stats      []listview.Stat `json:"stats"`
	NowServing string          `json:"nowServing"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Live returns the current unfiltered board.
func (b *Board) Live() Live {
	st := b.model.State()
	return newLive(st.Items, st.LoadedAt)
}

func newLive(items []View, at time.Time) Live {
	if items == nil {
		items = []View{}
	}
	return Live{Entries: items, Stats: Stats(items), NowServing: NowServing(items), UpdatedAt: at}
}

// PublishTo pushes every freshly loaded queue to pub.
func (b *Board) PublishTo(pub websocket.EventPublisher, logger zerolog.Logger) {
	b.model.OnChange(func(items []View) {
		event, err := websocket.NewEvent(websocket.EventUpdate, Topic, newLive(items, b.model.Now()))
		if err != nil {
			logger.Error().Err(err).Msg("encode queue event")
			return
		}
		if err := pub.Publish(context.Background(), event); err != nil {
			logger.Warn().Err(err).Msg("publish queue event")
		}
	})
}
