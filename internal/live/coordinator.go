package live

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/helios-signage/helios/internal/playback"
)

// Event types pushed over the viewer channel.
const (
	EventCurrentSlide   = "currentSlide"
	EventContentUpdated = "contentUpdated"
)

// Client-initiated message types.
const (
	RequestCurrentSlide = "requestCurrentSlide"
	CheckContentChanges = "checkContentChanges"
)

type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type contentUpdatedPayload struct {
	Timestamp    time.Time `json:"timestamp"`
	SlideshowIDs []int     `json:"slideshow_ids"`
}

// Sink is where the coordinator pushes events; Hub implements it.
type Sink interface {
	Broadcast(data []byte)
	Send(id uuid.UUID, data []byte)
}

// Notifier is an optional side channel poked when content changes, e.g. an
// MQTT reload notice to paired display devices.
type Notifier interface {
	NotifyContentChanged(slideshowIDs []int)
}

// ViewCache optionally keeps the latest computed view for REST fallbacks.
type ViewCache interface {
	StoreCurrentView(data []byte)
}

type coordCmd interface{ coordCmd() }

type cmdStart struct{}

func (cmdStart) coordCmd() {}

type cmdStopTicking struct{}

func (cmdStopTicking) coordCmd() {}

type cmdRefresh struct{ id uuid.UUID }

func (cmdRefresh) coordCmd() {}

type cmdCheckContent struct{}

func (cmdCheckContent) coordCmd() {}

type cmdClose struct{}

func (cmdClose) coordCmd() {}

// Coordinator owns the periodic recomputation of the current slide and the
// decision of when subscribers hear about it. It is idle until the first
// viewer subscribes, then runs two tickers: a slide tick that recomputes the
// active slide and broadcasts only when the active slide id changes, and a
// content tick that polls the change detector and forces a broadcast
// (bypassing deduplication) plus a contentUpdated notice when anything
// watched was edited.
//
// All mutable state (last broadcast slide id, the detector's snapshots, the
// tickers) is owned by the run loop goroutine. Commands and ticks interleave
// there; every tick reads current truth and replaces state wholesale, so no
// locks are needed.
type Coordinator struct {
	src      playback.Source
	det      *playback.Detector
	sink     Sink
	notifier Notifier
	cache    ViewCache

	slideEvery   time.Duration
	contentEvery time.Duration
	now          func() time.Time

	cmdCh chan coordCmd

	// run-loop owned
	lastSlideID int
	lastNone    bool
	sentAny     bool
}

// Option tweaks a Coordinator; used by tests to shorten intervals and pin
// the clock.
type Option func(*Coordinator)

func WithIntervals(slide, content time.Duration) Option {
	return func(c *Coordinator) {
		c.slideEvery = slide
		c.contentEvery = content
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

func WithNotifier(n Notifier) Option {
	return func(c *Coordinator) { c.notifier = n }
}

func WithViewCache(vc ViewCache) Option {
	return func(c *Coordinator) { c.cache = vc }
}

func NewCoordinator(src playback.Source, det *playback.Detector, sink Sink, opts ...Option) *Coordinator {
	c := &Coordinator{
		src:          src,
		det:          det,
		sink:         sink,
		slideEvery:   time.Second,
		contentEvery: 2 * time.Second,
		now:          time.Now,
		cmdCh:        make(chan coordCmd, 64),
	}
	for _, opt := range opts {
		opt(c)
	}
	go c.run()
	return c
}

// Start begins ticking. Wired as the hub's first-connect hook.
func (c *Coordinator) Start() { c.cmdCh <- cmdStart{} }

// Stop cancels both tickers. Wired as the hub's last-disconnect hook.
// Results of a tick already in flight are discarded because the loop only
// acts on tick channels while ticking.
func (c *Coordinator) Stop() { c.cmdCh <- cmdStopTicking{} }

// SendCurrent recomputes the current slide and unicasts it to one viewer,
// without touching the broadcast deduplication state. Serves both the
// initial push to a new subscriber and manual refreshes.
func (c *Coordinator) SendCurrent(id uuid.UUID) { c.cmdCh <- cmdRefresh{id: id} }

// CheckNow runs one content tick out of schedule.
func (c *Coordinator) CheckNow() { c.cmdCh <- cmdCheckContent{} }

// Close terminates the run loop. For process shutdown and tests.
func (c *Coordinator) Close() { c.cmdCh <- cmdClose{} }

func (c *Coordinator) run() {
	var slideTicker, contentTicker *time.Ticker
	var slideC, contentC <-chan time.Time

	stopTickers := func() {
		if slideTicker != nil {
			slideTicker.Stop()
			slideTicker = nil
			slideC = nil
		}
		if contentTicker != nil {
			contentTicker.Stop()
			contentTicker = nil
			contentC = nil
		}
	}

	for {
		select {
		case cmd := <-c.cmdCh:
			switch v := cmd.(type) {
			case cmdStart:
				if slideTicker != nil {
					continue
				}
				// a fresh audience always gets a first broadcast
				c.sentAny = false
				slideTicker = time.NewTicker(c.slideEvery)
				contentTicker = time.NewTicker(c.contentEvery)
				slideC = slideTicker.C
				contentC = contentTicker.C
				log.Info().Msg("broadcasting started")
			case cmdStopTicking:
				stopTickers()
				log.Info().Msg("broadcasting stopped")
			case cmdRefresh:
				c.unicastCurrent(v.id)
			case cmdCheckContent:
				c.contentTick()
			case cmdClose:
				stopTickers()
				return
			}
		case <-slideC:
			c.slideTick(false)
		case <-contentC:
			c.contentTick()
		}
	}
}

// slideTick recomputes the current slide and broadcasts it when the active
// slide changed since the last broadcast. "Nothing scheduled" is itself a
// state: entering it broadcasts one null payload, staying in it is quiet.
func (c *Coordinator) slideTick(force bool) {
	view, err := playback.Resolve(c.src, c.now())
	if err != nil {
		// keep the previous broadcast state; viewers hold the last slide
		log.Error().Err(err).Msg("slide recomputation failed")
		return
	}

	if !force && c.sentAny {
		if view == nil && c.lastNone {
			return
		}
		if view != nil && !c.lastNone && view.SlideID == c.lastSlideID {
			return
		}
	}

	data, err := json.Marshal(envelope{Type: EventCurrentSlide, Payload: view})
	if err != nil {
		log.Error().Err(err).Msg("marshal current slide failed")
		return
	}

	c.sink.Broadcast(data)
	c.sentAny = true
	if view == nil {
		c.lastNone = true
		c.lastSlideID = 0
	} else {
		c.lastNone = false
		c.lastSlideID = view.SlideID
	}
	if c.cache != nil {
		c.cache.StoreCurrentView(data)
	}
}

// contentTick polls the change detector; on any detected change it emits a
// contentUpdated notice and forces a slide broadcast even if the active
// slide id happens to be unchanged, so viewers re-fetch edited descriptions.
func (c *Coordinator) contentTick() {
	cs, err := c.det.Tick()
	if err != nil {
		// logged by the detector; state untouched, next tick retries
		return
	}
	if !cs.Changed {
		return
	}

	log.Info().Ints("slideshow_ids", cs.SlideshowIDs).Msg("content change detected")

	notice, err := json.Marshal(envelope{
		Type: EventContentUpdated,
		Payload: contentUpdatedPayload{
			Timestamp:    c.now(),
			SlideshowIDs: cs.SlideshowIDs,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("marshal content notice failed")
		return
	}
	c.sink.Broadcast(notice)

	c.slideTick(true)

	if c.notifier != nil {
		c.notifier.NotifyContentChanged(cs.SlideshowIDs)
	}
}

// unicastCurrent computes and pushes the current slide to a single viewer.
// It never reads or writes the broadcast dedup state.
func (c *Coordinator) unicastCurrent(id uuid.UUID) {
	view, err := playback.Resolve(c.src, c.now())
	if err != nil {
		log.Error().Err(err).Msg("slide recomputation failed")
		return
	}
	data, err := json.Marshal(envelope{Type: EventCurrentSlide, Payload: view})
	if err != nil {
		log.Error().Err(err).Msg("marshal current slide failed")
		return
	}
	c.sink.Send(id, data)
}
