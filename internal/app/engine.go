package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sriram-612/INTALKS-AI-sub001/internal/export"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/filter"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/intalks"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/state"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/stream"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/view"
)

// Backend is the slice of the INTALKS API the engine drives.
type Backend interface {
	intalks.Fetcher
	TriggerCall(ctx context.Context, customerID string) (string, error)
	TriggerBulkCalls(ctx context.Context, customerIDs []string) (string, error)
}

const (
	defaultTickEvery = 30 * time.Second
	// fullResyncEvery is measured in ticks: most ticks refresh only the
	// call statistics, every Nth does a full customer+batch resync.
	fullResyncEvery = 10
	// refetchDebounce coalesces bursts of upload_complete / data_update
	// frames into one snapshot refetch.
	refetchDebounce = time.Second

	uploadsPageSize = 10
)

type fetchKind int

const (
	fetchCustomers fetchKind = iota
	fetchUploads
	fetchEvents
)

// fetchResult carries one completed backend fetch into the event loop.
// seq implements the freshness rule: only the most recently requested
// fetch of each kind may be applied.
type fetchResult struct {
	kind      fetchKind
	seq       uint64
	customers []intalks.Customer
	uploads   []intalks.BatchUpload
	meta      intalks.PageMeta
	events    []intalks.CallEvent
	err       error
}

// asyncResult reports work finished off the loop (call triggers, CSV
// export). err arrives pre-wrapped with its action context.
type asyncResult struct {
	msg string
	err error
}

type connChange struct {
	state stream.State
	err   error
}

// Engine serializes every dashboard mutation through a single event-loop
// goroutine: UI commands, push frames, fetch results, the debounce timer
// and the periodic tick all land in Run's select. Loop-owned fields are
// only touched from that goroutine.
type Engine struct {
	backend   Backend
	store     *state.Store
	log       *slog.Logger
	loc           *time.Location
	exportDir     string
	tickEvery     time.Duration
	debounceEvery time.Duration
	now           func() time.Time

	cmds    chan Command
	events  chan stream.Event
	conns   chan connChange
	results chan fetchResult
	asyncs  chan asyncResult
	updates chan ViewModel

	// Loop-owned state.
	criteria    filter.Criteria
	pager       *view.Pager
	sel         *view.Selection
	uploadSel   *view.Selection
	filtered    []intalks.Customer
	stats       filter.Stats
	progress    *UploadProgress
	notice      string
	errText     string
	conn        stream.State
	uploadsPage int
	seq         uint64
	latest      map[fetchKind]uint64
	tickCount   int
}

// EngineOptions configure an Engine.
type EngineOptions struct {
	Backend   Backend
	Store     *state.Store
	Logger    *slog.Logger
	Location  *time.Location
	ExportDir string
	TickEvery time.Duration
	PageSize  int
	// Now is swapped in tests.
	Now func() time.Time
}

// NewEngine builds an engine around an empty derived view. Run starts the
// loop.
func NewEngine(opts EngineOptions) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	tick := opts.TickEvery
	if tick <= 0 {
		tick = defaultTickEvery
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		backend:       opts.Backend,
		store:         opts.Store,
		log:           logger,
		loc:           loc,
		exportDir:     opts.ExportDir,
		tickEvery:     tick,
		debounceEvery: refetchDebounce,
		now:           now,
		cmds:        make(chan Command, 32),
		events:      make(chan stream.Event, 64),
		conns:       make(chan connChange, 8),
		results:     make(chan fetchResult, 8),
		asyncs:      make(chan asyncResult, 8),
		updates:     make(chan ViewModel, 1),
		pager:       view.NewPager(opts.PageSize),
		sel:         view.NewSelection(),
		uploadSel:   view.NewSelection(),
		conn:        stream.StateConnecting,
		uploadsPage: 1,
		latest:      make(map[fetchKind]uint64),
	}
}

// Send enqueues a command for the event loop. It never blocks; when the
// queue is full the command is dropped with a log line.
func (e *Engine) Send(cmd Command) {
	select {
	case e.cmds <- cmd:
	default:
		e.log.Warn("command queue full, dropping", "command", fmt.Sprintf("%T", cmd))
	}
}

// Updates returns the channel of render snapshots. Only the latest
// snapshot is retained; slow consumers never stall the loop.
func (e *Engine) Updates() <-chan ViewModel {
	return e.updates
}

// HandleStreamEvent is the push-frame entry point. It is registered as the
// stream client's handler and must not block the read loop.
func (e *Engine) HandleStreamEvent(ev stream.Event) {
	select {
	case e.events <- ev:
	default:
		e.log.Warn("event queue full, dropping frame", "event", ev.Name)
	}
}

// HandleStreamState is the stream client's state-change callback.
func (e *Engine) HandleStreamState(st stream.State, err error) {
	select {
	case e.conns <- connChange{state: st, err: err}:
	default:
	}
}

// Run drives the event loop until the context is cancelled. It issues the
// initial snapshot load before entering the loop.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.tickEvery)
	defer ticker.Stop()

	debounce := time.NewTimer(time.Hour)
	if !debounce.Stop() {
		<-debounce.C
	}
	debounceArmed := false

	e.requestCustomers(ctx)
	e.requestUploads(ctx, e.uploadsPage)
	e.requestEvents(ctx)
	e.publish()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-e.cmds:
			e.handleCommand(ctx, cmd)
		case ev := <-e.events:
			e.handleEvent(ctx, ev, func() {
				if debounceArmed {
					if !debounce.Stop() {
						<-debounce.C
					}
				}
				debounce.Reset(e.debounceEvery)
				debounceArmed = true
			})
		case ch := <-e.conns:
			e.conn = ch.state
			if ch.state == stream.StateDown {
				e.notice = "live updates unavailable, retrying"
			}
			e.publish()
		case res := <-e.results:
			e.applyResult(res)
		case res := <-e.asyncs:
			if res.err != nil {
				e.notice = res.err.Error()
			} else {
				e.notice = res.msg
			}
			e.publish()
		case <-debounce.C:
			debounceArmed = false
			e.requestCustomers(ctx)
			e.requestUploads(ctx, e.uploadsPage)
		case <-ticker.C:
			e.tickCount++
			if e.tickCount%fullResyncEvery == 0 {
				e.requestCustomers(ctx)
				e.requestUploads(ctx, e.uploadsPage)
			}
			e.requestEvents(ctx)
		}
	}
}

func (e *Engine) handleCommand(ctx context.Context, cmd Command) {
	switch c := cmd.(type) {
	case Refresh:
		e.sel.Clear()
		e.notice = ""
		e.requestCustomers(ctx)
		e.requestUploads(ctx, e.uploadsPage)
		e.requestEvents(ctx)
	case SetCriteria:
		e.criteria = c.Criteria
		e.recompute(true)
	case SetSearch:
		e.criteria.Search = c.Query
		e.recompute(true)
	case SetPage:
		if err := e.pager.SetPage(c.Page); err != nil {
			var rerr *view.RangeError
			if errors.As(err, &rerr) {
				e.notice = fmt.Sprintf("page %d out of range [%d, %d]", rerr.Requested, rerr.Min, rerr.Max)
			} else {
				e.notice = err.Error()
			}
		}
	case SetPageSize:
		e.pager.SetSize(c.Size)
	case ToggleSelect:
		e.sel.Toggle(c.ID)
	case SelectAllFiltered:
		e.sel.AddAll(idsOf(e.filtered))
	case ClearSelection:
		e.sel.Clear()
	case ToggleUploadSelect:
		e.uploadSel.Toggle(c.ID)
	case ClearUploadSelection:
		e.uploadSel.Clear()
	case SetUploadsPage:
		if c.Page < 1 {
			c.Page = 1
		}
		e.uploadsPage = c.Page
		e.requestUploads(ctx, c.Page)
	case TriggerCalls:
		e.triggerCalls(ctx, c.IDs)
	case ExportSelected:
		e.exportSelected(ctx)
	}
	e.publish()
}

// handleEvent applies one push frame. armDebounce schedules the coalesced
// snapshot refetch for frames that invalidate the customer collection.
func (e *Engine) handleEvent(ctx context.Context, ev stream.Event, armDebounce func()) {
	switch ev.Name {
	case stream.EventCallStatusUpdate:
		if !e.store.ApplyStatusUpdate(ev.CustomerID, ev.Status, ev.Message) {
			e.log.Debug("status update for unknown customer", "customer_id", ev.CustomerID)
			return
		}
		e.recompute(false)
	case stream.EventUploadProgress:
		e.progress = &UploadProgress{
			UploadID:  ev.UploadID,
			Filename:  ev.Filename,
			Percent:   ev.Progress,
			Processed: ev.Processed,
			Total:     ev.Total,
		}
	case stream.EventUploadComplete:
		e.progress = nil
		armDebounce()
	case stream.EventDataUpdate:
		armDebounce()
	case stream.EventBulkOperationUpdate:
		e.requestEvents(ctx)
	default:
		// Unknown discriminators are already dropped by the stream
		// client; anything else reaching here is benign.
		return
	}
	e.publish()
}

// recompute rebuilds the filtered view and statistics from the store.
// Pagination resets when forced or when the view's composition changed.
func (e *Engine) recompute(resetPage bool) {
	before := idsOf(e.filtered)
	e.filtered = filter.Apply(e.store.Customers(), e.criteria, e.now(), e.loc)
	e.stats = filter.ComputeStats(e.filtered, e.store.CallEvents(), e.loc)
	if resetPage || !sameIDs(before, idsOf(e.filtered)) {
		e.pager.Reset(len(e.filtered))
	}
}

func (e *Engine) requestCustomers(ctx context.Context) {
	seq := e.nextSeq(fetchCustomers)
	go func() {
		list, err := e.backend.FetchCustomers(ctx)
		select {
		case e.results <- fetchResult{kind: fetchCustomers, seq: seq, customers: list, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (e *Engine) requestUploads(ctx context.Context, page int) {
	seq := e.nextSeq(fetchUploads)
	go func() {
		list, meta, err := e.backend.FetchUploads(ctx, intalks.UploadQuery{Page: page, PageSize: uploadsPageSize})
		select {
		case e.results <- fetchResult{kind: fetchUploads, seq: seq, uploads: list, meta: meta, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (e *Engine) requestEvents(ctx context.Context) {
	seq := e.nextSeq(fetchEvents)
	go func() {
		list, err := e.backend.FetchCallStatuses(ctx)
		select {
		case e.results <- fetchResult{kind: fetchEvents, seq: seq, events: list, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (e *Engine) nextSeq(kind fetchKind) uint64 {
	e.seq++
	e.latest[kind] = e.seq
	return e.seq
}

// applyResult folds one fetch into the store and derived view. Responses
// older than the newest request of their kind are discarded.
func (e *Engine) applyResult(res fetchResult) {
	if res.seq != e.latest[res.kind] {
		e.log.Debug("discarding stale fetch", "kind", int(res.kind), "seq", res.seq)
		return
	}
	if res.err != nil {
		e.log.Warn("refresh failed", "kind", int(res.kind), "error", res.err)
		if e.store.Loaded() {
			e.notice = fmt.Sprintf("refresh failed: %v", res.err)
		} else {
			e.errText = fmt.Sprintf("could not load dashboard data: %v", res.err)
		}
		e.publish()
		return
	}
	e.errText = ""
	switch res.kind {
	case fetchCustomers:
		// Customer selections do not survive a snapshot replace: the new
		// collection may use different membership or identity, so stale
		// marks must not leak into bulk actions.
		e.sel.Clear()
		e.store.ReplaceCustomers(res.customers)
		e.recompute(false)
	case fetchUploads:
		// Batch selections are keyed by upload id and persist across
		// page refreshes.
		e.store.ReplaceUploads(res.uploads, res.meta)
	case fetchEvents:
		e.store.ReplaceCallEvents(res.events)
		e.stats = filter.ComputeStats(e.filtered, e.store.CallEvents(), e.loc)
	}
	e.publish()
}

func (e *Engine) triggerCalls(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		ids = e.sel.IDs()
	}
	if len(ids) == 0 {
		e.notice = "no customers selected"
		return
	}
	go func() {
		var msg string
		var err error
		if len(ids) == 1 {
			msg, err = e.backend.TriggerCall(ctx, ids[0])
		} else {
			msg, err = e.backend.TriggerBulkCalls(ctx, ids)
		}
		if err != nil {
			err = fmt.Errorf("call trigger failed: %w", err)
		} else if msg == "" {
			msg = fmt.Sprintf("dialing %d customer(s)", len(ids))
		}
		select {
		case e.asyncs <- asyncResult{msg: msg, err: err}:
		case <-ctx.Done():
		}
	}()
}

// exportSelected resolves the selection against the store on the loop,
// then hands the file write to a goroutine: the loop never blocks on
// disk I/O.
func (e *Engine) exportSelected(ctx context.Context) {
	ids := e.sel.IDs()
	if len(ids) == 0 {
		e.notice = "no customers selected"
		return
	}
	marked := make(map[string]bool, len(ids))
	for _, id := range ids {
		marked[id] = true
	}
	var picked []intalks.Customer
	for _, cust := range e.store.Customers() {
		if marked[cust.ID] {
			picked = append(picked, cust)
		}
	}
	dir := e.exportDir
	loc := e.loc
	go func() {
		path, err := export.WriteFile(dir, picked, loc)
		res := asyncResult{msg: fmt.Sprintf("exported %d customer(s) to %s", len(picked), path)}
		if err != nil {
			res = asyncResult{err: fmt.Errorf("export failed: %w", err)}
		}
		select {
		case e.asyncs <- res:
		case <-ctx.Done():
		}
	}()
}

// publish replaces the retained snapshot with the current one.
func (e *Engine) publish() {
	vm := e.buildView()
	for {
		select {
		case e.updates <- vm:
			return
		default:
			select {
			case <-e.updates:
			default:
			}
		}
	}
}

func idsOf(customers []intalks.Customer) []string {
	out := make([]string, len(customers))
	for i, c := range customers {
		out[i] = c.ID
	}
	return out
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
