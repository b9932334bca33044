package sitescan

import (
	"context"
	"errors"
	"math/rand"
	"sitescan/pkg/domain"
	"sitescan/pkg/logger"
	"sitescan/pkg/serrors"
	"sitescan/pkg/wp"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// defaultEventBuffer is the View channel capacity of a subscriber.
const defaultEventBuffer = 16

// baseFields are always requested from the scannable URLs resource.
var baseFields = []string{"url", "amp_url", "type", "label"} //nolint: gochecknoglobals

// cachedResultFields are requested on top of baseFields when cached
// validation results should be loaded.
var cachedResultFields = []string{"validation_errors", "stale"} //nolint: gochecknoglobals

// Options configure a session.
type Options struct {
	// AMPFirst validates plain URLs regardless of the theme support mode.
	AMPFirst bool
	// FetchCachedValidationErrors loads the validation errors and staleness
	// cached by the site together with the URL list.
	FetchCachedValidationErrors bool
	// HomeURL is the preview fallback.
	HomeURL string
	// ScannableURLsRestPath is the REST path of the scannable URLs resource.
	ScannableURLsRestPath string
	// ValidateNonce is the validate credential. It is required.
	ValidateNonce string
	// LimitPerType caps the number of URLs per template kind. Zero keeps the
	// site default.
	LimitPerType int
	// IncludeConditionals restricts URL discovery to these template conditionals.
	IncludeConditionals []string
	// EventBuffer is the View channel capacity of each subscriber.
	EventBuffer int

	// OnAsyncError receives URL list fetch failures. It defaults to logging.
	OnAsyncError func(ctx context.Context, err error)
	// MeterProvider provides the session instruments. It defaults to the
	// global provider.
	MeterProvider metric.MeterProvider
}

// session is the concrete Scanner. A single worker goroutine started by Run
// performs every network call, so requests never overlap; all other methods
// only fold events into the state.
type session struct {
	id        string
	options   Options
	urls      wp.URLSource
	validator wp.Validator
	opts      OptionsSource
	inst      *instruments

	mu    sync.Mutex
	state State
	// epoch changes whenever status, index or run change. The worker runs the
	// effect of a state at most once per epoch.
	epoch uint64
	// run identifies the current scan; outcomes of older runs are discarded.
	run uint64
	// urlsVersion changes whenever the URL list changes.
	urlsVersion uint64
	issues      issuesMemo
	fetchErr    error
	tornDown    bool
	// changed is closed and replaced on every state change.
	changed chan struct{}

	subs    map[int]chan View
	nextSub int

	// wake signals the worker that the epoch changed.
	wake    chan struct{}
	running atomic.Bool
}

type issuesMemo struct {
	valid       bool
	urlsVersion uint64
	status      Status
	issues      Issues
}

// Ensure session conforms to the Scanner interface at compile time.
var _ Scanner = (*session)(nil)

// New creates a scan session. It fails with serrors.ErrInvalidConfig when the
// validate nonce is missing; no request is made in that case.
func New(urls wp.URLSource, validator wp.Validator, opts OptionsSource, options Options) (Scanner, error) {
	if options.ValidateNonce == "" {
		return nil, serrors.With(serrors.ErrInvalidConfig, "invalid site scan configuration: validate nonce is required")
	}
	if options.ScannableURLsRestPath == "" {
		return nil, serrors.With(serrors.ErrInvalidConfig, "invalid site scan configuration: scannable urls rest path is required")
	}
	if options.EventBuffer <= 0 {
		options.EventBuffer = defaultEventBuffer
	}
	if options.OnAsyncError == nil {
		options.OnAsyncError = func(ctx context.Context, err error) {
			logger.Error(ctx, "site scan failed", zap.Error(err))
		}
	}
	if options.MeterProvider == nil {
		options.MeterProvider = otel.GetMeterProvider()
	}

	inst, err := newInstruments(options.MeterProvider)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not create session instruments")
	}

	return &session{
		id:        uuid.NewString(),
		options:   options,
		urls:      urls,
		validator: validator,
		opts:      opts,
		inst:      inst,
		state:     InitialState(),
		changed:   make(chan struct{}),
		subs:      make(map[int]chan View),
		wake:      make(chan struct{}, 1),
	}, nil
}

// Run implements Scanner.
func (s *session) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return serrors.With(serrors.ErrConflict, "site scan session is already running")
	}
	ctx = logger.WithFields(ctx, zap.String("sessionID", s.id))
	defer s.tearDown(ctx)

	optionsChanged, unsubscribe := s.opts.Subscribe()
	defer unsubscribe()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-optionsChanged:
				s.cancelIfStale(ctx)
				s.publish()
			}
		}
	}()
	defer wg.Wait()

	s.dispatch(ctx, RequestScannableURLs{}, func(st State) bool { return st.Status == StatusInitial })

	var handled uint64
	for {
		s.mu.Lock()
		st, epoch, run := s.state, s.epoch, s.run
		s.mu.Unlock()

		if epoch != handled {
			handled = epoch
			s.effect(ctx, st, epoch, run)

			continue
		}

		select {
		case <-ctx.Done():
			return nil
		case <-s.wake:
		}
	}
}

// effect performs the side effect of entering st.
func (s *session) effect(ctx context.Context, st State, epoch, run uint64) {
	if ctx.Err() != nil {
		return
	}

	switch st.Status {
	case StatusRequestScannableURLs:
		s.fetchScannableURLs(ctx, epoch)
	case StatusIdle:
		s.validateCurrent(ctx, st, epoch, run)
	default:
	}
}

func (s *session) fetchScannableURLs(ctx context.Context, epoch uint64) {
	if !s.dispatch(ctx, FetchScannableURLs{}, s.atEpoch(epoch)) {
		return
	}

	fields := baseFields
	if s.options.FetchCachedValidationErrors {
		fields = append(append([]string{}, baseFields...), cachedResultFields...)
	}

	urls, err := s.urls.ScannableURLs(ctx, wp.ScannableURLsQuery{
		Path:                s.options.ScannableURLsRestPath,
		Fields:              fields,
		LimitPerType:        s.options.LimitPerType,
		IncludeConditionals: s.options.IncludeConditionals,
	})
	if s.isTornDown() || ctx.Err() != nil {
		return
	}
	if err != nil {
		s.inst.recordFetch(ctx, outcomeError)
		s.mu.Lock()
		s.fetchErr = err
		s.mu.Unlock()
		s.publish()
		s.options.OnAsyncError(ctx, err)

		return
	}
	s.inst.recordFetch(ctx, outcomeSuccess)
	logger.Info(ctx, "scannable urls fetched", zap.Int("count", len(urls)))

	s.dispatch(ctx, ReceiveScannableURLs{URLs: urls}, func(st State) bool {
		return st.Status == StatusFetchingScannableURLs
	})
}

func (s *session) validateCurrent(ctx context.Context, st State, epoch, run uint64) {
	if !s.dispatch(ctx, ValidateURL{}, s.atEpoch(epoch)) {
		return
	}

	index := st.CurrentlyScannedURLIndex
	plain := UsePlainURL(s.options.AMPFirst, s.opts.ThemeSupport())
	target := st.ScannableURLs[index].Address(plain)
	ctx = logger.WithFields(ctx, zap.Int("index", index), zap.String("url", target))

	started := time.Now()
	res, err := s.validator.Validate(ctx, wp.ValidateRequest{
		URL:             target,
		AMPFirst:        s.options.AMPFirst,
		Cache:           st.Cache,
		Nonce:           s.options.ValidateNonce,
		OmitStylesheets: true,
		CacheBust:       strconv.FormatFloat(rand.Float64(), 'f', -1, 64), //nolint: gosec
	})
	took := time.Since(started)
	if s.isTornDown() || ctx.Err() != nil {
		return
	}

	outcome := ReceiveValidationResult{Index: index}
	if err != nil {
		outcome.Error = scanErrorOf(err)
		s.inst.recordValidation(ctx, outcomeError, took)
		logger.Warn(ctx, "url validation failed", zap.Error(err))
	} else {
		outcome.ValidatedURLPost = res.ValidatedURLPost
		outcome.ValidationErrors = res.ValidationErrors
		s.inst.recordValidation(ctx, outcomeSuccess, took)
		logger.Debug(ctx, "url validated",
			zap.Int("validationErrors", len(res.ValidationErrors)),
			zap.Bool("revalidated", res.Revalidated),
			zap.Duration("took", took))
	}

	inRun := s.inRun(run)
	s.dispatch(ctx, outcome, inRun)
	s.dispatch(ctx, NextURL{}, inRun)
}

// scanErrorOf maps a validation failure to the recorded error: the REST error
// code of the response when there is one, the generic marker otherwise.
func scanErrorOf(err error) *domain.ScanError {
	var rerr *wp.ResponseError
	if errors.As(err, &rerr) && rerr.Code != "" {
		return &domain.ScanError{Code: rerr.Code}
	}

	return domain.GenericScanError()
}

// Start implements Scanner.
func (s *session) Start(ctx context.Context, args StartArgs) bool {
	return s.dispatch(ctx, StartScan{Cache: args.Cache, ModifiedOptions: s.opts.ModifiedOptions()}, func(st State) bool {
		return st.Status.CanStart()
	})
}

// Cancel implements Scanner.
func (s *session) Cancel(ctx context.Context) bool {
	return s.dispatch(ctx, CancelScan{}, func(st State) bool { return st.Status.Busy() })
}

// View implements Scanner.
func (s *session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.viewLocked()
}

// Subscribe implements Scanner.
func (s *session) Subscribe() (<-chan View, func()) {
	ch := make(chan View, s.options.EventBuffer)

	s.mu.Lock()
	if s.tornDown {
		s.mu.Unlock()
		close(ch)

		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.viewLocked()
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
}

// Wait implements Scanner.
func (s *session) Wait(ctx context.Context, cond func(View) bool) (View, error) {
	for {
		s.mu.Lock()
		view := s.viewLocked()
		changed, tornDown := s.changed, s.tornDown
		s.mu.Unlock()

		if cond(view) {
			return view, nil
		}
		if tornDown {
			return view, serrors.With(serrors.ErrUnavailable, "site scan session is closed")
		}

		select {
		case <-ctx.Done():
			return view, serrors.Wrap(serrors.ErrTimeout, ctx.Err(), "stopped waiting for site scan")
		case <-changed:
		}
	}
}

// dispatch folds e into the state when guard accepts the current state. It
// reports whether e was applied.
func (s *session) dispatch(ctx context.Context, e Event, guard func(State) bool) bool {
	s.mu.Lock()
	if s.tornDown || (guard != nil && !guard(s.state)) {
		s.mu.Unlock()

		return false
	}

	prev := s.state
	next := Reduce(prev, e)
	s.state = next

	moved := prev.Status != next.Status || prev.CurrentlyScannedURLIndex != next.CurrentlyScannedURLIndex
	switch e := e.(type) {
	case StartScan:
		s.run++
		moved = true
	case ReceiveScannableURLs:
		if len(e.URLs) > 0 {
			s.urlsVersion++
		}
		s.fetchErr = nil
	case ReceiveValidationResult:
		s.urlsVersion++
	}
	if moved {
		s.epoch++
	}
	s.broadcastLocked()
	s.mu.Unlock()

	if moved {
		logger.Debug(ctx, "site scan transition",
			zap.String("sessionID", s.id),
			zap.String("from", string(prev.Status)),
			zap.String("to", string(next.Status)),
			zap.Int("index", next.CurrentlyScannedURLIndex))
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}

	s.cancelIfStale(ctx)

	return true
}

// cancelIfStale cancels a running scan whose frozen options no longer match
// the live ones.
func (s *session) cancelIfStale(ctx context.Context) {
	live := s.opts.ModifiedOptions()

	s.mu.Lock()
	stale := s.state.Status.Busy() && HasModifiedOptions(live, s.state.FrozenModifiedOptions)
	s.mu.Unlock()

	if stale && s.dispatch(ctx, CancelScan{}, func(st State) bool { return st.Status.Busy() }) {
		logger.Info(ctx, "site scan cancelled, options changed", zap.String("sessionID", s.id))
	}
}

// publish sends the current view to subscribers without a state change.
func (s *session) publish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcastLocked()
}

func (s *session) broadcastLocked() {
	close(s.changed)
	s.changed = make(chan struct{})

	if len(s.subs) == 0 {
		return
	}
	view := s.viewLocked()
	for _, ch := range s.subs {
		select {
		case ch <- view:
		default:
		}
	}
}

func (s *session) viewLocked() View {
	if !s.issues.valid || s.issues.urlsVersion != s.urlsVersion || s.issues.status != s.state.Status {
		s.issues = issuesMemo{
			valid:       true,
			urlsVersion: s.urlsVersion,
			status:      s.state.Status,
			issues:      Issues{PluginIssues: []string{}, ThemeIssues: []string{}},
		}
		if settled(s.state.Status) {
			s.issues.issues = scanIssues(s.state.ScannableURLs)
		}
	}
	issues := s.issues.issues

	v := NewView(s.state, ViewInput{
		ModifiedOptions: s.opts.ModifiedOptions(),
		ThemeSupport:    s.opts.ThemeSupport(),
		AMPFirst:        s.options.AMPFirst,
		HomeURL:         s.options.HomeURL,
		Issues:          &issues,
	})
	if s.fetchErr != nil {
		v.FetchError = s.fetchErr.Error()
	}

	return v
}

func (s *session) atEpoch(epoch uint64) func(State) bool {
	return func(State) bool { return s.epoch == epoch }
}

func (s *session) inRun(run uint64) func(State) bool {
	return func(State) bool { return s.run == run }
}

func (s *session) isTornDown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tornDown
}

func (s *session) tearDown(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tornDown = true
	close(s.changed)
	s.changed = make(chan struct{})
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	logger.Debug(ctx, "site scan session torn down")
}
