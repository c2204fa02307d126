package service

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/redislight-go/internal/core/domain"
	"github.com/yndnr/redislight-go/internal/storage/memory"
	"github.com/yndnr/redislight-go/internal/telemetry/logger"
	"github.com/yndnr/redislight-go/internal/telemetry/metric"
)

// Keyspace is the key to value mapping the evaluator mutates.
type Keyspace interface {
	Get(key string) (domain.Value, bool)
	Set(key string, v domain.Value)
	SetIfAbsent(key string, v domain.Value) bool
	SetIfPresent(key string, v domain.Value) bool
	Delete(key string) bool
	Len() int
}

// Expirer tracks per-key deadlines and evicts due keys on Sweep.
type Expirer interface {
	Now() time.Time
	Register(key string, d time.Duration) time.Time
	Clear(key string)
	Sweep(store memory.Evictor) []string
	Len() int
}

// Evaluator applies commands to a Keyspace and its Expirer.
//
// Every Evaluate call holds one lock across the expiry sweep and the
// command itself, so a sweep and the command it precedes are atomic
// with respect to other callers.
type Evaluator struct {
	mu      sync.Mutex
	store   Keyspace
	expiry  Expirer
	logger  logger.Logger
	metrics *metric.Registry

	sweepLog rate.Sometimes
}

// Option configures the Evaluator.
type Option func(*Evaluator)

// WithLogger overrides the logger carried by the request context.
func WithLogger(l logger.Logger) Option {
	return func(e *Evaluator) {
		e.logger = l
	}
}

// WithMetrics records command and expiry metrics into m.
func WithMetrics(m *metric.Registry) Option {
	return func(e *Evaluator) {
		e.metrics = m
	}
}

// NewEvaluator creates an evaluator over a store and its expiry registry.
func NewEvaluator(store Keyspace, expiry Expirer, opts ...Option) *Evaluator {
	e := &Evaluator{
		store:    store,
		expiry:   expiry,
		sweepLog: rate.Sometimes{Interval: time.Second},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate sweeps expired keys, then applies cmd and returns its reply.
// It never panics on user input; failures come back as ErrorReply.
func (e *Evaluator) Evaluate(ctx context.Context, cmd domain.Command) domain.Reply {
	start := time.Now()
	log := e.log(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.sweep(log)

	if cmd == nil {
		return domain.ErrorReply{Err: domain.ErrInvalidCommand.WithDetails("empty command")}
	}

	reply := e.dispatch(cmd)

	status := metric.StatusOK
	if r, ok := reply.(domain.ErrorReply); ok {
		status = metric.StatusError
		log.Debug("command failed",
			"command", domain.Describe(cmd),
			"code", domain.CodeOf(r.Err),
			"error", r.Err,
		)
	} else {
		log.Debug("command evaluated", "command", domain.Describe(cmd))
	}

	e.metrics.ObserveCommand(cmd.Name(), status, time.Since(start))
	e.metrics.SetKeys(e.store.Len(), e.expiry.Len())
	return reply
}

func (e *Evaluator) log(ctx context.Context) logger.Logger {
	if e.logger == nil {
		return logger.L(ctx)
	}
	return logger.Enrich(ctx, e.logger)
}

func (e *Evaluator) sweep(log logger.Logger) {
	evicted := e.expiry.Sweep(e.store)
	if len(evicted) == 0 {
		return
	}
	e.metrics.AddExpired(len(evicted))
	e.sweepLog.Do(func() {
		log.Debug("expired keys evicted", "count", len(evicted))
	})
}

func (e *Evaluator) dispatch(cmd domain.Command) domain.Reply {
	switch c := cmd.(type) {
	case domain.Set:
		return e.set(c)
	case domain.Del:
		return e.del(c)
	case domain.Get:
		return e.get(c)
	case domain.LPush:
		return e.lpush(c)
	case domain.LPop:
		return e.lpop(c)
	case domain.LRange:
		return e.lrange(c)
	default:
		return domain.ErrorReply{Err: domain.ErrUnknownCommand.WithDetails(cmd.Name())}
	}
}

// ============================================================================
// Strings
// ============================================================================

func (e *Evaluator) set(c domain.Set) domain.Reply {
	value := domain.NewStr(c.Value)

	switch m := c.Modifier.(type) {
	case nil, domain.NoModifier:
		return e.overwrite(c.Key, value)

	case domain.Nx:
		if !e.store.SetIfAbsent(c.Key, value) {
			return domain.NilReply{}
		}
		e.expiry.Clear(c.Key)
		return domain.OK

	case domain.Xx:
		if !e.store.SetIfPresent(c.Key, value) {
			return domain.NilReply{}
		}
		e.expiry.Clear(c.Key)
		return domain.OK

	case domain.GetOld:
		var reply domain.Reply = domain.NilReply{}
		if old, ok := e.store.Get(c.Key); ok {
			s, isStr := old.(*domain.Str)
			if !isStr {
				return domain.ErrorReply{Err: domain.ErrWrongType}
			}
			reply = domain.BulkReply{Text: s.Text}
		}
		e.overwrite(c.Key, value)
		return reply

	case domain.KeepTTL:
		e.store.Set(c.Key, value)
		return domain.OK

	case domain.Ex:
		d, err := secondsToDuration(m.Seconds)
		if err != nil {
			return domain.ErrorReply{Err: err}
		}
		return e.setWithExpiry(c.Key, value, d)

	case domain.Px:
		if m.Millis < 0 || m.Millis > math.MaxInt64/int64(time.Millisecond) {
			return domain.ErrorReply{Err: domain.ErrInvalidExpire.WithDetails(m.String())}
		}
		return e.setWithExpiry(c.Key, value, time.Duration(m.Millis)*time.Millisecond)

	case domain.ExAt:
		if math.IsNaN(m.Seconds) || math.Abs(m.Seconds) > maxUnixSeconds {
			return domain.ErrorReply{Err: domain.ErrInvalidExpire.WithDetails(m.String())}
		}
		sec, frac := math.Modf(m.Seconds)
		deadline := time.Unix(int64(sec), int64(frac*float64(time.Second)))
		return e.setWithExpiry(c.Key, value, untilDeadline(e.expiry.Now(), deadline))

	case domain.PxAt:
		deadline := time.UnixMilli(m.Millis)
		return e.setWithExpiry(c.Key, value, untilDeadline(e.expiry.Now(), deadline))

	default:
		return domain.ErrorReply{Err: domain.ErrInvalidCommand.WithDetails("unsupported SET modifier")}
	}
}

// overwrite stores value and drops any inherited TTL.
func (e *Evaluator) overwrite(key string, value domain.Value) domain.Reply {
	e.store.Set(key, value)
	e.expiry.Clear(key)
	return domain.OK
}

func (e *Evaluator) setWithExpiry(key string, value domain.Value, d time.Duration) domain.Reply {
	e.store.Set(key, value)
	e.expiry.Register(key, d)
	return domain.OK
}

func (e *Evaluator) get(c domain.Get) domain.Reply {
	v, ok := e.store.Get(c.Key)
	if !ok {
		return domain.NilReply{}
	}
	switch val := v.(type) {
	case *domain.Str:
		return domain.BulkReply{Text: val.Text}
	case *domain.List:
		return domain.MultiReply{Items: val.Items()}
	default:
		return domain.ErrorReply{Err: domain.ErrWrongType}
	}
}

func (e *Evaluator) del(c domain.Del) domain.Reply {
	var removed int64
	for _, key := range c.Keys {
		if e.store.Delete(key) {
			e.expiry.Clear(key)
			removed++
		}
	}
	return domain.IntegerReply{N: removed}
}

// ============================================================================
// Lists
// ============================================================================

// listAt returns the list stored at key. A missing key yields (nil, nil).
func (e *Evaluator) listAt(key string) (*domain.List, error) {
	v, ok := e.store.Get(key)
	if !ok {
		return nil, nil
	}
	l, ok := v.(*domain.List)
	if !ok {
		return nil, domain.ErrWrongType
	}
	return l, nil
}

func (e *Evaluator) lpush(c domain.LPush) domain.Reply {
	if len(c.Elements) == 0 {
		return domain.ErrorReply{Err: domain.ErrInvalidCommand.WithDetails("wrong number of arguments for 'lpush' command")}
	}

	l, err := e.listAt(c.Key)
	if err != nil {
		return domain.ErrorReply{Err: err}
	}
	if l == nil {
		l = domain.NewList()
		e.store.Set(c.Key, l)
	}
	return domain.IntegerReply{N: int64(l.PushFront(c.Elements...))}
}

func (e *Evaluator) lpop(c domain.LPop) domain.Reply {
	count := 1
	if c.HasCount {
		if c.Count < 0 {
			return domain.ErrorReply{Err: domain.ErrNotInteger.WithDetails("count must be positive")}
		}
		count = c.Count
	}

	l, err := e.listAt(c.Key)
	if err != nil {
		return domain.ErrorReply{Err: err}
	}
	if l == nil {
		return domain.NilReply{}
	}

	popped := l.PopFront(count)
	if l.Len() == 0 {
		e.store.Delete(c.Key)
		e.expiry.Clear(c.Key)
	}
	return domain.MultiReply{Items: popped}
}

func (e *Evaluator) lrange(c domain.LRange) domain.Reply {
	l, err := e.listAt(c.Key)
	if err != nil {
		return domain.ErrorReply{Err: err}
	}
	if l == nil {
		return domain.MultiReply{}
	}
	return domain.MultiReply{Items: l.Range(c.Start, c.Stop)}
}

// ============================================================================
// Expiry helpers
// ============================================================================

// maxUnixSeconds bounds EXAT to the instants a PXAT timestamp can name.
const maxUnixSeconds = math.MaxInt64 / 1000

// secondsToDuration rejects any count whose nanoseconds do not fit in a
// Duration. float64(math.MaxInt64) rounds up to 2^63, so the comparison
// must be inclusive.
func secondsToDuration(seconds float64) (time.Duration, error) {
	ns := seconds * float64(time.Second)
	if math.IsNaN(ns) || ns < 0 || ns >= float64(math.MaxInt64) {
		return 0, domain.ErrInvalidExpire.WithDetails(domain.Ex{Seconds: seconds}.String())
	}
	return time.Duration(ns), nil
}

// untilDeadline converts an absolute deadline into a duration from now,
// clamped at zero for deadlines already in the past.
func untilDeadline(now, deadline time.Time) time.Duration {
	d := deadline.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
