package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/multisorteios/rifa-admin/internal/core/domain"
	"github.com/multisorteios/rifa-admin/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	insertTimeout  = 10 * time.Second
)

// DepthObserver receives the pending job count of a worker after each change.
type DepthObserver interface {
	AuditQueueDepth(workerID string, depth int)
}

// Dispatcher writes print audit records in the background. Jobs are routed
// to a fixed set of workers by hashing the browser context, so the records
// of one context are stored in submission order.
type Dispatcher struct {
	workers []chan domain.PrintJob
	repo    ports.PrintAuditRepository
	depth   DepthObserver
	log     zerolog.Logger
	cost    int

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.PrintAuditRepository, depth DepthObserver, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.PrintJob, numWorkers),
		repo:    repo,
		depth:   depth,
		log:     log,
		cost:    bcrypt.DefaultCost,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.PrintJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or, after Close, once their queue is drained.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record implements ports.PrintAuditor. It never blocks: when the worker's
// queue is full, or the dispatcher is closed, the job is dropped and logged.
func (d *Dispatcher) Record(job domain.PrintJob) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn().Str("job_id", job.ID).Msg("audit dispatcher closed, print job dropped")
		return
	}

	i := d.shardIndex(job.BrowserContext)
	select {
	case d.workers[i] <- job:
		d.observe(i)
	default:
		d.log.Warn().
			Str("job_id", job.ID).
			Int("worker_id", i).
			Msg("audit queue full, print job dropped")
	}
}

// Close stops accepting jobs and waits until queued jobs are written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps a browser context deterministically to a worker index.
func (d *Dispatcher) shardIndex(contextID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(contextID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) observe(i int) {
	if d.depth != nil {
		d.depth.AuditQueueDepth(strconv.Itoa(i), len(d.workers[i]))
	}
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.PrintJob) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			d.observe(id)
			if err := d.store(ctx, job); err != nil {
				d.log.Error().Err(err).
					Str("job_id", job.ID).
					Str("browser_context", job.BrowserContext).
					Int("worker_id", id).
					Msg("print audit write failed")
			}
		}
	}
}

func (d *Dispatcher) store(ctx context.Context, job domain.PrintJob) error {
	if job.Code != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(job.Code), d.cost)
		if err != nil {
			return err
		}
		job.CodeHash = string(hash)
		job.Code = ""
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), insertTimeout)
	defer cancel()
	return d.repo.Insert(ctx, &job)
}
