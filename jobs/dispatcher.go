package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"pdf_eraser/pdf"
)

var (
	// ErrNoSelection is returned by Submit when no source path was given.
	ErrNoSelection = errors.New("no PDF file selected")

	// ErrQueueFull is returned by Submit when the worker is backed up.
	ErrQueueFull = errors.New("job queue is full")

	// ErrStopped is returned by Submit after Stop.
	ErrStopped = errors.New("dispatcher stopped")
)

// Trimmer is the transform run for every job.
type Trimmer interface {
	Trim(ctx context.Context, sourcePath string, trimName bool) (*pdf.Result, error)
}

// Config tunes a Dispatcher.
type Config struct {
	// QueueSize bounds the number of jobs waiting for the worker.
	QueueSize int

	// JobTimeout cancels a single trim running longer than this; zero means no limit.
	JobTimeout time.Duration

	// OnComplete, if set, is called from the worker with every finished job.
	OnComplete func(Job)
}

// Dispatcher runs trim jobs on a single background worker so callers never
// block on file I/O. Jobs run one at a time in submission order.
type Dispatcher struct {
	trimmer Trimmer
	store   Store
	log     *logrus.Logger
	cfg     Config

	queue  chan *Job
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.RWMutex
	started bool
	stopped bool
}

// DefaultQueueSize is used when Config.QueueSize is not positive.
const DefaultQueueSize = 16

func NewDispatcher(trimmer Trimmer, store Store, log *logrus.Logger, cfg Config) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		trimmer: trimmer,
		store:   store,
		log:     log,
		cfg:     cfg,
		queue:   make(chan *Job, cfg.QueueSize),
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the worker. Calling it more than once has no effect.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.stopped {
		return
	}
	d.started = true
	go d.work()
	d.log.WithField("queue_size", d.cfg.QueueSize).Info("Job worker started")
}

// Stop refuses new jobs, lets queued ones finish and waits for the worker.
// If ctx ends first, the running job is cancelled and Stop returns ctx's error
// once the worker has exited.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.queue)
		if !d.started {
			close(d.done)
		}
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-d.done
		return ctx.Err()
	}
}

// Submit stores a queued job for source and hands it to the worker.
func (d *Dispatcher) Submit(ctx context.Context, source string, trimName bool) (*Job, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrNoSelection
	}

	job := &Job{
		ID:           newID(),
		Source:       source,
		TrimFilename: trimName,
		Status:       StatusQueued,
		CreatedAt:    time.Now(),
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return nil, ErrStopped
	}

	if err := d.store.Save(ctx, job); err != nil {
		return nil, err
	}
	snapshot := *job

	select {
	case d.queue <- job:
	default:
		job.finish(nil, pdf.Outcome{Kind: pdf.OutcomeError, Message: ErrQueueFull.Error()})
		if err := d.store.Save(ctx, job); err != nil {
			d.log.WithError(err).WithField("job", job.ID).Warn("Failed to record rejected job")
		}
		return nil, ErrQueueFull
	}

	d.log.WithFields(logrus.Fields{
		"job":           job.ID,
		"source":        source,
		"trim_filename": trimName,
	}).Info("Job queued")
	return &snapshot, nil
}

// Get returns the current state of a job.
func (d *Dispatcher) Get(ctx context.Context, id string) (*Job, error) {
	return d.store.Get(ctx, id)
}

func (d *Dispatcher) work() {
	defer close(d.done)
	for job := range d.queue {
		d.process(job)
	}
}

func (d *Dispatcher) process(job *Job) {
	log := d.log.WithFields(logrus.Fields{"job": job.ID, "source": job.Source})

	job.Status = StatusProcessing
	d.save(job)

	ctx := d.ctx
	if d.cfg.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.JobTimeout)
		defer cancel()
	}

	start := time.Now()
	res, err := d.run(ctx, job)
	outcome := pdf.Classify(res, err)
	job.finish(res, outcome)
	d.save(job)

	entry := log.WithFields(logrus.Fields{
		"status":   job.Status,
		"duration": time.Since(start).String(),
	})
	switch outcome.Kind {
	case pdf.OutcomeInfo:
		entry.WithField("output", outcome.OutputPath).Info("Job completed")
	case pdf.OutcomeWarning:
		entry.Warn(outcome.Message)
	default:
		entry.WithError(err).Error("Job failed")
	}

	if d.cfg.OnComplete != nil {
		d.cfg.OnComplete(*job)
	}
}

// run calls the trimmer, turning a panic into an error so one bad document
// cannot take the worker down.
func (d *Dispatcher) run(ctx context.Context, job *Job) (res *pdf.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("processing %s: %v", job.Source, r)
		}
	}()
	return d.trimmer.Trim(ctx, job.Source, job.TrimFilename)
}

func (d *Dispatcher) save(job *Job) {
	// status writes get their own deadline; d.ctx may already be cancelled
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.store.Save(ctx, job); err != nil {
		d.log.WithError(err).WithField("job", job.ID).Error("Failed to save job state")
	}
}
