package taskpool

import (
	"sync"

	"github.com/ls1intum/Artemis-sub058/pkg/logger/types"
)

// Pool is a bounded background worker pool for fire-and-forget work (channel
// delivery, cache invalidation). Submit blocks once the queue is full, so a
// burst of dispatches applies backpressure instead of growing goroutines
// unbounded.
//
// Because Submit blocks, a task must never submit into its own pool: with the
// queue full every worker would sit in Submit and the pool deadlocks. Work
// spawned from inside a task goes to a separate pool.
type Pool struct {
	tasks  chan func()
	wg     sync.WaitGroup
	once   sync.Once
	logger *types.Logger
}

func New(workers, queueSize int, logger *types.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		tasks:  make(chan func(), queueSize),
		logger: logger,
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(task)
	}
}

func (p *Pool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorf("background task panicked: %v", r)
		}
	}()
	task()
}

// Submit queues a task. Tasks submitted after Stop are dropped.
func (p *Pool) Submit(task func()) {
	defer func() {
		// Sending on the closed queue means Stop already ran; the task is
		// dropped like any other post-shutdown work.
		if recover() != nil {
			p.logger.Warnf("task submitted after pool shutdown, dropped")
		}
	}()
	p.tasks <- task
}

// Stop drains the queue and waits for running tasks to finish.
func (p *Pool) Stop() {
	p.once.Do(func() {
		close(p.tasks)
	})
	p.wg.Wait()
}
