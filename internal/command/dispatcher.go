package command

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/schoolcli/internal/metrics"
	"github.com/shrimpsizemoose/schoolcli/internal/school"
	"github.com/shrimpsizemoose/schoolcli/internal/store"
)

type TraineeOperations interface {
	Add(ctx context.Context, firstName, lastName string) (string, error)
	Update(ctx context.Context, ref school.Ref, firstName, lastName string) (string, error)
	Delete(ctx context.Context, ref school.Ref) (string, error)
	Get(ctx context.Context, ref school.Ref) (string, error)
	GetAll(ctx context.Context) (string, error)
}

type CourseOperations interface {
	Add(ctx context.Context, name, startDate string) (string, error)
	Update(ctx context.Context, ref school.Ref, name, startDate string) (string, error)
	Delete(ctx context.Context, ref school.Ref) (string, error)
	Join(ctx context.Context, courseRef, traineeRef school.Ref) (string, error)
	Leave(ctx context.Context, courseRef, traineeRef school.Ref) (string, error)
	Get(ctx context.Context, ref school.Ref) (string, error)
	GetAll(ctx context.Context) (string, error)
}

// Result is what one input line produced. Output is the text to show, empty
// for ignored lines; Err is set when Output is an error line.
type Result struct {
	Output string
	Err    error
	Quit   bool
}

type Dispatcher struct {
	trainees    TraineeOperations
	courses     CourseOperations
	locker      store.Locker
	lockTimeout time.Duration
}

// NewDispatcher wires the services. A nil locker falls back to an in-process
// mutex; either way each command's load and save run under one lock.
func NewDispatcher(trainees TraineeOperations, courses CourseOperations, locker store.Locker, lockTimeout time.Duration) *Dispatcher {
	if locker == nil {
		locker = &mutexLocker{}
	}
	return &Dispatcher{
		trainees:    trainees,
		courses:     courses,
		locker:      locker,
		lockTimeout: lockTimeout,
	}
}

// Execute runs one raw input line. Failures never escape: they come back as
// an error line in the Result.
func (d *Dispatcher) Execute(ctx context.Context, input string) Result {
	line, err := Tokenize(input)
	if err != nil {
		metrics.CommandsTotal.WithLabelValues("invalid", school.KindParseFailure.String()).Inc()
		return Result{Output: err.Error(), Err: err}
	}

	cmd, err := Build(line)
	if err != nil {
		metrics.CommandsTotal.WithLabelValues("unknown", school.KindOf(err).String()).Inc()
		return errorResult(err)
	}

	switch cmd.(type) {
	case Quit:
		return Result{Quit: true}
	case Ignored:
		logger.Debug.Printf("Ignoring unknown verb %q", line.Verb)
		return Result{}
	}

	start := time.Now()
	out, err := d.run(ctx, cmd)
	metrics.CommandDuration.WithLabelValues(cmd.Op()).Observe(time.Since(start).Seconds())

	if err != nil {
		kind := school.KindOf(err)
		metrics.CommandsTotal.WithLabelValues(cmd.Op(), kind.String()).Inc()
		if kind == school.KindInternal {
			logger.Error.Printf("Command %s failed: %v", cmd.Op(), err)
		} else {
			logger.Debug.Printf("Command %s rejected (%s): %v", cmd.Op(), kind, err)
		}
		return errorResult(err)
	}

	metrics.CommandsTotal.WithLabelValues(cmd.Op(), "ok").Inc()
	logger.Debug.Printf("Command %s done in %s", cmd.Op(), time.Since(start))
	return Result{Output: out}
}

func (d *Dispatcher) run(ctx context.Context, cmd Command) (string, error) {
	lockCtx := ctx
	if d.lockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, d.lockTimeout)
		defer cancel()
	}

	waitStart := time.Now()
	unlock, err := d.locker.Lock(lockCtx)
	if err != nil {
		return "", err
	}
	metrics.LockWaitDuration.Observe(time.Since(waitStart).Seconds())
	defer func() {
		if err := unlock(); err != nil {
			logger.Error.Printf("Failed to release store lock: %v", err)
		}
	}()

	return d.Dispatch(ctx, cmd)
}

// Dispatch routes a typed command to its service operation.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) (string, error) {
	switch c := cmd.(type) {
	case TraineeAdd:
		return d.trainees.Add(ctx, c.FirstName, c.LastName)
	case TraineeUpdate:
		return d.trainees.Update(ctx, c.ID, c.FirstName, c.LastName)
	case TraineeDelete:
		return d.trainees.Delete(ctx, c.ID)
	case TraineeGet:
		return d.trainees.Get(ctx, c.ID)
	case TraineeGetAll:
		return d.trainees.GetAll(ctx)
	case CourseAdd:
		return d.courses.Add(ctx, c.Name, c.StartDate)
	case CourseUpdate:
		return d.courses.Update(ctx, c.ID, c.Name, c.StartDate)
	case CourseDelete:
		return d.courses.Delete(ctx, c.ID)
	case CourseJoin:
		return d.courses.Join(ctx, c.CourseID, c.TraineeID)
	case CourseLeave:
		return d.courses.Leave(ctx, c.CourseID, c.TraineeID)
	case CourseGet:
		return d.courses.Get(ctx, c.ID)
	case CourseGetAll:
		return d.courses.GetAll(ctx)
	default:
		return "", fmt.Errorf("no handler for command %s", cmd.Op())
	}
}

func errorResult(err error) Result {
	return Result{Output: "ERROR: " + err.Error(), Err: err}
}

type mutexLocker struct {
	mu sync.Mutex
}

func (l *mutexLocker) Lock(ctx context.Context) (func() error, error) {
	l.mu.Lock()
	return func() error {
		l.mu.Unlock()
		return nil
	}, nil
}
