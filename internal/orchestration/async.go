// Package orchestration provides helpers for running independent remote
// operations concurrently and collecting their results.
package orchestration

import "context"

// Task represents an asynchronous operation with a name and function.
type Task[T any] struct {
	Name string
	Func func(context.Context) (T, error)
}

// Result holds the outcome of a single task.
type Result[T any] struct {
	Name  string
	Value T
	Err   error
}

// Gather executes all tasks concurrently and returns one Result per task,
// in task order. It always waits for every task to settle before returning;
// a failing task does not cancel its siblings. The caller folds the results
// afterwards, so no state is shared between in-flight tasks.
//
// limit bounds the number of tasks running at once; 0 means unlimited.
// Region-scoped fan-outs are small (tens of tasks), so the unlimited mode
// is the default.
//
// Example:
//
//	tasks := []Task[regionQuotas]{
//	    {Name: "us-east-1", Func: probeUSEast1},
//	    {Name: "us-west-2", Func: probeUSWest2},
//	}
//	for _, res := range Gather(ctx, tasks, 0) {
//	    ...
//	}
func Gather[T any](ctx context.Context, tasks []Task[T], limit int) []Result[T] {
	results := make([]Result[T], len(tasks))
	if len(tasks) == 0 {
		return results
	}

	var sem chan struct{}
	if limit > 0 {
		sem = make(chan struct{}, limit)
	}

	done := make(chan int, len(tasks))

	for i, task := range tasks {
		i, task := i, task
		go func() {
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			value, err := task.Func(ctx)
			results[i] = Result[T]{Name: task.Name, Value: value, Err: err}
			done <- i
		}()
	}

	// Barrier: every task writes only its own slot, so the results slice
	// is safe to read once all slots have been signalled.
	for n := 0; n < len(tasks); n++ {
		<-done
	}

	return results
}
