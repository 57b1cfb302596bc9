// Package async runs method bodies on their own goroutines.
//
// Start hands a body off and returns a Task immediately; Wait blocks until
// the body ends. A body may end early with Task.Exit, which releases the
// argument and detaches the task without a join. Cancellation is
// cooperative: Stop sets a flag that the body polls through Stopping.
//
//	e := async.NewEngineWithConfig(&async.Config{MaxThreads: 8})
//	task, err := e.Start("refuel", owner, arg, func(t *async.Task) error {
//	    for !t.Stopping() {
//	        // work
//	    }
//	    return nil
//	})
//	if err != nil {
//	    // thread budget exhausted or engine closed
//	}
//	err = task.Wait()
//
// With Config.Synchronous the body runs inline and Start returns a task
// that has already finished, keeping call sites unchanged.
package async
