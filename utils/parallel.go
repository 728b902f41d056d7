package utils

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
	quarterProcs := float64(ParallelFactor) * .25
	if quarterProcs > 8 {
		ParallelFactor = int(quarterProcs)
	}
}

type (
	// BeforeParallelGroupWorkFunc executes before any work starts with the calculated group size.
	BeforeParallelGroupWorkFunc func(groupSize int)
	// MemberWorkFunc runs for each work item (member) of a group.
	MemberWorkFunc func(memberNum, workNum int) error
	// GroupWorkDoneFunc runs when a single group's work is done; helpful for merge stages.
	GroupWorkDoneFunc func()
	// GroupWorkFunc runs to determine what work members should do, if any.
	GroupWorkFunc func(groupNum, groupSize, from, to int) (MemberWorkFunc, GroupWorkDoneFunc)
)

// GroupWorkParallel parallelizes the given size of work over multiple workers. Work items
// [0, totalSize) are split into contiguous ranges, one per group. A member error stops
// the rest of its group; errors and panics from all groups are combined and returned.
func GroupWorkParallel(ctx context.Context, totalSize int, before BeforeParallelGroupWorkFunc, groupWork GroupWorkFunc) error {
	numGroups := ParallelFactor
	if totalSize < numGroups {
		numGroups = totalSize
	}
	if numGroups <= 0 {
		if before != nil {
			before(0)
		}
		return nil
	}
	groupSize := totalSize / numGroups
	extra := totalSize % numGroups

	if before != nil {
		before(numGroups)
	}

	var wait sync.WaitGroup
	var errMu sync.Mutex
	var bigError error
	storeError := func(err error) {
		errMu.Lock()
		defer errMu.Unlock()
		bigError = multierr.Combine(bigError, err)
	}

	wait.Add(numGroups)
	for groupNum := 0; groupNum < numGroups; groupNum++ {
		thisGroupSize := groupSize
		if groupNum == numGroups-1 {
			thisGroupSize += extra
		}
		from := groupSize * groupNum
		to := from + thisGroupSize
		// wait.Done is not deferred: on a panic it must run only after the callback stored the error.
		goutils.PanicCapturingGoWithCallback(func() {
			runGroup(ctx, groupWork, groupNum, thisGroupSize, from, to, storeError)
			wait.Done()
		}, func(thePanic interface{}) {
			storeError(fmt.Errorf("got panic running something in parallel: %v", thePanic))
			wait.Done()
		})
	}
	wait.Wait()
	return bigError
}

// ParallelForEachIndex calls f once for every index in [0, n) across ParallelFactor workers.
func ParallelForEachIndex(ctx context.Context, n int, f func(i int) error) error {
	return GroupWorkParallel(ctx, n, nil, func(groupNum, groupSize, from, to int) (MemberWorkFunc, GroupWorkDoneFunc) {
		return func(memberNum, workNum int) error {
			return f(workNum)
		}, nil
	})
}

func runGroup(
	ctx context.Context,
	groupWork GroupWorkFunc,
	groupNum, groupSize, from, to int,
	storeError func(error),
) {
	memberWork, groupWorkDone := groupWork(groupNum, groupSize, from, to)
	if memberWork != nil {
		memberNum := 0
		for workNum := from; workNum < to; workNum++ {
			if err := ctx.Err(); err != nil {
				storeError(err)
				return
			}
			if err := memberWork(memberNum, workNum); err != nil {
				storeError(err)
				return
			}
			memberNum++
		}
	}
	if groupWorkDone != nil {
		groupWorkDone()
	}
}
