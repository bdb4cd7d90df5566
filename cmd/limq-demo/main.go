package main

import (
	"context"
	"fmt"
	"time"

	"github.com/nkaryakin/limq"
)

func slowOracle(ctx context.Context) (string, error) {
	time.Sleep(300 * time.Millisecond)
	return "42", nil
}

func main() {
	ctx := context.Background()

	q := limq.New(ctx,
		limq.WithLimit(2),
		limq.WithOnDone(func(ref limq.TaskRef, err error, d time.Duration) {
			fmt.Printf("done %-10s err=%v in %s\n", ref, err, d.Round(time.Millisecond))
		}),
	)

	handles := make([]*limq.Result[int], 0, 5)
	for i := 1; i <= 5; i++ {
		i := i
		handles = append(handles, limq.Push(q, func(ctx context.Context) (int, error) {
			time.Sleep(time.Duration(i) * 20 * time.Millisecond)
			return i * i, nil
		}))
	}

	fmt.Println("running now:", q.Running())

	for _, h := range handles {
		v, err := h.Wait()
		if err != nil {
			fmt.Println("task failed:", err)
			continue
		}
		fmt.Printf("%s -> %d\n", h.Task(), v)
	}
	fmt.Printf("stats: %+v\n", q.Stats())

	// Deadline-guard a slow call.
	guarded := limq.WithTimeout(slowOracle, 100*time.Millisecond)
	if _, err := guarded(ctx).Wait(); err != nil {
		fmt.Println("oracle:", err)
	}
}
