package limq_test

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nkaryakin/limq"
)

func ExamplePush() {
	q := limq.New(context.Background(), limq.WithLimit(1))

	first := limq.Push(q, func(ctx context.Context) (int, error) {
		return 1, nil
	})
	second := limq.Push(q, func(ctx context.Context) (int, error) {
		return 2, nil
	})

	v1, _ := first.Wait()
	v2, _ := second.Wait()
	fmt.Println(v1, v2)
	// Output: 1 2
}

func ExampleWithTimeout() {
	slow := func(ctx context.Context) (string, error) {
		time.Sleep(time.Second)
		return "too late", nil
	}

	guarded := limq.WithTimeout(slow, 20*time.Millisecond)
	_, err := guarded(context.Background()).Wait()
	fmt.Println(limq.IsTimeout(err))
	// Output: true
}

func ExampleMap() {
	words := []string{"go", "is", "fun"}
	upper, err := limq.Map(context.Background(), words,
		func(ctx context.Context, w string) (string, error) {
			return strings.ToUpper(w), nil
		}, limq.WithLimit(3))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(upper)
	// Output: [GO IS FUN]
}

func ExampleEvery() {
	nums := []int{2, 4, 6}
	allEven, _ := limq.Every(context.Background(), nums,
		func(ctx context.Context, n int) (bool, error) {
			return n%2 == 0, nil
		})
	fmt.Println(allEven)
	// Output: true
}

func ExampleSeq() {
	evens, _ := limq.FromSlice([]int{1, 2, 3, 4, 5, 6}).
		Filter(func(n int) bool { return n%2 == 0 }).
		Take(2).
		ToSlice(context.Background())
	fmt.Println(evens)
	// Output: [2 4]
}
