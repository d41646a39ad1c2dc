// Package assert panics on programmer errors caught at construction time.
package assert

import "fmt"

func NotNil(value any) {
	if value == nil {
		panic("expected value to be not nil")
	}
}

func NotEmptyStr(str string) {
	if str == "" {
		panic("expected string to be non-empty")
	}
}

func NotEmptySlice[T any](values []T) {
	if len(values) == 0 {
		panic("expected slice to be non-empty")
	}
}

func Positive(name string, n int) {
	if n <= 0 {
		panic(fmt.Sprintf("expected %s to be positive, got %d", name, n))
	}
}
