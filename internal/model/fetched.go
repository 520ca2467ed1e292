package model

type FetchKind int

const (
	FetchEmpty FetchKind = iota
	FetchFound
	FetchFailed
)

func (k FetchKind) String() string {
	switch k {
	case FetchFound:
		return "found"
	case FetchEmpty:
		return "empty"
	case FetchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Fetched is the outcome of one extraction call. Callers branch on Kind
// instead of inspecting errors; Err is only set when Kind is FetchFailed.
// The zero value is empty.
type Fetched[T any] struct {
	Kind  FetchKind
	Value T
	Err   error
}

func Found[T any](v T) Fetched[T] {
	return Fetched[T]{Kind: FetchFound, Value: v}
}

func Empty[T any]() Fetched[T] {
	return Fetched[T]{Kind: FetchEmpty}
}

func Failed[T any](err error) Fetched[T] {
	return Fetched[T]{Kind: FetchFailed, Err: err}
}

func (f Fetched[T]) OK() bool {
	return f.Kind == FetchFound
}

func (f Fetched[T]) Reason() string {
	switch f.Kind {
	case FetchFailed:
		if f.Err != nil {
			return f.Err.Error()
		}
		return "failed"
	case FetchEmpty:
		return "no data"
	default:
		return ""
	}
}
