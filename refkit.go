package refkit

import "io"

// Deleter is the deletion policy for a managed value. It is invoked exactly
// once, with the pointer the owner held, when ownership ends.
type Deleter[T any] func(*T)

// Releaser is implemented by values that need explicit cleanup when their
// last owner lets go.
type Releaser interface {
	Release()
}

// DefaultDeleter returns the stock deletion policy: if the pointee
// implements Releaser or io.Closer the corresponding method is called,
// otherwise nothing happens and the garbage collector reclaims the value.
func DefaultDeleter[T any]() Deleter[T] {
	return func(p *T) {
		if p == nil {
			return
		}
		switch v := any(p).(type) {
		case Releaser:
			v.Release()
		case io.Closer:
			_ = v.Close()
		}
	}
}

// NopDeleter returns a policy that does nothing. Useful for values whose
// lifetime is managed elsewhere but still need shared observation.
func NopDeleter[T any]() Deleter[T] {
	return func(*T) {}
}
