// Package scores runs a simulated football match and pushes score changes
// to whoever subscribed to it.
package scores

// Observer receives the state published by a Subject.
type Observer[T any] interface {
	Update(T)
}

// Subject keeps a list of observers and notifies them on change.
//
// Observers are compared by identity, so they must be comparable values
// (pointers in practice).
type Subject[T any] interface {
	Subscribe(Observer[T])
	Unsubscribe(Observer[T])
	Notify()
}
