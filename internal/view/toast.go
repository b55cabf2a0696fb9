package view

import (
	"time"

	"github.com/google/uuid"
)

// ToastKind selects the toast style
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// DefaultToastLifetime is how long a toast stays on screen
const DefaultToastLifetime = 3 * time.Second

// Toast is a transient notification. Each toast expires on its own.
type Toast struct {
	ID        string
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Lifetime  time.Duration
}

// LifetimeMillis is the full lifetime in milliseconds. The page script
// starts counting when the element is inserted, so time spent rendering
// never shortens it.
func (t Toast) LifetimeMillis() int64 {
	return t.Lifetime.Milliseconds()
}

// Class returns the style for the toast kind
func (t Toast) Class() string {
	if t.Kind == ToastError {
		return "bg-red-500 text-white"
	}
	return "bg-green-500 text-white"
}

// ToastStack holds the toasts of one response. There is no queue:
// every pushed toast is shown at once and expires independently.
type ToastStack struct {
	lifetime time.Duration
	now      func() time.Time
	toasts   []Toast
}

// NewToastStack creates a stack. A nil clock uses time.Now.
func NewToastStack(lifetime time.Duration, now func() time.Time) *ToastStack {
	if lifetime <= 0 {
		lifetime = DefaultToastLifetime
	}
	if now == nil {
		now = time.Now
	}
	return &ToastStack{lifetime: lifetime, now: now}
}

// Success pushes a success toast
func (s *ToastStack) Success(msg string) Toast {
	return s.push(msg, ToastSuccess)
}

// Error pushes an error toast
func (s *ToastStack) Error(msg string) Toast {
	return s.push(msg, ToastError)
}

func (s *ToastStack) push(msg string, kind ToastKind) Toast {
	t := Toast{
		ID:        uuid.NewString(),
		Message:   msg,
		Kind:      kind,
		CreatedAt: s.now(),
		Lifetime:  s.lifetime,
	}
	s.toasts = append(s.toasts, t)
	return t
}

// Toasts returns every toast pushed so far, in order
func (s *ToastStack) Toasts() []Toast {
	return append([]Toast(nil), s.toasts...)
}
