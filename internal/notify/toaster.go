// Package notify shows transient toast notifications.
package notify

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kmacinski/desk95/internal/sched"
	"github.com/kmacinski/desk95/internal/surface"
)

// DefaultDuration is how long a toast stays up
const DefaultDuration = 3 * time.Second

// Toast is a live notification
type Toast struct {
	ID      string
	Message string
}

// Node returns the toast's surface node
func (t Toast) Node() surface.Node {
	return surface.Node{ID: "toast-" + t.ID, Kind: surface.KindToast}
}

type liveToast struct {
	Toast
	timer sched.Timer
}

// Toaster mounts toasts and dismisses each one after a fixed delay
type Toaster struct {
	surface  surface.Surface
	sched    sched.Scheduler
	log      zerolog.Logger
	duration time.Duration
	toasts   []*liveToast
}

// NewToaster creates a toaster
func NewToaster(s surface.Surface, sc sched.Scheduler, logger zerolog.Logger) *Toaster {
	return &Toaster{
		surface:  s,
		sched:    sc,
		log:      logger,
		duration: DefaultDuration,
	}
}

// SetDuration changes the delay for toasts shown from now on
func (t *Toaster) SetDuration(d time.Duration) {
	if d > 0 {
		t.duration = d
	}
}

// Notify shows msg; it satisfies the notifier the desktop components use
func (t *Toaster) Notify(msg string) {
	t.Show(msg)
}

// Show mounts a toast and returns its id
func (t *Toaster) Show(msg string) string {
	lt := &liveToast{Toast: Toast{ID: uuid.NewString(), Message: msg}}
	t.surface.Mount(lt.Node())
	t.surface.SetClass(lt.Node(), surface.ClassVisible, true)
	t.toasts = append(t.toasts, lt)

	// without a scheduler the toast stays until dismissed
	id := lt.ID
	if t.sched != nil {
		lt.timer = t.sched.AfterFunc(t.duration, func() {
			t.Dismiss(id)
		})
	}

	t.log.Debug().Str("toast", id).Str("message", msg).Msg("notification shown")
	return id
}

// Dismiss removes a toast early
func (t *Toaster) Dismiss(id string) {
	for i, lt := range t.toasts {
		if lt.ID != id {
			continue
		}
		if lt.timer != nil {
			lt.timer.Stop()
		}
		t.surface.Unmount(lt.Node())
		t.toasts = append(t.toasts[:i], t.toasts[i+1:]...)
		return
	}
}

// Active returns live toasts, oldest first
func (t *Toaster) Active() []Toast {
	out := make([]Toast, len(t.toasts))
	for i, lt := range t.toasts {
		out[i] = lt.Toast
	}
	return out
}

// Stop dismisses everything and cancels pending timers
func (t *Toaster) Stop() {
	for len(t.toasts) > 0 {
		t.Dismiss(t.toasts[0].ID)
	}
}
