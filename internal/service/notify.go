package service

import (
	"sync"
	"time"

	"irrigation_panel/internal/models"
)

// Notifier receives transient user-facing messages. Implementations must not block.
type Notifier interface {
	Notify(n models.Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n models.Notification)

func (f NotifierFunc) Notify(n models.Notification) { f(n) }

// Notifications fans messages out to subscribers while the user keeps
// notifications enabled.
type Notifications struct {
	state *State
	now   func() time.Time

	mu     sync.Mutex
	nextID int
	sinks  map[int]Notifier
}

func NewNotifications(state *State) *Notifications {
	return &Notifications{state: state, now: time.Now, sinks: map[int]Notifier{}}
}

// Subscribe registers n and returns a function that removes it.
func (ns *Notifications) Subscribe(n Notifier) func() {
	ns.mu.Lock()
	id := ns.nextID
	ns.nextID++
	ns.sinks[id] = n
	ns.mu.Unlock()

	return func() {
		ns.mu.Lock()
		delete(ns.sinks, id)
		ns.mu.Unlock()
	}
}

func (ns *Notifications) Success(message string) { ns.send(models.SeveritySuccess, message) }
func (ns *Notifications) Error(message string)   { ns.send(models.SeverityError, message) }

func (ns *Notifications) send(severity, message string) {
	if ns == nil || !ns.state.Config().Notifications {
		return
	}
	n := models.Notification{Message: message, Type: severity, At: ns.now().UTC()}

	ns.mu.Lock()
	sinks := make([]Notifier, 0, len(ns.sinks))
	for _, s := range ns.sinks {
		sinks = append(sinks, s)
	}
	ns.mu.Unlock()

	for _, s := range sinks {
		s.Notify(n)
	}
}
