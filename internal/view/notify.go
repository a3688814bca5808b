package view

import (
	"sync"
	"time"
)

type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

type Notification struct {
	Message string
	Kind    NotificationKind
}

// Center holds at most one transient notification and clears it after a
// fixed delay. Showing a new one replaces the old and restarts the
// timer.
type Center struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *Notification
	timer   *time.Timer
}

const defaultNotificationTTL = 3 * time.Second

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = defaultNotificationTTL
	}
	return &Center{ttl: ttl}
}

func (c *Center) Show(message string, kind NotificationKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = &Notification{Message: message, Kind: kind}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.ttl, c.Dismiss)
}

func (c *Center) Current() (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Notification{}, false
	}
	return *c.current, true
}

func (c *Center) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
