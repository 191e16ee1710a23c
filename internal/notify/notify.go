// Package notify queues desktop notifications shown as banners.
package notify

// Kinds of notifications the desktop shows.
const (
	KindEmail    = "email"
	KindDownload = "download"
	KindMission  = "mission"
)

// Notification is one banner message.
type Notification struct {
	Kind    string
	Title   string
	Message string
}

// Queue is a FIFO of pending notifications.
type Queue struct {
	pending []Notification
}

// Push appends a notification.
func (q *Queue) Push(kind, title, message string) {
	q.pending = append(q.pending, Notification{Kind: kind, Title: title, Message: message})
}

// Pop removes and returns the oldest notification.
func (q *Queue) Pop() (Notification, bool) {
	if len(q.pending) == 0 {
		return Notification{}, false
	}
	n := q.pending[0]
	q.pending = q.pending[1:]
	return n, true
}

// Peek returns the oldest notification without removing it.
func (q *Queue) Peek() (Notification, bool) {
	if len(q.pending) == 0 {
		return Notification{}, false
	}
	return q.pending[0], true
}

// Len returns the number of pending notifications.
func (q *Queue) Len() int { return len(q.pending) }
