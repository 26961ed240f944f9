package admin

import "context"

// Queue is the pending-applications list with the optimistic update behavior
// of the review screen: a decided application leaves the list only after the
// backend confirms; on failure the list is left untouched.
type Queue struct {
	svc  *Service
	apps []Application
}

func NewQueue(svc *Service) *Queue {
	return &Queue{svc: svc}
}

// Load refreshes the pending list.
func (q *Queue) Load(ctx context.Context) error {
	apps, err := q.svc.Pending(ctx)
	if err != nil {
		return err
	}
	q.apps = apps
	return nil
}

// Applications returns the current list.
func (q *Queue) Applications() []Application {
	return q.apps
}

// Approve approves id and removes it from the list on success.
func (q *Queue) Approve(ctx context.Context, id int64) error {
	if err := q.svc.Approve(ctx, id); err != nil {
		return err
	}
	q.remove(id)
	return nil
}

// Reject rejects id with a reason and removes it from the list on success.
// An empty reason is blocked before any call is issued.
func (q *Queue) Reject(ctx context.Context, id int64, reason string) error {
	if err := q.svc.Reject(ctx, id, reason); err != nil {
		return err
	}
	q.remove(id)
	return nil
}

func (q *Queue) remove(id int64) {
	kept := q.apps[:0]
	for _, a := range q.apps {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	q.apps = kept
}
