package audit

import "context"

// Store persists audit entries. Append assigns the entry ID.
type Store interface {
	Append(ctx context.Context, e Entry) (Entry, error)
	List(ctx context.Context) ([]Entry, error)
}
