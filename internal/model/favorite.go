package model

import "time"

// Favorite links a user to a catalog entity. Target is an opaque kind
// label (e.g. "people", "planets"); TargetID is an id in whatever
// namespace the kind denotes. The tuple (user, target, target_id) is
// unique at the schema level.
type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Target    string    `json:"target"`
	TargetID  int64     `json:"target_id"`
	CreatedAt time.Time `json:"created_at"`
}
