package domain

import "time"

// Issue is one assembled newsletter: the operator's selection plus the
// editorial header.
type Issue struct {
	Title    string
	Summary  string
	Date     time.Time
	Articles []*Article
}
