package domain

import "time"

// Node is a source or destination of a movement, e.g. a warehouse or a clinic.
type Node struct {
	ID                string
	Code              string
	Name              string
	IsRefDataFacility bool
	CreatedAt         time.Time
}
