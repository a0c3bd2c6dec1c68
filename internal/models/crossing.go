package models

// EventKind tells whether a satellite entered or exited the containment region
type EventKind string

const (
	EventEntered EventKind = "entered"
	EventExited  EventKind = "exited"
)

// CrossingEvent is a single boundary transition detected at a timestamp
type CrossingEvent struct {
	Time float64   `json:"time"` // unix seconds
	Kind EventKind `json:"kind"`
}

// CrossingEpisode is a temporally coherent run of crossing events for one
// station-satellite pair. Consecutive episodes are separated wherever the gap
// between stored events exceeds the episode gap threshold.
type CrossingEpisode []CrossingEvent
