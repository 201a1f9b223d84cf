package domain

// Queue holds the tracks of one guild in play order.
// The head of the queue is the track currently playing; finished and skipped
// tracks are dropped from the front.
type Queue struct {
	tracks []*Track
}

// NewQueue creates a new empty Queue.
func NewQueue() *Queue {
	return &Queue{
		tracks: make([]*Track, 0),
	}
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return len(q.tracks) == 0
}

// Len returns the total number of tracks including the current one.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// Current returns the track at the head of the queue, or nil if empty.
func (q *Queue) Current() *Track {
	if q.IsEmpty() {
		return nil
	}
	return q.tracks[0]
}

// Append adds a track to the end of the queue.
// Returns true if the queue was empty before the call.
func (q *Queue) Append(track *Track) bool {
	wasEmpty := q.IsEmpty()
	q.tracks = append(q.tracks, track)
	return wasEmpty
}

// RemoveLast drops the most recently appended track if it is track.
// Used to roll back an append whose playback could not be started.
func (q *Queue) RemoveLast(track *Track) bool {
	n := len(q.tracks)
	if n == 0 || q.tracks[n-1] != track {
		return false
	}
	q.tracks[n-1] = nil
	q.tracks = q.tracks[:n-1]
	return true
}

// Advance drops the current track and returns the new head, or nil if the
// queue is now empty.
func (q *Queue) Advance() *Track {
	if q.IsEmpty() {
		return nil
	}
	q.tracks[0] = nil
	q.tracks = q.tracks[1:]
	return q.Current()
}

// List returns a copy of all tracks, current first.
func (q *Queue) List() []Track {
	result := make([]Track, len(q.tracks))
	for i, track := range q.tracks {
		result[i] = *track
	}
	return result
}

// Clear removes all tracks from the queue.
func (q *Queue) Clear() {
	q.tracks = make([]*Track, 0)
}
