package models

// StudyQueueEntry is an item queued for presentation within one session.
// It lives only for the session's duration; the item itself is what gets
// written back to storage after each rating.
type StudyQueueEntry struct {
	Item  Item `json:"item"`
	IsNew bool `json:"is_new"`
}
