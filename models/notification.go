package models

// Notification is a composed push message. Data may hold non-string
// values; they are stringified once at the dispatch boundary, since
// the transport only carries string metadata.
type Notification struct {
	Title string
	Body  string
	Data  map[string]interface{}
}
