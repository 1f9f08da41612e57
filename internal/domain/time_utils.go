package domain

import "time"

// DisplayLayout is the timestamp layout used in chat replies
const DisplayLayout = "2006-01-02 15:04"

// FormatDisplayTime formats a timestamp for chat replies in the given location.
// A nil location means UTC. Zero times format as an empty string.
func FormatDisplayTime(t time.Time, location *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if location == nil {
		location = time.UTC
	}
	return t.In(location).Format(DisplayLayout)
}
