package common

// OpenLetterMsg asks the detail page to show a letter. Sending it with a new
// id while a fetch is in flight supersedes that fetch.
type OpenLetterMsg struct {
	LetterId string
}

// NavigateBackMsg pops one step of page history.
type NavigateBackMsg struct{}

// DeactivateViewMsg is sent when a view becomes inactive (hidden)
type DeactivateViewMsg struct{}
