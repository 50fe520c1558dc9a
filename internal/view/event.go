package view

import (
	"github.com/a-h/templ"
	"github.com/angelofallars/htmx-go"
)

// Event is a client-side event dispatched through the HX-Trigger header.
type Event string

func (e Event) String() string { return string(e) }

// Listen returns an Alpine.js x-on attribute running jsCode whenever the
// event reaches the window.
func (e Event) Listen(jsCode string) templ.Attributes {
	return templ.Attributes{
		"x-on:" + string(e) + ".window": jsCode,
	}
}

// EntriesChanged fires after the result set was modified.
const EntriesChanged Event = "entries-changed"

var TriggerEntriesChanged = htmx.Trigger(EntriesChanged.String())

// SetStatusMessage replaces the text of the status line.
const SetStatusMessage Event = "set-status-message"

func TriggerSetStatusMessage(message string) htmx.EventTrigger {
	return htmx.TriggerDetail(SetStatusMessage.String(), message)
}
