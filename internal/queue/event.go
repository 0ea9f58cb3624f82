// Package queue defines message payloads exchanged over the message broker.
package queue

// RequestFiledQueue is the durable queue request events are published to.
const RequestFiledQueue = "request.filed"

// RequestFiledEvent is published when a visitor files a contact or viewing
// request. It carries enough detail for the consumer to log the request
// without reading the document store.
type RequestFiledEvent struct {
	RequestID     string `json:"request_id"`
	Type          string `json:"type"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Subject       string `json:"subject,omitempty"`
	PreferredDate string `json:"preferred_date,omitempty"`
	TimeWindow    string `json:"time_window,omitempty"`
	FiledAt       string `json:"filed_at"`
}
