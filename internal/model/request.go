package model

import "time"

// RequestType distinguishes contact messages from viewing bookings.
type RequestType string

const (
	RequestContactUs       RequestType = "CONTACT_US"
	RequestScheduleViewing RequestType = "SCHEDULE_VIEWING"
)

func (t RequestType) Valid() bool {
	return t == RequestContactUs || t == RequestScheduleViewing
}

// RequestStatus is set by an operator. Any status may follow any other.
type RequestStatus string

const (
	StatusPending    RequestStatus = "PENDING"
	StatusInProgress RequestStatus = "IN_PROGRESS"
	StatusCompleted  RequestStatus = "COMPLETED"
	StatusCancelled  RequestStatus = "CANCELLED"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Request is a contact or viewing ticket filed from the public site.
type Request struct {
	ID            string        `json:"id"`
	Type          RequestType   `json:"type"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Subject       string        `json:"subject,omitempty"`
	Message       string        `json:"message,omitempty"`
	PreferredDate string        `json:"preferredDate,omitempty"`
	TimeWindow    string        `json:"timeWindow,omitempty"`
	Status        RequestStatus `json:"status"`
	AssignedTo    string        `json:"assignedTo,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}
