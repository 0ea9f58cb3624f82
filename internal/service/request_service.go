package service

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/luxylyfe/portal/internal/apperr"
	"github.com/luxylyfe/portal/internal/model"
	"github.com/luxylyfe/portal/internal/observability/metrics"
	"github.com/luxylyfe/portal/internal/queue"
	"github.com/luxylyfe/portal/internal/repository"
)

const (
	MsgRequestFieldsRequired    = "Missing required fields"
	MsgSchedulingFieldsRequired = "Missing required fields for scheduling"
	MsgInvalidRequestType       = "Invalid request type"
	MsgInvalidStatus            = "Invalid status"
	MsgRequestNotFound          = "Request not found"
)

// RequestService files and manages contact and viewing requests.
type RequestService struct {
	Requests  *repository.RequestRepo
	Publisher EventPublisher
	Log       logrus.FieldLogger
}

func NewRequestService(requests *repository.RequestRepo, pub EventPublisher, log logrus.FieldLogger) *RequestService {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &RequestService{Requests: requests, Publisher: pub, Log: log}
}

// FileInput is a request submitted from the public site.
type FileInput struct {
	Type          string
	Name          string
	Email         string
	Phone         string
	Subject       string
	Message       string
	PreferredDate string
	TimeWindow    string
}

// File validates and stores a new PENDING request, then publishes a
// request.filed event. Publishing failures do not fail the request.
func (s *RequestService) File(ctx context.Context, in FileInput) (*model.Request, error) {
	if in.Type == "" || strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Phone) == "" {
		return nil, apperr.Validation(MsgRequestFieldsRequired)
	}
	typ := model.RequestType(in.Type)
	if !typ.Valid() {
		return nil, apperr.Validation(MsgInvalidRequestType)
	}
	if typ == model.RequestScheduleViewing && (strings.TrimSpace(in.PreferredDate) == "" || strings.TrimSpace(in.TimeWindow) == "") {
		return nil, apperr.Validation(MsgSchedulingFieldsRequired)
	}

	req, err := s.Requests.Create(ctx, &model.Request{
		Type:          typ,
		Name:          strings.TrimSpace(in.Name),
		Email:         in.Email,
		Phone:         strings.TrimSpace(in.Phone),
		Subject:       in.Subject,
		Message:       in.Message,
		PreferredDate: in.PreferredDate,
		TimeWindow:    in.TimeWindow,
	})
	if err != nil {
		return nil, apperr.Internal(apperr.MsgInternal, err)
	}
	metrics.RequestsFiledTotal.WithLabelValues(string(req.Type)).Inc()

	ev := queue.RequestFiledEvent{
		RequestID:     req.ID,
		Type:          string(req.Type),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Subject:       req.Subject,
		PreferredDate: req.PreferredDate,
		TimeWindow:    req.TimeWindow,
		FiledAt:       req.CreatedAt.Format(time.RFC3339),
	}
	if err := s.Publisher.PublishRequestFiled(ctx, ev); err != nil {
		s.Log.WithError(err).WithField("request_id", req.ID).Warn("publish request.filed")
	}
	return req, nil
}

// ListFilter narrows the operator inbox.
type ListFilter struct {
	Status     string
	Type       string
	AssignedTo string
	Limit      int
	Offset     int
}

// List returns one page of requests, newest first, and the total number of
// matches before paging.
func (s *RequestService) List(ctx context.Context, f ListFilter) ([]*model.Request, int, error) {
	where := repository.RequestWhere{
		Status:     model.RequestStatus(f.Status),
		Type:       model.RequestType(f.Type),
		AssignedTo: f.AssignedTo,
	}
	if where.Status != "" && !where.Status.Valid() {
		return nil, 0, apperr.Validation(MsgInvalidStatus)
	}
	if where.Type != "" && !where.Type.Valid() {
		return nil, 0, apperr.Validation(MsgInvalidRequestType)
	}
	list, total, err := s.Requests.FindMany(ctx, where, repository.Page{Limit: f.Limit, Offset: f.Offset})
	if err != nil {
		return nil, 0, apperr.Internal(apperr.MsgInternal, err)
	}
	return list, total, nil
}

func (s *RequestService) Get(ctx context.Context, id string) (*model.Request, error) {
	req, err := s.Requests.FindUnique(ctx, repository.RequestWhere{ID: id})
	if err != nil {
		return nil, apperr.Internal(apperr.MsgInternal, err)
	}
	if req == nil {
		return nil, apperr.NotFound(MsgRequestNotFound)
	}
	return req, nil
}

// Update sets status and/or assignee. Any status may follow any other.
func (s *RequestService) Update(ctx context.Context, id string, status, assignedTo *string) (*model.Request, error) {
	var patch repository.RequestPatch
	if status != nil {
		st := model.RequestStatus(*status)
		if !st.Valid() {
			return nil, apperr.Validation(MsgInvalidStatus)
		}
		patch.Status = &st
	}
	patch.AssignedTo = assignedTo
	req, err := s.Requests.Update(ctx, repository.RequestWhere{ID: id}, patch)
	if err != nil {
		return nil, notFoundOrInternal(err, MsgRequestNotFound)
	}
	return req, nil
}

func (s *RequestService) Delete(ctx context.Context, id string) error {
	if err := s.Requests.Delete(ctx, id); err != nil {
		return notFoundOrInternal(err, MsgRequestNotFound)
	}
	return nil
}
