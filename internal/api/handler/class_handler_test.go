package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/learningcamp/enrollment-api/internal/core/domain"
	"github.com/learningcamp/enrollment-api/internal/core/ports"
)

type stubClassService struct {
	classes       []*domain.Class
	listCalls     int
	created       *domain.Class
	contentID     string
	content       domain.ClassContent
	feedbackID    string
	feedback      string
	feedbackErr   error
	statusUpdates []string
}

func (s *stubClassService) List(_ context.Context) ([]*domain.Class, error) {
	s.listCalls++
	return s.classes, nil
}

func (s *stubClassService) ListByInstructor(_ context.Context, _ string) ([]*domain.Class, error) {
	s.listCalls++
	return s.classes, nil
}

func (s *stubClassService) Create(_ context.Context, class *domain.Class) (*ports.InsertOutcome, error) {
	s.created = class
	return &ports.InsertOutcome{InsertedID: "class-1"}, nil
}

func (s *stubClassService) ReplaceContent(_ context.Context, id string, content domain.ClassContent) (*ports.UpdateOutcome, error) {
	s.contentID = id
	s.content = content
	return &ports.UpdateOutcome{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (s *stubClassService) Approve(_ context.Context, id string) (*ports.UpdateOutcome, error) {
	s.statusUpdates = append(s.statusUpdates, "approve:"+id)
	return &ports.UpdateOutcome{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (s *stubClassService) Deny(_ context.Context, id string) (*ports.UpdateOutcome, error) {
	s.statusUpdates = append(s.statusUpdates, "deny:"+id)
	return &ports.UpdateOutcome{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (s *stubClassService) SetFeedback(_ context.Context, id, feedback string) (*ports.UpdateOutcome, error) {
	if s.feedbackErr != nil {
		return nil, s.feedbackErr
	}
	s.feedbackID = id
	s.feedback = feedback
	return &ports.UpdateOutcome{MatchedCount: 1, ModifiedCount: 1}, nil
}

func TestClassHandler_Create(t *testing.T) {
	e := newTestEcho()
	svc := &stubClassService{}
	h := NewClassHandler(svc)

	body := `{"className":"Violin 101","instructorEmail":"teach@example.com","availableSeats":10,"price":49.99}`
	req := jsonRequest(http.MethodPost, "/classes", body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("create class: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.created == nil || svc.created.ClassName != "Violin 101" {
		t.Fatalf("class not forwarded to service")
	}
}

func TestClassHandler_CreateRequiresInstructorEmail(t *testing.T) {
	e := newTestEcho()
	h := NewClassHandler(&stubClassService{})

	req := jsonRequest(http.MethodPost, "/classes", `{"className":"Violin 101"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestClassHandler_UpdateForwardsContentFields(t *testing.T) {
	e := newTestEcho()
	svc := &stubClassService{}
	h := NewClassHandler(svc)

	body := `{"className":"Cello 201","classImage":"https://img.example.com/cello.png","availableSeats":12,"price":89.99,"status":"approved"}`
	req := jsonRequest(http.MethodPut, "/", body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("c9")

	if err := h.Update(c); err != nil {
		t.Fatalf("update class: %v", err)
	}
	if svc.contentID != "c9" {
		t.Fatalf("id not forwarded, got %q", svc.contentID)
	}

	// Only the four content fields travel; status in the payload is ignored.
	want := domain.ClassContent{
		ClassName:      "Cello 201",
		ClassImage:     "https://img.example.com/cello.png",
		AvailableSeats: 12,
		Price:          89.99,
	}
	if svc.content != want {
		t.Fatalf("unexpected content %+v", svc.content)
	}
}

func TestClassHandler_MyClassesEmptyEmail(t *testing.T) {
	e := newTestEcho()
	svc := &stubClassService{}
	h := NewClassHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/myClasses", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("email", "teach@example.com")

	if err := h.MyClasses(c); err != nil {
		t.Fatalf("my classes: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty array, got %q", body)
	}
	if svc.listCalls != 0 {
		t.Fatalf("store queried for an empty email")
	}
}

func TestClassHandler_MyClassesOwnership(t *testing.T) {
	e := newTestEcho()
	svc := &stubClassService{}
	h := NewClassHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/myClasses?email=other@example.com", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("email", "teach@example.com")

	err := h.MyClasses(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
	if svc.listCalls != 0 {
		t.Fatalf("store queried despite ownership failure")
	}
}

func TestClassHandler_ApproveAndDeny(t *testing.T) {
	e := newTestEcho()
	svc := &stubClassService{}
	h := NewClassHandler(svc)

	req := httptest.NewRequest(http.MethodPatch, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("c1")

	if err := h.Approve(c); err != nil {
		t.Fatalf("approve: %v", err)
	}

	req = httptest.NewRequest(http.MethodPatch, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("c2")

	if err := h.Deny(c); err != nil {
		t.Fatalf("deny: %v", err)
	}

	if len(svc.statusUpdates) != 2 || svc.statusUpdates[0] != "approve:c1" || svc.statusUpdates[1] != "deny:c2" {
		t.Fatalf("unexpected status updates %v", svc.statusUpdates)
	}
}

func TestClassHandler_Feedback(t *testing.T) {
	e := newTestEcho()
	svc := &stubClassService{}
	h := NewClassHandler(svc)

	req := jsonRequest(http.MethodPatch, "/", `{"feedback":"add a syllabus"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("c3")

	if err := h.Feedback(c); err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if svc.feedbackID != "c3" || svc.feedback != "add a syllabus" {
		t.Fatalf("feedback not forwarded: id=%q text=%q", svc.feedbackID, svc.feedback)
	}
}

func TestClassHandler_FeedbackStoreFailure(t *testing.T) {
	e := newTestEcho()
	h := NewClassHandler(&stubClassService{feedbackErr: errors.New("store down")})

	req := jsonRequest(http.MethodPatch, "/", `{"feedback":"x"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("c3")

	if err := h.Feedback(c); err != nil {
		t.Fatalf("feedback should answer in place, got error %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "internal server error" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestClassHandler_FeedbackInvalidID(t *testing.T) {
	e := newTestEcho()
	h := NewClassHandler(&stubClassService{feedbackErr: domain.ErrInvalidID})

	req := jsonRequest(http.MethodPatch, "/", `{"feedback":"x"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-hex-id")

	err := h.Feedback(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
