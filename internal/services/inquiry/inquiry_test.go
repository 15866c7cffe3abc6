package inquiry

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"gemstore/internal/upstream"
)

func newTestService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	api, err := upstream.New(srv.URL, 5*time.Second, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("upstream.New: %v", err)
	}
	return NewService(api, zap.NewNop().Sugar())
}

func TestSubmitRequiresFields(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request may be sent with missing fields")
	}))

	if _, err := svc.Submit(context.Background(), nil, "", "question"); !errors.Is(err, ErrStockRefRequired) {
		t.Fatalf("expected ErrStockRefRequired, got %v", err)
	}
	if _, err := svc.Submit(context.Background(), nil, "D-1", ""); !errors.Is(err, ErrMessageRequired) {
		t.Fatalf("expected ErrMessageRequired, got %v", err)
	}
}

func TestSubmitPostsQuery(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/diamonds/queries" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"stockRef":"D-1"`) {
			t.Errorf("unexpected body %s", body)
		}
		w.Write([]byte(`{"success":true,"message":"We will get back to you shortly"}`))
	}))

	msg, err := svc.Submit(context.Background(), nil, "D-1", "Is this eye-clean?")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if msg != "We will get back to you shortly" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestSubmitFormJSONWithoutAttachments(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		w.Write([]byte(`{"success":true,"message":"Form received"}`))
	}))

	msg, err := svc.SubmitForm(context.Background(), nil, FormInput{
		Name: "Ada", Email: "a@b.com", Message: "hello",
	})
	if err != nil || msg != "Form received" {
		t.Fatalf("unexpected result %q %v", msg, err)
	}
}

func TestSubmitFormMultipartWithAttachments(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("expected multipart payload: %v", err)
		}
		if r.FormValue("name") != "Ada" {
			t.Errorf("missing form field, got %q", r.FormValue("name"))
		}
		files := r.MultipartForm.File["attachments"]
		if len(files) != 1 || files[0].Filename != "cert.pdf" {
			t.Errorf("unexpected attachments %+v", files)
		}
		f, _ := files[0].Open()
		content, _ := io.ReadAll(f)
		if string(content) != "pdf-bytes" {
			t.Errorf("attachment content mangled: %q", content)
		}
		w.Write([]byte(`{"success":true,"message":"Form received"}`))
	}))

	msg, err := svc.SubmitForm(context.Background(), nil, FormInput{
		Name: "Ada", Email: "a@b.com", Message: "hello",
		Attachments: []Attachment{{Filename: "cert.pdf", Content: strings.NewReader("pdf-bytes")}},
	})
	if err != nil || msg != "Form received" {
		t.Fatalf("unexpected result %q %v", msg, err)
	}
}

func TestSubmitFormRequiresContactFields(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request may be sent with missing fields")
	}))

	_, err := svc.SubmitForm(context.Background(), nil, FormInput{Name: "Ada"})
	if !errors.Is(err, ErrContactRequired) {
		t.Fatalf("expected ErrContactRequired, got %v", err)
	}
}

func TestListUpdateDeleteForms(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/forms", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "2" {
			t.Errorf("expected page=2, got %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{
			"success": true,
			"data": [{"id":"f-1","name":"Ada","email":"a@b.com","message":"hi","status":"NEW"}],
			"pagination": {"currentPage":2,"totalPages":2,"totalRecords":21,"hasNextPage":false,"hasPrevPage":true}
		}`))
	})
	mux.HandleFunc("/forms/f-1", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPatch:
			w.Write([]byte(`{"success":true,"message":"Form updated"}`))
		case http.MethodDelete:
			w.Write([]byte(`{"success":true,"message":"Form deleted"}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})
	svc := newTestService(t, mux)

	forms, pag, err := svc.ListForms(context.Background(), nil, 2, 10)
	if err != nil {
		t.Fatalf("ListForms: %v", err)
	}
	if len(forms) != 1 || pag == nil || !pag.HasPrevPage {
		t.Fatalf("unexpected list %+v %+v", forms, pag)
	}

	if msg, err := svc.UpdateForm(context.Background(), nil, "f-1", "REVIEWED"); err != nil || msg != "Form updated" {
		t.Fatalf("UpdateForm: %q %v", msg, err)
	}
	if msg, err := svc.DeleteForm(context.Background(), nil, "f-1"); err != nil || msg != "Form deleted" {
		t.Fatalf("DeleteForm: %q %v", msg, err)
	}
}
