package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"gemstore/internal/auth"
	"gemstore/internal/services/inquiry"
)

const maxFormMemory = 10 << 20 // 10 MiB of attachments buffered in memory

type inquiryReq struct {
	StockRef string `json:"stockRef"`
	Message  string `json:"message"`
}

func SubmitInquiry(svc *inquiry.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req inquiryReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid request body")
			return
		}
		p, _ := auth.FromContext(r.Context())
		msg, err := svc.Submit(r.Context(), p.Cookies, req.StockRef, req.Message)
		switch {
		case errors.Is(err, inquiry.ErrStockRefRequired), errors.Is(err, inquiry.ErrMessageRequired):
			badRequest(w, err.Error())
			return
		case err != nil:
			respondError(w, r, lg, err)
			return
		}
		respondMessage(w, msg)
	}
}

// SubmitForm accepts the public contact form either as JSON or as
// multipart/form-data when attachments ride along.
func SubmitForm(svc *inquiry.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.FromContext(r.Context())

		var in inquiry.FormInput
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			if err := r.ParseMultipartForm(maxFormMemory); err != nil {
				badRequest(w, "invalid form payload")
				return
			}
			in = inquiry.FormInput{
				Name:    r.FormValue("name"),
				Email:   r.FormValue("email"),
				Phone:   r.FormValue("phone"),
				Message: r.FormValue("message"),
			}
			for _, fh := range r.MultipartForm.File["attachments"] {
				f, err := fh.Open()
				if err != nil {
					badRequest(w, "unreadable attachment")
					return
				}
				defer f.Close()
				in.Attachments = append(in.Attachments, inquiry.Attachment{Filename: fh.Filename, Content: f})
			}
		} else {
			var req struct {
				Name    string `json:"name"`
				Email   string `json:"email"`
				Phone   string `json:"phone"`
				Message string `json:"message"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				badRequest(w, "invalid request body")
				return
			}
			in = inquiry.FormInput{Name: req.Name, Email: req.Email, Phone: req.Phone, Message: req.Message}
		}

		msg, err := svc.SubmitForm(r.Context(), p.Cookies, in)
		switch {
		case errors.Is(err, inquiry.ErrContactRequired):
			badRequest(w, err.Error())
			return
		case err != nil:
			respondError(w, r, lg, err)
			return
		}
		respondMessage(w, msg)
	}
}

func ListForms(svc *inquiry.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.FromContext(r.Context())
		forms, pag, err := svc.ListForms(r.Context(), p.Cookies, intQuery(r, "page"), intQuery(r, "limit"))
		if err != nil {
			respondError(w, r, lg, err)
			return
		}
		respondData(w, forms, pag)
	}
}

func UpdateForm(svc *inquiry.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid request body")
			return
		}
		p, _ := auth.FromContext(r.Context())
		msg, err := svc.UpdateForm(r.Context(), p.Cookies, chi.URLParam(r, "id"), req.Status)
		if err != nil {
			respondError(w, r, lg, err)
			return
		}
		respondMessage(w, msg)
	}
}

func DeleteForm(svc *inquiry.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.FromContext(r.Context())
		msg, err := svc.DeleteForm(r.Context(), p.Cookies, chi.URLParam(r, "id"))
		if err != nil {
			respondError(w, r, lg, err)
			return
		}
		respondMessage(w, msg)
	}
}
