package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"gemstore/internal/auth"
	"gemstore/internal/services/catalog"
)

func intQuery(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}

func floatQuery(r *http.Request, key string) float64 {
	f, _ := strconv.ParseFloat(r.URL.Query().Get(key), 64)
	return f
}

func ListDiamonds(svc *catalog.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.FromContext(r.Context())
		q := r.URL.Query()
		diamonds, pag, err := svc.List(r.Context(), p.Cookies, catalog.ListFilter{
			Shape:    q.Get("shape"),
			Color:    q.Get("color"),
			Clarity:  q.Get("clarity"),
			Cut:      q.Get("cut"),
			Lab:      q.Get("lab"),
			Status:   q.Get("status"),
			MinCarat: floatQuery(r, "minCarat"),
			MaxCarat: floatQuery(r, "maxCarat"),
			Page:     intQuery(r, "page"),
			Limit:    intQuery(r, "limit"),
		})
		if err != nil {
			respondError(w, r, lg, err)
			return
		}
		respondData(w, diamonds, pag)
	}
}

func GetDiamond(svc *catalog.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.FromContext(r.Context())
		d, err := svc.Get(r.Context(), p.Cookies, chi.URLParam(r, "stockRef"))
		if err != nil {
			respondError(w, r, lg, err)
			return
		}
		respondData(w, d, nil)
	}
}

// SimilarDiamonds resolves a comma-separated refs list with a bounded
// fan-out; failed references come back by name instead of vanishing.
func SimilarDiamonds(svc *catalog.Service, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refsParam := strings.TrimSpace(r.URL.Query().Get("refs"))
		if refsParam == "" {
			badRequest(w, "refs query parameter is required")
			return
		}
		var refs []string
		for _, ref := range strings.Split(refsParam, ",") {
			if ref = strings.TrimSpace(ref); ref != "" {
				refs = append(refs, ref)
			}
		}
		p, _ := auth.FromContext(r.Context())
		res, err := svc.Similar(r.Context(), p.Cookies, refs)
		if err != nil {
			respondError(w, r, lg, err)
			return
		}
		failed := make(map[string]string, len(res.Failed))
		for ref, ferr := range res.Failed {
			failed[ref] = ferr.Error()
		}
		respondData(w, map[string]any{"diamonds": res.Diamonds, "failed": failed}, nil)
	}
}
