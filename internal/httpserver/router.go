package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"gemstore/internal/auth"
	"gemstore/internal/httpserver/handlers"
	"gemstore/internal/obs"
	"gemstore/internal/services/admindir"
	"gemstore/internal/services/cart"
	"gemstore/internal/services/catalog"
	"gemstore/internal/services/hold"
	"gemstore/internal/services/inquiry"
	"gemstore/internal/session"
)

// Deps wires every service into the router.
type Deps struct {
	Log      *zap.SugaredLogger
	Store    *session.Store
	Sessions *session.Service
	Catalog  *catalog.Service
	Cart     *cart.Service
	Hold     *hold.Service
	Inquiry  *inquiry.Service
	Admin    *admindir.Service

	AuthRatePerSecond int
	AuthRateBurst     int
}

// NewRouter builds the full route table. Access control is enforced by
// the guard middleware over path prefixes, so the groups below only
// organize the handlers.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Use(obs.Instrument)
	r.Use(auth.LoadSession(d.Store), auth.Guard())

	// Guest-only auth flows, rate limited per client IP.
	r.Group(func(g chi.Router) {
		g.Use(RateLimit(d.AuthRatePerSecond, d.AuthRateBurst))
		g.Post("/login", handlers.Login(d.Sessions, d.Log))
		g.Post("/register", handlers.Register(d.Sessions, d.Log))
		g.Post("/verify-otp", handlers.VerifyOTP(d.Sessions, d.Log))
	})

	// Public inventory browsing and the contact form.
	r.Get("/diamonds", handlers.ListDiamonds(d.Catalog, d.Log))
	r.Get("/diamonds/similar", handlers.SimilarDiamonds(d.Catalog, d.Log))
	r.Get("/diamonds/{stockRef}", handlers.GetDiamond(d.Catalog, d.Log))
	r.Post("/forms", handlers.SubmitForm(d.Inquiry, d.Log))

	// Authenticated storefront.
	r.Post("/logout", handlers.Logout(d.Sessions, d.Log))
	r.Get("/account/profile", handlers.Profile(d.Sessions, d.Log))
	r.Get("/cart", handlers.GetCart(d.Cart, d.Log))
	r.Post("/cart/add", handlers.AddToCart(d.Cart, d.Log))
	r.Post("/hold", handlers.PlaceHold(d.Hold, d.Log))
	r.Get("/hold/options", handlers.HoldOptions())
	r.Post("/inquiries", handlers.SubmitInquiry(d.Inquiry, d.Log))

	// Back office.
	r.Route("/admin", func(ar chi.Router) {
		ar.Get("/users", handlers.ListUsers(d.Admin, d.Log))
		ar.Get("/customers/pending", handlers.PendingCustomers(d.Admin, d.Log))
		ar.Post("/customers/{id}/approve", handlers.ApproveCustomer(d.Admin, d.Log))
		ar.Post("/customers/{id}/reject", handlers.RejectCustomer(d.Admin, d.Log))
		ar.Post("/holds/{userID}/extend", handlers.ExtendHold(d.Hold, d.Log))
		ar.Get("/admins", handlers.ListAdmins(d.Admin, d.Log))
		ar.Post("/admins", handlers.CreateAdmin(d.Admin, d.Log))
		ar.Delete("/admins/{id}", handlers.DeleteAdmin(d.Admin, d.Log))
		ar.Get("/forms", handlers.ListForms(d.Inquiry, d.Log))
		ar.Patch("/forms/{id}", handlers.UpdateForm(d.Inquiry, d.Log))
		ar.Delete("/forms/{id}", handlers.DeleteForm(d.Inquiry, d.Log))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Method(http.MethodGet, "/metrics", obs.Handler())
	return r
}
