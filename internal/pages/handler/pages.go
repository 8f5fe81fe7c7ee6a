package handler

import (
	"net/http"

	httputil "pawsteps/pkg/http"
	"pawsteps/pkg/logger"
	"pawsteps/pkg/middleware"
	"pawsteps/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

type Page struct {
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Tagline  string    `json:"tagline,omitempty"`
	Sections []Section `json:"sections,omitempty"`
}

// BookingForm describes the constraints the booking page renders; the same
// bounds are enforced server-side on submit.
type BookingForm struct {
	Services        []string `json:"services"`
	MinDurationMins int      `json:"min_duration_mins"`
	MaxDurationMins int      `json:"max_duration_mins"`
	MinPets         int      `json:"min_pets"`
	MaxPets         int      `json:"max_pets"`
}

type BookPage struct {
	Page
	Form BookingForm `json:"form"`
}

type ProfilePage struct {
	Page
	Identity *model.Identity `json:"identity"`
}

type PagesHandler struct {
	guard func(httprouter.Handle) httprouter.Handle
	log   *logger.Logger
}

// NewPagesHandler serves the marketing pages and the two gated page routes.
// guard must be the redirecting page guard, not the API guard.
func NewPagesHandler(guard func(httprouter.Handle) httprouter.Handle, log *logger.Logger) *PagesHandler {
	return &PagesHandler{
		guard: guard,
		log:   log,
	}
}

func (h *PagesHandler) page(p Page) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if err := httputil.WriteSuccess(w, p); err != nil {
			h.log.Error("failed to write page response", "slug", p.Slug, "error", err)
		}
	}
}

func (h *PagesHandler) Book(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page := BookPage{
		Page: bookPage,
		Form: BookingForm{
			Services:        []string{model.ServiceWalk, model.ServiceDropIn, model.ServiceOvernight},
			MinDurationMins: 20,
			MaxDurationMins: 240,
			MinPets:         1,
			MaxPets:         6,
		},
	}
	if err := httputil.WriteSuccess(w, page); err != nil {
		h.log.Error("failed to write page response", "slug", page.Slug, "error", err)
	}
}

func (h *PagesHandler) Profile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page := ProfilePage{
		Page:     profilePage,
		Identity: middleware.IdentityFrom(r.Context()),
	}
	if err := httputil.WriteSuccess(w, page); err != nil {
		h.log.Error("failed to write page response", "slug", page.Slug, "error", err)
	}
}

func (h *PagesHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.page(homePage))
	router.GET("/services", h.page(servicesPage))
	router.GET("/pricing", h.page(pricingPage))
	router.GET("/testimonials", h.page(testimonialsPage))
	router.GET("/login", h.page(loginPage))

	router.GET("/book", h.guard(h.Book))
	router.GET("/profile", h.guard(h.Profile))

	// Unknown paths land on the home page.
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusFound)
	})
}
