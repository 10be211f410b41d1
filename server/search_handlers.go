package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/designmatch/web-client/backend"
	"github.com/designmatch/web-client/reviews"
)

// SearchPageData contains data for rendering the professionals directory
type SearchPageData struct {
	PageData
	States []string
}

// SearchHandler displays the professionals directory (GET /search-professionals).
// The marketplace API exposes no listing endpoint, so the page is a search
// shell that deep-links into individual professional pages.
func (s *Server) SearchHandler() http.HandlerFunc {
	tmpl, err := ParsePage("search.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse search template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.resolveSession(w, r)

		data := SearchPageData{
			PageData: s.pageData(sess),
			States:   s.locations.States(),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render search template")
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	}
}

// ProfessionalPageData contains data for a vendor's public page
type ProfessionalPageData struct {
	PageData
	VendorID      string
	Tab           string
	Profile       backend.VendorProfile
	Projects      []backend.Project
	ShowReview    bool
	ReviewError   string
	ReviewSuccess bool
}

// ProfessionalHandler displays a vendor's public page
// (GET /search-professionals/{id}) with about, projects and reviews tabs.
func (s *Server) ProfessionalHandler() http.HandlerFunc {
	tmpl, err := ParsePage("professional.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse professional template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.resolveSession(w, r)
		vendorID := r.PathValue("id")

		profile, err := s.api.VendorDetails(r.Context(), vendorID)
		if err != nil {
			log.Warn().Err(err).Str("vendor_id", vendorID).Msg("failed to load vendor details")
			s.renderErrorPage(w, r, http.StatusNotFound, "This professional could not be found.")
			return
		}

		// A vendor without projects is normal; a failed fetch degrades to
		// an empty portfolio tab.
		projects, err := s.api.ProjectDetails(r.Context(), vendorID)
		if err != nil {
			log.Warn().Err(err).Str("vendor_id", vendorID).Msg("failed to load vendor projects")
		}

		tab := r.URL.Query().Get("tab")
		if tab != "projects" && tab != "reviews" {
			tab = "about"
		}

		data := ProfessionalPageData{
			PageData:      s.pageData(sess),
			VendorID:      vendorID,
			Tab:           tab,
			Profile:       profile,
			Projects:      projects,
			ShowReview:    r.URL.Query().Get("review") == "1",
			ReviewError:   r.URL.Query().Get("review_error"),
			ReviewSuccess: r.URL.Query().Get("review_success") == "1",
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render professional template")
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	}
}

// SubmitReviewHandler processes the review composer submission
// (POST /search-professionals/{id}/review). Anonymous visitors are sent
// to the login page first.
func (s *Server) SubmitReviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.resolveSession(w, r)
		vendorPath := RouteSearch + "/" + r.PathValue("id")

		if !sess.LoggedIn {
			http.Redirect(w, r, RouteLogin+"?redirect="+url.QueryEscape(vendorPath), http.StatusSeeOther)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		vendorID, err := strconv.Atoi(r.PathValue("id"))
		if err != nil {
			s.renderErrorPage(w, r, http.StatusNotFound, "This professional could not be found.")
			return
		}

		form := reviews.Form{
			RatingQuality:   r.FormValue("rating_quality"),
			RatingExecution: r.FormValue("rating_execution"),
			RatingBehaviour: r.FormValue("rating_behaviour"),
			Title:           r.FormValue("title"),
			Body:            r.FormValue("body"),
		}

		review, err := form.Build(vendorID)
		if err != nil {
			redirectWithReviewError(w, r, vendorPath, err.Error())
			return
		}

		if err := s.api.SubmitReview(r.Context(), sess.Token, review); err != nil {
			log.Warn().Err(err).Int("vendor_id", vendorID).Msg("review submission failed")
			redirectWithReviewError(w, r, vendorPath, backend.ErrorMessage(err))
			return
		}

		http.Redirect(w, r, vendorPath+"?tab=reviews&review_success=1", http.StatusSeeOther)
	}
}

func redirectWithReviewError(w http.ResponseWriter, r *http.Request, vendorPath, errorMsg string) {
	http.Redirect(w, r, vendorPath+"?review=1&review_error="+url.QueryEscape(errorMsg), http.StatusSeeOther)
}
