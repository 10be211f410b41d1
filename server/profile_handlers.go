package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/designmatch/web-client/backend"
)

// ProfilePageData contains data for the authenticated user's own page
type ProfilePageData struct {
	PageData
	User     backend.UserDetails
	Tab      string
	EditMode bool
	Profile  backend.VendorProfile
	Projects []backend.Project
	Saved    bool
}

// ProfileHandler displays the user's own profile (GET /profile). Vendors
// get their business profile with about, projects and reviews tabs plus
// an edit mode; everyone else gets their account details and a pointer
// to onboarding.
func (s *Server) ProfileHandler() http.HandlerFunc {
	tmpl, err := ParsePage("profile.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse profile template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.resolveSession(w, r)

		tab := r.URL.Query().Get("tab")
		if tab != "projects" && tab != "reviews" {
			tab = "about"
		}

		data := ProfilePageData{
			PageData: s.pageData(sess),
			User:     sess.User,
			Tab:      tab,
			EditMode: r.URL.Query().Get("edit") == "1",
			Saved:    r.URL.Query().Get("saved") == "1",
		}
		data.Error = r.URL.Query().Get("error")

		if sess.IsVendor() {
			profile, err := s.api.AuthVendorDetails(r.Context(), sess.Token)
			if err != nil {
				log.Warn().Err(err).Msg("failed to load own vendor profile")
				s.renderErrorPage(w, r, http.StatusBadGateway, backend.ErrorMessage(err))
				return
			}
			data.Profile = profile

			projects, err := s.api.AuthProjectDetails(r.Context(), sess.Token)
			if err != nil {
				log.Warn().Err(err).Msg("failed to load own projects")
			}
			data.Projects = projects
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render profile template")
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	}
}

// ProfileSaveHandler persists profile edits (POST /profile) through the
// same onboarding endpoint that created the profile. The replacement
// token it returns is adopted in place.
func (s *Server) ProfileSaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.resolveSession(w, r)

		if !sess.IsVendor() {
			http.Redirect(w, r, RouteJoinAsPro, http.StatusSeeOther)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		renderError := func(errorMsg string) {
			http.Redirect(w, r, RouteProfile+"?edit=1&error="+url.QueryEscape(errorMsg), http.StatusSeeOther)
		}

		employees, err := strconv.Atoi(r.FormValue("number_of_employees"))
		if err != nil {
			renderError("Please enter a valid number of employees.")
			return
		}
		projectValue, err := strconv.ParseFloat(r.FormValue("average_project_value"), 64)
		if err != nil {
			renderError("Please enter a valid average project value.")
			return
		}
		completed, err := strconv.Atoi(r.FormValue("projects_completed"))
		if err != nil {
			renderError("Please enter a valid number of projects completed.")
			return
		}

		req := backend.OnboardRequest{
			BusinessName:        r.FormValue("business_name"),
			Address:             r.FormValue("address"),
			SubCategory1:        r.FormValue("sub_category_1"),
			SubCategory2:        r.FormValue("sub_category_2"),
			SubCategory3:        r.FormValue("sub_category_3"),
			Category:            r.FormValue("category"),
			StartedIn:           r.FormValue("started_in"),
			NumberOfEmployees:   employees,
			AverageProjectValue: projectValue,
			ProjectsCompleted:   completed,
			City:                r.FormValue("city"),
			State:               r.FormValue("state"),
			Description:         r.FormValue("description"),
			Social: backend.SocialLinks{
				Instagram: r.FormValue("instagram"),
				Facebook:  r.FormValue("facebook"),
				Website:   r.FormValue("website"),
			},
		}
		if req.BusinessName == "" {
			renderError("Please enter your business name.")
			return
		}

		newToken, err := s.api.Onboard(r.Context(), sess.Token, req)
		if err != nil {
			log.Warn().Err(err).Msg("profile save failed")
			renderError(backend.ErrorMessage(err))
			return
		}
		s.sessions.ReplaceToken(&sess, newToken)

		http.Redirect(w, r, RouteProfile+"?saved=1", http.StatusSeeOther)
	}
}

// ProfileOptionsHandler renders the account menu page
// (GET /profile-options).
func (s *Server) ProfileOptionsHandler() http.HandlerFunc {
	tmpl, err := ParsePage("profile_options.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse profile options template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.resolveSession(w, r)

		data := ProfilePageData{
			PageData: s.pageData(sess),
			User:     sess.User,
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render profile options template")
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	}
}
