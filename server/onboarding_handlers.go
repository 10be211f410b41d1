package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/designmatch/web-client/backend"
	"github.com/designmatch/web-client/onboarding"
	"github.com/designmatch/web-client/session"
)

// maxLogoBytes caps the buffered logo upload.
const maxLogoBytes = 5 << 20

// AxisOptions is one category axis with its selectable options and the
// draft's current selections.
type AxisOptions struct {
	onboarding.Axis
	Options  []string
	Selected []string
}

// WizardPageData contains data for the onboarding wizard page
type WizardPageData struct {
	PageData
	Step   int
	Last   bool
	Draft  *onboarding.Draft
	Axes   []AxisOptions
	States []string
	Cities []string
}

// WizardGetHandler renders the current onboarding step (GET /join-as-pro).
// Users who already have a vendor profile are sent to it instead.
func (s *Server) WizardGetHandler() http.HandlerFunc {
	tmpl, err := ParsePage("join_as_pro.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse onboarding template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.resolveSession(w, r)
		if sess.IsVendor() {
			http.Redirect(w, r, RouteProfile, http.StatusSeeOther)
			return
		}

		wizard := s.wizardFor(sess.ID, r.URL.Query().Get("fresh") == "1")

		data := WizardPageData{
			PageData: s.pageData(sess),
			Step:     wizard.Step(),
			Last:     wizard.OnLastStep(),
			Draft:    wizard.Draft(),
			States:   s.locations.States(),
			Cities:   wizard.Draft().CityOptions,
		}
		data.Error = r.URL.Query().Get("error")

		if wizard.Step() == onboarding.StepCategories {
			data.Axes = s.axisOptions(r, wizard.Draft())
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render onboarding template")
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	}
}

// axisOptions fetches the selectable options of every category axis. A
// failed fetch degrades that axis to an empty option list.
func (s *Server) axisOptions(r *http.Request, draft *onboarding.Draft) []AxisOptions {
	axes := make([]AxisOptions, 0, len(onboarding.Axes))
	for _, axis := range onboarding.Axes {
		options, err := s.api.SubcategoryList(r.Context(), axis.Number, draft.Category)
		if err != nil {
			log.Warn().Err(err).Int("axis", axis.Number).Msg("failed to load subcategory options")
		}
		axes = append(axes, AxisOptions{
			Axis:     axis,
			Options:  options,
			Selected: draft.Subcategories(axis.Number),
		})
	}
	return axes
}

// WizardPostHandler advances, rewinds or submits the wizard
// (POST /join-as-pro). The form's action field selects the transition;
// the current step's fields are bound into the draft first, so going
// back never loses input.
func (s *Server) WizardPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.resolveSession(w, r)
		if sess.IsVendor() {
			http.Redirect(w, r, RouteProfile, http.StatusSeeOther)
			return
		}

		if err := r.ParseMultipartForm(maxLogoBytes); err != nil {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form data", http.StatusBadRequest)
				return
			}
		}

		wizard := s.wizardFor(sess.ID, false)
		if err := s.bindStep(r, wizard); err != nil {
			redirectWizardError(w, r, err.Error())
			return
		}

		switch r.FormValue("action") {
		case "prev":
			wizard.Prev()
			http.Redirect(w, r, RouteJoinAsPro, http.StatusSeeOther)

		case "state":
			// A state selection re-fetches the city list into this
			// session's draft and re-renders the same step.
			cities, err := s.locations.LoadCities(r.Context(), wizard.Draft().State)
			if err != nil {
				log.Warn().Err(err).Str("state", wizard.Draft().State).Msg("failed to load cities")
			}
			wizard.Draft().CityOptions = cities
			wizard.Draft().City = ""
			http.Redirect(w, r, RouteJoinAsPro, http.StatusSeeOther)

		case "submit":
			s.submitWizard(w, r, &sess, wizard)

		default:
			if err := wizard.Next(); err != nil {
				redirectWizardError(w, r, err.Error())
				return
			}
			http.Redirect(w, r, RouteJoinAsPro, http.StatusSeeOther)
		}
	}
}

func (s *Server) submitWizard(w http.ResponseWriter, r *http.Request, sess *session.Session, wizard *onboarding.Wizard) {
	result, err := wizard.Submit(r.Context(), s.api, sess.Token)

	// Even a partial success (profile created, logo upload failed) issued
	// a replacement token that must be adopted.
	if result.AccessToken != "" {
		s.sessions.ReplaceToken(sess, result.AccessToken)
		s.dropWizard(sess.ID)
	}

	if err != nil {
		log.Warn().Err(err).Msg("onboarding submission failed")
		if result.AccessToken != "" {
			http.Redirect(w, r, RouteProfile+"?error="+url.QueryEscape("Your profile was created, but the logo upload failed."), http.StatusSeeOther)
			return
		}
		redirectWizardError(w, r, backend.ErrorMessage(err))
		return
	}

	http.Redirect(w, r, RouteProfile+"?saved=1", http.StatusSeeOther)
}

// bindStep copies the submitted fields of the wizard's current step into
// the draft.
func (s *Server) bindStep(r *http.Request, wizard *onboarding.Wizard) error {
	draft := wizard.Draft()

	switch wizard.Step() {
	case onboarding.StepBusinessInfo:
		draft.BusinessName = r.FormValue("business_name")
		draft.StartedIn = r.FormValue("started_in")
		draft.Address = r.FormValue("address")
		draft.NumberOfEmployees = r.FormValue("number_of_employees")
		draft.AverageProjectValue = r.FormValue("average_project_value")
		draft.ProjectsCompleted = r.FormValue("projects_completed")
		draft.Description = r.FormValue("description")

	case onboarding.StepCategories:
		for _, axis := range onboarding.Axes {
			name := "subcategory_" + strconv.Itoa(axis.Number)
			if err := draft.SetSubcategories(axis.Number, r.Form[name]); err != nil {
				return err
			}
		}

	case onboarding.StepLocation:
		draft.State = r.FormValue("state")
		draft.City = r.FormValue("city")

	case onboarding.StepSocial:
		draft.Social.Instagram = r.FormValue("instagram")
		draft.Social.Facebook = r.FormValue("facebook")
		draft.Social.Website = r.FormValue("website")
		if err := bindLogo(r, draft); err != nil {
			return err
		}
	}
	return nil
}

func bindLogo(r *http.Request, draft *onboarding.Draft) error {
	file, header, err := r.FormFile("logo")
	if err != nil {
		// No file selected; the logo stays optional.
		return nil
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxLogoBytes))
	if err != nil {
		return err
	}
	draft.LogoFilename = header.Filename
	draft.LogoContent = content
	return nil
}

func redirectWizardError(w http.ResponseWriter, r *http.Request, errorMsg string) {
	http.Redirect(w, r, RouteJoinAsPro+"?error="+url.QueryEscape(errorMsg), http.StatusSeeOther)
}

// WizardCitiesHandler returns the city list for a state as JSON
// (GET /join-as-pro/cities?state=...), used to repopulate the city
// dropdown without losing the rest of the form.
func (s *Server) WizardCitiesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := r.URL.Query().Get("state")

		cities, err := s.locations.LoadCities(r.Context(), state)
		if err != nil {
			log.Warn().Err(err).Str("state", state).Msg("failed to load cities")
			http.Error(w, "Failed to load cities", http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if cities == nil {
			cities = []string{}
		}
		if err := json.NewEncoder(w).Encode(cities); err != nil {
			log.Err(err).Msg("failed to encode city list")
		}
	}
}
