package server

import (
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/designmatch/web-client/backend"
	"github.com/designmatch/web-client/users"
)

// AuthPageData contains data for the login and signup pages
type AuthPageData struct {
	PageData
	JoinAsPro bool
	Redirect  string
	// Preserved field values on a failed submission
	FirstName  string
	LastName   string
	Email      string
	Mobile     string
	Profession string
}

// SignupGetHandler renders the signup page. The ?pro=1 variant adds the
// profession selection for professionals.
func (s *Server) SignupGetHandler() http.HandlerFunc {
	tmpl, err := ParsePage("signup.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse signup template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.resolveSession(w, r)
		if sess.LoggedIn {
			http.Redirect(w, r, RouteProfileOptions, http.StatusSeeOther)
			return
		}

		data := AuthPageData{
			PageData:  s.pageData(sess),
			JoinAsPro: r.URL.Query().Get("pro") == "1",
			Redirect:  r.URL.Query().Get("redirect"),
		}
		data.Error = r.URL.Query().Get("error")

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render signup template")
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	}
}

// SignupPostHandler processes the registration form. On success the
// session holds the issued token and professionals continue straight into
// onboarding.
func (s *Server) SignupPostHandler() http.HandlerFunc {
	tmpl, err := ParsePage("signup.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse signup template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.resolveSession(w, r)

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		form := users.RegistrationForm{
			FirstName:       r.FormValue("first_name"),
			LastName:        r.FormValue("last_name"),
			Email:           r.FormValue("email"),
			Mobile:          r.FormValue("mobile"),
			Password:        r.FormValue("password"),
			ConfirmPassword: r.FormValue("confirm_password"),
			JoinAsPro:       r.FormValue("join_as_pro") == "1",
			Profession:      r.FormValue("profession"),
		}

		renderError := func(errorMsg string) {
			data := AuthPageData{
				PageData:   s.pageData(sess),
				JoinAsPro:  form.JoinAsPro,
				Redirect:   r.FormValue("redirect"),
				FirstName:  form.FirstName,
				LastName:   form.LastName,
				Email:      form.Email,
				Mobile:     form.Mobile,
				Profession: form.Profession,
			}
			data.Error = errorMsg
			w.Header().Set("Content-Type", contentTypeHTML)
			if err := tmpl.Execute(w, data); err != nil {
				log.Err(err).Msg("Failed to render signup template")
			}
		}

		if err := form.Validate(); err != nil {
			renderError(err.Error())
			return
		}

		if err := s.sessions.Register(r.Context(), &sess, form.ToRequest()); err != nil {
			log.Warn().Err(err).Msg("registration failed")
			renderError(backend.ErrorMessage(err))
			return
		}

		if form.JoinAsPro {
			http.Redirect(w, r, RouteJoinAsPro, http.StatusSeeOther)
			return
		}
		redirectAfterAuth(w, r, r.FormValue("redirect"))
	}
}

// LoginGetHandler renders the login page
func (s *Server) LoginGetHandler() http.HandlerFunc {
	tmpl, err := ParsePage("login.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse login template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.resolveSession(w, r)
		if sess.LoggedIn {
			http.Redirect(w, r, RouteProfileOptions, http.StatusSeeOther)
			return
		}

		data := AuthPageData{
			PageData: s.pageData(sess),
			Redirect: r.URL.Query().Get("redirect"),
			Email:    r.URL.Query().Get("email"),
		}
		data.Error = r.URL.Query().Get("error")

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render login template")
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	}
}

// LoginPostHandler processes the login form submission
func (s *Server) LoginPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.resolveSession(w, r)

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("password")
		redirect := r.FormValue("redirect")

		renderError := func(errorMsg string) {
			target := RouteLogin + "?error=" + url.QueryEscape(errorMsg) + "&email=" + url.QueryEscape(email)
			if redirect != "" {
				target += "&redirect=" + url.QueryEscape(redirect)
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
		}

		if email == "" || password == "" {
			renderError("Please enter your email and password.")
			return
		}

		req := backend.LoginRequest{
			Email:    email,
			Password: users.DigestPassword(password),
		}
		if err := s.sessions.Login(r.Context(), &sess, req); err != nil {
			log.Warn().Err(err).Msg("login failed")
			renderError(backend.ErrorMessage(err))
			return
		}

		redirectAfterAuth(w, r, redirect)
	}
}

// LogoutHandler clears the session. The backend call is fire-and-forget;
// the local session is cleared no matter what.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.resolveSession(w, r)
		s.sessions.Logout(r.Context(), &sess)
		s.dropWizard(sess.ID)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// redirectAfterAuth sends the user back to where they came from, only ever
// to a local path.
func redirectAfterAuth(w http.ResponseWriter, r *http.Request, redirect string) {
	if redirect == "" || redirect[0] != '/' {
		redirect = "/"
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}
