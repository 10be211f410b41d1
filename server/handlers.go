package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/designmatch/web-client/session"
)

// PageData is the shell model every page embeds: the navigation state and
// an optional banner error.
type PageData struct {
	AppName      string
	LoggedIn     bool
	IsVendor     bool
	DisplayName  string
	Initials     string
	ImageBaseURL string
	Error        string
}

func (s *Server) pageData(sess session.Session) PageData {
	return PageData{
		AppName:      s.config.GetAppName(),
		LoggedIn:     sess.LoggedIn,
		IsVendor:     sess.IsVendor(),
		DisplayName:  sess.DisplayName(),
		Initials:     sess.Initials(),
		ImageBaseURL: s.config.GetImageBaseURL(),
	}
}

// ErrorPageData drives the single error page used for 404s and panics.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

func (s *Server) renderErrorPage(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	tmpl, err := ParsePage("error.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse error template")
		http.Error(w, message, statusCode)
		return
	}

	data := ErrorPageData{
		PageData:   PageData{AppName: s.config.GetAppName()},
		StatusCode: statusCode,
		Message:    message,
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(statusCode)
	if err := tmpl.Execute(w, data); err != nil {
		log.Err(err).Msg("Failed to render error template")
	}
}

// NotFoundHandler renders the catch-all page for unknown paths.
func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logError(r.Method, r.URL.Path, "page not found")
		s.renderErrorPage(w, r, http.StatusNotFound, "The page you are looking for does not exist.")
	}
}
