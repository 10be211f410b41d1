package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// IndexPageData contains data for rendering the landing page
type IndexPageData struct {
	PageData
	States []string
}

// IndexHandler displays the landing page (GET /)
func (s *Server) IndexHandler() http.HandlerFunc {
	tmpl, err := ParsePage("index.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse index template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.resolveSession(w, r)

		data := IndexPageData{
			PageData: s.pageData(sess),
			States:   s.locations.States(),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render index template")
			http.Error(w, "Failed to render page", http.StatusInternalServerError)
		}
	}
}
