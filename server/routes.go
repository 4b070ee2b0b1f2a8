package server

import "github.com/matryer/way"

const (
	URIPlay     = "/play"
	URIGenerate = "/generate/:width/:height/:mines"
)

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", URIPlay, s.HandlePlay())
	s.router.HandleFunc("GET", URIGenerate, s.HandleGenerate())
}
