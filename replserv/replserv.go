// Package replserv serves interpreter sessions to remote front ends.
// Each session owns an interpreter and a capture console; callers feed
// lines and read back whatever the session printed.
package replserv

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/retrolang/dawbasic/basic"
)

// capture collects session output until the next reply drains it.
type capture struct {
	mu    sync.Mutex
	lines []string
}

func (c *capture) Print(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, msg)
}

func (c *capture) Println(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, msg+"\n")
}

func (c *capture) drain() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.lines
	c.lines = nil
	return out
}

type session struct {
	mu     sync.Mutex
	interp *basic.Interpreter
	out    *capture
}

// Server owns the session table.
type Server struct {
	mu       sync.Mutex
	sessions map[string]*session
	lastID   int
	log      zerolog.Logger
}

// New creates a Server logging through logger.
func New(logger zerolog.Logger) *Server {
	return &Server{
		sessions: make(map[string]*session),
		log:      logger,
	}
}

// Routes builds the API router.
func (s *Server) Routes() *mux.Router {
	rtr := mux.NewRouter()
	rtr.HandleFunc("/api/session", s.createSession).Methods(http.MethodPost)
	rtr.HandleFunc("/api/session/{id}", s.dropSession).Methods(http.MethodDelete)
	rtr.HandleFunc("/api/session/{id}/line", s.feedLine).Methods(http.MethodPost)
	rtr.HandleFunc("/api/session/{id}/program", s.sendProgram).Methods(http.MethodGet)
	return rtr
}

type sessionReply struct {
	ID     string   `json:"id"`
	Output []string `json:"output"`
}

type lineRequest struct {
	Line string `json:"line"`
}

type lineReply struct {
	Output []string `json:"output"`
	Done   bool     `json:"done"`
}

type programReply struct {
	Lines []string `json:"lines"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	out := &capture{}
	sess := &session{interp: basic.New(out), out: out}
	out.Println("DAW BASIC v0.1")
	out.Println("READY")

	s.mu.Lock()
	s.lastID++
	id := strconv.Itoa(s.lastID)
	s.sessions[id] = sess
	s.mu.Unlock()

	s.log.Info().Str("session", id).Msg("session created")
	sendJSON(w, http.StatusCreated, sessionReply{ID: id, Output: sess.out.drain()})
}

func (s *Server) feedLine(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.lookup(r)
	if !ok {
		sendError(w, http.StatusNotFound, "unknown session")
		return
	}

	var req lineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	sess.mu.Lock()
	alive := sess.interp.ParseLine(req.Line)
	output := sess.out.drain()
	sess.mu.Unlock()

	if !alive {
		s.remove(id)
		s.log.Info().Str("session", id).Msg("session ended")
	}
	sendJSON(w, http.StatusOK, lineReply{Output: output, Done: !alive})
}

func (s *Server) sendProgram(w http.ResponseWriter, r *http.Request) {
	_, sess, ok := s.lookup(r)
	if !ok {
		sendError(w, http.StatusNotFound, "unknown session")
		return
	}

	sess.mu.Lock()
	lines := []string{}
	for _, line := range sess.interp.Program().Lines() {
		lines = append(lines, fmt.Sprintf("%d %s", line.Number, line.Text))
	}
	sess.mu.Unlock()

	sendJSON(w, http.StatusOK, programReply{Lines: lines})
}

func (s *Server) dropSession(w http.ResponseWriter, r *http.Request) {
	id, _, ok := s.lookup(r)
	if !ok {
		sendError(w, http.StatusNotFound, "unknown session")
		return
	}
	s.remove(id)
	s.log.Info().Str("session", id).Msg("session dropped")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookup(r *http.Request) (string, *session, bool) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return id, sess, ok
}

func (s *Server) remove(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func sendJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func sendError(w http.ResponseWriter, status int, msg string) {
	sendJSON(w, status, map[string]string{"error": msg})
}
