// Package server exposes the interview over HTTP. Each session action is
// a typed request validated against a JSON Schema before it reaches the
// core; the server also provides the per-session mutual exclusion the
// core itself does not implement.
package server

import (
	"bytes"
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"steuer-chat/internal/catalog"
	"steuer-chat/internal/interview"
	"steuer-chat/internal/logging"
	"steuer-chat/internal/models"
	"steuer-chat/internal/sessionstore"
	"steuer-chat/internal/summary"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sirupsen/logrus"
)

//go:embed schema.json
var requestSchemaJSON []byte

// Request is the tagged union of session actions.
type Request struct {
	Kind      string                `json:"kind"`
	Data      *models.ExtractedData `json:"data,omitempty"`
	Confirmed *bool                 `json:"confirmed,omitempty"`
	Status    string                `json:"status,omitempty"`
	Text      string                `json:"text,omitempty"`
}

// Response is the uniform reply for session endpoints.
type Response struct {
	SessionID  string          `json:"session_id"`
	Step       string          `json:"step"`
	Reply      string          `json:"reply,omitempty"`
	IsComplete bool            `json:"is_complete"`
	Done       bool            `json:"done"`
	Summary    *summary.Record `json:"summary,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// Server routes HTTP requests to interview sessions in the store.
type Server struct {
	router *gin.Engine
	store  sessionstore.Store
	cat    *catalog.Catalog
	log    *logrus.Logger
	schema *jsonschema.Schema
	locks  sync.Map // session id -> *sync.Mutex
}

// New builds a server around the given store and catalog.
func New(store sessionstore.Store, cat *catalog.Catalog, logger *logrus.Logger) (*Server, error) {
	if logger == nil {
		logger = logrus.New()
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("request.json", bytes.NewReader(requestSchemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to load request schema: %w", err)
	}
	schema, err := compiler.Compile("request.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile request schema: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		router: gin.New(),
		store:  store,
		cat:    cat,
		log:    logger,
		schema: schema,
	}
	s.router.Use(gin.Recovery())
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.POST("/sessions", s.handleCreateSession)
		api.GET("/sessions/:id", s.handleGetSession)
		api.DELETE("/sessions/:id", s.handleDeleteSession)
		api.POST("/sessions/:id/requests", s.handleRequest)
	}
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts serving on the given address.
func (s *Server) Run(addr string) error {
	s.log.Infof("Listening on %s", addr)
	return s.router.Run(addr)
}

// sessionLock returns the mutex serializing access to one session id.
func (s *Server) sessionLock(id string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (s *Server) handleHealth(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCreateSession(c *gin.Context) {
	session := interview.New(s.cat, logging.NewLogrusAdapter(s.log))
	if err := s.store.Put(session); err != nil {
		s.log.WithError(err).Error("Failed to store new session")
		writeJSON(c, http.StatusInternalServerError, Response{Error: "failed to create session"})
		return
	}
	writeJSON(c, http.StatusCreated, Response{
		SessionID: session.ID,
		Step:      string(session.Step),
		Reply:     session.Prompt(),
	})
}

func (s *Server) handleGetSession(c *gin.Context) {
	id := c.Param("id")
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.store.Get(id)
	if err != nil {
		writeJSON(c, statusForError(err), Response{SessionID: id, Error: err.Error()})
		return
	}
	writeJSON(c, http.StatusOK, Response{
		SessionID:  session.ID,
		Step:       string(session.Step),
		Reply:      session.Prompt(),
		IsComplete: session.IsComplete,
		Done:       session.Done,
	})
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	id := c.Param("id")
	if err := s.store.Delete(id); err != nil {
		writeJSON(c, http.StatusInternalServerError, Response{SessionID: id, Error: err.Error()})
		return
	}
	s.locks.Delete(id)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleRequest(c *gin.Context) {
	id := c.Param("id")

	body, err := c.GetRawData()
	if err != nil {
		writeJSON(c, http.StatusBadRequest, Response{SessionID: id, Error: "unreadable request body"})
		return
	}

	// Validate the shape before anything touches the core.
	var generic interface{}
	if err := json.Unmarshal(body, &generic); err != nil {
		writeJSON(c, http.StatusBadRequest, Response{SessionID: id, Error: "request body is not valid JSON"})
		return
	}
	if err := s.schema.Validate(generic); err != nil {
		writeJSON(c, http.StatusBadRequest, Response{SessionID: id, Error: err.Error()})
		return
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(c, http.StatusBadRequest, Response{SessionID: id, Error: "request body does not match the contract"})
		return
	}

	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.store.Get(id)
	if err != nil {
		writeJSON(c, statusForError(err), Response{SessionID: id, Error: err.Error()})
		return
	}

	resp, status := s.dispatch(session, req)
	if status < http.StatusBadRequest {
		if err := s.store.Put(session); err != nil {
			s.log.WithError(err).Error("Failed to persist session")
			writeJSON(c, http.StatusInternalServerError, Response{SessionID: id, Error: "failed to persist session"})
			return
		}
	}
	writeJSON(c, status, resp)
}

// dispatch routes one validated request to the session. Recoverable core
// errors become client-visible statuses; the session is persisted only on
// success.
func (s *Server) dispatch(session *interview.Session, req Request) (Response, int) {
	var (
		reply string
		err   error
	)

	switch req.Kind {
	case "set_data":
		reply, err = session.SetExtractedData(*req.Data)
	case "confirm_year":
		reply, err = session.ConfirmYear(*req.Confirmed)
	case "select_status":
		reply, err = session.SelectEmploymentStatus(req.Status)
	case "advance":
		reply, err = session.Advance(req.Text)
	case "get_summary":
		var record summary.Record
		reply, record, err = session.GetSummary()
		if err == nil {
			return Response{
				SessionID:  session.ID,
				Step:       string(session.Step),
				Reply:      reply,
				IsComplete: session.IsComplete,
				Done:       session.Done,
				Summary:    &record,
			}, http.StatusOK
		}
	case "reset_year":
		reply, err = session.ResetForNewYear()
	}

	resp := Response{
		SessionID:  session.ID,
		Step:       string(session.Step),
		Reply:      reply,
		IsComplete: session.IsComplete,
		Done:       session.Done,
	}
	if err != nil {
		resp.Error = err.Error()
		return resp, statusForError(err)
	}
	return resp, http.StatusOK
}

func writeJSON(c *gin.Context, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(status, "application/json; charset=utf-8", data)
}
