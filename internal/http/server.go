package httpapp

import (
	"encoding/json"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nirdonia/council/internal/config"
	"github.com/nirdonia/council/internal/model"
	"github.com/nirdonia/council/internal/postid"
	"github.com/nirdonia/council/internal/store"

	_ "github.com/nirdonia/council/docs" // swagger docs

	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"
)

const listLimit = 20

type Server struct {
	store store.PostStore
	cfg   config.Config

	// guestNum yields the number for generated Guest_<n> authors.
	// Swapped out in tests for determinism.
	guestNum func() int
	now      func() time.Time
}

func NewServer(st store.PostStore, cfg config.Config) *Server {
	return &Server{
		store:    st,
		cfg:      cfg,
		guestNum: func() int { return rand.Intn(1000) },
		now:      time.Now,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	path := r.URL.Path
	if strings.HasPrefix(path, "/api/") {
		s.handleAPI(w, r)
		return
	}
	if strings.HasPrefix(path, "/swagger/") {
		httpSwagger.WrapHandler.ServeHTTP(w, r)
		return
	}
	if path == "/health" && r.Method == http.MethodGet {
		s.handleHealth(w, r)
		return
	}
	if path == "/" && r.Method == http.MethodGet {
		s.handleRoot(w, r)
		return
	}

	routeNotFound(w)
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")
	segments := splitPath(path)

	switch {
	case len(segments) == 2 && segments[0] == "council" && segments[1] == "posts":
		if r.Method == http.MethodGet {
			s.handleListPosts(w, r)
			return
		}
		if r.Method == http.MethodPost {
			s.handleCreatePost(w, r)
			return
		}
	case len(segments) == 4 && segments[0] == "council" && segments[1] == "posts" && segments[3] == "vote":
		if r.Method == http.MethodPut {
			s.handleVote(w, r, segments[2])
			return
		}
	case len(segments) == 3 && segments[0] == "council" && segments[1] == "posts":
		if r.Method == http.MethodDelete {
			s.handleDeletePost(w, r, segments[2])
			return
		}
	case len(segments) == 1 && segments[0] == "openapi.json":
		if r.Method == http.MethodGet {
			s.serveOpenAPIJSON(w, r)
			return
		}
	}

	routeNotFound(w)
}

// handleListPosts godoc
//
//	@Summary		List council posts
//	@Description	Get the 20 most recent council posts, newest first
//	@Tags			Council Posts
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}	"Posts list"
//	@Failure		500	{object}	map[string]interface{}	"Server error"
//	@Router			/api/council/posts [get]
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.ListRecentPosts(r.Context(), listLimit)
	if err != nil {
		s.writeServerError(w, "Error fetching posts", err)
		return
	}
	if posts == nil {
		posts = []model.CouncilPost{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    posts,
	})
}

// handleCreatePost godoc
//
//	@Summary		Create a council post
//	@Description	Create a new post on the council board. Anonymous posts get the author "Anonymous"; posts without an author get a generated Guest_<n> name.
//	@Tags			Council Posts
//	@Accept			json
//	@Produce		json
//	@Param			post	body		object{content=string,author=string,isAnonymous=bool,taskType=string}	true	"Post data"
//	@Success		201		{object}	map[string]interface{}	"Created post"
//	@Failure		400		{object}	map[string]interface{}	"Validation error"
//	@Failure		409		{object}	map[string]interface{}	"Post with this hash already exists"
//	@Failure		500		{object}	map[string]interface{}	"Server error"
//	@Router			/api/council/posts [post]
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content     string `json:"content"`
		Author      string `json:"author"`
		IsAnonymous bool   `json:"isAnonymous"`
		TaskType    string `json:"taskType"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		writeFailure(w, http.StatusBadRequest, "Content is required")
		return
	}
	if utf8.RuneCountInString(req.Content) > model.MaxContentLen {
		writeFailure(w, http.StatusBadRequest, "Content must be less than 500 characters")
		return
	}

	taskType := req.TaskType
	if taskType == "" {
		taskType = model.DefaultTaskType
	}
	if !model.ValidTaskType(taskType) {
		writeFailure(w, http.StatusBadRequest, "Invalid task type")
		return
	}

	author := model.AnonymousAuthor
	if !req.IsAnonymous {
		author = strings.TrimSpace(req.Author)
		if author == "" {
			author = "Guest_" + strconv.Itoa(s.guestNum())
		}
	}

	now := s.now()
	hash := postid.Hash(req.Content, author, now)

	// The unique index on hash closes the race; this pre-check exists to
	// report the conflict explicitly.
	if _, err := s.store.FindPostByHash(r.Context(), hash); err == nil {
		writeFailure(w, http.StatusConflict, "Post with this hash already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		s.writeServerError(w, "Error creating post", err)
		return
	}

	post := model.CouncilPost{
		Author:      author,
		Content:     strings.TrimSpace(req.Content),
		Votes:       0,
		Hash:        hash,
		IsAnonymous: req.IsAnonymous,
		TaskType:    taskType,
		CreatedAt:   now,
	}
	if _, err := s.store.CreatePost(r.Context(), &post); err != nil {
		if errors.Is(err, store.ErrDuplicateHash) {
			writeFailure(w, http.StatusConflict, "Post with this hash already exists")
			return
		}
		s.writeServerError(w, "Error creating post", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    post,
	})
}

// handleVote godoc
//
//	@Summary		Vote on a council post
//	@Description	Increment or decrement the vote count of a post. Decrementing never goes below zero.
//	@Tags			Council Posts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Post ID"
//	@Param			vote	body		object{action=string}	true	"Vote action (increment or decrement)"
//	@Success		200		{object}	map[string]interface{}	"Updated post"
//	@Failure		400		{object}	map[string]interface{}	"Invalid action"
//	@Failure		404		{object}	map[string]interface{}	"Post not found"
//	@Failure		500		{object}	map[string]interface{}	"Server error"
//	@Router			/api/council/posts/{id}/vote [put]
func (s *Server) handleVote(w http.ResponseWriter, r *http.Request, idStr string) {
	var req struct {
		Action string `json:"action"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Action != "increment" && req.Action != "decrement" {
		writeFailure(w, http.StatusBadRequest, `Action must be "increment" or "decrement"`)
		return
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		// Malformed ids resolve to nothing rather than a parse error.
		writeFailure(w, http.StatusNotFound, "Post not found")
		return
	}

	post, err := s.store.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, "Post not found")
			return
		}
		s.writeServerError(w, "Error updating vote", err)
		return
	}

	if req.Action == "increment" {
		post.Votes++
	} else if post.Votes > 0 {
		post.Votes--
	}

	if err := s.store.UpdatePost(r.Context(), &post); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, "Post not found")
			return
		}
		s.writeServerError(w, "Error updating vote", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    post,
	})
}

// handleDeletePost godoc
//
//	@Summary		Delete a council post
//	@Description	Delete a post from the council board (for moderation)
//	@Tags			Council Posts
//	@Produce		json
//	@Param			id	path		int	true	"Post ID"
//	@Success		200	{object}	map[string]interface{}	"Success message"
//	@Failure		404	{object}	map[string]interface{}	"Post not found"
//	@Failure		500	{object}	map[string]interface{}	"Server error"
//	@Router			/api/council/posts/{id} [delete]
func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeFailure(w, http.StatusNotFound, "Post not found")
		return
	}

	if _, err := s.store.DeletePost(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, "Post not found")
			return
		}
		s.writeServerError(w, "Error deleting post", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Post deleted successfully",
	})
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Tags			Meta
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}	"Server status"
//	@Router			/health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"message":   "Server is running",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

// handleRoot godoc
//
//	@Summary		API catalog
//	@Tags			Meta
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}	"Endpoint catalog"
//	@Router			/ [get]
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "NIRDonia Village Council API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":     "/health",
			"posts":      "/api/council/posts",
			"createPost": "POST /api/council/posts",
			"vote":       "PUT /api/council/posts/:id/vote",
			"delete":     "DELETE /api/council/posts/:id",
			"docs":       "/swagger/index.html",
		},
	})
}

func (s *Server) serveOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		s.writeServerError(w, "Error reading API docs", err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write([]byte(doc))
}

// writeServerError reports an unexpected persistence or runtime failure.
// The raw error text is kept for operator diagnosis outside production.
func (s *Server) writeServerError(w http.ResponseWriter, message string, err error) {
	payload := map[string]any{
		"success": false,
		"message": message,
	}
	if s.cfg.Production {
		payload["error"] = "Something went wrong"
	} else {
		payload["error"] = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, payload)
}

func setCORS(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}

func routeNotFound(w http.ResponseWriter) {
	writeFailure(w, http.StatusNotFound, "Route not found")
}

func readJSON(body io.ReadCloser, dest any) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	return dec.Decode(dest)
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
