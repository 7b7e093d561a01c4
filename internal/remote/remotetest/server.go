// Package remotetest provides an in-memory implementation of the gallery REST
// contract. It backs the client and synchronizer tests and the CLI's
// "stub serve" command for local development.
package remotetest

import (
	"bytes"
	"io"
	"net/http"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// User is a user record held by the stub.
type User struct {
	ID     string `yaml:"id" json:"_id"`
	Name   string `yaml:"name" json:"name"`
	About  string `yaml:"about" json:"about"`
	Avatar string `yaml:"avatar" json:"avatar"`
}

// Card is a card record held by the stub. Owner and Likes are user ids.
type Card struct {
	ID    string   `yaml:"id"`
	Name  string   `yaml:"name"`
	Link  string   `yaml:"link"`
	Owner string   `yaml:"owner"`
	Likes []string `yaml:"likes"`
}

// RecordedRequest is a request the stub received.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Body          []byte
}

type cardResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Link  string `json:"link"`
	Owner User   `json:"owner"`
	Likes []User `json:"likes"`
}

// Server is the stub service. All methods are safe for concurrent use.
type Server struct {
	mu         sync.Mutex
	credential string
	meID       string
	users      map[string]User
	cards      []Card
	failures   map[string]int
	requests   []RecordedRequest

	e *echo.Echo
}

// New creates a stub that accepts credential and signs every request in as me.
func New(credential string, me User) *Server {
	if me.ID == "" {
		me.ID = uuid.NewString()
	}
	s := &Server{
		credential: credential,
		meID:       me.ID,
		users:      map[string]User{me.ID: me},
		failures:   make(map[string]int),
	}
	s.e = s.routes()
	return s
}

// NewFromSeed creates a stub populated from a seed document.
func NewFromSeed(credential string, seed Seed) *Server {
	s := New(credential, seed.Me)
	for _, u := range seed.Users {
		s.AddUser(u)
	}
	for _, c := range seed.Cards {
		s.AppendCard(c)
	}
	return s
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(s.record, s.authorize, s.injectFailures)

	e.GET("/users/me", s.getMe)
	e.PATCH("/users/me", s.patchMe)
	e.PATCH("/users/me/avatar", s.patchAvatar)
	e.GET("/cards", s.listCards)
	e.POST("/cards", s.createCard)
	e.DELETE("/cards/:id", s.deleteCard)
	e.PUT("/cards/likes/:id", s.likeCard)
	e.DELETE("/cards/likes/:id", s.unlikeCard)
	return e
}

// Handler returns the HTTP handler serving the REST contract.
func (s *Server) Handler() http.Handler {
	return s.e
}

// Me returns the signed-in user record.
func (s *Server) Me() User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[s.meID]
}

// SetCredential changes the Authorization value the stub accepts.
func (s *Server) SetCredential(credential string) {
	s.mu.Lock()
	s.credential = credential
	s.mu.Unlock()
}

// AddUser registers a user who can own or like cards.
func (s *Server) AddUser(u User) {
	s.mu.Lock()
	s.users[u.ID] = u
	s.mu.Unlock()
}

// AppendCard adds a card at the end of the server order and returns its id.
// Owner defaults to the signed-in user.
func (s *Server) AppendCard(c Card) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Owner == "" {
		c.Owner = s.meID
	}
	s.cards = append(s.cards, c)
	return c.ID
}

// Card returns the stored card with the given id.
func (s *Server) Card(id string) (Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return Card{}, false
	}
	return s.cards[i], true
}

// SetLikes overwrites the likes of a stored card, as if other users had
// acted on it. It reports whether the card exists.
func (s *Server) SetLikes(cardID string, userIDs ...string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(cardID)
	if i < 0 {
		return false
	}
	s.cards[i].Likes = slices.Clone(userIDs)
	return true
}

// Fail makes every request matching method and route pattern (as
// registered, e.g. "/cards/:id") answer with status until ClearFailures.
func (s *Server) Fail(method, route string, status int) {
	s.mu.Lock()
	s.failures[method+" "+route] = status
	s.mu.Unlock()
}

// ClearFailures removes every forced failure.
func (s *Server) ClearFailures() {
	s.mu.Lock()
	clear(s.failures)
	s.mu.Unlock()
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		var body []byte
		if req.Body != nil {
			body, _ = io.ReadAll(req.Body)
			req.Body = io.NopCloser(bytes.NewReader(body))
		}
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:        req.Method,
			Path:          req.URL.Path,
			Authorization: req.Header.Get(echo.HeaderAuthorization),
			ContentType:   req.Header.Get(echo.HeaderContentType),
			Body:          body,
		})
		s.mu.Unlock()
		return next(c)
	}
}

func (s *Server) authorize(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		ok := c.Request().Header.Get(echo.HeaderAuthorization) == s.credential
		s.mu.Unlock()
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Authorization required"})
		}
		return next(c)
	}
}

func (s *Server) injectFailures(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		status, ok := s.failures[c.Request().Method+" "+c.Path()]
		s.mu.Unlock()
		if ok {
			return c.JSON(status, map[string]string{"message": http.StatusText(status)})
		}
		return next(c)
	}
}

func (s *Server) getMe(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Me())
}

func (s *Server) patchMe(c echo.Context) error {
	var body struct {
		Name  string `json:"name"`
		About string `json:"about"`
	}
	if err := c.Bind(&body); err != nil || body.Name == "" || body.About == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "name and about are required"})
	}
	s.mu.Lock()
	me := s.users[s.meID]
	me.Name, me.About = body.Name, body.About
	s.users[s.meID] = me
	s.mu.Unlock()
	return c.JSON(http.StatusOK, me)
}

func (s *Server) patchAvatar(c echo.Context) error {
	var body struct {
		Avatar string `json:"avatar"`
	}
	if err := c.Bind(&body); err != nil || body.Avatar == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "avatar is required"})
	}
	s.mu.Lock()
	me := s.users[s.meID]
	me.Avatar = body.Avatar
	s.users[s.meID] = me
	s.mu.Unlock()
	return c.JSON(http.StatusOK, me)
}

func (s *Server) listCards(c echo.Context) error {
	s.mu.Lock()
	out := make([]cardResponse, 0, len(s.cards))
	for _, card := range s.cards {
		out = append(out, s.toResponse(card))
	}
	s.mu.Unlock()
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createCard(c echo.Context) error {
	var body struct {
		Name string `json:"name"`
		Link string `json:"link"`
	}
	if err := c.Bind(&body); err != nil || body.Name == "" || body.Link == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "name and link are required"})
	}
	s.mu.Lock()
	card := Card{ID: uuid.NewString(), Name: body.Name, Link: body.Link, Owner: s.meID}
	s.cards = slices.Insert(s.cards, 0, card)
	resp := s.toResponse(card)
	s.mu.Unlock()
	return c.JSON(http.StatusCreated, resp)
}

func (s *Server) deleteCard(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(c.Param("id"))
	if i < 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "card not found"})
	}
	if s.cards[i].Owner != s.meID {
		return c.JSON(http.StatusForbidden, map[string]string{"message": "cannot delete a card owned by another user"})
	}
	s.cards = slices.Delete(s.cards, i, i+1)
	return c.JSON(http.StatusOK, map[string]string{"message": "card deleted"})
}

func (s *Server) likeCard(c echo.Context) error {
	return s.updateLikes(c, func(likes []string) []string {
		if slices.Contains(likes, s.meID) {
			return likes
		}
		return append(likes, s.meID)
	})
}

func (s *Server) unlikeCard(c echo.Context) error {
	return s.updateLikes(c, func(likes []string) []string {
		return slices.DeleteFunc(likes, func(id string) bool { return id == s.meID })
	})
}

func (s *Server) updateLikes(c echo.Context, update func([]string) []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(c.Param("id"))
	if i < 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "card not found"})
	}
	s.cards[i].Likes = update(slices.Clone(s.cards[i].Likes))
	return c.JSON(http.StatusOK, s.toResponse(s.cards[i]))
}

// indexOf must be called with s.mu held.
func (s *Server) indexOf(id string) int {
	return slices.IndexFunc(s.cards, func(c Card) bool { return c.ID == id })
}

// toResponse must be called with s.mu held.
func (s *Server) toResponse(card Card) cardResponse {
	likes := make([]User, 0, len(card.Likes))
	for _, id := range card.Likes {
		likes = append(likes, s.userOrStub(id))
	}
	return cardResponse{
		ID:    card.ID,
		Name:  card.Name,
		Link:  card.Link,
		Owner: s.userOrStub(card.Owner),
		Likes: likes,
	}
}

func (s *Server) userOrStub(id string) User {
	if u, ok := s.users[id]; ok {
		return u
	}
	return User{ID: id}
}
