package remote

import "sync"

// Session holds the credential header value shared by every call a Client
// makes. It is safe for concurrent use.
type Session struct {
	mu         sync.RWMutex
	credential string
}

// NewSession creates a session that sends credential verbatim as the
// Authorization header.
func NewSession(credential string) *Session {
	return &Session{credential: credential}
}

// SetAuthToken replaces the credential with a bearer token. Requests that
// have already been built keep the header they were built with.
func (s *Session) SetAuthToken(token string) {
	s.mu.Lock()
	s.credential = "Bearer " + token
	s.mu.Unlock()
}

// Credential returns the current Authorization header value.
func (s *Session) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}
