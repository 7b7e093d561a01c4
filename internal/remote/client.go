package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/nfrund/gallery/internal/domain"
)

// Client wraps the REST operations of the gallery service. Each call is a
// single request/response round trip; there are no retries and no client-side
// timeout beyond the caller's context.
type Client struct {
	baseURL    *url.URL
	session    *Session
	httpClient *http.Client
	logger     *slog.Logger
}

// Options allows overriding the client's collaborators.
type Options struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// New creates a client for the service rooted at baseURL.
func New(baseURL string, session *Session, opts Options) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is empty")
	}
	if session == nil {
		return nil, fmt.Errorf("session is nil")
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse baseURL: %w", err)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{baseURL: parsed, session: session, httpClient: httpClient, logger: logger}, nil
}

// Session returns the session whose credential the client sends.
func (c *Client) Session() *Session {
	return c.session
}

// FetchProfile loads the signed-in user.
func (c *Client) FetchProfile(ctx context.Context) (domain.UserProfile, error) {
	var out userDTO
	if err := c.call(ctx, "fetch profile", http.MethodGet, "/users/me", nil, &out); err != nil {
		return domain.UserProfile{}, err
	}
	return out.toDomain(), nil
}

// FetchCards loads every card in server order.
func (c *Client) FetchCards(ctx context.Context) ([]domain.Card, error) {
	var out []cardDTO
	if err := c.call(ctx, "fetch cards", http.MethodGet, "/cards", nil, &out); err != nil {
		return nil, err
	}
	cards := make([]domain.Card, 0, len(out))
	for _, dto := range out {
		cards = append(cards, dto.toDomain())
	}
	return cards, nil
}

// UpdateProfile replaces the user's name and description.
func (c *Client) UpdateProfile(ctx context.Context, input domain.ProfileInput) (domain.UserProfile, error) {
	var out userDTO
	body := profileRequest{Name: input.Name, About: input.About}
	if err := c.call(ctx, "update profile", http.MethodPatch, "/users/me", body, &out); err != nil {
		return domain.UserProfile{}, err
	}
	return out.toDomain(), nil
}

// CreateCard publishes a new card. The server assigns its id and owner.
func (c *Client) CreateCard(ctx context.Context, input domain.CardInput) (domain.Card, error) {
	var out cardDTO
	body := cardRequest{Name: input.Name, Link: input.ImageURL}
	if err := c.call(ctx, "create card", http.MethodPost, "/cards", body, &out); err != nil {
		return domain.Card{}, err
	}
	return out.toDomain(), nil
}

// DeleteCard removes a card. The server rejects cards the user does not own.
func (c *Client) DeleteCard(ctx context.Context, cardID string) error {
	return c.call(ctx, "delete card", http.MethodDelete, "/cards/"+url.PathEscape(cardID), nil, nil)
}

// LikeCard adds the user to the card's likes and returns the updated card.
func (c *Client) LikeCard(ctx context.Context, cardID string) (domain.Card, error) {
	var out cardDTO
	if err := c.call(ctx, "like card", http.MethodPut, "/cards/likes/"+url.PathEscape(cardID), nil, &out); err != nil {
		return domain.Card{}, err
	}
	return out.toDomain(), nil
}

// UnlikeCard removes the user from the card's likes and returns the updated card.
func (c *Client) UnlikeCard(ctx context.Context, cardID string) (domain.Card, error) {
	var out cardDTO
	if err := c.call(ctx, "unlike card", http.MethodDelete, "/cards/likes/"+url.PathEscape(cardID), nil, &out); err != nil {
		return domain.Card{}, err
	}
	return out.toDomain(), nil
}

// UpdateAvatar points the user's avatar at imageURL.
func (c *Client) UpdateAvatar(ctx context.Context, imageURL string) (domain.UserProfile, error) {
	var out userDTO
	if err := c.call(ctx, "update avatar", http.MethodPatch, "/users/me/avatar", avatarRequest{Avatar: imageURL}, &out); err != nil {
		return domain.UserProfile{}, err
	}
	return out.toDomain(), nil
}

// call performs one round trip. A nil payload sends no body; a nil out
// discards the response body.
func (c *Client) call(ctx context.Context, op, method, path string, payload, out any) error {
	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("remote call", "op", op, "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return newRemoteError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.session.Credential())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}
