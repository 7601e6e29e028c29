package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/onlyventilateur/ovcli/internal/client/models"
	"github.com/onlyventilateur/ovcli/internal/logging"
)

const (
	defaultHTTPTimeout        = 30 * time.Second
	defaultHTTPConnectTimeout = 5 * time.Second
	defaultHTTPTLSTimeout     = 5 * time.Second
)

// defaultHTTPClient builds a client with explicit dial, TLS, and total
// timeouts instead of relying on http.DefaultClient's unbounded defaults.
func defaultHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	dialer := &net.Dialer{
		Timeout: defaultHTTPConnectTimeout,
	}
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: defaultHTTPTLSTimeout,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// HTTPClient is the REST implementation of Client. It attaches the bearer
// credential from its TokenSource to authenticated calls, tags every
// outbound request with an X-Request-Id for log correlation, and maps HTTP
// failures to the package's sentinel errors.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, tokens TokenSource, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    defaultHTTPClient(timeout),
		tokens:  tokens,
		log:     log,
	}
}

// do performs one request/response cycle. A nil out skips body decoding.
// withAuth calls fail fast with ErrUnauthorized when no credential is held,
// so an anonymous caller never produces network traffic on a bearer route.
func (c *HTTPClient) do(ctx context.Context, method, path string, withAuth bool, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withAuth {
		token, ok := c.tokens.Token()
		if !ok {
			return ErrUnauthorized
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "err", err)
		return fmt.Errorf("%s %s: %w", method, path, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Message
		}
		c.log.Debug(ctx, "request rejected", "method", method, "path", path,
			"request_id", requestID, "status", resp.StatusCode)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var resp wireAuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", false, body, &resp); err != nil {
		return nil, err
	}
	return &AuthResult{Token: resp.AccessToken, User: resp.User.toModel()}, nil
}

func (c *HTTPClient) Signup(ctx context.Context, email, username, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "username": username, "password": password}
	var resp wireAuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/signup", false, body, &resp); err != nil {
		return nil, err
	}
	return &AuthResult{Token: resp.AccessToken, User: resp.User.toModel()}, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.User, error) {
	// Empty optional fields are omitted so the server keeps its values.
	body := map[string]string{}
	if patch.Username != nil {
		body["username"] = *patch.Username
	}
	if patch.Bio != nil && *patch.Bio != "" {
		body["bio"] = *patch.Bio
	}
	if patch.Avatar != nil && *patch.Avatar != "" {
		body["avatar"] = *patch.Avatar
	}
	var resp wireUser
	if err := c.do(ctx, http.MethodPatch, "/api/users/me", true, body, &resp); err != nil {
		return nil, err
	}
	user := resp.toModel()
	return &user, nil
}

func (c *HTTPClient) Creators(ctx context.Context) ([]models.Creator, error) {
	var resp []wireCreator
	if err := c.do(ctx, http.MethodGet, "/api/creators", false, nil, &resp); err != nil {
		return nil, err
	}
	creators := make([]models.Creator, 0, len(resp))
	for _, w := range resp {
		creators = append(creators, w.toModel())
	}
	return creators, nil
}

func (c *HTTPClient) CreatorByID(ctx context.Context, id string) (*CreatorDetail, error) {
	var resp wireCreatorDetail
	if err := c.do(ctx, http.MethodGet, "/api/creators/"+id, false, nil, &resp); err != nil {
		return nil, err
	}
	posts := make([]models.Post, 0, len(resp.Posts))
	for _, w := range resp.Posts {
		posts = append(posts, w.toModel(resp.ID))
	}
	creator := resp.wireCreator.toModel()
	// The detail endpoint does not always carry postCount; the posts list
	// it does carry is authoritative.
	creator.PostCount = len(posts)
	return &CreatorDetail{Creator: creator, Posts: posts}, nil
}

func (c *HTTPClient) Feed(ctx context.Context) ([]FeedPost, error) {
	var resp []wirePost
	if err := c.do(ctx, http.MethodGet, "/api/posts", false, nil, &resp); err != nil {
		return nil, err
	}
	feed := make([]FeedPost, 0, len(resp))
	for _, w := range resp {
		entry := FeedPost{Post: w.toModel("")}
		if w.Creator != nil {
			creator := w.Creator.toModel()
			entry.Creator = &creator
		}
		feed = append(feed, entry)
	}
	return feed, nil
}

func (c *HTTPClient) PostByID(ctx context.Context, id string) (*PostDetail, error) {
	var resp wirePost
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+id, false, nil, &resp); err != nil {
		return nil, err
	}
	detail := &PostDetail{Post: resp.toModel("")}
	if resp.Creator != nil {
		detail.Creator = resp.Creator.toModel()
	}
	return detail, nil
}

func (c *HTTPClient) ToggleLike(ctx context.Context, postID string) (*LikeResult, error) {
	var resp LikeResult
	if err := c.do(ctx, http.MethodPost, "/api/posts/"+postID+"/like", true, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) LikedPostIDs(ctx context.Context) ([]string, error) {
	var resp []string
	if err := c.do(ctx, http.MethodGet, "/api/posts/liked", true, nil, &resp); err != nil {
		return nil, err
	}
	if resp == nil {
		resp = []string{}
	}
	return resp, nil
}

func (c *HTTPClient) SubscribedCreators(ctx context.Context) ([]models.Creator, error) {
	var resp []wireSubscription
	if err := c.do(ctx, http.MethodGet, "/api/subscriptions", true, nil, &resp); err != nil {
		return nil, err
	}
	creators := make([]models.Creator, 0, len(resp))
	for _, s := range resp {
		if s.Creator == nil {
			continue
		}
		creators = append(creators, s.Creator.toModel())
	}
	return creators, nil
}

func (c *HTTPClient) Subscribe(ctx context.Context, creatorID string) error {
	body := map[string]string{"creatorId": creatorID}
	return c.do(ctx, http.MethodPost, "/api/subscriptions", true, body, nil)
}

func (c *HTTPClient) Unsubscribe(ctx context.Context, creatorID string) error {
	return c.do(ctx, http.MethodDelete, "/api/subscriptions/"+creatorID, true, nil, nil)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
