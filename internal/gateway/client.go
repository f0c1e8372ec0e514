// Package gateway is the HTTP client for the MindMate service. It attaches
// the bearer credential to every call and turns failures into RemoteError
// values; on a 401 it additionally invalidates the stored credential. It
// never retries and never redirects.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"mindmate.app/client/internal/auth"
	"mindmate.app/client/internal/chat"
)

type Client struct {
	http   *resty.Client
	tokens *auth.TokenStore
	log    *zap.Logger
}

func New(baseURL string, timeout time.Duration, tokens *auth.TokenStore, log *zap.Logger) *Client {
	c := &Client{
		http:   resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
		tokens: tokens,
		log:    log,
	}

	c.http.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if tok := tokens.Token(); tok != "" {
			r.SetHeader("Authorization", "Bearer "+tok)
		}
		return nil
	})

	c.http.OnAfterResponse(func(_ *resty.Client, r *resty.Response) error {
		if r.StatusCode() == http.StatusUnauthorized {
			log.Info("credential rejected by service, clearing token")
			if err := tokens.Clear(); err != nil {
				log.Warn("failed to clear token", zap.Error(err))
			}
		}
		return nil
	})

	return c
}

type sessionDTO struct {
	ID        string  `json:"id"`
	Title     *string `json:"title"`
	CreatedAt string  `json:"created_at"`
}

type messageDTO struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	Reply        string  `json:"reply"`
	SessionTitle *string `json:"session_title"`
}

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	AccessToken string `json:"access_token"`
}

func (c *Client) CreateSession(ctx context.Context) (chat.Session, error) {
	var dto sessionDTO
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&dto).
		Post("/sessions")
	if err := c.checkResponse("create session", resp, err); err != nil {
		return chat.Session{}, err
	}
	return toSession(dto), nil
}

func (c *Client) ListSessions(ctx context.Context) ([]chat.Session, error) {
	var dtos []sessionDTO
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&dtos).
		Get("/sessions")
	if err := c.checkResponse("list sessions", resp, err); err != nil {
		return nil, err
	}
	sessions := make([]chat.Session, 0, len(dtos))
	for _, dto := range dtos {
		sessions = append(sessions, toSession(dto))
	}
	return sessions, nil
}

// DeleteSession treats a 404 as success: the session is gone either way.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete("/sessions/" + id)
	if err == nil && resp.StatusCode() == http.StatusNotFound {
		return nil
	}
	return c.checkResponse("delete session", resp, err)
}

func (c *Client) SessionMessages(ctx context.Context, id string) ([]chat.Message, error) {
	var dtos []messageDTO
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&dtos).
		Get("/sessions/" + id + "/messages")
	if err := c.checkResponse("load messages", resp, err); err != nil {
		return nil, err
	}
	messages := make([]chat.Message, 0, len(dtos))
	for _, dto := range dtos {
		messages = append(messages, chat.Message{
			ID:        dto.ID,
			SessionID: id,
			Role:      chat.Role(dto.Role),
			Content:   dto.Content,
			SentAt:    parseTime(dto.CreatedAt),
		})
	}
	return messages, nil
}

func (c *Client) SendChat(ctx context.Context, sessionID, message string) (chat.Turn, error) {
	var dto chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{SessionID: sessionID, Message: message}).
		SetResult(&dto).
		Post("/chat")
	if err := c.checkResponse("chat", resp, err); err != nil {
		return chat.Turn{}, err
	}
	turn := chat.Turn{Reply: dto.Reply}
	if dto.SessionTitle != nil {
		turn.SessionTitle = *dto.SessionTitle
	}
	return turn, nil
}

// Register creates an account and stores the issued token.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/auth/register", email, password)
}

// Login exchanges credentials for a token and stores it.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/auth/login", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) error {
	var dto authResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(authRequest{Email: email, Password: password}).
		SetResult(&dto).
		Post(path)
	if err := c.checkResponse("authenticate", resp, err); err != nil {
		return err
	}
	if dto.AccessToken == "" {
		return &RemoteError{Op: "authenticate", Status: resp.StatusCode(), Err: fmt.Errorf("no token in response")}
	}
	return c.tokens.Save(dto.AccessToken)
}

func (c *Client) checkResponse(op string, resp *resty.Response, err error) error {
	if err != nil {
		c.log.Warn("request failed", zap.String("op", op), zap.Error(err))
		return &RemoteError{Op: op, Err: err}
	}
	if resp.IsSuccess() {
		return nil
	}

	status := resp.StatusCode()
	c.log.Warn("request rejected",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("body", resp.String()))

	if status == http.StatusUnauthorized {
		return &RemoteError{Op: op, Status: status, Err: ErrUnauthorized}
	}
	return &RemoteError{Op: op, Status: status, Err: fmt.Errorf("%s", errorDetail(resp))}
}

// errorDetail pulls the service's {"detail": "..."} message out of an error
// body, falling back to the raw body.
func errorDetail(resp *resty.Response) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Detail != "" {
		return body.Detail
	}
	return resp.String()
}

func toSession(dto sessionDTO) chat.Session {
	sess := chat.Session{ID: dto.ID, CreatedAt: parseTime(dto.CreatedAt)}
	if dto.Title != nil {
		sess.Title = *dto.Title
	}
	return sess
}

// parseTime tolerates both RFC 3339 and the zoneless form the service
// emits. A zero time is fine; nothing orders by it client-side.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
