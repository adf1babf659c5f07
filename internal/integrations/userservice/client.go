package userservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Logger интерфейс логгера клиента
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с UserService (провайдер идентичности)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetUser получает пользователя и его профили студента/инструктора по username
func (c *Client) GetUser(ctx context.Context, username string) (*User, error) {
	if username == "" {
		return nil, ErrUserNotFound
	}

	endpoint := fmt.Sprintf("%s/internal/users/%s", c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	c.log.Debug("UserService request: GET %s", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("UserService request failed for username=%s: %v", username, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrUserNotFound
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.log.Error("UserService returned %d for username=%s: %s", resp.StatusCode, username, string(body))
		return nil, fmt.Errorf("%w: status code %d", ErrUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &user, nil
}

// GetStudentID возвращает ID профиля студента пользователя
func (c *Client) GetStudentID(ctx context.Context, username string) (int64, error) {
	user, err := c.GetUser(ctx, username)
	if err != nil {
		return 0, err
	}
	if user.StudentID == nil {
		c.log.Warn("User %s has no student profile", username)
		return 0, ErrNotStudent
	}
	return *user.StudentID, nil
}

// GetInstructorID возвращает ID профиля инструктора пользователя
func (c *Client) GetInstructorID(ctx context.Context, username string) (int64, error) {
	user, err := c.GetUser(ctx, username)
	if err != nil {
		return 0, err
	}
	if user.InstructorID == nil {
		c.log.Warn("User %s has no instructor profile", username)
		return 0, ErrNotInstructor
	}
	return *user.InstructorID, nil
}
