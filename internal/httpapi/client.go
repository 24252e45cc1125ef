package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pcanos/charla/model"
)

// Client talks to the backend's HTTP endpoints: login, register, upload.
type Client struct {
	base string
	http *http.Client
}

func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// apiError is the backend's error body shape.
type apiError struct {
	Message string `json:"mensaje"`
}

func decodeError(resp *http.Response) error {
	var e apiError
	if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Message != "" {
		return fmt.Errorf("%s", e.Message)
	}
	return fmt.Errorf("unexpected status %d", resp.StatusCode)
}

func (c *Client) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, username, password string) (model.Session, error) {
	resp, err := c.postJSON(ctx, "/api/login", credentials{Username: username, Password: password})
	if err != nil {
		return model.Session{}, fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.Session{}, fmt.Errorf("login: %w", decodeError(resp))
	}
	var sess model.Session
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		return model.Session{}, fmt.Errorf("login: decode response: %w", err)
	}
	return sess, nil
}

// Register creates an account. The caller logs in afterwards; the backend
// does not return a session here.
func (c *Client) Register(ctx context.Context, username, password string) error {
	resp, err := c.postJSON(ctx, "/api/registrar", credentials{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("register: %w", decodeError(resp))
	}
	return nil
}

// Upload sends a local file as multipart form data and returns the stored
// URL. The bearer token authenticates the request.
func (c *Client) Upload(ctx context.Context, token, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload: %w", decodeError(resp))
	}
	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("upload: decode response: %w", err)
	}
	return out.URL, nil
}
