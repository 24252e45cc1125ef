package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.Username != "ana" || body.Password != "secreto" {
			t.Errorf("credentials = %+v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-1", "username": "ana", "userId": 42,
		})
	}))
	defer srv.Close()

	sess, err := New(srv.URL).Login(context.Background(), "ana", "secreto")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if sess.UserID != 42 || sess.Username != "ana" || sess.Token != "tok-1" {
		t.Errorf("Login() = %+v", sess)
	}
}

func TestLoginBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"mensaje": "credenciales incorrectas"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Login(context.Background(), "ana", "mal")
	if err == nil {
		t.Fatal("Login() expected error")
	}
	if got := err.Error(); got != "login: credenciales incorrectas" {
		t.Errorf("error = %q", got)
	}
}

func TestRegister(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/registrar" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"mensaje": "ok"})
	}))
	defer srv.Close()

	if err := New(srv.URL).Register(context.Background(), "ana", "secreto"); err != nil {
		t.Errorf("Register() error = %v", err)
	}
}

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q", got)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer f.Close()
		if hdr.Filename != "foto.png" {
			t.Errorf("filename = %q", hdr.Filename)
		}
		json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn.example.com/foto.png"})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "foto.png")
	if err := os.WriteFile(path, []byte("png-bytes"), 0o600); err != nil {
		t.Fatal(err)
	}

	url, err := New(srv.URL).Upload(context.Background(), "tok-1", path)
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if url != "https://cdn.example.com/foto.png" {
		t.Errorf("Upload() url = %q", url)
	}
}

func TestUploadMissingFile(t *testing.T) {
	_, err := New("http://localhost:0").Upload(context.Background(), "t", "/no/such/file.png")
	if err == nil {
		t.Fatal("Upload() expected error for missing file")
	}
}
