package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBasicRouter(t *testing.T) {
	t.Run("routes by method", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/things", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("list"))
		}))
		router.Handle(http.MethodPost, "/things", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))

		server := httptest.NewServer(router)
		defer server.Close()

		resp, err := http.Get(server.URL + "/things")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200 for GET, got %d", resp.StatusCode)
		}

		resp, err = http.Post(server.URL+"/things", "application/json", nil)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Errorf("expected 201 for POST, got %d", resp.StatusCode)
		}

		req, _ := http.NewRequest(http.MethodDelete, server.URL+"/things", nil)
		resp, err = http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("expected 405 for DELETE, got %d", resp.StatusCode)
		}
	})

	t.Run("path values", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/things/{id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(r.PathValue("id")))
		}))

		req := httptest.NewRequest(http.MethodGet, "/things/42", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Body.String() != "42" {
			t.Errorf("expected path value 42, got %q", rec.Body.String())
		}
	})

	t.Run("middleware order", func(t *testing.T) {
		var order []string
		mw := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(mw("first"), mw("second"))
		router.Handle(http.MethodGet, "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		router.ServeHTTP(httptest.NewRecorder(), req)

		want := []string{"first", "second", "handler"}
		if len(order) != len(want) {
			t.Fatalf("expected call order %v, got %v", want, order)
		}
		for i := range want {
			if order[i] != want[i] {
				t.Errorf("expected call order %v, got %v", want, order)
				break
			}
		}
	})
}
