package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookbound/internal/api"
)

func TestBackendErrorMessageSurfaces(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"insufficient balance"}`))
	}))
	defer ts.Close()

	c := api.New(ts.URL, 0)
	err := c.PayOrder(context.Background(), 5)
	if err == nil {
		t.Fatal("expected an error")
	}
	var ae *api.Error
	if !errors.As(err, &ae) {
		t.Fatalf("err = %T %v", err, err)
	}
	if ae.Status != http.StatusConflict || ae.Message != "insufficient balance" {
		t.Fatalf("error = %+v", ae)
	}
	if err.Error() != "insufficient balance" {
		t.Fatalf("message lost: %q", err.Error())
	}
}

func TestBackendErrorWithoutBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := api.New(ts.URL, 0)
	_, err := c.OrderDetail(context.Background(), 404)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !api.IsNotFound(err) {
		t.Fatalf("IsNotFound = false for %v", err)
	}
}

func TestUnreachableBackend(t *testing.T) {
	// Port 1 is never listening locally.
	c := api.New("http://127.0.0.1:1", 200*time.Millisecond)
	if _, err := c.Books(context.Background()); err == nil {
		t.Fatal("expected a transport error")
	}
}
