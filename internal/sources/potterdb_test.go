package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchPotterDBFollowsNextLinks(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/page1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"data":[{"attributes":{"name":"Harry Potter","house":"Gryffindor",
			"romances":["Ginny Weasley (wife)"],"wands":["holly, phoenix feather, 11 inch"]}}],
			"links":{"next":"%s/page2"}}`, srv.URL)
	})
	mux.HandleFunc("/page2", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"attributes":{"name":"Cedric Diggory","house":"Hufflepuff",
			"died":"26 June, 1995"}}],"links":{"next":null}}`))
	})

	c := NewClient(Config{PotterDBURL: srv.URL + "/page1"}, testLogger(t))
	out := c.FetchPotterDB(context.Background())
	if len(out) != 2 {
		t.Fatalf("expected 2 records across pages, got %d", len(out))
	}
	if out[0].Wand != "holly, phoenix feather, 11 inch" {
		t.Fatalf("unexpected wand: %q", out[0].Wand)
	}
	if !out[0].Alive {
		t.Fatalf("no died value should mean alive")
	}
	if out[1].Alive {
		t.Fatalf("died value should mean not alive")
	}
	if len(out[0].Romances) != 1 {
		t.Fatalf("romances not carried: %v", out[0].Romances)
	}
}

func TestFetchPotterDBStopsAtPageCeiling(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprintf(w, `{"data":[{"attributes":{"name":"Character %d"}}],
			"links":{"next":"%s/again"}}`, calls, "http://"+r.Host)
	}))
	defer srv.Close()

	c := NewClient(Config{PotterDBURL: srv.URL, MaxPages: 3}, testLogger(t))
	out := c.FetchPotterDB(context.Background())
	if calls != 3 {
		t.Fatalf("expected 3 page fetches, got %d", calls)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 records, got %d", len(out))
	}
}

func TestFetchPotterDBPartialOnError(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/page1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"data":[{"attributes":{"name":"Luna Lovegood","house":"Ravenclaw"}}],
			"links":{"next":"%s/broken"}}`, srv.URL)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	c := NewClient(Config{PotterDBURL: srv.URL + "/page1"}, testLogger(t))
	out := c.FetchPotterDB(context.Background())
	if len(out) != 1 || out[0].Name != "Luna Lovegood" {
		t.Fatalf("expected partial result from first page, got %+v", out)
	}
}
