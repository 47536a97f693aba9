package control

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestHandler(t *testing.T) {
	s := newTestStore(t)
	srv := httptest.NewServer(NewHandler(s))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/graphql?query=" + url.QueryEscape(`{ params { layout } }`))
	if err != nil {
		t.Fatal(err)
	}
	var v1 struct {
		Data struct {
			Params struct{ Layout string }
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(&v1); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if v1.Data.Params.Layout != "overlay" {
		t.Errorf("v1 response = %+v", v1)
	}

	body := `{"query":"mutation($on: Boolean!) { run(running: $on) }","variables":{"on":true}}`
	resp, err = http.Post(srv.URL+"/api/v2/graphql", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !s.Params().Running {
		t.Errorf("v2 status %d running %v", resp.StatusCode, s.Params().Running)
	}

	resp, err = http.Post(srv.URL+"/api/v2/graphql", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed body: status %d", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/api/v1/graphql", "text/plain", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST v1: status %d", resp.StatusCode)
	}
}
