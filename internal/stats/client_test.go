package stats

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(url string) *Client {
	c := NewClient(url, 2*time.Second)
	c.backoff = time.Millisecond
	return c
}

func TestClient_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/users/00000001/status" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"error":false,"data":{"personal_volume":120.5,"partner_level":"Silver","total_referrals":3}}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Status(context.Background(), "00000001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PersonalVolume != 120.5 || got.PartnerLevel != "Silver" || got.TotalReferrals != 3 {
		t.Fatalf("unexpected stats: %+v", got)
	}
}

func TestClient_EnvelopeErrorEqualsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":true,"error_msg":"user not found"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Status(context.Background(), "99999999")
	if !errors.Is(err, ErrService) {
		t.Fatalf("got err %v, want ErrService", err)
	}
}

func TestClient_RetriesOn5xx(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"error":false,"data":{"personal_volume":7}}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Status(context.Background(), "00000001")
	if err != nil {
		t.Fatalf("unexpected error after retries: %v", err)
	}
	if got.PersonalVolume != 7 {
		t.Fatalf("PersonalVolume = %v, want 7", got.PersonalVolume)
	}
	if calls != 3 {
		t.Fatalf("server saw %d calls, want 3", calls)
	}
}

func TestClient_NoRetryOn4xx(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Status(context.Background(), "00000001")
	if !errors.Is(err, ErrService) {
		t.Fatalf("got err %v, want ErrService", err)
	}
	if calls != 1 {
		t.Fatalf("server saw %d calls, want 1 (no retry on 4xx)", calls)
	}
}

func TestClient_Structure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/users/00000001/structure" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"error":false,"data":{"team":[{"user_id":"00000002","personal_volume":10,"team_count":2}]}}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).StructureOf(context.Background(), "00000001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Team) != 1 || got.Team[0].UserID != "00000002" || got.Team[0].TeamCount != 2 {
		t.Fatalf("unexpected structure: %+v", got)
	}
}

func TestClient_CreateUser(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/user/users/" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{"error":false,"data":{}}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).CreateUser(context.Background(), "00000002", "00000001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody == "" {
		t.Fatalf("expected a JSON body")
	}
}

func TestClient_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Status(context.Background(), "00000001")
	if !errors.Is(err, ErrService) {
		t.Fatalf("got err %v, want ErrService", err)
	}
}
