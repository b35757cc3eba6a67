package omdb

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"

	"github.com/perhult/reelsync/internal/apperr"
)

const successBody = `{
	"Title": "Guardians of the Galaxy Vol. 2",
	"Year": "2017",
	"Released": "05 May 2017",
	"Runtime": "136 min",
	"Genre": "Action, Adventure, Comedy",
	"Actors": "Chris Pratt, Zoe Saldana, Dave Bautista",
	"Plot": "The Guardians struggle to keep together as a team.",
	"Type": "movie",
	"DVD": "N/A",
	"Ratings": [
		{"Source": "Internet Movie Database", "Value": "7.6/10"},
		{"Source": "Rotten Tomatoes", "Value": "85%"}
	],
	"Response": "True"
}`

func testClient() *Client {
	c := NewClient("testkey", 0)
	httpmock.ActivateNonDefault(c.hc)
	return c
}

func TestLookup_Success(t *testing.T) {
	c := testClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", DefaultBaseURL,
		httpmock.NewStringResponder(200, successBody))

	rec, err := c.Lookup(context.Background(), "tt3896198")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if rec.Failed() {
		t.Fatal("record should not be failed")
	}
	if rec.Title() != "Guardians of the Galaxy Vol. 2" {
		t.Errorf("title = %q", rec.Title())
	}
	if !rec.IsMovie() {
		t.Error("expected movie type")
	}

	// Open-ended string field.
	v, ok := rec.Field("Runtime")
	if !ok || v.Str != "136 min" {
		t.Errorf("Runtime = %+v ok=%v", v, ok)
	}

	// Ratings decode as a pair list, not a string.
	v, ok = rec.Field("Ratings")
	if !ok || !v.IsRatings() || len(v.Ratings) != 2 {
		t.Fatalf("Ratings = %+v ok=%v", v, ok)
	}
	if v.Ratings[1].Source != "Rotten Tomatoes" {
		t.Errorf("rating source = %q", v.Ratings[1].Source)
	}

	// Absent field is distinct from sentinel.
	if _, ok := rec.Field("BoxOffice"); ok {
		t.Error("BoxOffice should be absent")
	}
	v, ok = rec.Field("DVD")
	if !ok || v.Str != NotAvailable {
		t.Errorf("DVD = %+v ok=%v, want present N/A", v, ok)
	}
}

func TestLookup_QueryParameters(t *testing.T) {
	c := testClient()
	defer httpmock.DeactivateAndReset()

	var gotID, gotKey string
	httpmock.RegisterResponder("GET", DefaultBaseURL,
		func(req *http.Request) (*http.Response, error) {
			gotID = req.URL.Query().Get("i")
			gotKey = req.URL.Query().Get("apikey")
			return httpmock.NewStringResponse(200, `{"Response":"False","Error":"x"}`), nil
		})

	if _, err := c.Lookup(context.Background(), "tt0468569"); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if gotID != "tt0468569" {
		t.Errorf("i = %q", gotID)
	}
	if gotKey != "testkey" {
		t.Errorf("apikey = %q", gotKey)
	}
}

func TestLookup_ProviderFailureNotAnError(t *testing.T) {
	c := testClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", DefaultBaseURL,
		httpmock.NewStringResponder(200, `{"Response":"False","Error":"Incorrect IMDb ID."}`))

	rec, err := c.Lookup(context.Background(), "tt0000000")
	if err != nil {
		t.Fatalf("provider failure must not surface as transport error: %v", err)
	}
	if !rec.Failed() {
		t.Fatal("record should be failed")
	}
	if rec.Error != "Incorrect IMDb ID." {
		t.Errorf("error = %q", rec.Error)
	}
}

func TestLookup_TransportFailure(t *testing.T) {
	c := testClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", DefaultBaseURL,
		httpmock.NewErrorResponder(errors.New("dial tcp: timeout")))

	if _, err := c.Lookup(context.Background(), "tt0468569"); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestLookup_NonOKStatus(t *testing.T) {
	c := testClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", DefaultBaseURL,
		httpmock.NewStringResponder(401, `{"Response":"False","Error":"Invalid API key!"}`))

	if _, err := c.Lookup(context.Background(), "tt0468569"); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestLookup_MissingKey(t *testing.T) {
	c := NewClient("", 0)
	if _, err := c.Lookup(context.Background(), "tt0468569"); !errors.Is(err, apperr.ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
}
