package transform

import (
	"reflect"
	"testing"
)

func TestValue_LinkFields(t *testing.T) {
	got := Value("Actors", "Chris Pratt, Zoe Saldaña")
	want := []string{"[[Chris Pratt]]", "[[Zoe Saldaña]]"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Actors = %v, want %v", got, want)
	}
}

func TestValue_LinkFieldsKeepDuplicatesDropEmpties(t *testing.T) {
	got := Value("Genre", "Action, , Action,  Sci-Fi ")
	want := []string{"[[Action]]", "[[Action]]", "[[Sci-Fi]]"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Genre = %v, want %v", got, want)
	}
}

func TestValue_Runtime(t *testing.T) {
	if got := Value("Runtime", "136 min"); got != 136 {
		t.Errorf("Runtime = %v (%T), want 136", got, got)
	}
	// No leading digits: raw string passes through.
	if got := Value("Runtime", "N/A"); got != "N/A" {
		t.Errorf("Runtime fallback = %v, want N/A", got)
	}
}

func TestValue_Year(t *testing.T) {
	if got := Value("Year", "2017"); got != 2017 {
		t.Errorf("Year = %v (%T), want 2017", got, got)
	}
	if got := Value("Year", "unknown"); got != "unknown" {
		t.Errorf("Year fallback = %v", got)
	}
	// Series ranges do not parse as a whole integer.
	if got := Value("Year", "2011–2019"); got != "2011–2019" {
		t.Errorf("Year range = %v", got)
	}
}

func TestValue_Released(t *testing.T) {
	if got := Value("Released", "05 May 2017"); got != "2017-05-05" {
		t.Errorf("Released = %v, want 2017-05-05", got)
	}
	if got := Value("Released", "garbled"); got != "garbled" {
		t.Errorf("Released fallback = %v", got)
	}
}

func TestValue_OtherFieldsUnchanged(t *testing.T) {
	if got := Value("Plot", "A thing happens."); got != "A thing happens." {
		t.Errorf("Plot = %v", got)
	}
}

func TestValue_NonStringPassesThrough(t *testing.T) {
	ratings := []map[string]string{{"Source": "Internet Movie Database", "Value": "8.0/10"}}
	got := Value("Ratings", ratings)
	if !reflect.DeepEqual(got, ratings) {
		t.Errorf("Ratings = %v", got)
	}
}
