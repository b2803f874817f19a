package recipe

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestEnvelope_FailureOmitsData(t *testing.T) {
	b, err := json.Marshal(Fail(errors.New("URL argument is required")))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"success":false,"error":"URL argument is required"}` {
		t.Fatalf("got %s", b)
	}
}

func TestEnvelope_SuccessOmitsError(t *testing.T) {
	img := "http://img"
	env := OK(Document{Title: "T", Image: &img, SourceURL: "http://a", Prep: Prep{Ingredients: []Ingredient{}}, Cook: Cook{Steps: []string{}}})
	b, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"success":true,"data":{"title":"T","image":"http://img","totalTime":0,"yields":"","sourceUrl":"http://a","prep":{"ingredients":[]},"cook":{"steps":[]}}}`
	if string(b) != want {
		t.Fatalf("got  %s\nwant %s", b, want)
	}
}

// An empty failure message still produces an error key, keeping exactly one
// of data/error on the wire.
func TestEnvelope_ZeroValueHasErrorKey(t *testing.T) {
	b, _ := json.Marshal(Envelope{})
	if string(b) != `{"success":false,"error":""}` {
		t.Fatalf("got %s", b)
	}
}
