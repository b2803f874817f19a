// Package recipe holds the normalized output types shared by the adapter and
// every transport shell.
package recipe

import "encoding/json"

// Ingredient is one raw ingredient line. Quantities are not parsed.
type Ingredient struct {
	Item string `json:"item"`
}

// Prep groups preparation data.
type Prep struct {
	Ingredients []Ingredient `json:"ingredients"`
}

// Cook groups cooking data.
type Cook struct {
	Steps []string `json:"steps"`
}

// Document is the normalized recipe returned to callers.
type Document struct {
	Title     string  `json:"title"`
	Image     *string `json:"image"`
	TotalTime int     `json:"totalTime"`
	Yields    string  `json:"yields"`
	SourceURL string  `json:"sourceUrl"`
	Prep      Prep    `json:"prep"`
	Cook      Cook    `json:"cook"`
}

// Envelope is the tagged result of a single extraction call. Exactly one of
// Data or Error is set. Err keeps the Go error for classification by the
// shells and is never serialized.
type Envelope struct {
	Success bool      `json:"success"`
	Data    *Document `json:"data,omitempty"`
	Error   string    `json:"error,omitempty"`
	Err     error     `json:"-"`
}

// OK wraps a document in a success envelope.
func OK(doc Document) Envelope {
	return Envelope{Success: true, Data: &doc}
}

// Fail wraps err in a failure envelope carrying its message.
func Fail(err error) Envelope {
	return Envelope{Success: false, Error: err.Error(), Err: err}
}

// MarshalJSON keeps the one-of invariant on the wire even for a zero value.
func (e Envelope) MarshalJSON() ([]byte, error) {
	type wire struct {
		Success bool      `json:"success"`
		Data    *Document `json:"data,omitempty"`
		Error   *string   `json:"error,omitempty"`
	}
	w := wire{Success: e.Success}
	if e.Success {
		w.Data = e.Data
		if w.Data == nil {
			w.Data = &Document{}
		}
	} else {
		msg := e.Error
		w.Error = &msg
	}
	return json.Marshal(w)
}
