package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// scoreKeys are the record fields read as a confidence value, in order of preference
var scoreKeys = []string{"score", "confidence", "probability"}

// Inferences holds the endpoint's confidence scores exactly as they travel on the wire.
//
// Accepted shapes are a JSON array of numbers, a JSON array of records carrying a
// numeric score field, or a JSON string wrapping either array (the form the classifier
// writes, since the endpoint's response text is stored verbatim). A nil value means the
// field was absent from the payload.
type Inferences json.RawMessage

// EmptyInferences returns an explicitly empty inference list
func EmptyInferences() Inferences {
	return Inferences("[]")
}

// NewTextInferences stores an endpoint response verbatim as a JSON string
func NewTextInferences(text string) (Inferences, error) {
	data, err := json.Marshal(text)
	if err != nil {
		return nil, err
	}
	return Inferences(data), nil
}

// MarshalJSON implements json.Marshaler
func (i Inferences) MarshalJSON() ([]byte, error) {
	if len(i) == 0 {
		return []byte("[]"), nil
	}
	return i, nil
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null leaves the value unset.
func (i *Inferences) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	*i = append((*i)[0:0], data...)
	return nil
}

// IsSet reports whether the field was present in the payload
func (i Inferences) IsSet() bool {
	return len(bytes.TrimSpace(i)) > 0
}

// Scores extracts the ordered confidence values. An empty list returns an empty slice.
func (i Inferences) Scores() ([]float64, error) {
	if !i.IsSet() {
		return nil, newMalformed("inferences", ErrMissingField)
	}
	raw := bytes.TrimSpace(i)

	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, newMalformed("inferences", err)
		}
		raw = bytes.TrimSpace([]byte(text))
		if len(raw) == 0 {
			return []float64{}, nil
		}
	}

	if raw[0] != '[' {
		var single float64
		if err := json.Unmarshal(raw, &single); err == nil {
			return []float64{single}, nil
		}
		return nil, newMalformed("inferences", ErrInvalidScores)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, newMalformed("inferences", err)
	}

	scores := make([]float64, 0, len(items))
	for idx, item := range items {
		score, err := parseScore(item)
		if err != nil {
			return nil, newMalformed(fmt.Sprintf("inferences[%d]", idx), err)
		}
		scores = append(scores, score)
	}
	return scores, nil
}

func parseScore(item json.RawMessage) (float64, error) {
	var value float64
	if err := json.Unmarshal(item, &value); err == nil {
		return value, nil
	}

	var record map[string]json.RawMessage
	if err := json.Unmarshal(item, &record); err != nil {
		return 0, ErrInvalidScores
	}
	for _, key := range scoreKeys {
		field, ok := record[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(field, &value); err != nil {
			return 0, fmt.Errorf("%w: %s is not a number", ErrInvalidScores, key)
		}
		return value, nil
	}
	return 0, ErrInvalidScores
}

// MaxScore returns the highest score and false when there are none
func MaxScore(scores []float64) (float64, bool) {
	if len(scores) == 0 {
		return 0, false
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s > best {
			best = s
		}
	}
	return best, true
}
