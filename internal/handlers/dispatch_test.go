package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"image-pipeline/internal/services"
)

func TestDispatcher_Resolve(t *testing.T) {
	f := newFixture(t, "[0.99]")
	d := NewDispatcher(f.handler)

	tests := []struct {
		name     string
		function string
		want     string
	}{
		{name: "serializer", function: "serializeImageData", want: "serialize"},
		{name: "classifier", function: "image-classification-stage", want: "classify"},
		{name: "classifier upper case", function: "ClassifyImage", want: "classify"},
		{name: "filter", function: "filterInferences", want: "filter"},
		{name: "confidence", function: "lowConfidenceGate", want: "filter"},
		{name: "first hint wins", function: "serialize-then-filter", want: "serialize"},
		{name: "no match", function: "resize-images", want: ""},
		{name: "empty", function: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Stage(tt.function); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
			if (d.Resolve(tt.function) == nil) != (tt.want == "") {
				t.Errorf("Resolve disagrees with Stage for %q", tt.function)
			}
		})
	}
}

func TestDispatcher_DefaultResponse(t *testing.T) {
	f := newFixture(t, "[0.99]")
	d := NewDispatcher(f.handler).WithFunctionName("thumbnailer")

	resp, err := d.Handle(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"statusCode":401,"body":"Not a valid function name was called"}`
	if string(data) != want {
		t.Errorf("Expected %s, got %s", want, data)
	}
}

func TestDispatcher_RoutesToStage(t *testing.T) {
	f := newFixture(t, "[0.1]")

	serialize := NewDispatcher(f.handler).WithFunctionName("serializeImageData")
	resp, err := serialize.Handle(context.Background(), json.RawMessage(`{"s3_bucket":"bucket","s3_key":"test/cat.png"}`))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}

	event, _ := json.Marshal(resp)
	classify := NewDispatcher(f.handler).WithFunctionName("classification")
	classified, err := classify.Handle(context.Background(), event)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	event, _ = json.Marshal(classified)
	filter := NewDispatcher(f.handler).WithFunctionName("filterLowConfidence")
	_, err = filter.Handle(context.Background(), event)
	if !services.IsThresholdNotMet(err) {
		t.Errorf("Expected the gate error to propagate, got %v", err)
	}
}
