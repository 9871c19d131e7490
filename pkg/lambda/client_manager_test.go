package lambda

import (
	"context"
	"testing"

	"image-pipeline/internal/config"
)

func newTestConfig(t *testing.T) *config.Config {
	return &config.Config{
		Environment: "test",
		Log:         config.LogConfig{Level: "error", Format: "json"},
		Storage:     config.StorageConfig{Type: "mock"},
		Inference: config.InferenceConfig{
			Type:         "mock",
			EndpointName: "image-classification",
			ContentType:  "application/x-image",
		},
		Gate: config.GateConfig{ConfidenceThreshold: 0.93},
	}
}

func TestClientManager_Lifecycle(t *testing.T) {
	cm := &ClientManager{}
	ctx := context.Background()

	if cm.IsHealthy() {
		t.Fatal("Expected a fresh manager to be unhealthy")
	}

	if err := cm.Initialize(ctx, newTestConfig(t)); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if !cm.IsHealthy() {
		t.Fatal("Expected manager to be healthy after Initialize")
	}

	first, err := cm.GetContainer(ctx)
	if err != nil {
		t.Fatalf("GetContainer failed: %v", err)
	}
	second, err := cm.GetContainer(ctx)
	if err != nil {
		t.Fatalf("GetContainer failed: %v", err)
	}
	if first != second {
		t.Error("Expected the container to be reused across calls")
	}
	if cm.LastUsed().IsZero() {
		t.Error("Expected LastUsed to be set")
	}

	if err := cm.Cleanup(); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if cm.IsHealthy() {
		t.Fatal("Expected manager to be unhealthy after Cleanup")
	}

	if err := cm.Initialize(ctx, newTestConfig(t)); err != nil {
		t.Fatalf("Initialize after Cleanup failed: %v", err)
	}
	third, err := cm.GetContainer(ctx)
	if err != nil {
		t.Fatalf("GetContainer failed: %v", err)
	}
	if third == first {
		t.Error("Expected a fresh container after Cleanup")
	}
}

func TestClientManager_InitializeError(t *testing.T) {
	cm := &ClientManager{}
	cfg := newTestConfig(t)
	cfg.Inference.Type = "bedrock"

	if err := cm.Initialize(context.Background(), cfg); err == nil {
		t.Fatal("Expected error for unsupported inference type")
	}
	// The first result is kept
	if err := cm.Initialize(context.Background(), newTestConfig(t)); err == nil {
		t.Error("Expected the initialization error to be sticky")
	}
	if cm.IsHealthy() {
		t.Error("Expected manager to be unhealthy")
	}
}

func TestGetClientManager(t *testing.T) {
	if GetClientManager() != GetClientManager() {
		t.Error("Expected a single global client manager")
	}
}
