package server

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/sirupsen/logrus"

	"image-pipeline/internal/adapters/inference"
	"image-pipeline/internal/adapters/storage"
	"image-pipeline/internal/config"
	"image-pipeline/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *logrus.Logger
	ObjectStore      storage.ObjectStore
	Endpoint         inference.Endpoint
	SerializeService services.SerializeService
	ClassifyService  services.ClassifyService
	FilterService    services.FilterService
	PipelineService  services.PipelineService

	// Internal dependencies
	services *services.ServiceContainer
}

// NewContainer creates a new dependency injection container, building the
// object store and inference clients described by cfg
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	storageConfig := &storage.StorageConfig{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.LocalPath,
		Region:   cfg.Storage.Region,
	}
	endpointConfig := &inference.EndpointConfig{
		Type:         cfg.Inference.Type,
		Region:       cfg.Inference.Region,
		MockResponse: cfg.Inference.MockResponse,
	}

	// Only resolve AWS credentials when a backend needs them
	var awsCfg *aws.Config
	if storage.RequiresAWS(storageConfig) || inference.RequiresAWS(endpointConfig) {
		loaded, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
		}
		awsCfg = &loaded
	}

	store, err := storage.NewFactory(awsCfg).Create(storageConfig)
	if err != nil {
		return nil, err
	}

	endpoint, err := inference.NewFactory(awsCfg).Create(endpointConfig)
	if err != nil {
		store.Close()
		return nil, err
	}

	return NewContainerWithClients(cfg, store, endpoint, config.NewLogger(cfg.Log))
}

// NewContainerWithClients wires services around already constructed clients
func NewContainerWithClients(cfg *config.Config, store storage.ObjectStore, endpoint inference.Endpoint, logger *logrus.Logger) (*Container, error) {
	if logger == nil {
		logger = config.NewLogger(cfg.Log)
	}

	serviceConfig := &services.ServiceConfig{
		Classify: services.ClassifyConfig{
			EndpointName: cfg.Inference.EndpointName,
			ContentType:  cfg.Inference.ContentType,
		},
		Filter: services.FilterConfig{
			ConfidenceThreshold: cfg.Gate.ConfidenceThreshold,
		},
	}

	serviceContainer, err := services.NewServiceContainer(store, endpoint, serviceConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	return &Container{
		Config:           cfg,
		Logger:           logger,
		ObjectStore:      store,
		Endpoint:         endpoint,
		SerializeService: serviceContainer.SerializeService,
		ClassifyService:  serviceContainer.ClassifyService,
		FilterService:    serviceContainer.FilterService,
		PipelineService:  serviceContainer.PipelineService,
		services:         serviceContainer,
	}, nil
}

// Services returns the underlying service container
func (c *Container) Services() *services.ServiceContainer {
	return c.services
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.ObjectStore != nil {
		if err := c.ObjectStore.Close(); err != nil {
			return fmt.Errorf("failed to close object store: %w", err)
		}
	}
	return nil
}
