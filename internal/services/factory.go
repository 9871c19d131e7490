package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"image-pipeline/internal/adapters/inference"
	"image-pipeline/internal/adapters/storage"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	SerializeService SerializeService
	ClassifyService  ClassifyService
	FilterService    FilterService
	PipelineService  PipelineService
}

// ServiceConfig holds configuration for services
type ServiceConfig struct {
	Classify ClassifyConfig
	Filter   FilterConfig
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(store storage.ObjectStore, endpoint inference.Endpoint, config *ServiceConfig, logger logrus.FieldLogger) (*ServiceContainer, error) {
	if store == nil {
		return nil, fmt.Errorf("object store cannot be nil")
	}
	if endpoint == nil {
		return nil, fmt.Errorf("inference endpoint cannot be nil")
	}
	if config == nil {
		return nil, fmt.Errorf("service config cannot be nil")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	serializeService := NewSerializeService(store, logger.WithField("function", "serialize"))
	classifyService := NewClassifyService(endpoint, config.Classify, logger.WithField("function", "classify"))
	filterService := NewFilterService(config.Filter, logger.WithField("function", "filter"))

	return &ServiceContainer{
		SerializeService: serializeService,
		ClassifyService:  classifyService,
		FilterService:    filterService,
		PipelineService:  NewPipelineService(serializeService, classifyService, filterService, logger.WithField("function", "pipeline")),
	}, nil
}
