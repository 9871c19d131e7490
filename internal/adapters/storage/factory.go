package storage

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// StorageType represents the type of object store implementation
type StorageType string

const (
	StorageTypeS3    StorageType = "s3"
	StorageTypeLocal StorageType = "local"
	StorageTypeMock  StorageType = "mock"
)

// Factory creates ObjectStore instances based on configuration
type Factory struct {
	awsConfig *aws.Config
}

// NewFactory creates a new storage factory. awsConfig is only required for S3.
func NewFactory(awsConfig *aws.Config) *Factory {
	return &Factory{
		awsConfig: awsConfig,
	}
}

// Create creates an ObjectStore instance based on the provided configuration
func (f *Factory) Create(config *StorageConfig) (ObjectStore, error) {
	if config == nil {
		return nil, fmt.Errorf("storage config is required")
	}

	storageType := StorageType(strings.ToLower(config.Type))

	var store ObjectStore
	var err error

	switch storageType {
	case StorageTypeS3:
		store, err = f.createS3Store(config)
	case StorageTypeLocal:
		store, err = f.createLocalStore(config)
	case StorageTypeMock:
		store = NewMockObjectStore()
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", config.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create %s storage: %w", config.Type, err)
	}

	return store, nil
}

// createS3Store creates an Amazon S3 object store
func (f *Factory) createS3Store(config *StorageConfig) (ObjectStore, error) {
	if f.awsConfig == nil {
		return nil, fmt.Errorf("AWS configuration is required")
	}

	cfg := f.awsConfig.Copy()
	if config.Region != "" {
		cfg.Region = config.Region
	}
	return NewS3ObjectStoreFromConfig(cfg), nil
}

// createLocalStore creates a local filesystem object store
func (f *Factory) createLocalStore(config *StorageConfig) (ObjectStore, error) {
	basePath := config.BasePath
	if basePath == "" {
		basePath = "./data/objects" // Default path
	}
	return NewLocalObjectStore(basePath)
}

// RequiresAWS reports whether the configured store type needs AWS credentials
func RequiresAWS(config *StorageConfig) bool {
	return config != nil && StorageType(strings.ToLower(config.Type)) == StorageTypeS3
}
