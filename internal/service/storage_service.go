package service

import (
	"bytes"
	"context"
	"io"
	"strings"

	"pfolio_backend/internal/config"
	"pfolio_backend/internal/util"
	"pfolio_backend/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider 存放证明文件，返回不透明的引用
type StorageProvider interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, ref string) error
	Name() string
}

// SimulatedStorageProvider keeps nothing and hands out the fixed simulated
// reference.
type SimulatedStorageProvider struct{}

func (SimulatedStorageProvider) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	return util.SimulatedProofURL, nil
}

func (SimulatedStorageProvider) Delete(ctx context.Context, ref string) error {
	return nil
}

func (SimulatedStorageProvider) Name() string { return util.StorageSimulated }

// MinioStorageProvider MinIO存储实现
type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(ctx context.Context, cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.url(objectName), nil
}

func (p *MinioStorageProvider) Delete(ctx context.Context, ref string) error {
	objectName, ok := p.objectName(ref)
	if !ok {
		return nil
	}
	return p.Client.RemoveObject(ctx, p.Config.MinioBucket, objectName, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) Name() string { return util.StorageMinio }

func (p *MinioStorageProvider) url(objectName string) string {
	return "/" + p.Config.MinioBucket + "/" + objectName
}

func (p *MinioStorageProvider) objectName(ref string) (string, bool) {
	return strings.CutPrefix(ref, "/"+p.Config.MinioBucket+"/")
}

// StorageService 存储服务
type StorageService struct {
	Provider StorageProvider
}

// NewStorageService picks the provider named by cfg.Storage.Type. An
// unusable MinIO setup falls back to the simulated provider.
func NewStorageService(ctx context.Context, cfg *config.Config) *StorageService {
	var provider StorageProvider
	switch cfg.Storage.Type {
	case util.StorageMinio:
		p, err := NewMinioStorageProvider(ctx, &cfg.Storage)
		if err != nil {
			logger.Log.Warn("MinIO unavailable, proofs will not be stored", zap.Error(err))
		} else {
			provider = p
		}
	}

	if provider == nil {
		provider = SimulatedStorageProvider{}
	}

	logger.Log.Info("Proof storage ready", zap.String("provider", provider.Name()))
	return &StorageService{Provider: provider}
}

// Store uploads a proof and returns its reference. Upload failures degrade
// to the simulated reference so a submission is never lost to storage.
func (s *StorageService) Store(ctx context.Context, objectName string, data []byte, contentType string) string {
	ref, err := s.Provider.Upload(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		logger.Log.Warn("Proof upload failed",
			zap.String("provider", s.Provider.Name()),
			zap.String("object", objectName),
			zap.Error(err),
		)
		return util.SimulatedProofURL
	}
	return ref
}

// Remove deletes a stored proof. Errors are logged only.
func (s *StorageService) Remove(ctx context.Context, ref string) {
	if ref == "" || ref == util.SimulatedProofURL {
		return
	}
	if err := s.Provider.Delete(ctx, ref); err != nil {
		logger.Log.Warn("Proof delete failed", zap.String("ref", ref), zap.Error(err))
	}
}
