package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"pfolio_backend/internal/config"
	"pfolio_backend/internal/util"
)

type recordingProvider struct {
	uploads   map[string][]byte
	deleted   []string
	uploadErr error
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{uploads: make(map[string][]byte)}
}

func (p *recordingProvider) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if p.uploadErr != nil {
		return "", p.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	p.uploads[objectName] = data
	return "/proofs/" + objectName, nil
}

func (p *recordingProvider) Delete(ctx context.Context, ref string) error {
	p.deleted = append(p.deleted, ref)
	return nil
}

func (p *recordingProvider) Name() string { return "recording" }

func TestNewStorageService_DefaultsToSimulated(t *testing.T) {
	svc := NewStorageService(context.Background(), &config.Config{})
	assert.Equal(t, util.StorageSimulated, svc.Provider.Name())

	ref := svc.Store(context.Background(), "t1/p1.pdf", []byte("%PDF"), util.MimePDF)
	assert.Equal(t, util.SimulatedProofURL, ref)
}

func TestStorageService_StoreAndRemove(t *testing.T) {
	provider := newRecordingProvider()
	svc := &StorageService{Provider: provider}

	ref := svc.Store(context.Background(), "t1/p1.pdf", []byte("%PDF"), util.MimePDF)
	assert.Equal(t, "/proofs/t1/p1.pdf", ref)
	assert.Equal(t, []byte("%PDF"), provider.uploads["t1/p1.pdf"])

	svc.Remove(context.Background(), ref)
	svc.Remove(context.Background(), "")
	svc.Remove(context.Background(), util.SimulatedProofURL)
	assert.Equal(t, []string{"/proofs/t1/p1.pdf"}, provider.deleted)
}

func TestStorageService_UploadFailureDegrades(t *testing.T) {
	provider := newRecordingProvider()
	provider.uploadErr = errors.New("bucket gone")
	svc := &StorageService{Provider: provider}

	ref := svc.Store(context.Background(), "t1/p1.pdf", []byte("%PDF"), util.MimePDF)
	assert.Equal(t, util.SimulatedProofURL, ref)
}

func TestMinioStorageProvider_ObjectName(t *testing.T) {
	p := &MinioStorageProvider{Config: &config.StorageConfig{MinioBucket: "proofs"}}

	assert.Equal(t, "/proofs/t1/p1.pdf", p.url("t1/p1.pdf"))

	name, ok := p.objectName("/proofs/t1/p1.pdf")
	assert.True(t, ok)
	assert.Equal(t, "t1/p1.pdf", name)

	_, ok = p.objectName("Simulated_URL_PDF")
	assert.False(t, ok)
}
