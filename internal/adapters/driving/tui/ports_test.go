package tui

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uakbr/github-blog-crm/internal/core/domain"
	"github.com/uakbr/github-blog-crm/internal/core/services"
)

// MockPostService implements driving.PostService for testing.
type MockPostService struct {
	collection *domain.Collection
	loadErr    error
}

func (m *MockPostService) Load(_ context.Context) (*domain.Collection, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.collection, nil
}

func (m *MockPostService) Refresh(ctx context.Context) (*domain.Collection, error) {
	return m.Load(ctx)
}

func (m *MockPostService) Current(_ context.Context) (*domain.Collection, error) {
	if m.collection == nil {
		return nil, domain.ErrNotLoaded
	}
	return m.collection, nil
}

func (m *MockPostService) Get(_ context.Context, id string) (*domain.Post, error) {
	post, ok := m.collection.Find(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &post, nil
}

func (m *MockPostService) Query(ctx context.Context, q domain.PostQuery) ([]domain.Post, error) {
	collection, err := m.Current(ctx)
	if err != nil {
		return nil, err
	}
	return services.ApplyQuery(collection.Posts, q), nil
}

func (m *MockPostService) Index(_ context.Context) (*domain.PostIndex, error) {
	index := services.BuildIndex(m.collection)
	return &index, nil
}

func (m *MockPostService) Watch(_ context.Context, _ <-chan struct{}, _ time.Duration,
	_ func(*domain.Collection, error)) error {
	return nil
}

func TestNewPorts(t *testing.T) {
	mock := &MockPostService{}

	ports := NewPorts(mock)

	require.NotNil(t, ports)
	assert.Equal(t, mock, ports.Posts)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate_MissingPostService(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingPostService)

	var ports *Ports
	assert.ErrorIs(t, ports.Validate(), ErrMissingPostService)
}
