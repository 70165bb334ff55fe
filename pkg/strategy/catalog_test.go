package strategy

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/signalcore/pkg/indicator"
	"github.com/c9s/signalcore/pkg/types"
)

type fakeStrategy struct {
	Window int `json:"window"`
}

func (s *fakeStrategy) ID() string { return "fake" }

func (s *fakeStrategy) Indicators() indicator.Config {
	return indicator.Config{EWMAWindows: []int{s.Window}}
}

func (s *fakeStrategy) Evaluate(ctx context.Context, input *Input) (*types.Signal, error) {
	return nil, nil
}

func TestCatalog_New(t *testing.T) {
	catalog := NewCatalog()
	catalog.Register("fake", func(params json.RawMessage) (Strategy, error) {
		s := &fakeStrategy{Window: 7}
		if len(params) > 0 {
			if err := json.Unmarshal(params, s); err != nil {
				return nil, err
			}
		}
		return s, nil
	})

	s, err := catalog.New("fake", nil)
	require.NoError(t, err)
	assert.Equal(t, "fake", s.ID())

	s, err = catalog.New("fake", json.RawMessage(`{"window": 14}`))
	require.NoError(t, err)
	assert.Equal(t, []int{14}, s.Indicators().EWMAWindows)
}

func TestCatalog_UnknownStrategy(t *testing.T) {
	catalog := NewCatalog()

	_, err := catalog.New("nope", nil)
	assert.Error(t, err)

	var configurationErr *types.ConfigurationError
	assert.ErrorAs(t, err, &configurationErr)
}

func TestCatalog_InvalidIndicatorConfig(t *testing.T) {
	catalog := NewCatalog()
	catalog.Register("fake", func(params json.RawMessage) (Strategy, error) {
		return &fakeStrategy{Window: -1}, nil
	})

	_, err := catalog.New("fake", nil)
	assert.Error(t, err)
}

func TestCatalog_IDs(t *testing.T) {
	catalog := NewCatalog()
	catalog.Register("b", func(json.RawMessage) (Strategy, error) { return &fakeStrategy{Window: 1}, nil })
	catalog.Register("a", func(json.RawMessage) (Strategy, error) { return &fakeStrategy{Window: 1}, nil })

	assert.Equal(t, []string{"a", "b"}, catalog.IDs())
	assert.True(t, catalog.Has("a"))
	assert.False(t, catalog.Has("c"))
}
