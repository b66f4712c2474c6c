package speech

import (
	"context"
	"errors"
	"testing"

	"linguabird/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCached_RepeatsHitOnce(t *testing.T) {
	next := new(testutil.MockSynthesizer)
	next.On("Synthesize", mock.Anything, "cat", "en").Return([]byte("cat-en"), nil).Once()
	next.On("Synthesize", mock.Anything, "cat", "ru").Return([]byte("cat-ru"), nil).Once()

	c, err := NewCached(next, 16)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		data, err := c.Synthesize(context.Background(), "cat", "en")
		require.NoError(t, err)
		assert.Equal(t, []byte("cat-en"), data)
	}
	data, err := c.Synthesize(context.Background(), "cat", "ru")
	require.NoError(t, err)
	assert.Equal(t, []byte("cat-ru"), data)

	next.AssertExpectations(t)
	assert.Equal(t, 2, c.Len())
}

func TestCached_FailuresAreNotCached(t *testing.T) {
	next := new(testutil.MockSynthesizer)
	next.On("Synthesize", mock.Anything, "cat", "en").Return(nil, errors.New("boom")).Once()
	next.On("Synthesize", mock.Anything, "cat", "en").Return([]byte("ok"), nil).Once()

	c, err := NewCached(next, 16)
	require.NoError(t, err)

	_, err = c.Synthesize(context.Background(), "cat", "en")
	assert.Error(t, err)

	data, err := c.Synthesize(context.Background(), "cat", "en")
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), data)
	next.AssertNumberOfCalls(t, "Synthesize", 2)
}

func TestCached_Bounded(t *testing.T) {
	next := new(testutil.MockSynthesizer)
	next.On("Synthesize", mock.Anything, mock.Anything, mock.Anything).Return([]byte("x"), nil)

	c, err := NewCached(next, 2)
	require.NoError(t, err)

	for _, w := range []string{"a", "b", "c"} {
		_, err := c.Synthesize(context.Background(), w, "en")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, c.Len())

	// "a" was evicted
	_, err = c.Synthesize(context.Background(), "a", "en")
	require.NoError(t, err)
	next.AssertNumberOfCalls(t, "Synthesize", 4)
}

func TestNewCached_InvalidSize(t *testing.T) {
	_, err := NewCached(new(testutil.MockSynthesizer), 0)
	assert.Error(t, err)
}
