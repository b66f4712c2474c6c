package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"linguabird/internal/domain"
	"linguabird/internal/settings"
	"linguabird/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRenderService(t *testing.T, asm Assembler, history *HistoryService) (*RenderService, *settings.Store) {
	t.Helper()
	store, err := settings.NewStore(16)
	require.NoError(t, err)
	svc := NewRenderService(asm, store, domain.DefaultDirections(), history, time.Minute, testutil.NewTestLogger())
	return svc, store
}

func TestRenderService_Render(t *testing.T) {
	asm := new(testutil.MockAssembler)
	repo := new(testutil.MockWordRepository)
	svc, store := newRenderService(t, asm, NewHistoryService(repo))

	store.SetDirection(1, domain.DirectionEnUk)
	store.SetRepeatCount(1, 2)

	pairs := []domain.WordPair{{Source: "cat", Target: "кіт"}, {Source: "dog", Target: "пес"}}
	want := domain.Settings{RepeatCount: 2, PauseMs: 500, Direction: domain.DirectionEnUk}

	asm.On("Assemble", mock.Anything, pairs, want).Return([]byte("mp3"), nil)
	repo.On("SaveWords", int64(1), domain.DirectionEnUk, pairs).Return(nil)

	r, err := svc.Render(context.Background(), 1, "cat - кіт\n\ndog = пес\nnoise")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), r.Audio)
	assert.Equal(t, pairs, r.Pairs)
	assert.Equal(t, want, r.Settings)
	assert.Equal(t, "english_words_uk.mp3", r.Profile.FileName())

	asm.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestRenderService_Render_NoPairs(t *testing.T) {
	asm := new(testutil.MockAssembler)
	svc, _ := newRenderService(t, asm, nil)

	_, err := svc.Render(context.Background(), 1, "just some text\nwithout separators")
	assert.ErrorIs(t, err, domain.ErrNoPairsFound)
	asm.AssertNotCalled(t, "Assemble", mock.Anything, mock.Anything, mock.Anything)
}

func TestRenderService_Render_FailureSkipsHistory(t *testing.T) {
	asm := new(testutil.MockAssembler)
	repo := new(testutil.MockWordRepository)
	svc, _ := newRenderService(t, asm, NewHistoryService(repo))

	failure := &domain.SynthesisError{Text: "cat", Language: "en", Err: errors.New("503")}
	asm.On("Assemble", mock.Anything, mock.Anything, mock.Anything).Return(nil, failure)

	_, err := svc.Render(context.Background(), 1, "cat - кот")
	assert.ErrorIs(t, err, domain.ErrSynthesisFailure)
	repo.AssertNotCalled(t, "SaveWords", mock.Anything, mock.Anything, mock.Anything)
}

func TestRenderService_Render_HistoryErrorIsNotFatal(t *testing.T) {
	asm := new(testutil.MockAssembler)
	repo := new(testutil.MockWordRepository)
	svc, _ := newRenderService(t, asm, NewHistoryService(repo))

	asm.On("Assemble", mock.Anything, mock.Anything, mock.Anything).Return([]byte("mp3"), nil)
	repo.On("SaveWords", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down"))

	r, err := svc.Render(context.Background(), 1, "cat - кот")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), r.Audio)
}

func TestRenderService_RenderPairs_UnknownDirection(t *testing.T) {
	asm := new(testutil.MockAssembler)
	svc, _ := newRenderService(t, asm, nil)

	set := domain.DefaultSettings()
	set.Direction = "en-xx"

	_, err := svc.RenderPairs(context.Background(), 1, testutil.NewTestPairs(1), set)
	assert.ErrorIs(t, err, domain.ErrUnknownDirection)
	asm.AssertNotCalled(t, "Assemble", mock.Anything, mock.Anything, mock.Anything)
}

func TestRenderService_RenderPairs_AppliesTimeout(t *testing.T) {
	asm := new(testutil.MockAssembler)
	svc, _ := newRenderService(t, asm, nil)

	hasDeadline := mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})
	asm.On("Assemble", hasDeadline, mock.Anything, mock.Anything).Return([]byte("mp3"), nil)

	_, err := svc.RenderPairs(context.Background(), 1, testutil.NewTestPairs(2), domain.DefaultSettings())
	require.NoError(t, err)
	asm.AssertExpectations(t)
}

func TestRenderService_HistoryEnabled(t *testing.T) {
	svc, _ := newRenderService(t, new(testutil.MockAssembler), nil)
	assert.False(t, svc.HistoryEnabled())

	svc, _ = newRenderService(t, new(testutil.MockAssembler), NewHistoryService(new(testutil.MockWordRepository)))
	assert.True(t, svc.HistoryEnabled())
}

func TestRenderService_Remember(t *testing.T) {
	repo := new(testutil.MockWordRepository)
	pairs := testutil.NewTestPairs(2)
	repo.On("SaveWords", int64(3), domain.DirectionEnRu, pairs).Return(nil)

	svc, _ := newRenderService(t, new(testutil.MockAssembler), NewHistoryService(repo))
	svc.Remember(3, domain.DirectionEnRu, pairs)
	repo.AssertExpectations(t)

	// no history configured is a no-op
	svc, _ = newRenderService(t, new(testutil.MockAssembler), nil)
	svc.Remember(3, domain.DirectionEnRu, pairs)
}
