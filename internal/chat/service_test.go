package chat_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizmate-lambda/internal/chat"
	"github.com/saulo-duarte/quizmate-lambda/internal/completion"
	"github.com/saulo-duarte/quizmate-lambda/internal/profile"
)

type completionCall struct {
	system string
	user   string
}

type fakeProvider struct {
	mu    sync.Mutex
	reply string
	err   error
	calls []completionCall
}

func (f *fakeProvider) Complete(_ context.Context, system, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, completionCall{system: system, user: user})
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeProvider) lastCall(t *testing.T) completionCall {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

func newRepo(t *testing.T) profile.Repository {
	t.Helper()
	repo, err := profile.NewJSONRepository(filepath.Join(t.TempDir(), "memory.json"))
	require.NoError(t, err)
	return repo
}

func TestChat_NewUser(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	provider := &fakeProvider{reply: "Plants use sunlight to make glucose."}
	svc := chat.NewService(repo, profile.NewLocker(), provider, 10)

	reply, err := svc.Chat(ctx, chat.ChatRequest{Message: "Explain photosynthesis", Username: "alice", UserClass: "9"})
	require.NoError(t, err)
	assert.Equal(t, "Plants use sunlight to make glucose.", reply)

	p, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "9", p.Grade)
	assert.Zero(t, p.QuizzesTaken)
	require.Len(t, p.History, 2)
	assert.Equal(t, profile.SenderUser, p.History[0].Sender)
	assert.Equal(t, "Explain photosynthesis", p.History[0].Text)
	assert.Equal(t, profile.SenderAI, p.History[1].Sender)
	assert.Equal(t, reply, p.History[1].Text)

	call := provider.lastCall(t)
	assert.Equal(t, "Explain photosynthesis", call.user)
	assert.Contains(t, call.system, "Student name: alice")
	assert.Contains(t, call.system, "USER: Explain photosynthesis")
}

func TestChat_ProviderFailureKeepsUserTurn(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	provider := &fakeProvider{err: &completion.ProviderError{StatusCode: 503, Payload: "overloaded"}}
	svc := chat.NewService(repo, profile.NewLocker(), provider, 10)

	_, err := svc.Chat(ctx, chat.ChatRequest{Message: "What is DNA?", Username: "bob", UserClass: "10"})
	var perr *completion.ProviderError
	require.True(t, errors.As(err, &perr))

	p, err := repo.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Len(t, p.History, 1)
	assert.Equal(t, profile.SenderUser, p.History[0].Sender)
}

func TestChat_Validation(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	provider := &fakeProvider{reply: "ok"}
	svc := chat.NewService(repo, profile.NewLocker(), provider, 10)

	tests := []struct {
		name string
		req  chat.ChatRequest
		want error
	}{
		{"MissingMessage", chat.ChatRequest{Username: "alice", UserClass: "9"}, chat.ErrMissingMessage},
		{"BlankMessage", chat.ChatRequest{Message: "   ", Username: "alice", UserClass: "9"}, chat.ErrMissingMessage},
		{"MissingUsername", chat.ChatRequest{Message: "hi", UserClass: "9"}, chat.ErrMissingUsername},
		{"NewUserWithoutClass", chat.ChatRequest{Message: "hi", Username: "carol"}, chat.ErrMissingUserClass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Chat(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	p, err := repo.FindByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Empty(t, provider.calls)
}

func TestChat_ExistingUserKeepsGrade(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	svc := chat.NewService(repo, profile.NewLocker(), &fakeProvider{reply: "ok"}, 10)

	_, err := svc.Chat(ctx, chat.ChatRequest{Message: "hi", Username: "dave", UserClass: "7"})
	require.NoError(t, err)
	_, err = svc.Chat(ctx, chat.ChatRequest{Message: "again", Username: "dave"})
	require.NoError(t, err)
	_, err = svc.Chat(ctx, chat.ChatRequest{Message: "promoted?", Username: "dave", UserClass: "8"})
	require.NoError(t, err)

	p, err := repo.FindByUsername(ctx, "dave")
	require.NoError(t, err)
	assert.Equal(t, "7", p.Grade)
	assert.Len(t, p.History, 6)
}

func TestChat_RepeatedRequestsGrowHistory(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	provider := &fakeProvider{reply: "answer"}
	svc := chat.NewService(repo, profile.NewLocker(), provider, 10)

	_, err := repo.GetOrCreate(ctx, "erin", "11")
	require.NoError(t, err)
	_, err = repo.IncrementQuizCount(ctx, "erin")
	require.NoError(t, err)

	const n = 7
	for i := 0; i < n; i++ {
		_, err := svc.Chat(ctx, chat.ChatRequest{Message: "question", Username: "erin"})
		require.NoError(t, err)
	}

	p, err := repo.FindByUsername(ctx, "erin")
	require.NoError(t, err)
	assert.Len(t, p.History, 2*n)
	assert.Equal(t, 1, p.QuizzesTaken)

	// 12 stored turns plus the new user turn; only the last 10 are sent.
	assert.Len(t, historyLines(provider.lastCall(t).system), 10)
}

func TestChat_ConcurrentSameUser(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	svc := chat.NewService(repo, profile.NewLocker(), &fakeProvider{reply: "ok"}, 10)

	_, err := repo.GetOrCreate(ctx, "frank", "6")
	require.NoError(t, err)

	const n = 8
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Chat(ctx, chat.ChatRequest{Message: "hi", Username: "frank"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	p, err := repo.FindByUsername(ctx, "frank")
	require.NoError(t, err)
	require.Len(t, p.History, 2*n)
	for i, turn := range p.History {
		if i%2 == 0 {
			assert.Equal(t, profile.SenderUser, turn.Sender, i)
		} else {
			assert.Equal(t, profile.SenderAI, turn.Sender, i)
		}
	}
}
