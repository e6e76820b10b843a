package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/recipeshare/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeImageStore struct {
	saved   map[string][]byte
	removed []string
	saveErr error
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{saved: map[string][]byte{}}
}

func (f *fakeImageStore) Save(folder string, r io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	name := "20261017-test.png"
	f.saved[folder+"/"+name] = data
	return name, nil
}

func (f *fakeImageStore) Remove(folder, filename string) error {
	f.removed = append(f.removed, folder+"/"+filename)
	delete(f.saved, folder+"/"+filename)
	return nil
}

func (f *fakeImageStore) List(folder string) ([]string, error) {
	names := []string{}
	for key := range f.saved {
		if strings.HasPrefix(key, folder+"/") {
			names = append(names, strings.TrimPrefix(key, folder+"/"))
		}
	}
	return names, nil
}

func TestJournalServiceAddRequiresLogin(t *testing.T) {
	gdb := setupServiceTestDB(t)
	journal := NewJournalService(gdb, newFakeImageStore())

	_, err := journal.Add(context.Background(), JournalInput{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	// 会话指向已删除的用户同样视为未登录
	ctx := WithCurrentUser(context.Background(), 42)
	_, err = journal.Add(ctx, JournalInput{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestJournalServiceAddWithImage(t *testing.T) {
	gdb := setupServiceTestDB(t)
	cook := mustRegister(t, newTestUserService(gdb), "cook")
	images := newFakeImageStore()
	journal := NewJournalService(gdb, images)
	ctx := WithCurrentUser(context.Background(), cook.ID)

	entry, err := journal.Add(ctx, JournalInput{Title: " Day 1 ", Content: "Made bread", Image: strings.NewReader("png-bytes")})
	require.NoError(t, err)
	assert.Equal(t, "Day 1", entry.Title)
	assert.Equal(t, cook.ID, entry.UserID)
	assert.Equal(t, "20261017-test.png", entry.ImageFilename)
	assert.False(t, entry.Timestamp.IsZero())

	names, err := journal.ImageFilenames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"20261017-test.png"}, names)

	got, err := journal.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Made bread", got.Content)

	list, err := journal.ListForUser(ctx, cook.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = journal.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrJournalNotFound)
}

func TestJournalServiceAddValidation(t *testing.T) {
	gdb := setupServiceTestDB(t)
	cook := mustRegister(t, newTestUserService(gdb), "cook")
	images := newFakeImageStore()
	journal := NewJournalService(gdb, images)
	ctx := WithCurrentUser(context.Background(), cook.ID)

	_, err := journal.Add(ctx, JournalInput{Title: "", Content: "c"})
	assert.ErrorIs(t, err, ErrMissingField)

	images.saveErr = storage.ErrInvalidImage
	_, err = journal.Add(ctx, JournalInput{Title: "t", Content: "c", Image: strings.NewReader("not an image")})
	assert.ErrorIs(t, err, ErrInvalidImage)
	assert.ErrorIs(t, err, ErrValidation)

	images.saveErr = errors.New("disk full")
	_, err = journal.Add(ctx, JournalInput{Title: "t", Content: "c", Image: strings.NewReader("x")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrValidation)

	list, err := journal.ListForUser(ctx, cook.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestScopeRunInTxJoinsOuterTransaction(t *testing.T) {
	gdb := setupServiceTestDB(t)
	users := newTestUserService(gdb)
	ctx := context.Background()

	sentinel := errors.New("rollback")
	err := runInTx(ctx, gdb, func(ctx context.Context, _ *gorm.DB) error {
		if _, err := users.Register(ctx, RegisterInput{Email: "a@example.com", Username: "a", Password: "pw"}); err != nil {
			return err
		}
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	list, err := users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
