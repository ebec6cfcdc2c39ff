package service

import (
	"context"
	"testing"

	"synergysphere/internal/domain"
	"synergysphere/internal/models"
	"synergysphere/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostMessage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := testutil.Profile(t, env.db, "owner@example.com", "Owner")
	bo := testutil.Profile(t, env.db, "bo@example.com", "Bo")
	outsider := testutil.Profile(t, env.db, "x@example.com", "X")
	p := testutil.Project(t, env.db, "Roadmap", owner)
	other := testutil.Project(t, env.db, "Other", owner)
	testutil.Member(t, env.db, p, bo, domain.RoleMember)

	first, err := env.messages.PostMessage(ctx, testutil.Identity(owner), p.ID, "kickoff at 10", nil)
	require.NoError(t, err)
	reply, err := env.messages.PostMessage(ctx, testutil.Identity(bo), p.ID, "  see you there ", &first.ID)
	require.NoError(t, err)
	assert.Equal(t, "see you there", reply.Message)

	foreign, err := env.messages.PostMessage(ctx, testutil.Identity(owner), other.ID, "elsewhere", nil)
	require.NoError(t, err)
	_, err = env.messages.PostMessage(ctx, testutil.Identity(owner), p.ID, "x", &foreign.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
	missing := uint(999)
	_, err = env.messages.PostMessage(ctx, testutil.Identity(owner), p.ID, "x", &missing)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = env.messages.PostMessage(ctx, testutil.Identity(owner), p.ID, "   ", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = env.messages.PostMessage(ctx, testutil.Identity(outsider), p.ID, "hi", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := env.messages.ListMessages(ctx, testutil.Identity(bo), p.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	require.NotNil(t, list[0].Author)
	assert.Equal(t, "Owner", list[0].Author.DisplayName)
	require.NotNil(t, list[1].ReplyTo)
	assert.Equal(t, first.ID, *list[1].ReplyTo)

	var notes, activities int64
	require.NoError(t, env.db.Model(&models.Notification{}).Count(&notes).Error)
	require.NoError(t, env.db.Model(&models.Activity{}).Count(&activities).Error)
	assert.Zero(t, notes)
	assert.Zero(t, activities)
}
