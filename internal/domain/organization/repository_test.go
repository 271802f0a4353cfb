package organization

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shootdesk/shootdesk-api/internal/pkg/testdb"
)

func TestRepositoryMembership(t *testing.T) {
	db := testdb.New(t)
	testdb.Organization(t, db, "org-a")
	testdb.Organization(t, db, "org-b")
	testdb.User(t, db, "u1", "Ann")
	testdb.Member(t, db, "org-b", "u1", "owner")
	testdb.Member(t, db, "org-a", "u1", "member")

	repo := NewRepository(db)
	ctx := context.Background()

	ok, err := repo.IsMember(ctx, "org-a", "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsMember(ctx, "org-a", "u2")
	require.NoError(t, err)
	assert.False(t, ok)

	list, err := repo.ListForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "org-a", list[0].OrganizationID)
	assert.Equal(t, "Studio org-a", list[0].Name)
	assert.Equal(t, "owner", list[1].Role)
}

func TestRepositoryGetByID(t *testing.T) {
	db := testdb.New(t)
	testdb.Organization(t, db, "org-a")
	repo := NewRepository(db)

	org, err := repo.GetByID(context.Background(), "org-a")
	require.NoError(t, err)
	assert.Equal(t, "org-a", org.Slug)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrOrganizationNotFound)
}
