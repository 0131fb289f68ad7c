package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/signage_dashboard/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}, &models.File{}, &models.Setting{}))
	t.Cleanup(func() {
		sqlDB, _ := conn.DB()
		sqlDB.Close()
	})
	return conn
}

func createUser(t *testing.T, repo UserRepository, username string) *models.User {
	t.Helper()
	user, err := repo.Create(context.Background(), &models.User{Username: username, PasswordHash: "x", Role: models.RoleUser})
	require.NoError(t, err)
	return user
}

func TestUserRepositoryUniqueUsername(t *testing.T) {
	repo := NewGormUserRepository(newTestDB(t))
	ctx := context.Background()

	createUser(t, repo, "alice")
	_, err := repo.Create(ctx, &models.User{Username: "alice", PasswordHash: "y"})
	assert.ErrorIs(t, err, ErrUsernameExists)

	// 用户名区分大小写
	createUser(t, repo, "Alice")

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserRepositoryUpdateAndDelete(t *testing.T) {
	repo := NewGormUserRepository(newTestDB(t))
	ctx := context.Background()

	alice := createUser(t, repo, "alice")
	createUser(t, repo, "bob")

	updated, err := repo.Update(ctx, alice.ID, map[string]interface{}{"can_upload": true})
	require.NoError(t, err)
	assert.True(t, updated.CanUpload)

	_, err = repo.Update(ctx, alice.ID, map[string]interface{}{"username": "bob"})
	assert.ErrorIs(t, err, ErrUsernameExists)

	require.NoError(t, repo.Delete(ctx, alice.ID))
	assert.ErrorIs(t, repo.Delete(ctx, alice.ID), ErrRecordNotFound)

	_, err = repo.GetByID(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func newFile(name string, owner int64) *models.File {
	return &models.File{
		Filename:     name,
		OriginalName: name,
		FileType:     models.FileTypePDF,
		FilePath:     "pdfs/" + name,
		DisplayTime:  models.DefaultDisplayTime,
		IsActive:     true,
		UploadedBy:   owner,
	}
}

func TestFileRepositoryNextOrderIsMaxPlusOne(t *testing.T) {
	conn := newTestDB(t)
	users := NewGormUserRepository(conn)
	repo := NewGormFileRepository(conn)
	ctx := context.Background()
	owner := createUser(t, users, "owner")

	first, err := repo.CreateWithNextOrder(ctx, newFile("a.pdf", owner.ID))
	require.NoError(t, err)
	second, err := repo.CreateWithNextOrder(ctx, newFile("b.pdf", owner.ID))
	require.NoError(t, err)
	assert.Equal(t, 1, first.UploadOrder)
	assert.Equal(t, 2, second.UploadOrder)

	// 删除最大序号后，新文件仍然基于当前最大值
	require.NoError(t, repo.Delete(ctx, second.ID))
	third, err := repo.CreateWithNextOrder(ctx, newFile("c.pdf", owner.ID))
	require.NoError(t, err)
	assert.Equal(t, 2, third.UploadOrder)
}

func TestFileRepositoryListResponsesJoinsUploader(t *testing.T) {
	conn := newTestDB(t)
	users := NewGormUserRepository(conn)
	repo := NewGormFileRepository(conn)
	ctx := context.Background()
	owner := createUser(t, users, "owner")
	ghost := createUser(t, users, "ghost")

	a, err := repo.CreateWithNextOrder(ctx, newFile("a.pdf", owner.ID))
	require.NoError(t, err)
	b, err := repo.CreateWithNextOrder(ctx, newFile("b.pdf", ghost.ID))
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, b.ID, map[string]interface{}{"is_active": false}))
	require.NoError(t, users.Delete(ctx, ghost.ID))

	all, err := repo.ListResponses(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.NotNil(t, all[0].UploaderName)
	assert.Equal(t, "owner", *all[0].UploaderName)
	assert.Nil(t, all[1].UploaderName)

	active, err := repo.ListResponses(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, a.ID, active[0].ID)

	_, err = repo.GetResponseByID(ctx, 999)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestFileRepositoryReorderSkipsUnknownIDs(t *testing.T) {
	conn := newTestDB(t)
	users := NewGormUserRepository(conn)
	repo := NewGormFileRepository(conn)
	ctx := context.Background()
	owner := createUser(t, users, "owner")

	a, _ := repo.CreateWithNextOrder(ctx, newFile("a.pdf", owner.ID))
	b, _ := repo.CreateWithNextOrder(ctx, newFile("b.pdf", owner.ID))

	updated, err := repo.Reorder(ctx, []models.FileOrder{{ID: a.ID, Order: 5}, {ID: 12345, Order: 1}, {ID: b.ID, Order: 3}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	list, err := repo.ListResponses(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)
}

func TestFileRepositoryUpdateMissing(t *testing.T) {
	repo := NewGormFileRepository(newTestDB(t))
	err := repo.Update(context.Background(), 42, map[string]interface{}{"is_active": false})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestSettingRepositoryCreateIfAbsent(t *testing.T) {
	repo := NewGormSettingRepository(newTestDB(t))
	ctx := context.Background()

	created, err := repo.CreateIfAbsent(ctx, &models.Setting{Key: "app_title", Value: "Dashboard App"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateIfAbsent(ctx, &models.Setting{Key: "app_title", Value: "Other"})
	require.NoError(t, err)
	assert.False(t, created)

	setting, err := repo.GetByKey(ctx, "app_title")
	require.NoError(t, err)
	assert.Equal(t, "Dashboard App", setting.Value)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
