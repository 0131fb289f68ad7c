package services

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/signage_dashboard/internal/auth"
	"github.com/signage_dashboard/internal/models"
	"github.com/signage_dashboard/internal/repositories"
	"github.com/signage_dashboard/internal/storage"
)

type fixture struct {
	db       *gorm.DB
	users    repositories.UserRepository
	files    repositories.FileRepository
	settings repositories.SettingRepository
	store    *storage.LocalStorage
	baseDir  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	conn, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}, &models.File{}, &models.Setting{}))
	t.Cleanup(func() {
		sqlDB, _ := conn.DB()
		sqlDB.Close()
	})

	base := filepath.Join(dir, "uploads")
	store, err := storage.NewLocalStorage(storage.Config{BasePath: base})
	require.NoError(t, err)

	return &fixture{
		db:       conn,
		users:    repositories.NewGormUserRepository(conn),
		files:    repositories.NewGormFileRepository(conn),
		settings: repositories.NewGormSettingRepository(conn),
		store:    store,
		baseDir:  base,
	}
}

func (f *fixture) bootstrap(t *testing.T) *models.User {
	t.Helper()
	require.NoError(t, NewSettingService(f.settings, f.users).Bootstrap(context.Background(), "Admin", "Admin"))
	admin, err := f.users.GetByUsername(context.Background(), "Admin")
	require.NoError(t, err)
	return admin
}

func upload(t *testing.T, svc FileService, name string, owner int64) *models.FileResponse {
	t.Helper()
	file, err := svc.Upload(context.Background(), UploadInput{
		Filename:   name,
		Reader:     strings.NewReader("content of " + name),
		UploadedBy: owner,
	})
	require.NoError(t, err)
	return file
}

func TestBootstrapIsIdempotent(t *testing.T) {
	f := newFixture(t)
	svc := NewSettingService(f.settings, f.users)
	ctx := context.Background()

	require.NoError(t, svc.Bootstrap(ctx, "Admin", "Admin"))
	require.NoError(t, svc.Bootstrap(ctx, "Admin", "changed"))

	users, err := f.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	admin, err := f.users.GetByUsername(ctx, "Admin")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.CanUpload)
	assert.True(t, CheckPassword(admin.PasswordHash, "Admin"))

	settings, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, settings, len(models.DefaultSettings))
}

func TestLoginLogoutCheckSession(t *testing.T) {
	f := newFixture(t)
	f.bootstrap(t)
	store := auth.NewMemoryStore()
	svc := NewAuthService(f.users, store, auth.NewTokenManager("secret", time.Hour))
	ctx := context.Background()

	_, err := svc.Login(ctx, "", "Admin")
	assert.ErrorIs(t, err, ErrCredentialsRequired)
	_, err = svc.Login(ctx, "Admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "admin", "Admin")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	result, err := svc.Login(ctx, "Admin", "Admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, result.User.Role)
	assert.NotEmpty(t, result.Token)

	userID, err := store.Get(ctx, result.SessionID)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, userID)

	status := svc.CheckSession(result.User)
	assert.True(t, status.LoggedIn)
	assert.Equal(t, "Admin", status.User.Username)
	assert.False(t, svc.CheckSession(nil).LoggedIn)

	require.NoError(t, svc.Logout(ctx, result.SessionID))
	_, err = store.Get(ctx, result.SessionID)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	admin := f.bootstrap(t)
	svc := NewAuthService(f.users, auth.NewMemoryStore(), auth.NewTokenManager("secret", time.Hour))
	ctx := context.Background()

	user, err := svc.Register(ctx, admin, models.RegisterUserPayload{Username: "bob", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.False(t, user.CanUpload)
	assert.NotEqual(t, "pw", user.PasswordHash)

	_, err = svc.Register(ctx, admin, models.RegisterUserPayload{Username: "bob", Password: "pw"})
	assert.ErrorIs(t, err, ErrUsernameExists)

	_, err = svc.Register(ctx, user, models.RegisterUserPayload{Username: "carol", Password: "pw"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUserAdministration(t *testing.T) {
	f := newFixture(t)
	admin := f.bootstrap(t)
	authSvc := NewAuthService(f.users, auth.NewMemoryStore(), auth.NewTokenManager("secret", time.Hour))
	svc := NewUserService(f.users)
	ctx := context.Background()

	bob, err := authSvc.Register(ctx, admin, models.RegisterUserPayload{Username: "bob", Password: "pw"})
	require.NoError(t, err)
	carol, err := authSvc.Register(ctx, admin, models.RegisterUserPayload{Username: "carol", Password: "pw"})
	require.NoError(t, err)

	// 普通用户只能查看自己
	_, err = svc.GetUser(ctx, carol.ID, bob)
	assert.ErrorIs(t, err, ErrForbidden)
	got, err := svc.GetUser(ctx, bob.ID, bob)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)
	_, err = svc.GetUser(ctx, 999, admin)
	assert.ErrorIs(t, err, ErrUserNotFound)

	taken := "carol"
	_, err = svc.UpdateUser(ctx, bob.ID, models.UpdateUserPayload{Username: &taken})
	assert.ErrorIs(t, err, ErrUsernameExists)

	same := "bob"
	role := models.RoleAdmin
	password := "new-secret"
	updated, err := svc.UpdateUser(ctx, bob.ID, models.UpdateUserPayload{Username: &same, Role: &role, Password: &password})
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin())
	assert.True(t, CheckPassword(updated.PasswordHash, "new-secret"))

	toggled, err := svc.ToggleUploadPermission(ctx, carol.ID)
	require.NoError(t, err)
	assert.True(t, toggled.CanUpload)
	toggled, err = svc.ToggleUploadPermission(ctx, carol.ID)
	require.NoError(t, err)
	assert.False(t, toggled.CanUpload)

	assert.ErrorIs(t, svc.DeleteUser(ctx, admin.ID, admin), ErrCannotDeleteSelf)
	_, err = f.users.GetByID(ctx, admin.ID)
	assert.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, carol.ID, admin))
	assert.ErrorIs(t, svc.DeleteUser(ctx, carol.ID, admin), ErrUserNotFound)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	admin := f.bootstrap(t)
	svc := NewUserService(f.users)
	ctx := context.Background()

	assert.ErrorIs(t, svc.UpdateProfile(ctx, admin, models.UpdateProfilePayload{}), ErrNoUpdatableField)
	empty := ""
	assert.ErrorIs(t, svc.UpdateProfile(ctx, admin, models.UpdateProfilePayload{Password: &empty}), ErrNoUpdatableField)

	password := "rotated"
	require.NoError(t, svc.UpdateProfile(ctx, admin, models.UpdateProfilePayload{Password: &password}))

	profile, err := svc.GetProfile(ctx, admin)
	require.NoError(t, err)
	assert.True(t, CheckPassword(profile.PasswordHash, "rotated"))
}

func TestUploadAssignsOrderAndStoresBytes(t *testing.T) {
	f := newFixture(t)
	admin := f.bootstrap(t)
	svc := NewFileService(f.files, f.store)
	ctx := context.Background()

	names := []string{"clip.mp4", "report.xlsx", "manual.pdf"}
	for _, name := range names {
		upload(t, svc, name, admin.ID)
	}

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(names))
	for i, file := range all {
		assert.Equal(t, i+1, file.UploadOrder)
		assert.Equal(t, names[i], file.OriginalName)
		assert.Equal(t, models.DefaultDisplayTime, file.DisplayTime)
		assert.True(t, file.IsActive)
		require.NotNil(t, file.UploaderName)
		assert.Equal(t, "Admin", *file.UploaderName)
		assert.Len(t, strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename)), 32)
		assert.FileExists(t, filepath.Join(f.baseDir, filepath.FromSlash(file.FilePath)))
	}
	assert.Equal(t, models.FileTypeVideo, all[0].FileType)
	assert.True(t, strings.HasPrefix(all[0].FilePath, "videos/"))
	assert.Equal(t, models.FileTypeDocument, all[1].FileType)
	assert.True(t, strings.HasPrefix(all[1].FilePath, "documents/"))
	assert.Equal(t, models.FileTypePDF, all[2].FileType)
	assert.True(t, strings.HasPrefix(all[2].FilePath, "pdfs/"))
}

func TestUploadRejectsUnsupportedTypes(t *testing.T) {
	f := newFixture(t)
	admin := f.bootstrap(t)
	svc := NewFileService(f.files, f.store)
	ctx := context.Background()

	for _, name := range []string{"report.exe", "README", "photo.png"} {
		_, err := svc.Upload(ctx, UploadInput{Filename: name, Reader: strings.NewReader("x"), UploadedBy: admin.ID})
		assert.ErrorIs(t, err, ErrUnsupportedFileType, name)
	}
	_, err := svc.Upload(ctx, UploadInput{Filename: "", Reader: strings.NewReader("x"), UploadedBy: admin.ID})
	assert.ErrorIs(t, err, ErrNoFileSelected)
	_, err = svc.Upload(ctx, UploadInput{Filename: "a.pdf", UploadedBy: admin.ID})
	assert.ErrorIs(t, err, ErrNoFileProvided)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListActiveOnlyReturnsActiveFiles(t *testing.T) {
	f := newFixture(t)
	admin := f.bootstrap(t)
	svc := NewFileService(f.files, f.store)
	ctx := context.Background()

	a := upload(t, svc, "a.pdf", admin.ID)
	b := upload(t, svc, "b.pdf", admin.ID)
	c := upload(t, svc, "c.pdf", admin.ID)

	toggled, err := svc.ToggleActive(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, file := range active {
		assert.True(t, file.IsActive)
	}
	assert.Equal(t, a.ID, active[0].ID)
	assert.Equal(t, c.ID, active[1].ID)

	_, err = svc.ToggleActive(ctx, 999)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestUpdateIsPartial(t *testing.T) {
	f := newFixture(t)
	admin := f.bootstrap(t)
	svc := NewFileService(f.files, f.store)
	ctx := context.Background()

	file := upload(t, svc, "a.pdf", admin.ID)
	displayTime := 30
	updated, err := svc.Update(ctx, file.ID, models.UpdateFilePayload{DisplayTime: &displayTime})
	require.NoError(t, err)
	assert.Equal(t, 30, updated.DisplayTime)
	assert.True(t, updated.IsActive)
	assert.Equal(t, file.UploadOrder, updated.UploadOrder)

	_, err = svc.Update(ctx, 999, models.UpdateFilePayload{DisplayTime: &displayTime})
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestReorderIsIdempotent(t *testing.T) {
	f := newFixture(t)
	admin := f.bootstrap(t)
	svc := NewFileService(f.files, f.store)
	ctx := context.Background()

	first := upload(t, svc, "a.pdf", admin.ID)
	second := upload(t, svc, "b.pdf", admin.ID)

	swap := []models.FileOrder{{ID: first.ID, Order: 2}, {ID: second.ID, Order: 1}}
	require.NoError(t, svc.Reorder(ctx, swap))
	require.NoError(t, svc.Reorder(ctx, swap))
	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{second.ID, first.ID}, []int64{all[0].ID, all[1].ID})

	restore := []models.FileOrder{{ID: first.ID, Order: 1}, {ID: second.ID, Order: 2}, {ID: 999, Order: 0}}
	require.NoError(t, svc.Reorder(ctx, restore))
	all, err = svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{first.ID, second.ID}, []int64{all[0].ID, all[1].ID})
	assert.Equal(t, 1, all[0].UploadOrder)
	assert.Equal(t, 2, all[1].UploadOrder)
}

func TestDeleteRemovesRowAndObject(t *testing.T) {
	f := newFixture(t)
	admin := f.bootstrap(t)
	svc := NewFileService(f.files, f.store)
	ctx := context.Background()

	file := upload(t, svc, "a.pdf", admin.ID)
	onDisk := filepath.Join(f.baseDir, filepath.FromSlash(file.FilePath))
	require.FileExists(t, onDisk)

	require.NoError(t, svc.Delete(ctx, file.ID))
	assert.NoFileExists(t, onDisk)
	_, err := svc.Get(ctx, file.ID)
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, file.ID), ErrFileNotFound)
}

// failingDeleteStorage 删除时总是失败
type failingDeleteStorage struct {
	storage.Storage
}

func (failingDeleteStorage) Delete(ctx context.Context, key string) error {
	return errors.New("disk is read-only")
}

func TestDeleteKeepsRowWhenObjectDeletionFails(t *testing.T) {
	f := newFixture(t)
	admin := f.bootstrap(t)
	file := upload(t, NewFileService(f.files, f.store), "a.pdf", admin.ID)

	svc := NewFileService(f.files, failingDeleteStorage{Storage: f.store})
	err := svc.Delete(context.Background(), file.ID)
	require.Error(t, err)

	got, err := svc.Get(context.Background(), file.ID)
	require.NoError(t, err)
	assert.Equal(t, file.ID, got.ID)
}

func TestDeleteWithMissingObjectStillRemovesRow(t *testing.T) {
	f := newFixture(t)
	admin := f.bootstrap(t)
	svc := NewFileService(f.files, f.store)
	ctx := context.Background()

	file := upload(t, svc, "a.pdf", admin.ID)
	require.NoError(t, f.store.Delete(ctx, file.FilePath))

	require.NoError(t, svc.Delete(ctx, file.ID))
	_, err := svc.Get(ctx, file.ID)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

// failingCreateRepository 登记文件时总是失败
type failingCreateRepository struct {
	repositories.FileRepository
}

func (failingCreateRepository) CreateWithNextOrder(ctx context.Context, file *models.File) (*models.File, error) {
	return nil, errors.New("database is locked")
}

func TestUploadRegistryFailureLeavesNoRow(t *testing.T) {
	f := newFixture(t)
	admin := f.bootstrap(t)
	ctx := context.Background()

	svc := NewFileService(failingCreateRepository{FileRepository: f.files}, f.store)
	_, err := svc.Upload(ctx, UploadInput{
		Filename:   "a.pdf",
		Reader:     strings.NewReader("%PDF-1.4"),
		UploadedBy: admin.ID,
	})
	require.Error(t, err)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// 已写入的对象保留在存储中
	entries, err := os.ReadDir(filepath.Join(f.baseDir, "pdfs"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestOpenServesStoredFile(t *testing.T) {
	f := newFixture(t)
	admin := f.bootstrap(t)
	svc := NewFileService(f.files, f.store)
	ctx := context.Background()

	file, err := svc.Upload(ctx, UploadInput{
		Filename:   "manual.pdf",
		Reader:     strings.NewReader("%PDF-1.4\n%test document\n"),
		UploadedBy: admin.ID,
	})
	require.NoError(t, err)

	served, err := svc.Open(ctx, file.Filename)
	require.NoError(t, err)
	defer served.Reader.Close()
	data, err := io.ReadAll(served.Reader)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4\n%test document\n", string(data))
	assert.Equal(t, "application/pdf", served.ContentType)
	assert.Equal(t, int64(len(data)), served.Size)

	_, err = svc.Open(ctx, "missing.pdf")
	assert.ErrorIs(t, err, ErrFileNotFound)
	_, err = svc.Open(ctx, "../test.db")
	assert.ErrorIs(t, err, ErrInvalidFilename)
	_, err = svc.Open(ctx, "pdfs")
	assert.ErrorIs(t, err, ErrFileNotFound)
}
