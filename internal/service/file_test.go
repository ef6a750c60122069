package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"vaultapi/internal/model"
	repoMocks "vaultapi/internal/repository/mocks"
	"vaultapi/internal/storage"
	storeMocks "vaultapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var storedNamePattern = regexp.MustCompile(`^\d{13}-\d{9}\.txt$`)

func TestNewStoredName(t *testing.T) {
	now := time.UnixMilli(1693526400000)

	name := newStoredName(now, "report.txt")
	assert.Regexp(t, storedNamePattern, name)
	assert.True(t, strings.HasPrefix(name, "1693526400000-"))

	// Extension is preserved; files without one get none.
	assert.True(t, strings.HasSuffix(newStoredName(now, "archive.tar.gz"), ".gz"))
	noExt := newStoredName(now, "README")
	assert.NotContains(t, noExt, ".")
}

func TestFileService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		originalName string
		contentType  string
		size         int64
		setupMocks   func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFileRepository) io.Reader
		wantErr      error
		wantErrMsg   string
	}{
		{
			name:         "happy path",
			originalName: "a.txt",
			contentType:  "text/plain",
			size:         10,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFileRepository) io.Reader {
				r := strings.NewReader("0123456789")
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return storedNamePattern.MatchString(key)
				}), r, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
					return opt.Size == 10 && opt.ContentType == "text/plain" &&
						opt.Metadata["original-filename"] == "a.txt"
				})).Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
					return storage.ObjectInfo{Key: key, Size: opt.Size, ContentType: opt.ContentType}
				}, nil)

				mRepo.On("Create", ctx, mock.MatchedBy(func(rec *model.FileRecord) bool {
					return rec.ID != "" &&
						rec.OriginalName == "a.txt" &&
						rec.MimeType == "text/plain" &&
						rec.SizeBytes == 10 &&
						rec.StoredName == rec.StoragePath &&
						storedNamePattern.MatchString(rec.StoredName)
				})).Return(&model.FileRecord{ID: "gen-id", OriginalName: "a.txt", SizeBytes: 10}, nil)

				return r
			},
		},
		{
			name:         "missing payload - nil reader",
			originalName: "a.txt",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFileRepository) io.Reader {
				return nil
			},
			wantErr: ErrFileRequired,
		},
		{
			name:         "missing payload - zero size",
			originalName: "a.txt",
			size:         0,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFileRepository) io.Reader {
				return strings.NewReader("")
			},
			wantErr: ErrFileRequired,
		},
		{
			name:         "empty content type defaults to octet-stream",
			originalName: "blob.bin",
			size:         3,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFileRepository) io.Reader {
				r := strings.NewReader("abc")
				mStore.On("Put", ctx, mock.Anything, r, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
					return opt.ContentType == "application/octet-stream"
				})).Return(storage.ObjectInfo{Key: "k", Size: 3}, nil)
				mRepo.On("Create", ctx, mock.MatchedBy(func(rec *model.FileRecord) bool {
					return rec.MimeType == "application/octet-stream"
				})).Return(&model.FileRecord{ID: "gen-id"}, nil)
				return r
			},
		},
		{
			name:         "storage error",
			originalName: "a.txt",
			size:         5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFileRepository) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("disk full"))
				return r
			},
			wantErrMsg: "write blob: disk full",
		},
		{
			name:         "metadata failure leaves orphaned blob",
			originalName: "a.txt",
			size:         5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockFileRepository) io.Reader {
				r := strings.NewReader("hello")
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{Key: "orphan", Size: 5}, nil)
				mRepo.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				// No Delete expectation: the blob stays behind. Upload is
				// deliberately non-transactional and has no cleanup path.
				return r
			},
			wantErrMsg: "save metadata: db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockFileRepository)
			svc := NewFileService(mStore, mRepo)

			r := tt.setupMocks(mStore, mRepo)

			rec, err := svc.Upload(ctx, r, tt.originalName, tt.contentType, tt.size)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, rec)
			}

			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
			mStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		})
	}
}

func TestFileService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockFileRepository)
		svc := NewFileService(nil, mRepo)

		mRepo.On("List", ctx).Return([]model.FileRecord{{ID: "2"}, {ID: "1"}}, nil)

		items, err := svc.List(ctx)

		assert.NoError(t, err)
		assert.Len(t, items, 2)
		mRepo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockFileRepository)
		svc := NewFileService(nil, mRepo)

		mRepo.On("List", ctx).Return(nil, errors.New("db fail"))

		items, err := svc.List(ctx)

		assert.Error(t, err)
		assert.Nil(t, items)
	})
}

func TestFileService_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockFileRepository)
		svc := NewFileService(mStore, mRepo)

		rec := &model.FileRecord{ID: "id", StoredName: "100-1.txt", StoragePath: "100-1.txt", MimeType: "text/plain"}
		mRepo.On("FindByStoredName", ctx, "100-1.txt").Return(rec, nil)
		mStore.On("Get", ctx, "100-1.txt").
			Return(io.NopCloser(strings.NewReader("0123456789")), storage.ObjectInfo{Key: "100-1.txt", Size: 10}, nil)

		rc, got, err := svc.Open(ctx, "100-1.txt")
		require.NoError(t, err)
		defer rc.Close()

		assert.Equal(t, "text/plain", got.MimeType)
		b, _ := io.ReadAll(rc)
		assert.Equal(t, "0123456789", string(b))
	})

	t.Run("unknown stored name", func(t *testing.T) {
		mRepo := new(repoMocks.MockFileRepository)
		svc := NewFileService(nil, mRepo)

		mRepo.On("FindByStoredName", ctx, "missing.bin").Return(nil, sql.ErrNoRows)

		_, _, err := svc.Open(ctx, "missing.bin")
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("record exists but blob is gone", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockFileRepository)
		svc := NewFileService(mStore, mRepo)

		rec := &model.FileRecord{ID: "id", StoredName: "100-1.txt", StoragePath: "100-1.txt"}
		mRepo.On("FindByStoredName", ctx, "100-1.txt").Return(rec, nil)
		mStore.On("Get", ctx, "100-1.txt").
			Return(nil, storage.ObjectInfo{}, storage.ErrObjectNotFound)

		_, _, err := svc.Open(ctx, "100-1.txt")
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("empty stored name", func(t *testing.T) {
		svc := NewFileService(nil, nil)
		_, _, err := svc.Open(ctx, "")
		assert.ErrorIs(t, err, ErrFileNotFound)
	})
}
