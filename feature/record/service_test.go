package record

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"race-admin/core/database"
	"race-admin/core/models"
	"race-admin/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &models.Race{}, &models.Record{}))
	return db
}

func TestExport(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.Race{RID: "r1", Title: "Cup"}).Error)
	require.NoError(t, db.Create(&models.Record{RID: "r1", Account: "s1", Teacher: "t1", Score: "90"}).Error)

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "exports").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "exports", mock.Anything).Return(nil)

	var uploaded []byte
	client.On("PutObject", mock.Anything, "exports", "exports/records-20240301T100000.000Z-0a1b2c3d.json", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			data, err := io.ReadAll(args.Get(3).(io.Reader))
			require.NoError(t, err)
			uploaded = data
		}).
		Return(minio.UploadInfo{}, nil)

	svc := NewService(zap.NewNop(), db, client, "exports")
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	svc.suffix = func() string { return "0a1b2c3d" }

	key, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "exports/records-20240301T100000.000Z-0a1b2c3d.json", key)

	var snapshot Snapshot
	require.NoError(t, json.NewDecoder(bytes.NewReader(uploaded)).Decode(&snapshot))
	assert.Len(t, snapshot.Races, 1)
	require.Len(t, snapshot.Records, 1)
	assert.Equal(t, "s1", snapshot.Records[0].Account)
	client.AssertExpectations(t)
}

func TestExportSameInstant(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "exports").Return(true, nil)
	client.On("PutObject", mock.Anything, "exports", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	svc := NewService(zap.NewNop(), setupDB(t), client, "exports")
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }

	first, err := svc.Export(context.Background())
	require.NoError(t, err)
	second, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Regexp(t, `^exports/records-20240301T100000\.000Z-[0-9a-f]{8}\.json$`, first)
}

func TestExportUploadFailure(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "exports").Return(true, nil)
	client.On("PutObject", mock.Anything, "exports", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, assert.AnError)

	svc := NewService(zap.NewNop(), setupDB(t), client, "exports")
	_, err := svc.Export(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestExportDisabled(t *testing.T) {
	svc := NewService(zap.NewNop(), setupDB(t), nil, "exports")

	_, err := svc.Export(context.Background())
	assert.ErrorIs(t, err, ErrStorageDisabled)

	_, err = svc.Exports(context.Background())
	assert.ErrorIs(t, err, ErrStorageDisabled)
}

func TestExports(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "exports", mock.Anything).
		Return(func(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
			ch := make(chan minio.ObjectInfo, 2)
			ch <- minio.ObjectInfo{Key: opts.Prefix + "records-1.json"}
			ch <- minio.ObjectInfo{Key: opts.Prefix + "records-2.json"}
			close(ch)
			return ch
		})

	svc := NewService(zap.NewNop(), setupDB(t), client, "exports")
	keys, err := svc.Exports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"exports/records-1.json", "exports/records-2.json"}, keys)
}
