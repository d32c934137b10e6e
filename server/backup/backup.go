// Package backup copies the sqlite database file to and from a Google
// Cloud Storage bucket.
package backup

import (
	"context"
	"errors"
	"path"
	"path/filepath"

	"github.com/Daskott/agenda/server/gstorage"
	"github.com/Daskott/agenda/utils"
	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

const JOB_NAME = "backupSqliteDb"

type ObjectStorage interface {
	UploadFile(ctx context.Context, bucket, object, filePath string) error
	DownloadFile(ctx context.Context, bucket, object, destFileName string) error
}

type SqliteBackup struct {
	storage    ObjectStorage
	checkpoint func() error
	bucket     string
	object     string
	dbFile     string
	logg       *zap.SugaredLogger
}

func NewSqliteBackup(storage ObjectStorage, bucket, prefix, dbFile string, logg *zap.SugaredLogger) *SqliteBackup {
	return &SqliteBackup{
		storage: storage,
		bucket:  bucket,
		object:  path.Join(prefix, filepath.Base(dbFile)),
		dbFile:  dbFile,
		logg:    logg,
	}
}

// WithCheckpoint sets the hook Upload runs first to flush the write-ahead
// log into the database file, usually (*models.Store).Checkpoint.
func (b *SqliteBackup) WithCheckpoint(checkpoint func() error) *SqliteBackup {
	b.checkpoint = checkpoint
	return b
}

// Upload copies the local database file to the bucket.
func (b *SqliteBackup) Upload(ctx context.Context) error {
	if b.checkpoint != nil {
		if err := b.checkpoint(); err != nil {
			return err
		}
	}

	if err := b.storage.UploadFile(ctx, b.bucket, b.object, b.dbFile); err != nil {
		return err
	}

	b.logg.Infof("sqlite db backed up to gs://%v/%v", b.bucket, b.object)
	return nil
}

// Restore downloads the backup when there is no local database file yet.
// A missing backup is not an error.
func (b *SqliteBackup) Restore(ctx context.Context) error {
	if utils.FileExist(b.dbFile) {
		return nil
	}

	err := b.storage.DownloadFile(ctx, b.bucket, b.object, b.dbFile)
	if errors.Is(err, gstorage.ErrObjectNotExist) {
		b.logg.Infof("no sqlite backup found at gs://%v/%v", b.bucket, b.object)
		return nil
	}
	if err != nil {
		return err
	}

	b.logg.Infof("sqlite db restored from gs://%v/%v", b.bucket, b.object)
	return nil
}

// Schedule runs Upload on scheduler following cronExpression.
func (b *SqliteBackup) Schedule(scheduler *gocron.Scheduler, cronExpression string) error {
	_, err := scheduler.Cron(cronExpression).Tag(JOB_NAME).Do(func() {
		if err := b.Upload(context.Background()); err != nil {
			b.logg.Errorf("%v: %v", JOB_NAME, err)
		}
	})

	return err
}
