package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/siddarth709/Portfolio/internal/storage"
)

// ObjectStore 是对象存储镜像所需的最小接口，*storage.Client 满足它。
type ObjectStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	ReadObject(ctx context.Context, objectKey string) ([]byte, error)
	DeleteObject(ctx context.Context, objectKey string) error
	ListObjects(ctx context.Context, prefix string, limit int) ([]storage.ObjectMeta, error)
}

// Object 把数据目录镜像到 S3 兼容的对象存储：对象键为 prefix + 相对路径。
// dirs 是上传目录，恢复时按目录前缀整体拉回。
type Object struct {
	store  ObjectStore
	root   string
	prefix string
	dirs   []string
	logger *slog.Logger
}

// NewObject 返回对象存储镜像。
func NewObject(store ObjectStore, root, prefix string, dirs []string, logger *slog.Logger) *Object {
	if logger == nil {
		logger = slog.Default()
	}
	return &Object{
		store:  store,
		root:   root,
		prefix: prefix,
		dirs:   dirs,
		logger: logger.With(slog.String("mirror", "object")),
	}
}

func (o *Object) Name() string { return "object" }

func (o *Object) key(rel string) string {
	return path.Join(o.prefix, filepath.ToSlash(rel))
}

// Push 上传 Paths 中的文件并删除 Removed 中的对象，错误聚合返回。
func (o *Object) Push(ctx context.Context, change Change) Result {
	ctx = context.WithoutCancel(ctx)
	res := Result{Backend: o.Name()}

	var errs []error
	for _, rel := range change.Paths {
		if err := o.upload(ctx, rel); err != nil {
			errs = append(errs, err)
		}
	}
	for _, rel := range change.Removed {
		if err := o.store.DeleteObject(ctx, o.key(rel)); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		res.Err = errors.Join(errs...)
		o.logger.Warn("object push failed", slog.String("message", change.message()), slog.String("error", res.Err.Error()))
		return res
	}
	o.logger.Info("pushed to object store", slog.String("message", change.message()), slog.Int("uploaded", len(change.Paths)), slog.Int("removed", len(change.Removed)))
	return res
}

func (o *Object) upload(ctx context.Context, rel string) error {
	f, err := os.Open(filepath.Join(o.root, filepath.FromSlash(rel)))
	if err != nil {
		return fmt.Errorf("open %s: %w", rel, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", rel, err)
	}
	return o.store.UploadFile(ctx, o.key(rel), f, info.Size(), mime.TypeByExtension(filepath.Ext(rel)))
}

// Restore 逐个读取对象覆盖本地文件；对象不存在视为预期情况。
// 随后拉回每个上传目录下的全部对象，使恢复后的记录引用的文件也存在于本地。
func (o *Object) Restore(ctx context.Context, paths []string) Report {
	ctx = context.WithoutCancel(ctx)
	var report Report
	o.restoreFiles(ctx, paths, &report)
	for _, dir := range o.dirs {
		o.restoreDir(ctx, dir, &report)
	}
	return report
}

func (o *Object) restoreDir(ctx context.Context, dir string, report *Report) {
	keyPrefix := o.key(dir) + "/"
	objects, err := o.store.ListObjects(ctx, keyPrefix, 0)
	if err != nil {
		o.logger.Warn("error listing remote folder", slog.String("path", dir), slog.String("error", err.Error()))
		report.fail(dir, err)
		return
	}

	rels := make([]string, 0, len(objects))
	for _, obj := range objects {
		rel, ok := o.relFromKey(obj.Key, dir)
		if !ok {
			o.logger.Warn("skipping remote object outside folder", slog.String("key", obj.Key))
			continue
		}
		rels = append(rels, rel)
	}
	o.restoreFiles(ctx, rels, report)
}

// relFromKey 把对象键还原为相对路径，并确保它落在 dir 之内。
func (o *Object) relFromKey(key, dir string) (string, bool) {
	rel := strings.TrimPrefix(key, o.key(dir)+"/")
	if rel == key || rel == "" || strings.HasSuffix(rel, "/") {
		return "", false
	}
	clean := path.Clean(path.Join(dir, rel))
	if !strings.HasPrefix(clean, path.Clean(dir)+"/") {
		return "", false
	}
	return clean, true
}

func (o *Object) restoreFiles(ctx context.Context, paths []string, report *Report) {
	for _, rel := range paths {
		data, err := o.store.ReadObject(ctx, o.key(rel))
		switch {
		case errors.Is(err, storage.ErrObjectNotFound):
			o.logger.Info("not found on remote, using local default", slog.String("path", rel))
			report.Missing = append(report.Missing, rel)
			continue
		case err != nil:
			o.logger.Warn("error pulling file", slog.String("path", rel), slog.String("error", err.Error()))
			report.fail(rel, err)
			continue
		}

		if err := writeLocal(o.root, rel, data); err != nil {
			o.logger.Warn("error writing restored file", slog.String("path", rel), slog.String("error", err.Error()))
			report.fail(rel, err)
			continue
		}
		o.logger.Info("restored from remote", slog.String("path", rel))
		report.Restored = append(report.Restored, rel)
	}
}
