// Package assets 管理上传文件：生成不冲突的文件名、写入上传目录、删除孤儿文件，
// 并在每次成功写入后触发远端同步。
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/siddarth709/Portfolio/internal/mirror"
)

var (
	ErrEmptyName           = errors.New("upload has no filename")
	ErrExtensionNotAllowed = errors.New("file extension not allowed")
	ErrInfected            = errors.New("malicious file detected")
	ErrUnsafeName          = errors.New("unsafe asset filename")
)

// Upload 是外部调用方提供的上传文件句柄。
type Upload interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// Present 报告调用方是否真的选择了文件。
func Present(up Upload) bool {
	return up != nil && up.Name() != ""
}

type fileHeader struct {
	fh *multipart.FileHeader
}

func (f fileHeader) Name() string                 { return f.fh.Filename }
func (f fileHeader) Open() (io.ReadCloser, error) { return f.fh.Open() }

// FromFileHeader 把 multipart 表单文件适配为 Upload；fh 为 nil 时返回 nil。
func FromFileHeader(fh *multipart.FileHeader) Upload {
	if fh == nil {
		return nil
	}
	return fileHeader{fh: fh}
}

// Pusher 是资产写入后触发同步所需的接口。
type Pusher interface {
	Push(ctx context.Context, change mirror.Change) mirror.Result
}

// Scanner 在文件落盘前扫描内容，发现恶意内容时返回 ErrInfected。
type Scanner interface {
	Scan(r io.Reader) error
}

// Manager 负责上传文件的存储与删除。
type Manager struct {
	pusher  Pusher
	scanner Scanner
	now     func() time.Time
	logger  *slog.Logger
}

// Option 配置 Manager。
type Option func(*Manager)

// WithScanner 在写入前启用病毒扫描。
func WithScanner(s Scanner) Option {
	return func(m *Manager) { m.scanner = s }
}

// WithClock 替换生成文件名时使用的时钟。
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager 返回 Manager 实例。
func NewManager(pusher Pusher, logger *slog.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		pusher: pusher,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Store 校验并保存上传文件，返回写入的文件名（<prefix>_<unix秒>_<净化后的原名>）以及同步结果。
// 同步失败不会影响返回的文件名，本地文件已经落盘。
func (m *Manager) Store(ctx context.Context, up Upload, folder Folder, prefix string) (string, mirror.Result, error) {
	if !Present(up) {
		return "", mirror.Result{}, ErrEmptyName
	}
	if folder.Class == ClassImage && !Allowed(up.Name()) {
		return "", mirror.Result{}, fmt.Errorf("%w: %s", ErrExtensionNotAllowed, up.Name())
	}

	if m.scanner != nil {
		if err := m.scan(up); err != nil {
			return "", mirror.Result{}, err
		}
	}

	filename := fmt.Sprintf("%s_%d_%s", prefix, m.now().Unix(), SanitizeName(up.Name()))
	if err := m.write(up, folder, filename); err != nil {
		return "", mirror.Result{}, err
	}
	m.logger.Info("asset stored", slog.String("folder", folder.Name), slog.String("filename", filename))

	res := m.pusher.Push(ctx, mirror.Change{
		Message: fmt.Sprintf("Upload %s %s", folder.Label, filename),
		Paths:   []string{folder.RelPath(filename)},
	})
	return filename, res, nil
}

func (m *Manager) scan(up Upload) error {
	r, err := up.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer r.Close()

	if err := m.scanner.Scan(r); err != nil {
		m.logger.Warn("upload rejected by scanner", slog.String("name", up.Name()), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (m *Manager) write(up Upload, folder Folder, filename string) error {
	src, err := up.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(folder.Dir, 0o755); err != nil {
		return fmt.Errorf("create folder %s: %w", folder.Name, err)
	}

	dst, err := os.Create(folder.Path(filename))
	if err != nil {
		return fmt.Errorf("create %s: %w", filename, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(folder.Path(filename))
		return fmt.Errorf("write %s: %w", filename, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filename, err)
	}
	return nil
}

// CheckFilename 拒绝带目录成分的文件名，空串视为合法（表示没有文件）。
func CheckFilename(filename string) error {
	if filename == "" {
		return nil
	}
	if filepath.Base(filename) != filename || filename == "." || filename == ".." {
		return fmt.Errorf("%w: %q", ErrUnsafeName, filename)
	}
	return nil
}

// Delete 删除目录中的文件；文件不存在视为成功（幂等）。
// filename 必须是单纯的文件名，不能包含路径。
func (m *Manager) Delete(folder Folder, filename string) error {
	if filename == "" {
		return nil
	}
	if err := CheckFilename(filename); err != nil {
		return err
	}
	if err := os.Remove(folder.Path(filename)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove %s: %w", filename, err)
	}
	m.logger.Info("asset deleted", slog.String("folder", folder.Name), slog.String("filename", filename))
	return nil
}
