// Package store 读写 data/ 目录下的 JSON 文档。
//
// 每个集合是一个有序数组文档，每次写入都会整体重写并立刻触发远端同步。
// 读取时文件缺失或 JSON 语法损坏都按空集合处理。字段类型与记录不符时先做
// 宽松转换（数字、布尔转字符串），仍无法转换则返回 ErrMismatch，调用方不得
// 在这种情况下写回，以免覆盖已有数据。
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"

	"github.com/siddarth709/Portfolio/internal/mirror"
)

// ErrMismatch 表示文档是合法 JSON，但内容无法转换为记录类型。
var ErrMismatch = errors.New("document does not match record shape")

// 已知的数据文档，顺序即启动恢复的顺序。
const (
	Certificates = "certificates"
	Projects     = "projects"
	Education    = "education"
	Experience   = "experience"
	Skills       = "skills"
	Research     = "research"
	Testimonials = "testimonials"
	Home         = "home"
	Profile      = "profile"
	Documents    = "documents"
	Messages     = "messages"
)

// Names 列出全部十一个数据文档。
var Names = []string{
	Certificates,
	Projects,
	Education,
	Experience,
	Skills,
	Research,
	Testimonials,
	Home,
	Profile,
	Documents,
	Messages,
}

// RelPath 返回文档相对数据根目录的路径，例如 data/skills.json。
func RelPath(name string) string {
	return path.Join("data", name+".json")
}

// RelPaths 返回全部数据文档的相对路径，供启动恢复使用。
func RelPaths() []string {
	paths := make([]string, 0, len(Names))
	for _, n := range Names {
		paths = append(paths, RelPath(n))
	}
	return paths
}

// Pusher 是保存后触发同步所需的接口。
type Pusher interface {
	Push(ctx context.Context, change mirror.Change) mirror.Result
}

// file 封装单个 JSON 文档的读写。
type file struct {
	name   string
	root   string
	pusher Pusher
	logger *slog.Logger
}

func (f file) path() string {
	return filepath.Join(f.root, filepath.FromSlash(RelPath(f.name)))
}

// raw 读取文档原始内容；文件不存在时返回 nil, nil。
func (f file) raw() ([]byte, error) {
	data, err := os.ReadFile(f.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", f.name, err)
	}
	return data, nil
}

// load 读取并解码文档。ok 为 false 表示文件缺失或语法损坏，此时按空值处理。
func load[T any](f file) (v T, ok bool, err error) {
	data, err := f.raw()
	if err != nil || data == nil {
		return v, false, err
	}

	v, err = decode[T](data)
	var syntaxErr *json.SyntaxError
	switch {
	case err == nil:
		return v, true, nil
	case errors.As(err, &syntaxErr):
		f.logger.Debug("malformed document treated as empty", slog.String("document", f.name), slog.String("error", err.Error()))
		return v, false, nil
	case bytes.Equal(bytes.TrimSpace(data), []byte("[]")):
		// 单记录文档在初始化时可能被写成空数组。
		var zero T
		return zero, false, nil
	}
	return v, false, fmt.Errorf("load %s: %w", f.name, err)
}

// decode 先按记录类型严格解码；类型不符时退回到弱类型解码。
func decode[T any](data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	var typeErr *json.UnmarshalTypeError
	if err == nil || errors.As(err, new(*json.SyntaxError)) {
		return v, err
	}
	if !errors.As(err, &typeErr) {
		return v, fmt.Errorf("%w: %w", ErrMismatch, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return v, err
	}

	var weak T
	md, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &weak,
	})
	if err != nil {
		return v, err
	}
	if err := md.Decode(tree); err != nil {
		return v, fmt.Errorf("%w: %w", ErrMismatch, err)
	}
	return weak, nil
}

// write 以 4 空格缩进写入（临时文件 + rename），然后推送。
// 返回的 error 只表示本地写入失败；推送失败放在 mirror.Result 中。
func (f file) write(ctx context.Context, v any, removed []string) (mirror.Result, error) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return mirror.Result{}, fmt.Errorf("encode %s: %w", f.name, err)
	}

	target := f.path()
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return mirror.Result{}, fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+f.name+"-*.json")
	if err != nil {
		return mirror.Result{}, fmt.Errorf("create temp for %s: %w", f.name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return mirror.Result{}, fmt.Errorf("write %s: %w", f.name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return mirror.Result{}, fmt.Errorf("close %s: %w", f.name, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return mirror.Result{}, fmt.Errorf("replace %s: %w", f.name, err)
	}

	res := f.pusher.Push(ctx, mirror.Change{
		Message: fmt.Sprintf("Update %s.json", f.name),
		Paths:   []string{RelPath(f.name)},
		Removed: removed,
	})
	if !res.OK() {
		f.logger.Warn("document saved locally but sync failed", slog.String("document", f.name), slog.String("error", res.Err.Error()))
	}
	return res, nil
}

// Collection 是一个有序记录数组文档。
type Collection[T any] struct {
	file
}

// NewCollection 返回名为 name 的集合，文档位于 root/data/<name>.json。
func NewCollection[T any](root, name string, pusher Pusher, logger *slog.Logger) *Collection[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collection[T]{file{name: name, root: root, pusher: pusher, logger: logger}}
}

// Name 返回集合名。
func (c *Collection[T]) Name() string { return c.name }

// Read 读取全部记录；文件缺失或语法损坏时返回空切片。
// 内容无法转换为记录时返回 ErrMismatch，此时不应写回。
func (c *Collection[T]) Read() ([]T, error) {
	items, _, err := load[[]T](c.file)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []T{}, nil
	}
	return items, nil
}

// Load 与 Read 相同，但读取失败时记录日志并返回空切片，供只读展示使用。
func (c *Collection[T]) Load() []T {
	items, err := c.Read()
	if err != nil {
		c.logger.Warn("read document failed", slog.String("document", c.name), slog.String("error", err.Error()))
		return []T{}
	}
	return items
}

// Save 整体写回记录并推送。
func (c *Collection[T]) Save(ctx context.Context, items []T) (mirror.Result, error) {
	return c.SaveRemoving(ctx, items, nil)
}

// SaveRemoving 与 Save 相同，同时告知镜像哪些资产文件已被删除。
func (c *Collection[T]) SaveRemoving(ctx context.Context, items []T, removed []string) (mirror.Result, error) {
	if items == nil {
		items = []T{}
	}
	return c.write(ctx, items, removed)
}

// Document 是只有一条记录的文档（profile、home）。
type Document[T any] struct {
	file
}

// NewDocument 返回名为 name 的单记录文档。
func NewDocument[T any](root, name string, pusher Pusher, logger *slog.Logger) *Document[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Document[T]{file{name: name, root: root, pusher: pusher, logger: logger}}
}

// Read 读取记录；文件缺失或语法损坏时返回零值。
func (d *Document[T]) Read() (T, error) {
	v, ok, err := load[T](d.file)
	if err != nil || !ok {
		var zero T
		return zero, err
	}
	return v, nil
}

// Load 与 Read 相同，但读取失败时记录日志并返回零值。
func (d *Document[T]) Load() T {
	v, err := d.Read()
	if err != nil {
		d.logger.Warn("read document failed", slog.String("document", d.name), slog.String("error", err.Error()))
	}
	return v
}

// Save 写回记录并推送。
func (d *Document[T]) Save(ctx context.Context, v T) (mirror.Result, error) {
	return d.write(ctx, v, nil)
}
