package assets

import (
	"path"
	"path/filepath"
)

// Class 决定上传到某个目录时是否校验扩展名。
type Class int

const (
	// ClassImage 只接受 AllowedExtensions 中的扩展名。
	ClassImage Class = iota
	// ClassDocument 接受任意扩展名。
	ClassDocument
)

// Folder 是一个上传目录。Dir 是启动时解析好的绝对路径，Rel 是相对数据根目录的斜杠路径，用于远端同步。
type Folder struct {
	Name  string
	Label string
	Dir   string
	Rel   string
	Class Class
}

// NewFolder 以 root 为根构造上传目录。
func NewFolder(root, name, label, rel string, class Class) Folder {
	return Folder{
		Name:  name,
		Label: label,
		Dir:   filepath.Join(root, filepath.FromSlash(rel)),
		Rel:   rel,
		Class: class,
	}
}

// Path 返回 filename 在该目录下的本地路径。
func (f Folder) Path(filename string) string {
	return filepath.Join(f.Dir, filename)
}

// RelPath 返回 filename 相对数据根目录的路径。
func (f Folder) RelPath(filename string) string {
	return path.Join(f.Rel, filename)
}
