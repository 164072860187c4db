package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/siddarth709/Portfolio/internal/assets"
)

// Layout is the on-disk arrangement of data documents and upload folders, resolved to absolute paths once at startup.
type Layout struct {
	Root    string
	DataDir string

	Certificates   assets.Folder
	Documents      assets.Folder
	ResearchPublic assets.Folder
	Projects       assets.Folder
	Images         assets.Folder
	Testimonials   assets.Folder
	Logos          assets.Folder
}

// NewLayout resolves the layout under root.
func NewLayout(root string) (*Layout, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	return &Layout{
		Root:           abs,
		DataDir:        filepath.Join(abs, "data"),
		Certificates:   assets.NewFolder(abs, "certificates", "Cert", "static/uploads/certificates", assets.ClassImage),
		Documents:      assets.NewFolder(abs, "documents", "Doc", "uploads/private", assets.ClassDocument),
		ResearchPublic: assets.NewFolder(abs, "research_public", "Public Research Doc", "static/uploads/research_public", assets.ClassDocument),
		Projects:       assets.NewFolder(abs, "projects", "Project", "static/uploads/projects", assets.ClassImage),
		Images:         assets.NewFolder(abs, "images", "Image", "static/images", assets.ClassImage),
		Testimonials:   assets.NewFolder(abs, "testimonials", "Testimonial Image", "static/uploads/testimonials", assets.ClassImage),
		Logos:          assets.NewFolder(abs, "logos", "Logo", "static/uploads/logos", assets.ClassImage),
	}, nil
}

// Layout resolves the storage layout for this configuration.
func (c *Config) Layout() (*Layout, error) {
	return NewLayout(c.Storage.Root)
}

// Folders lists every upload folder.
func (l *Layout) Folders() []assets.Folder {
	return []assets.Folder{
		l.Certificates,
		l.Documents,
		l.ResearchPublic,
		l.Projects,
		l.Images,
		l.Testimonials,
		l.Logos,
	}
}

// EnsureDirs creates the data directory and every upload folder.
func (l *Layout) EnsureDirs() error {
	dirs := []string{l.DataDir}
	for _, f := range l.Folders() {
		dirs = append(dirs, f.Dir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}
