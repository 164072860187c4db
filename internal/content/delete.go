package content

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/siddarth709/Portfolio/internal/assets"
	"github.com/siddarth709/Portfolio/internal/config"
	"github.com/siddarth709/Portfolio/internal/store"
)

// assetRef 是记录引用的一个上传文件。
type assetRef struct {
	folder assets.Folder
	name   *string
}

// record 是可按 ID 查找、删除时需要清理文件的记录。
type record interface {
	recordID() ID
	assetRefs(l *config.Layout) []assetRef
}

func (r Certificate) recordID() ID { return r.ID }
func (r Document) recordID() ID    { return r.ID }
func (r Research) recordID() ID    { return r.ID }
func (r Project) recordID() ID     { return r.ID }
func (r Education) recordID() ID   { return r.ID }
func (r Experience) recordID() ID  { return r.ID }
func (r Skill) recordID() ID       { return r.ID }
func (r Message) recordID() ID     { return r.ID }
func (r Testimonial) recordID() ID { return r.ID }

func (r Certificate) assetRefs(l *config.Layout) []assetRef {
	return []assetRef{{l.Certificates, r.Image}}
}

func (r Document) assetRefs(l *config.Layout) []assetRef {
	return []assetRef{{l.Documents, &r.Filename}}
}

func (r Research) assetRefs(l *config.Layout) []assetRef {
	return []assetRef{{l.Documents, r.Document}, {l.ResearchPublic, r.PublicDocument}}
}

func (r Project) assetRefs(l *config.Layout) []assetRef {
	return []assetRef{{l.Projects, r.Image}}
}

func (r Testimonial) assetRefs(l *config.Layout) []assetRef {
	return []assetRef{{l.Testimonials, r.Image}}
}

func (Education) assetRefs(*config.Layout) []assetRef  { return nil }
func (Experience) assetRefs(*config.Layout) []assetRef { return nil }
func (Skill) assetRefs(*config.Layout) []assetRef      { return nil }
func (Message) assetRefs(*config.Layout) []assetRef    { return nil }

// indexOf 按文本比较 ID，找不到返回 -1。
func indexOf[T record](items []T, id string) int {
	for i, it := range items {
		if it.recordID().String() == id {
			return i
		}
	}
	return -1
}

// Delete 删除 kind 类别中 ID 为 id 的全部记录及其引用的文件。
// 文件先于 JSON 条目删除；任一文件删除失败时返回 ErrAssetDelete，记录保留。
// 记录不存在时返回 ErrNotFound，不产生任何副作用。
func (s *Service) Delete(ctx context.Context, kind Kind, id string) (Outcome, error) {
	switch kind {
	case KindCertificate:
		return remove(ctx, s, s.certificates, id)
	case KindDocument:
		return remove(ctx, s, s.documents, id)
	case KindResearch:
		return remove(ctx, s, s.research, id)
	case KindProject:
		return remove(ctx, s, s.projects, id)
	case KindEducation:
		return remove(ctx, s, s.education, id)
	case KindExperience:
		return remove(ctx, s, s.experience, id)
	case KindSkill:
		return remove(ctx, s, s.skills, id)
	case KindMessage:
		return remove(ctx, s, s.messages, id)
	case KindTestimonial:
		return remove(ctx, s, s.testimonials, id)
	}
	return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

func remove[T record](ctx context.Context, s *Service, c *store.Collection[T], id string) (Outcome, error) {
	var out Outcome
	items, err := c.Read()
	if err != nil {
		return out, err
	}

	kept := make([]T, 0, len(items))
	var refs []assetRef
	matched := 0
	for _, it := range items {
		if it.recordID().String() != id {
			kept = append(kept, it)
			continue
		}
		matched++
		for _, ref := range it.assetRefs(s.layout) {
			if ref.name != nil && *ref.name != "" {
				refs = append(refs, ref)
			}
		}
	}
	if matched == 0 {
		return out, fmt.Errorf("%w: %s %s", ErrNotFound, c.Name(), id)
	}

	// 先整体校验文件名，避免删掉一部分文件后才发现无法继续。
	for _, ref := range refs {
		if err := assets.CheckFilename(*ref.name); err != nil {
			return out, fmt.Errorf("%w: %w", ErrAssetDelete, err)
		}
	}

	var removed []string
	for _, ref := range refs {
		if err := s.assets.Delete(ref.folder, *ref.name); err != nil {
			s.logger.Warn("delete asset failed",
				slog.String("folder", ref.folder.Name),
				slog.String("filename", *ref.name),
				slog.String("error", err.Error()),
			)
			return out, fmt.Errorf("%w: %w", ErrAssetDelete, err)
		}
		removed = append(removed, ref.folder.RelPath(*ref.name))
	}

	res, err := c.SaveRemoving(ctx, kept, removed)
	if err != nil {
		return out, fmt.Errorf("save %s: %w", c.Name(), err)
	}
	out.sync(res)
	s.logger.Info("record deleted", slog.String("collection", c.Name()), slog.String("id", id), slog.Int("records", matched))
	return out, nil
}
