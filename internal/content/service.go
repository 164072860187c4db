// Package content 实现作品集各类记录的增删改：读集合、分配 ID、保存上传文件、
// 构造记录、插入并写回。每次写回都会触发远端同步，同步失败只作为告警返回。
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/siddarth709/Portfolio/internal/assets"
	"github.com/siddarth709/Portfolio/internal/config"
	"github.com/siddarth709/Portfolio/internal/mirror"
	"github.com/siddarth709/Portfolio/internal/store"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrUnknownKind  = errors.New("unknown record kind")
	ErrFileRequired = errors.New("file is required")
	ErrInvalid      = errors.New("invalid input")
	ErrAssetDelete  = errors.New("referenced file could not be deleted")
)

// Outcome 汇总一次操作产生的非致命告警：同步失败、被拒绝的上传等。
type Outcome struct {
	Warnings []string
}

// OK 报告操作是否没有任何告警。
func (o Outcome) OK() bool { return len(o.Warnings) == 0 }

func (o *Outcome) warn(msg string) {
	if msg == "" || slices.Contains(o.Warnings, msg) {
		return
	}
	o.Warnings = append(o.Warnings, msg)
}

func (o *Outcome) sync(res mirror.Result) {
	o.warn(res.Warning())
}

// Service 是记录操作的入口。
type Service struct {
	layout *config.Layout
	assets *assets.Manager
	now    func() time.Time
	logger *slog.Logger

	certificates *store.Collection[Certificate]
	documents    *store.Collection[Document]
	research     *store.Collection[Research]
	projects     *store.Collection[Project]
	education    *store.Collection[Education]
	experience   *store.Collection[Experience]
	skills       *store.Collection[Skill]
	messages     *store.Collection[Message]
	testimonials *store.Collection[Testimonial]
	profile      *store.Document[Profile]
	home         *store.Document[Home]
}

// Option 配置 Service。
type Option func(*Service)

// WithClock 替换生成日期时使用的时钟。
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService 基于布局、同步器与资产管理器构造 Service。
func NewService(layout *config.Layout, pusher store.Pusher, mgr *assets.Manager, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	root := layout.Root
	s := &Service{
		layout: layout,
		assets: mgr,
		now:    time.Now,
		logger: logger,

		certificates: store.NewCollection[Certificate](root, store.Certificates, pusher, logger),
		documents:    store.NewCollection[Document](root, store.Documents, pusher, logger),
		research:     store.NewCollection[Research](root, store.Research, pusher, logger),
		projects:     store.NewCollection[Project](root, store.Projects, pusher, logger),
		education:    store.NewCollection[Education](root, store.Education, pusher, logger),
		experience:   store.NewCollection[Experience](root, store.Experience, pusher, logger),
		skills:       store.NewCollection[Skill](root, store.Skills, pusher, logger),
		messages:     store.NewCollection[Message](root, store.Messages, pusher, logger),
		testimonials: store.NewCollection[Testimonial](root, store.Testimonials, pusher, logger),
		profile:      store.NewDocument[Profile](root, store.Profile, pusher, logger),
		home:         store.NewDocument[Home](root, store.Home, pusher, logger),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Certificates() []Certificate { return s.certificates.Load() }
func (s *Service) Documents() []Document       { return s.documents.Load() }
func (s *Service) Research() []Research        { return s.research.Load() }
func (s *Service) Projects() []Project         { return s.projects.Load() }
func (s *Service) Education() []Education      { return s.education.Load() }
func (s *Service) Experience() []Experience    { return s.experience.Load() }
func (s *Service) Skills() []Skill             { return s.skills.Load() }
func (s *Service) Messages() []Message         { return s.messages.Load() }
func (s *Service) Testimonials() []Testimonial { return s.testimonials.Load() }

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalid, err)
}

// storeImage 保存可选的上传文件。被拒绝的上传不会中断所属记录，只记录告警。
func (s *Service) storeImage(ctx context.Context, up assets.Upload, folder assets.Folder, prefix, field string, out *Outcome) *string {
	if !assets.Present(up) {
		return nil
	}
	name, res, err := s.assets.Store(ctx, up, folder, prefix)
	if err != nil {
		s.logger.Warn("upload rejected", slog.String("field", field), slog.String("name", up.Name()), slog.String("error", err.Error()))
		out.warn(fmt.Sprintf("%s was not saved: %v", field, err))
		return nil
	}
	out.sync(res)
	return &name
}

// insert 读取集合、按长度分配 ID、构造记录并插入到头部（atTail 时追加到尾部），然后写回。
func insert[T any](ctx context.Context, c *store.Collection[T], atTail bool, build func(ID) T, out *Outcome) (T, error) {
	items, err := c.Read()
	if err != nil {
		var zero T
		return zero, err
	}
	rec := build(NextID(len(items)))
	if atTail {
		items = append(items, rec)
	} else {
		items = append([]T{rec}, items...)
	}
	res, err := c.Save(ctx, items)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("save %s: %w", c.Name(), err)
	}
	out.sync(res)
	return rec, nil
}

func (s *Service) AddCertificate(ctx context.Context, in CertificateInput) (Certificate, Outcome, error) {
	var out Outcome
	if err := in.Validate(); err != nil {
		return Certificate{}, out, invalid(err)
	}
	rec, err := insert(ctx, s.certificates, false, func(id ID) Certificate {
		return Certificate{
			ID:          id,
			Title:       in.Title,
			Issuer:      in.Issuer,
			Date:        in.Date,
			Link:        "#",
			Description: in.Description,
			Image:       s.storeImage(ctx, in.Image, s.layout.Certificates, "cert", "image", &out),
		}
	}, &out)
	return rec, out, err
}

// AddDocument 保存私有文档；文件是必填项，保存失败时不会创建记录。
func (s *Service) AddDocument(ctx context.Context, in DocumentInput) (Document, Outcome, error) {
	var out Outcome
	if err := in.Validate(); err != nil {
		return Document{}, out, invalid(err)
	}
	if !assets.Present(in.File) {
		return Document{}, out, ErrFileRequired
	}
	// 集合不可读时不落盘文件，避免产生无记录引用的孤立文件。
	if _, err := s.documents.Read(); err != nil {
		return Document{}, out, err
	}
	filename, res, err := s.assets.Store(ctx, in.File, s.layout.Documents, "doc")
	if err != nil {
		return Document{}, out, fmt.Errorf("store document: %w", err)
	}
	out.sync(res)

	rec, err := insert(ctx, s.documents, false, func(id ID) Document {
		return Document{
			ID:       id,
			Title:    in.Title,
			Filename: filename,
			Date:     s.now().Format(time.DateOnly),
		}
	}, &out)
	return rec, out, err
}

func (s *Service) AddResearch(ctx context.Context, in ResearchInput) (Research, Outcome, error) {
	var out Outcome
	if err := in.Validate(); err != nil {
		return Research{}, out, invalid(err)
	}
	link := in.Link
	if link == "" {
		link = "#"
	}
	linkText := "View Project"
	if in.Type == ResearchPublished {
		linkText = "Read Paper"
	}
	rec, err := insert(ctx, s.research, false, func(id ID) Research {
		return Research{
			ID:             id,
			Type:           in.Type,
			Title:          in.Title,
			Description:    in.Description,
			Link:           link,
			LinkText:       linkText,
			Document:       s.storeImage(ctx, in.Document, s.layout.Documents, "research_private", "document", &out),
			PublicDocument: s.storeImage(ctx, in.PublicDocument, s.layout.ResearchPublic, "research_public", "public_document", &out),
		}
	}, &out)
	return rec, out, err
}

func (s *Service) AddProject(ctx context.Context, in ProjectInput) (Project, Outcome, error) {
	var out Outcome
	if err := in.Validate(); err != nil {
		return Project{}, out, invalid(err)
	}
	link := in.Link
	if link == "" {
		link = "#"
	}
	rec, err := insert(ctx, s.projects, false, func(id ID) Project {
		return Project{
			ID:          id,
			Title:       in.Title,
			Description: in.Description,
			Link:        link,
			Image:       s.storeImage(ctx, in.Image, s.layout.Projects, "project", "image", &out),
		}
	}, &out)
	return rec, out, err
}

func (s *Service) AddEducation(ctx context.Context, in EducationInput) (Education, Outcome, error) {
	var out Outcome
	if err := in.Validate(); err != nil {
		return Education{}, out, invalid(err)
	}
	rec, err := insert(ctx, s.education, false, func(id ID) Education {
		return Education{ID: id, School: in.School, Degree: in.Degree, Date: in.Date}
	}, &out)
	return rec, out, err
}

func (s *Service) AddExperience(ctx context.Context, in ExperienceInput) (Experience, Outcome, error) {
	var out Outcome
	if err := in.Validate(); err != nil {
		return Experience{}, out, invalid(err)
	}
	rec, err := insert(ctx, s.experience, false, func(id ID) Experience {
		return Experience{ID: id, Role: in.Role, Company: in.Company, Date: in.Date, Description: in.Description}
	}, &out)
	return rec, out, err
}

// AddSkill 追加到技能列表末尾；技能是唯一按插入顺序排列的集合。
func (s *Service) AddSkill(ctx context.Context, in SkillInput) (Skill, Outcome, error) {
	var out Outcome
	if err := in.Validate(); err != nil {
		return Skill{}, out, invalid(err)
	}
	rec, err := insert(ctx, s.skills, true, func(id ID) Skill {
		return Skill{ID: id, Category: in.Category, SkillList: in.Items}
	}, &out)
	return rec, out, err
}

// AddMessage 保存联系表单留言。
func (s *Service) AddMessage(ctx context.Context, in MessageInput) (Message, Outcome, error) {
	var out Outcome
	if err := in.Validate(); err != nil {
		return Message{}, out, invalid(err)
	}
	rec, err := insert(ctx, s.messages, false, func(id ID) Message {
		return Message{ID: id, Name: in.Name, Email: in.Email, Message: in.Message, Date: "Now"}
	}, &out)
	return rec, out, err
}

func (s *Service) AddTestimonial(ctx context.Context, in TestimonialInput) (Testimonial, Outcome, error) {
	var out Outcome
	if err := in.Validate(); err != nil {
		return Testimonial{}, out, invalid(err)
	}
	rec, err := insert(ctx, s.testimonials, false, func(id ID) Testimonial {
		return Testimonial{
			ID:      id,
			Name:    in.Name,
			Message: in.Message,
			Date:    "Now",
			Image:   s.storeImage(ctx, in.Image, s.layout.Testimonials, "testimonial", "image", &out),
		}
	}, &out)
	return rec, out, err
}

// UpdateTestimonial 原地修改评价，保留原日期；未上传新图时保留原图。
func (s *Service) UpdateTestimonial(ctx context.Context, in TestimonialUpdate) (Testimonial, Outcome, error) {
	var out Outcome
	if err := in.Validate(); err != nil {
		return Testimonial{}, out, invalid(err)
	}
	items, err := s.testimonials.Read()
	if err != nil {
		return Testimonial{}, out, err
	}
	i := indexOf(items, in.ID)
	if i < 0 {
		return Testimonial{}, out, fmt.Errorf("%w: testimonial %s", ErrNotFound, in.ID)
	}

	rec := items[i]
	rec.Name = in.Name
	rec.Message = in.Message
	if rec.Date == "" {
		rec.Date = "Now"
	}
	if img := s.storeImage(ctx, in.Image, s.layout.Testimonials, "testimonial", "image", &out); img != nil {
		rec.Image = img
	}
	items[i] = rec

	res, err := s.testimonials.Save(ctx, items)
	if err != nil {
		return Testimonial{}, out, fmt.Errorf("save %s: %w", store.Testimonials, err)
	}
	out.sync(res)
	return rec, out, nil
}
