package content

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/siddarth709/Portfolio/internal/store"
)

// Profile 返回个人资料；文档不存在时为零值。
func (s *Service) Profile() Profile {
	return s.profile.Load()
}

// UpdateProfile 覆盖文字字段，并替换本次上传的图片。头像同时写入 image 与 profile_image。
func (s *Service) UpdateProfile(ctx context.Context, in ProfileInput) (Profile, Outcome, error) {
	var out Outcome
	if err := in.Validate(); err != nil {
		return Profile{}, out, invalid(err)
	}

	p, err := s.profile.Read()
	if err != nil {
		return Profile{}, out, err
	}
	p.Name = in.Name
	p.Email = in.Email
	p.LinkedIn = in.LinkedIn
	p.GitHub = in.GitHub
	p.Twitter = in.Twitter
	p.Phone = in.Phone
	p.Bio = in.Bio

	images := s.layout.Images
	if name := s.storeImage(ctx, in.ProfileImage, images, "profile", "profile_image", &out); name != nil {
		p.Image = name
		p.ProfileImage = name
	}
	if name := s.storeImage(ctx, in.BannerImage, images, "banner", "banner_image", &out); name != nil {
		p.BannerImage = name
	}
	if name := s.storeImage(ctx, in.SkillsImage, images, "skills_image", "skills_image", &out); name != nil {
		p.SkillsImage = name
	}
	if name := s.storeImage(ctx, in.EducationImage, images, "education_image", "education_image", &out); name != nil {
		p.EducationImage = name
	}
	if name := s.storeImage(ctx, in.ExperienceImage, images, "experience_image", "experience_image", &out); name != nil {
		p.ExperienceImage = name
	}

	return s.saveProfile(ctx, p, out)
}

// AddRole 在头衔列表末尾追加一条。
func (s *Service) AddRole(ctx context.Context, in RoleInput) (Profile, Outcome, error) {
	if err := in.Validate(); err != nil {
		return Profile{}, Outcome{}, invalid(err)
	}
	p, err := s.profile.Read()
	if err != nil {
		return Profile{}, Outcome{}, err
	}
	p.Roles = append(p.Roles, Role{Prefix: in.Prefix, Core: in.Core})
	return s.saveProfile(ctx, p, Outcome{})
}

// DeleteRole 按下标删除头衔，越界时返回 ErrNotFound。
func (s *Service) DeleteRole(ctx context.Context, index int) (Profile, Outcome, error) {
	p, err := s.profile.Read()
	if err != nil {
		return Profile{}, Outcome{}, err
	}
	if index < 0 || index >= len(p.Roles) {
		return Profile{}, Outcome{}, fmt.Errorf("%w: role index %d", ErrNotFound, index)
	}
	p.Roles = append(p.Roles[:index], p.Roles[index+1:]...)
	return s.saveProfile(ctx, p, Outcome{})
}

func (s *Service) saveProfile(ctx context.Context, p Profile, out Outcome) (Profile, Outcome, error) {
	res, err := s.profile.Save(ctx, p)
	if err != nil {
		return Profile{}, out, fmt.Errorf("save %s: %w", store.Profile, err)
	}
	out.sync(res)
	return p, out, nil
}

// Home 返回首页文案；文档为空时返回内置默认值。
func (s *Service) Home() Home {
	h := s.home.Load()
	if h == (Home{}) {
		return DefaultHome()
	}
	return h
}

func (s *Service) UpdateHome(ctx context.Context, h Home) (Home, Outcome, error) {
	var out Outcome
	res, err := s.home.Save(ctx, h)
	if err != nil {
		return Home{}, out, fmt.Errorf("save %s: %w", store.Home, err)
	}
	out.sync(res)
	return h, out, nil
}

// ResearchDocument 返回研究条目私有文档的本地路径；条目不存在或没有文档时返回 ErrNotFound。
func (s *Service) ResearchDocument(id string) (string, error) {
	items := s.research.Load()
	i := indexOf(items, id)
	if i < 0 || items[i].Document == nil || *items[i].Document == "" {
		return "", fmt.Errorf("%w: research document %s", ErrNotFound, id)
	}
	return s.DocumentPath(*items[i].Document)
}

// DocumentPath 返回私有文档目录中 filename 的本地路径，文件不存在时返回 ErrNotFound。
func (s *Service) DocumentPath(filename string) (string, error) {
	if filename == "" || filepath.Base(filename) != filename || filename == "." || filename == ".." {
		return "", fmt.Errorf("%w: %q", ErrNotFound, filename)
	}
	p := s.layout.Documents.Path(filename)
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %q", ErrNotFound, filename)
		}
		return "", err
	}
	return p, nil
}
