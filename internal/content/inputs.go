package content

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/siddarth709/Portfolio/internal/assets"
)

// 以下输入结构由调用方（HTTP 层、CLI）填充；文件字段为空表示未上传。

type CertificateInput struct {
	Title       string
	Issuer      string
	Date        string
	Description string
	Image       assets.Upload
}

func (in CertificateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required.Error("title is required")),
	)
}

type DocumentInput struct {
	Title string
	File  assets.Upload
}

func (in DocumentInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required.Error("title is required")),
	)
}

type ResearchInput struct {
	Type           string
	Title          string
	Description    string
	Link           string
	Document       assets.Upload
	PublicDocument assets.Upload
}

func (in ResearchInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Type, validation.In(ResearchPublished, ResearchOngoing).Error("type must be published or ongoing")),
		validation.Field(&in.Title, validation.Required.Error("title is required")),
	)
}

type ProjectInput struct {
	Title       string
	Description string
	Link        string
	Image       assets.Upload
}

func (in ProjectInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required.Error("title is required")),
	)
}

type EducationInput struct {
	School string
	Degree string
	Date   string
}

func (in EducationInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.School, validation.Required.Error("school is required")),
	)
}

type ExperienceInput struct {
	Role        string
	Company     string
	Date        string
	Description string
}

func (in ExperienceInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Role, validation.Required.Error("role is required")),
	)
}

type SkillInput struct {
	Category string
	Items    string
}

func (in SkillInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Category, validation.Required.Error("category is required")),
	)
}

// MessageInput 是联系表单提交。
type MessageInput struct {
	Name    string
	Email   string
	Message string
}

func (in MessageInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("name is required")),
		validation.Field(&in.Email, validation.Required.Error("email is required")),
		validation.Field(&in.Message, validation.Required.Error("message is required")),
	)
}

type TestimonialInput struct {
	Name    string
	Message string
	Image   assets.Upload
}

func (in TestimonialInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("name is required")),
		validation.Field(&in.Message, validation.Required.Error("message is required")),
	)
}

// TestimonialUpdate 修改已有评价；Image 为空时保留原图。
type TestimonialUpdate struct {
	ID      string
	Name    string
	Message string
	Image   assets.Upload
}

func (in TestimonialUpdate) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ID, validation.Required.Error("id is required")),
		validation.Field(&in.Name, validation.Required.Error("name is required")),
		validation.Field(&in.Message, validation.Required.Error("message is required")),
	)
}

// ProfileInput 覆盖个人资料的文字字段；图片字段只在上传时替换。
type ProfileInput struct {
	Name     string
	Email    string
	LinkedIn string
	GitHub   string
	Twitter  string
	Phone    string
	Bio      string

	ProfileImage    assets.Upload
	BannerImage     assets.Upload
	SkillsImage     assets.Upload
	EducationImage  assets.Upload
	ExperienceImage assets.Upload
}

// Validate 总是通过：个人资料的字段都是可选的自由文本。
func (in ProfileInput) Validate() error {
	return nil
}

type RoleInput struct {
	Prefix string
	Core   string
}

func (in RoleInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Prefix, validation.Required.Error("prefix is required")),
		validation.Field(&in.Core, validation.Required.Error("core is required")),
	)
}
