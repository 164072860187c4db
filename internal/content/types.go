package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID 是记录标识。按文本比较；JSON 中既可能是数字也可能是字符串。
type ID string

// NextID 按集合当前长度分配新 ID（长度 + 1）。删除后可能与已有 ID 重复。
func NextID(length int) ID {
	return ID(strconv.Itoa(length + 1))
}

func (id ID) String() string { return string(id) }

// MarshalJSON 纯数字 ID 写成 JSON 数字，其余写成字符串。
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(string(id)); err == nil && strconv.Itoa(n) == string(id) {
		return []byte(string(id)), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

type Certificate struct {
	ID          ID      `json:"id"`
	Title       string  `json:"title"`
	Issuer      string  `json:"issuer"`
	Date        string  `json:"date"`
	Link        string  `json:"link"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

type Document struct {
	ID       ID     `json:"id"`
	Title    string `json:"title"`
	Filename string `json:"filename"`
	Date     string `json:"date"`
}

// 研究条目类型。
const (
	ResearchPublished = "published"
	ResearchOngoing   = "ongoing"
)

type Research struct {
	ID             ID      `json:"id"`
	Type           string  `json:"type"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Link           string  `json:"link"`
	LinkText       string  `json:"link_text"`
	Document       *string `json:"document"`
	PublicDocument *string `json:"public_document,omitempty"`
}

type Project struct {
	ID          ID      `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Link        string  `json:"link"`
	Image       *string `json:"image"`
}

type Education struct {
	ID     ID     `json:"id"`
	School string `json:"school"`
	Degree string `json:"degree"`
	Date   string `json:"date"`
}

type Experience struct {
	ID          ID     `json:"id"`
	Role        string `json:"role"`
	Company     string `json:"company"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type Skill struct {
	ID        ID     `json:"id"`
	Category  string `json:"category"`
	SkillList string `json:"skill_list"`
}

type Message struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

type Testimonial struct {
	ID      ID      `json:"id"`
	Name    string  `json:"name"`
	Message string  `json:"message"`
	Date    string  `json:"date"`
	Image   *string `json:"image"`
}

// Role 是首页轮播的一条头衔，例如 "I build" + "APIs"。
type Role struct {
	Prefix string `json:"prefix"`
	Core   string `json:"core"`
}

// Profile 是个人资料单例。图片字段只在上传过之后出现。
type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Twitter  string `json:"twitter"`
	Phone    string `json:"phone"`
	Bio      string `json:"bio"`

	Image           *string `json:"image,omitempty"`
	ProfileImage    *string `json:"profile_image,omitempty"`
	BannerImage     *string `json:"banner_image,omitempty"`
	SkillsImage     *string `json:"skills_image,omitempty"`
	EducationImage  *string `json:"education_image,omitempty"`
	ExperienceImage *string `json:"experience_image,omitempty"`

	Roles []Role `json:"roles,omitempty"`
}

// Home 是首页文案单例。
type Home struct {
	HeroText1      string `json:"hero_text_1"`
	HeroTextAccent string `json:"hero_text_accent"`
	HeroText2      string `json:"hero_text_2"`
	Subtitle       string `json:"subtitle"`
}

// DefaultHome 在首页文档为空时使用。
func DefaultHome() Home {
	return Home{
		HeroText1:      "Building",
		HeroTextAccent: "Digital Experiences",
		HeroText2:      "That Matter.",
		Subtitle:       "Full Stack Developer & UI/UX Enthusiast.",
	}
}

// Kind 是可删除的记录类别。
type Kind string

const (
	KindCertificate Kind = "certificate"
	KindDocument    Kind = "document"
	KindResearch    Kind = "research"
	KindProject     Kind = "project"
	KindEducation   Kind = "education"
	KindExperience  Kind = "experience"
	KindSkill       Kind = "skill"
	KindMessage     Kind = "message"
	KindTestimonial Kind = "testimonial"
)

// Kinds 列出全部类别。
var Kinds = []Kind{
	KindCertificate,
	KindDocument,
	KindResearch,
	KindProject,
	KindEducation,
	KindExperience,
	KindSkill,
	KindMessage,
	KindTestimonial,
}

// ParseKind 解析类别名，未知时返回 ErrUnknownKind。
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
