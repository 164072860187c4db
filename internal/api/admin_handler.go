package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/siddarth709/Portfolio/internal/content"
)

// AdminHandler 处理管理后台的增删改。所有路由都挂在会话校验之后。
type AdminHandler struct {
	content *content.Service
}

// NewAdminHandler 返回 AdminHandler 实例。
func NewAdminHandler(svc *content.Service) *AdminHandler {
	return &AdminHandler{content: svc}
}

// Dashboard 返回后台需要的全部集合。
func (h *AdminHandler) Dashboard(c *gin.Context) {
	Data(c, gin.H{
		"documents":    h.content.Documents(),
		"certificates": h.content.Certificates(),
		"research":     h.content.Research(),
		"projects":     h.content.Projects(),
		"profile":      h.content.Profile(),
		"education":    h.content.Education(),
		"experience":   h.content.Experience(),
		"skills":       h.content.Skills(),
		"messages":     h.content.Messages(),
		"testimonials": h.content.Testimonials(),
		"home":         h.content.Home(),
	})
}

// respond 统一处理写操作的返回。
func respond[T any](c *gin.Context, status int, rec T, out content.Outcome, err error) {
	if err != nil {
		Fail(c, err)
		return
	}
	Mutated(c, status, rec, out)
}

func (h *AdminHandler) AddCertificate(c *gin.Context) {
	rec, out, err := h.content.AddCertificate(c.Request.Context(), content.CertificateInput{
		Title:       c.PostForm("title"),
		Issuer:      c.PostForm("issuer"),
		Date:        c.PostForm("date"),
		Description: c.PostForm("description"),
		Image:       formUpload(c, "image"),
	})
	respond(c, http.StatusCreated, rec, out, err)
}

func (h *AdminHandler) AddDocument(c *gin.Context) {
	rec, out, err := h.content.AddDocument(c.Request.Context(), content.DocumentInput{
		Title: c.PostForm("title"),
		File:  formUpload(c, "document"),
	})
	respond(c, http.StatusCreated, rec, out, err)
}

func (h *AdminHandler) AddResearch(c *gin.Context) {
	rec, out, err := h.content.AddResearch(c.Request.Context(), content.ResearchInput{
		Type:           c.PostForm("type"),
		Title:          c.PostForm("title"),
		Description:    c.PostForm("description"),
		Link:           c.PostForm("link"),
		Document:       formUpload(c, "document"),
		PublicDocument: formUpload(c, "public_document"),
	})
	respond(c, http.StatusCreated, rec, out, err)
}

func (h *AdminHandler) AddProject(c *gin.Context) {
	rec, out, err := h.content.AddProject(c.Request.Context(), content.ProjectInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Link:        c.PostForm("link"),
		Image:       formUpload(c, "image"),
	})
	respond(c, http.StatusCreated, rec, out, err)
}

func (h *AdminHandler) AddEducation(c *gin.Context) {
	rec, out, err := h.content.AddEducation(c.Request.Context(), content.EducationInput{
		School: c.PostForm("school"),
		Degree: c.PostForm("degree"),
		Date:   c.PostForm("date"),
	})
	respond(c, http.StatusCreated, rec, out, err)
}

func (h *AdminHandler) AddExperience(c *gin.Context) {
	rec, out, err := h.content.AddExperience(c.Request.Context(), content.ExperienceInput{
		Role:        c.PostForm("role"),
		Company:     c.PostForm("company"),
		Date:        c.PostForm("date"),
		Description: c.PostForm("description"),
	})
	respond(c, http.StatusCreated, rec, out, err)
}

func (h *AdminHandler) AddSkill(c *gin.Context) {
	rec, out, err := h.content.AddSkill(c.Request.Context(), content.SkillInput{
		Category: c.PostForm("category"),
		Items:    c.PostForm("items"),
	})
	respond(c, http.StatusCreated, rec, out, err)
}

func (h *AdminHandler) AddTestimonial(c *gin.Context) {
	rec, out, err := h.content.AddTestimonial(c.Request.Context(), content.TestimonialInput{
		Name:    c.PostForm("name"),
		Message: c.PostForm("message"),
		Image:   formUpload(c, "image"),
	})
	respond(c, http.StatusCreated, rec, out, err)
}

func (h *AdminHandler) UpdateTestimonial(c *gin.Context) {
	rec, out, err := h.content.UpdateTestimonial(c.Request.Context(), content.TestimonialUpdate{
		ID:      c.Param("id"),
		Name:    c.PostForm("name"),
		Message: c.PostForm("message"),
		Image:   formUpload(c, "image"),
	})
	respond(c, http.StatusOK, rec, out, err)
}

func (h *AdminHandler) UpdateProfile(c *gin.Context) {
	rec, out, err := h.content.UpdateProfile(c.Request.Context(), content.ProfileInput{
		Name:            c.PostForm("name"),
		Email:           c.PostForm("email"),
		LinkedIn:        c.PostForm("linkedin"),
		GitHub:          c.PostForm("github"),
		Twitter:         c.PostForm("twitter"),
		Phone:           c.PostForm("phone"),
		Bio:             c.PostForm("bio"),
		ProfileImage:    formUpload(c, "profile_image"),
		BannerImage:     formUpload(c, "banner_image"),
		SkillsImage:     formUpload(c, "skills_image"),
		EducationImage:  formUpload(c, "education_image"),
		ExperienceImage: formUpload(c, "experience_image"),
	})
	respond(c, http.StatusOK, rec, out, err)
}

func (h *AdminHandler) AddRole(c *gin.Context) {
	rec, out, err := h.content.AddRole(c.Request.Context(), content.RoleInput{
		Prefix: c.PostForm("prefix"),
		Core:   c.PostForm("core"),
	})
	respond(c, http.StatusCreated, rec, out, err)
}

func (h *AdminHandler) DeleteRole(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		BadRequest(c, "invalid role index")
		return
	}
	rec, out, err := h.content.DeleteRole(c.Request.Context(), index)
	respond(c, http.StatusOK, rec, out, err)
}

func (h *AdminHandler) UpdateHome(c *gin.Context) {
	rec, out, err := h.content.UpdateHome(c.Request.Context(), content.Home{
		HeroText1:      c.PostForm("hero_text_1"),
		HeroTextAccent: c.PostForm("hero_text_accent"),
		HeroText2:      c.PostForm("hero_text_2"),
		Subtitle:       c.PostForm("subtitle"),
	})
	respond(c, http.StatusOK, rec, out, err)
}

// Delete 删除 :kind 类别中 ID 为 :id 的记录及其文件。
func (h *AdminHandler) Delete(c *gin.Context) {
	kind, err := content.ParseKind(c.Param("kind"))
	if err != nil {
		Fail(c, err)
		return
	}
	out, err := h.content.Delete(c.Request.Context(), kind, c.Param("id"))
	respond(c, http.StatusOK, gin.H{"kind": kind, "id": c.Param("id")}, out, err)
}

// Download 下载私有文档目录中的文件。
func (h *AdminHandler) Download(c *gin.Context) {
	filename := c.Param("filename")
	path, err := h.content.DocumentPath(filename)
	if err != nil {
		Fail(c, err)
		return
	}
	c.FileAttachment(path, filename)
}
