package api

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/siddarth709/Portfolio/internal/content"
)

// PublicHandler 提供无需登录的只读内容与公开表单。
type PublicHandler struct {
	content *content.Service
}

// NewPublicHandler 返回 PublicHandler 实例。
func NewPublicHandler(svc *content.Service) *PublicHandler {
	return &PublicHandler{content: svc}
}

// Content 返回首页需要的全部内容。
func (h *PublicHandler) Content(c *gin.Context) {
	Data(c, gin.H{
		"home":       h.content.Home(),
		"profile":    h.content.Profile(),
		"education":  h.content.Education(),
		"experience": h.content.Experience(),
		"skills":     h.content.Skills(),
	})
}

func (h *PublicHandler) Projects(c *gin.Context)     { Data(c, h.content.Projects()) }
func (h *PublicHandler) Certificates(c *gin.Context) { Data(c, h.content.Certificates()) }
func (h *PublicHandler) Research(c *gin.Context)     { Data(c, h.content.Research()) }
func (h *PublicHandler) Testimonials(c *gin.Context) { Data(c, h.content.Testimonials()) }

// Contact 保存联系表单留言。
func (h *PublicHandler) Contact(c *gin.Context) {
	msg, out, err := h.content.AddMessage(c.Request.Context(), content.MessageInput{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Mutated(c, http.StatusCreated, msg, out)
}

// SubmitTestimonial 保存访客提交的评价，需先通过共享口令校验。
func (h *PublicHandler) SubmitTestimonial(c *gin.Context) {
	rec, out, err := h.content.AddTestimonial(c.Request.Context(), content.TestimonialInput{
		Name:    c.PostForm("name"),
		Message: c.PostForm("message"),
		Image:   formUpload(c, "image"),
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Mutated(c, http.StatusCreated, rec, out)
}

// ResearchDocument 下载研究条目的私有文档，需先通过共享口令校验。
func (h *PublicHandler) ResearchDocument(c *gin.Context) {
	path, err := h.content.ResearchDocument(c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
