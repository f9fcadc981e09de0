package handler

import (
	"net/http"

	"faq-support-go/internal/middleware"
	"faq-support-go/internal/service"
	"faq-support-go/pkg/log"
	"faq-support-go/pkg/token"

	"github.com/gin-gonic/gin"
)

// AdminHandler 负责处理管理员登录与 FAQ 管理请求。
type AdminHandler struct {
	adminService service.AdminService
	faqService   service.FAQService
}

// NewAdminHandler 创建一个新的 AdminHandler 实例。
func NewAdminHandler(adminService service.AdminService, faqService service.FAQService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		faqService:   faqService,
	}
}

// LoginRequest 定义了管理员登录 API 的请求体结构。
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 处理管理员登录请求。
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req, envelopeError) {
		return
	}

	res, err := h.adminService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeEnvelopeError(c, err)
		return
	}
	envelope(c, http.StatusOK, "Login successful", res)
}

// ListFAQs 返回按创建顺序排列的全部 FAQ。
func (h *AdminHandler) ListFAQs(c *gin.Context) {
	faqs, err := h.faqService.List(c.Request.Context())
	if err != nil {
		writeEnvelopeError(c, err)
		return
	}
	envelope(c, http.StatusOK, "success", faqs)
}

// CreateFAQ 追加一条 FAQ，下一次聊天请求即可生效。
func (h *AdminHandler) CreateFAQ(c *gin.Context) {
	var req service.FAQInput
	if !bindJSON(c, &req, envelopeError) {
		return
	}

	faq, err := h.faqService.Create(c.Request.Context(), req)
	if err != nil {
		writeEnvelopeError(c, err)
		return
	}

	if claims, ok := c.Get(middleware.ClaimsKey); ok {
		log.Infof("[AdminHandler] FAQ %s 由 %s 创建", faq.ID, claims.(*token.CustomClaims).Username)
	}
	envelope(c, http.StatusCreated, "FAQ created", faq)
}
