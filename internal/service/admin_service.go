package service

import (
	"context"
	"crypto/subtle"
	"strings"

	"faq-support-go/internal/apperr"
	"faq-support-go/internal/config"
	"faq-support-go/pkg/hash"
	"faq-support-go/pkg/log"
	"faq-support-go/pkg/token"
)

// RoleAdmin 是管理员 token 中的角色值。
const RoleAdmin = "ADMIN"

// LoginResult 是登录成功后返回给客户端的数据。
type LoginResult struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

// AdminService 处理管理员身份认证。管理员账号来自配置，不落库。
type AdminService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

type adminService struct {
	cfg        config.AdminConfig
	jwtManager *token.JWTManager
	expireSecs int
}

// NewAdminService 创建一个新的 AdminService 实例。
func NewAdminService(cfg config.AdminConfig, jwtCfg config.JWTConfig, jwtManager *token.JWTManager) AdminService {
	return &adminService{
		cfg:        cfg,
		jwtManager: jwtManager,
		expireSecs: jwtCfg.AccessTokenExpireHours * 3600,
	}
}

// Login 校验用户名与 bcrypt 密码哈希，成功后签发 access token。
func (s *adminService) Login(_ context.Context, username, password string) (*LoginResult, error) {
	const op = "AdminService.Login"

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "username and password required", nil)
	}

	// 用户名不匹配时同样执行哈希比对
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) == 1
	passOK := hash.CheckPasswordHash(password, s.cfg.PasswordHash)
	if !userOK || !passOK {
		log.Warnf("[AdminService] 管理员登录失败, username: %s", username)
		return nil, apperr.E(apperr.CodeUnauthorized, op, "invalid credentials", nil)
	}

	tok, err := s.jwtManager.GenerateToken(username, RoleAdmin)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, MsgServerError, err)
	}
	log.Infof("[AdminService] 管理员登录成功, username: %s", username)
	return &LoginResult{Token: tok, ExpiresIn: s.expireSecs}, nil
}
