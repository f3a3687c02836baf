package router

import (
	"strconv"
	"strings"
	"time"

	"github.com/parcelx-next/internal/config"
	"github.com/parcelx-next/internal/http/response"
	"github.com/parcelx-next/internal/repository"
	"github.com/parcelx-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

type corsPolicy struct {
	origins          []string
	methodsHeader    string
	headersHeader    string
	allowCredentials bool
	maxAge           int
}

func newCORSPolicy(cfg config.CORSConfig) corsPolicy {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	methods := cfg.AllowedMethods
	if len(methods) == 0 {
		methods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	headers := cfg.AllowedHeaders
	if len(headers) == 0 {
		headers = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
		}
	}
	return corsPolicy{
		origins:          origins,
		methodsHeader:    strings.Join(methods, ", "),
		headersHeader:    strings.Join(headers, ", "),
		allowCredentials: cfg.AllowCredentials,
		maxAge:           cfg.MaxAge,
	}
}

// originFor 返回应写入 Allow-Origin 的值，不允许时为空串
func (p corsPolicy) originFor(origin string) string {
	for _, allowed := range p.origins {
		if allowed == "*" {
			// 带凭证时通配符无效，回显具体来源
			if p.allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range p.origins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	policy := newCORSPolicy(cfg)
	return func(c *gin.Context) {
		header := c.Writer.Header()
		if origin := policy.originFor(c.GetHeader("Origin")); origin != "" {
			header.Set("Access-Control-Allow-Origin", origin)
			if origin != "*" {
				header.Add("Vary", "Origin")
			}
		}
		if policy.allowCredentials {
			header.Set("Access-Control-Allow-Credentials", "true")
		}
		header.Set("Access-Control-Allow-Headers", policy.headersHeader)
		header.Set("Access-Control-Allow-Methods", policy.methodsHeader)
		if policy.maxAge > 0 {
			header.Set("Access-Control-Max-Age", strconv.Itoa(policy.maxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// RequestIDMiddleware 请求 ID 中间件，沿用调用方携带的 X-Request-ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	requestID, _ := value.(string)
	return requestID
}

func abortUnauthorized(c *gin.Context, msg string) {
	response.Unauthorized(c, msg)
	c.Abort()
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// JWTAuthMiddleware JWT 鉴权中间件，校验签名后还要确认管理员仍然存在
func JWTAuthMiddleware(secretKey string, adminRepo repository.AdminRepository) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return func(c *gin.Context) {
		if secretKey == "" {
			abortUnauthorized(c, "服务端未配置 JWT 密钥")
			return
		}
		if adminRepo == nil {
			abortUnauthorized(c, "无效的 token")
			return
		}
		tokenString, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "缺少或格式错误的认证信息")
			return
		}

		claims := &service.JWTClaims{}
		token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		})
		if err != nil || !token.Valid || claims.AdminID == 0 {
			abortUnauthorized(c, "无效的 token")
			return
		}

		admin, err := adminRepo.GetByID(claims.AdminID)
		if err != nil || admin == nil {
			abortUnauthorized(c, "无效的 token")
			return
		}

		c.Set("admin_id", claims.AdminID)
		c.Set("username", claims.Username)
		c.Next()
	}
}
