package handlers

import (
	"net/http"
	"strings"

	"receivault/config"
	"receivault/models"
	vaultSvc "receivault/services/vault"
	"receivault/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginHandler serves POST /api/admin/login. Credentials are
// checked against the configured admin email and bcrypt password hash;
// a successful login issues a JWT whose hash is cached for revocation.
func AdminLoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || email != strings.ToLower(config.AppConfig.AdminEmail) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(config.AppConfig.AdminPasswordHash), []byte(req.Password)); err != nil {
			getLogger(c).Warn("admin login rejected", zap.String("email", email))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		token, err := utils.GenerateToken(email, email, utils.AuthCacheTTL)
		if err != nil {
			getLogger(c).Error("failed to issue admin token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
			return
		}

		if authCache := utils.GetAuthCacheClient(); authCache != nil {
			key := utils.AuthCachePrefix + utils.HashToken(token)
			if err := authCache.Set(c.Request.Context(), key, email, utils.AuthCacheTTL).Err(); err != nil {
				getLogger(c).Error("failed to cache admin session", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "expiresIn": int(utils.AuthCacheTTL.Seconds())})
	}
}

// AdminLogoutHandler serves POST /api/admin/logout, revoking the
// presented token.
func AdminLogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" || token == authHeader {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing bearer token"})
			return
		}
		if authCache := utils.GetAuthCacheClient(); authCache != nil {
			authCache.Del(c.Request.Context(), utils.AuthCachePrefix+utils.HashToken(token))
		}
		c.JSON(http.StatusOK, gin.H{"status": "logged out"})
	}
}

// InitializeVaultHandler serves POST /api/admin/vaults. Returns the
// unsigned initialize transaction and the derived vault PDA for the
// authority wallet to sign.
func InitializeVaultHandler(svc vaultSvc.VaultService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req vaultSvc.InitializeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		unsigned, pda, err := svc.Initialize(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"tx": unsigned, "vaultPda": pda})
	}
}

type matureRequest struct {
	PayoutRatioBps uint16 `json:"payoutRatioBps" binding:"required"`
}

// FinalizeFundingHandler serves POST /api/admin/vaults/:vaultPda/finalize.
func FinalizeFundingHandler(svc vaultSvc.VaultService) gin.HandlerFunc {
	return lifecycleBuild(func(c *gin.Context, svc vaultSvc.VaultService, pda string) (*models.UnsignedTx, error) {
		return svc.FinalizeFunding(c.Request.Context(), pda)
	}, svc)
}

// MatureVaultHandler serves POST /api/admin/vaults/:vaultPda/mature.
func MatureVaultHandler(svc vaultSvc.VaultService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req matureRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		unsigned, err := svc.MatureVault(c.Request.Context(), c.Param("vaultPda"), req.PayoutRatioBps)
		if err != nil {
			respondLifecycleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tx": unsigned})
	}
}

// CloseVaultHandler serves POST /api/admin/vaults/:vaultPda/close.
func CloseVaultHandler(svc vaultSvc.VaultService) gin.HandlerFunc {
	return lifecycleBuild(func(c *gin.Context, svc vaultSvc.VaultService, pda string) (*models.UnsignedTx, error) {
		return svc.CloseVault(c.Request.Context(), pda)
	}, svc)
}

func lifecycleBuild(build func(*gin.Context, vaultSvc.VaultService, string) (*models.UnsignedTx, error), svc vaultSvc.VaultService) gin.HandlerFunc {
	return func(c *gin.Context) {
		unsigned, err := build(c, svc, c.Param("vaultPda"))
		if err != nil {
			respondLifecycleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tx": unsigned})
	}
}

func respondLifecycleError(c *gin.Context, err error) {
	if lcErr, ok := err.(*vaultSvc.LifecycleError); ok {
		c.JSON(http.StatusConflict, gin.H{"error": lcErr.Message, "code": lcErr.Code})
		return
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
}

type lifecycleSubmitRequest struct {
	VaultPDA string              `json:"vaultPda" binding:"required"`
	Kind     models.ActivityKind `json:"kind" binding:"required"`
	SignedTx string              `json:"signedTx" binding:"required"`
}

// SubmitLifecycleHandler serves POST /api/admin/tx/submit: a signed
// initialize/finalize/mature/close transaction from the authority wallet.
func SubmitLifecycleHandler(svc vaultSvc.VaultService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req lifecycleSubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		switch req.Kind {
		case models.ActivityInitialize, models.ActivityFinalize, models.ActivityMature, models.ActivityClose:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown lifecycle kind", "kind": req.Kind})
			return
		}

		receipt, err := svc.SubmitSigned(c.Request.Context(), req.VaultPDA, req.Kind, req.SignedTx)
		if err != nil {
			respondTxError(c, err, receipt)
			return
		}
		c.JSON(http.StatusOK, receipt)
	}
}
