package interfaces

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shamtool/internal/account/app"
	"shamtool/internal/account/infra/discord"
	"shamtool/internal/account/infra/repo"
	"shamtool/internal/account/interfaces/handler"
	"shamtool/internal/shared/security"
	"shamtool/internal/shared/serverconfig"
	transporthttp "shamtool/internal/shared/transport/http"
	"shamtool/modules/kit/logx"
)

// Module is the Discord login.
type Module struct {
	oauth *handler.OAuthHandler
}

func New(db *gorm.DB, cfg serverconfig.DiscordConfig, sessionTTL time.Duration, log logx.Logger) *Module {
	svc := app.NewLoginService(discord.NewClient(cfg), repo.NewLoginHistoryRepo(db), security.Award, sessionTTL)
	return &Module{
		oauth: handler.NewOAuthHandler(svc, log, strings.HasPrefix(cfg.RedirectURI, "https://")),
	}
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.oauth.RegisterRoutes(g)
}

var _ transporthttp.Registrar = (*Module)(nil)
