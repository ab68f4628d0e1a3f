package interfaces

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shamtool/internal/mapdb/app"
	"shamtool/internal/mapdb/infra/repo"
	"shamtool/internal/mapdb/interfaces/handler"
	"shamtool/internal/shared/dbentity"
	transporthttp "shamtool/internal/shared/transport/http"
	"shamtool/modules/kit/logx"
)

// Module is the map catalog: public lookups and the guarded helper routes.
type Module struct {
	maps   *handler.MapHandler
	helper *handler.HelperHandler
}

func New(db *gorm.DB, store dbentity.Store, log logx.Logger, helperSecret func() string) *Module {
	svc := app.NewMapService(repo.NewMapRepo(db, store), store)
	return &Module{
		maps:   handler.NewMapHandler(svc, log),
		helper: handler.NewHelperHandler(svc, log, helperSecret),
	}
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.maps.RegisterRoutes(g)
	m.helper.RegisterRoutes(g)
}

var _ transporthttp.Registrar = (*Module)(nil)
