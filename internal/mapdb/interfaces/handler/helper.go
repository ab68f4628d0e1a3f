package handler

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"shamtool/internal/mapdb/app"
	"shamtool/internal/mapdb/domain"
	"shamtool/internal/shared/queryparam"
	transporthttp "shamtool/internal/shared/transport/http"
	"shamtool/modules/kit/errx"
	"shamtool/modules/kit/logx"
)

// HelperHandler registers maps into the special categories. Until accounts
// carry roles, the routes are guarded by a shared secret.
type HelperHandler struct {
	svc    *app.MapService
	log    logx.Logger
	secret func() string
}

// NewHelperHandler reads the secret through secret on every request so a
// reloaded configuration applies immediately.
func NewHelperHandler(svc *app.MapService, log logx.Logger, secret func() string) *HelperHandler {
	return &HelperHandler{svc: svc, log: log, secret: secret}
}

func (h *HelperHandler) RegisterRoutes(g *gin.RouterGroup) {
	helper := g.Group("/helper", h.guard)
	helper.GET("/divinity/addMap", h.AddDivinity)
	helper.POST("/divinity/addMap", h.AddDivinity)
	helper.GET("/spiritual/addMap", h.AddSpiritual)
	helper.POST("/spiritual/addMap", h.AddSpiritual)
}

func (h *HelperHandler) guard(c *gin.Context) {
	want := h.secret()
	got, _, _ := queryparam.String(queryparam.FromGin(c), "secret_pass", false)
	if want == "" || subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
		h.error(c, "helper guard", errx.ErrForbidden.WithData("path", c.FullPath()))
		return
	}
	c.Next()
}

func (h *HelperHandler) AddDivinity(c *gin.Context) {
	src := queryparam.FromGin(c)
	code, err := mapCode(src, "code")
	if err != nil {
		h.error(c, "helper add divinity", err)
		return
	}
	p := &params{src: src}
	common := p.common(code)
	in := domain.DivinityInput{
		SpecialInput: p.special(),
		Category:     p.integer("category"),
		NoBalloon:    p.boolean("no_balloon"),
		Opportunist:  p.boolean("opportunist"),
	}
	if p.err != nil {
		h.error(c, "helper add divinity", p.err)
		return
	}

	m, err := h.svc.RegisterDivinity(c.Request.Context(), common, in)
	if err != nil {
		h.error(c, "helper add divinity", err)
		return
	}
	transporthttp.OK(c, gin.H{"map": m.Common.View(c.Request.Context()), "divinity": m.View()})
}

func (h *HelperHandler) AddSpiritual(c *gin.Context) {
	src := queryparam.FromGin(c)
	code, err := mapCode(src, "code")
	if err != nil {
		h.error(c, "helper add spiritual", err)
		return
	}
	p := &params{src: src}
	common := p.common(code)
	in := domain.SpiritualInput{
		SpecialInput: p.special(),
		NoB:          p.boolean("no_b"),
	}
	if p.err != nil {
		h.error(c, "helper add spiritual", p.err)
		return
	}

	m, err := h.svc.RegisterSpiritual(c.Request.Context(), common, in)
	if err != nil {
		h.error(c, "helper add spiritual", err)
		return
	}
	transporthttp.OK(c, gin.H{"map": m.Common.View(c.Request.Context()), "spiritual": m.View()})
}

func (h *HelperHandler) error(c *gin.Context, action string, err error) {
	status, code, msg := HandleError(c.Request.Context(), h.log, action, err)
	transporthttp.Fail(c, status, code, msg)
}
