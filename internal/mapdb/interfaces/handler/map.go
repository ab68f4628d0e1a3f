package handler

import (
	"fmt"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"shamtool/internal/mapdb/app"
	"shamtool/internal/mapdb/domain"
	"shamtool/internal/shared/queryparam"
	transporthttp "shamtool/internal/shared/transport/http"
	"shamtool/modules/kit/logx"
	"shamtool/modules/kit/tracex"
)

type MapHandler struct {
	svc *app.MapService
	log logx.Logger
}

func NewMapHandler(svc *app.MapService, log logx.Logger) *MapHandler {
	return &MapHandler{svc: svc, log: log}
}

func (h *MapHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/", h.Index)
	maps := g.Group("/maps")
	maps.GET("", h.List)
	maps.GET("/:code", h.Get)
	maps.GET("/:code/xml", h.XML)
	maps.GET("/:code/divinity", h.Divinity)
	maps.GET("/:code/spiritual", h.Spiritual)
}

func (h *MapHandler) Index(c *gin.Context) {
	n, err := h.svc.Count(c.Request.Context())
	if err != nil {
		h.error(c, "map count", err)
		return
	}
	c.String(nethttp.StatusOK, "Hello worlds! There was been currently %d recorded over the databased.", n)
}

func (h *MapHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	p := &params{src: queryparam.FromGin(c)}
	f := domain.ListFilter{
		Divinity:  p.boolean("divinity"),
		Spiritual: p.boolean("spiritual"),
	}
	if author := p.str("author"); author != nil {
		f.Author = *author
	}
	if limit := p.integer("limit"); limit != nil {
		f.Limit = int(*limit)
	}
	if offset := p.integer("offset"); offset != nil {
		f.Offset = int(*offset)
	}
	if p.err != nil {
		h.error(c, "map list", p.err)
		return
	}

	maps, err := h.svc.List(ctx, f)
	if err != nil {
		h.error(c, "map list", err)
		return
	}
	views := make([]domain.CommonView, 0, len(maps))
	for _, m := range maps {
		views = append(views, m.View(ctx))
	}
	transporthttp.OK(c, views)
}

func (h *MapHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	code, err := pathCode(c)
	if err != nil {
		h.error(c, "map get", err)
		return
	}
	m, err := h.svc.GetByCode(ctx, code)
	if err != nil {
		h.error(c, "map get", err)
		return
	}
	transporthttp.OK(c, m.View(ctx))
}

func (h *MapHandler) XML(c *gin.Context) {
	code, err := pathCode(c)
	if err != nil {
		h.error(c, "map xml", err)
		return
	}
	xml, err := h.svc.GetXML(c.Request.Context(), code)
	if err != nil {
		h.error(c, "map xml", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%d.xml"`, code))
	c.Data(nethttp.StatusOK, "application/xml; charset=utf-8", []byte(xml))
}

func (h *MapHandler) Divinity(c *gin.Context) {
	ctx := c.Request.Context()
	code, err := pathCode(c)
	if err != nil {
		h.error(c, "map divinity", err)
		return
	}
	m, err := h.svc.GetDivinity(ctx, code)
	if err != nil {
		h.error(c, "map divinity", err)
		return
	}
	transporthttp.OK(c, gin.H{"map": m.Common.View(ctx), "divinity": m.View()})
}

func (h *MapHandler) Spiritual(c *gin.Context) {
	ctx := c.Request.Context()
	code, err := pathCode(c)
	if err != nil {
		h.error(c, "map spiritual", err)
		return
	}
	m, err := h.svc.GetSpiritual(ctx, code)
	if err != nil {
		h.error(c, "map spiritual", err)
		return
	}
	transporthttp.OK(c, gin.H{"map": m.Common.View(ctx), "spiritual": m.View()})
}

func pathCode(c *gin.Context) (int64, error) {
	return mapCode(queryparam.SourceFunc(func(name string) (string, bool) {
		v := c.Param(name)
		return v, v != ""
	}), "code")
}

func (h *MapHandler) error(c *gin.Context, action string, err error) {
	ctx := tracex.WithSpanID(c.Request.Context(), "mapdb")
	status, code, msg := HandleError(ctx, h.log, action, err)
	transporthttp.Fail(c, status, code, msg)
}
