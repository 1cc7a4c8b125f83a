package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) catalogue(c *gin.Context) {
	cat, err := h.deps.Menu.Catalogue(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *handlers) listItems(c *gin.Context) {
	items, err := h.deps.Menu.Items(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": items, "count": len(items)})
}

func (h *handlers) getItem(c *gin.Context) {
	item, err := h.deps.Menu.Item(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handlers) listCategories(c *gin.Context) {
	cats, err := h.deps.Menu.Categories(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": cats, "count": len(cats)})
}

func (h *handlers) activePromotions(c *gin.Context) {
	promos, err := h.deps.Promotions.Active(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": promos, "count": len(promos)})
}
