package httpserver

import (
	"net/http"

	"restaurant-ordering/internal/service/menu"
	"restaurant-ordering/internal/service/promotion"
	"restaurant-ordering/internal/upload"

	"github.com/gin-gonic/gin"
)

func (h *handlers) createItem(c *gin.Context) {
	var in menu.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.deps.Menu.CreateItem(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *handlers) updateItem(c *gin.Context) {
	var in menu.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.deps.Menu.UpdateItem(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handlers) deleteItem(c *gin.Context) {
	if err := h.deps.Menu.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) createCategory(c *gin.Context) {
	var in menu.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	cat, err := h.deps.Menu.CreateCategory(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *handlers) updateCategory(c *gin.Context) {
	var in menu.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	cat, err := h.deps.Menu.UpdateCategory(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *handlers) deleteCategory(c *gin.Context) {
	if err := h.deps.Menu.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listPromotions(c *gin.Context) {
	promos, err := h.deps.Promotions.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": promos, "count": len(promos)})
}

func (h *handlers) createPromotion(c *gin.Context) {
	var in promotion.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.deps.Promotions.Create(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handlers) updatePromotion(c *gin.Context) {
	var in promotion.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.deps.Promotions.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) deletePromotion(c *gin.Context) {
	if err := h.deps.Promotions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listFeedback(c *gin.Context) {
	items, err := h.deps.Feedback.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": items, "count": len(items)})
}

// uploadImage stores the multipart "file" field. Any storage failure
// answers with the placeholder image instead of an error.
func (h *handlers) uploadImage(c *gin.Context) {
	bucket := c.Param("bucket")
	if bucket != upload.BucketMenuImages && bucket != upload.BucketPromotionImages {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown bucket"})
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusCreated, gin.H{"url": upload.Placeholder})
		return
	}
	defer f.Close()

	url := h.deps.Images.URLOrPlaceholder(c.Request.Context(), bucket, c.PostForm("name"), f)
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
