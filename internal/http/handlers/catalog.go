package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"partner_cabinet/internal/logger"
	"partner_cabinet/internal/repository"
	"partner_cabinet/internal/service"
	"partner_cabinet/internal/tree"

	"github.com/gin-gonic/gin"
)

func parseProductFilter(c *gin.Context) repository.ProductFilter {
	f := repository.ProductFilter{
		Sort:    c.Query("sort"),
		InStock: c.Query("in_stock") == "true",
	}
	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil {
		f.MaxPrice = &v
	}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "12"))
	return f
}

// CatalogIndex lists active products across the catalog. A category slug
// filter matches the category together with its whole subtree.
func (h *Handler) CatalogIndex(c *gin.Context) {
	ctx := c.Request.Context()
	f := parseProductFilter(c)

	if slug := c.Query("category"); slug != "" {
		cat, err := h.Categories.GetBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve category"})
			return
		}
		ids, err := h.Categories.DescendantIDs(ctx, cat.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to expand category"})
			return
		}
		f.CategoryIDs = ids
	}

	products, total, err := h.Products.List(ctx, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load products"})
		return
	}

	roots, err := h.Categories.ListRoots(ctx)
	if err != nil {
		logger.Warn("failed to load root categories", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"products":   products,
		"total":      total,
		"page":       f.Page,
		"page_size":  f.PageSize,
		"categories": roots,
	})
}

// CategoryDetail returns a category with its products, active
// subcategories and breadcrumb trail.
func (h *Handler) CategoryDetail(c *gin.Context) {
	ctx := c.Request.Context()

	cat, err := h.Categories.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load category"})
		return
	}

	ids, err := h.Categories.DescendantIDs(ctx, cat.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to expand category"})
		return
	}

	f := parseProductFilter(c)
	f.CategoryIDs = ids
	products, total, err := h.Products.List(ctx, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load products"})
		return
	}

	subcategories, err := h.Categories.ListChildren(ctx, cat.ID)
	if err != nil {
		logger.Warn("failed to load subcategories", "category", cat.Slug, "error", err)
	}

	// a breadcrumb failure is a presentation glitch, not a page error
	crumbs, err := tree.Trail(ctx, &service.CategoryCrumb{Category: cat, Repo: h.Categories}, service.CatalogHome)
	if err != nil {
		logger.Warn("breadcrumb trail failed", "category", cat.Slug, "error", err)
		crumbs = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"category":      cat,
		"products":      products,
		"total":         total,
		"page":          f.Page,
		"page_size":     f.PageSize,
		"subcategories": subcategories,
		"breadcrumbs":   crumbs,
	})
}

// ProductDetail returns a single active product with its breadcrumb trail.
func (h *Handler) ProductDetail(c *gin.Context) {
	ctx := c.Request.Context()

	product, err := h.Products.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
		return
	}

	crumbs, err := tree.Trail(ctx, &service.ProductCrumb{Product: product, Repo: h.Categories}, service.CatalogHome)
	if err != nil {
		logger.Warn("breadcrumb trail failed", "product", product.Slug, "error", err)
		crumbs = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"product":     product,
		"breadcrumbs": crumbs,
	})
}
