package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/faq-assistant/model"
	"github.com/gcbaptista/faq-assistant/services"
)

// FAQRequest is the body of FAQ create and replace requests.
// Priority defaults to 0 and IsActive to true when omitted.
type FAQRequest struct {
	ID       string `json:"id,omitempty"` // optional on create, ignored on replace
	Category string `json:"category"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Keywords string `json:"keywords"`
	Priority *int   `json:"priority,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

func (r FAQRequest) record(id string) model.FaqRecord {
	rec := model.FaqRecord{
		ID:       id,
		Category: r.Category,
		Question: r.Question,
		Answer:   r.Answer,
		Keywords: r.Keywords,
		IsActive: true,
	}
	if r.Priority != nil {
		rec.Priority = *r.Priority
	}
	if r.IsActive != nil {
		rec.IsActive = *r.IsActive
	}
	return rec
}

// FAQListRequest holds the query parameters of the FAQ listing
type FAQListRequest struct {
	Page     int    `form:"page" json:"page"`
	PageSize int    `form:"page_size" json:"page_size"`
	Category string `form:"category" json:"category"`
	Query    string `form:"q" json:"q"`
	Active   *bool  `form:"active" json:"active"`
}

// CreateFAQHandler handles the request to create a FAQ.
// Request Body: FAQRequest
func (api *API) CreateFAQHandler(c *gin.Context) {
	var req FAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateFAQRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	created, err := api.manager.Create(c.Request.Context(), req.record(req.ID))
	if err != nil {
		SendManagerError(c, "create faq", req.ID, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListFAQsHandler lists FAQs with filters and pagination
func (api *API) ListFAQsHandler(c *gin.Context) {
	var req FAQListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		result := &ValidationResult{Valid: true}
		result.AddError("query_parameters", "Invalid query parameters: "+err.Error())
		SendValidationError(c, result)
		return
	}

	if result := ValidateListRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	page, pageSize, _ := ValidatePagination(req.Page, req.PageSize)

	opts := services.ListOptions{
		Category: strings.TrimSpace(req.Category),
		Text:     req.Query,
		Offset:   (page - 1) * pageSize,
		Limit:    pageSize,
	}
	if req.Active != nil {
		opts.ActiveOnly = *req.Active
		opts.InactiveOnly = !*req.Active
	}

	ctx := c.Request.Context()
	faqs, err := api.manager.List(ctx, opts)
	if err != nil {
		SendManagerError(c, "list faqs", "", err)
		return
	}
	total, err := api.manager.Count(ctx, opts)
	if err != nil {
		SendManagerError(c, "count faqs", "", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"faqs":      faqs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"pages":     (total + pageSize - 1) / pageSize,
	})
}

// GetFAQHandler retrieves a specific FAQ by ID
func (api *API) GetFAQHandler(c *gin.Context) {
	faqID := c.Param("faqId")
	if result := ValidateFAQID(faqID); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	faq, err := api.manager.Get(c.Request.Context(), faqID)
	if err != nil {
		SendManagerError(c, "get faq", faqID, err)
		return
	}

	c.JSON(http.StatusOK, faq)
}

// UpdateFAQHandler replaces a FAQ.
// Request Body: FAQRequest
func (api *API) UpdateFAQHandler(c *gin.Context) {
	faqID := c.Param("faqId")
	if result := ValidateFAQID(faqID); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	var req FAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	req.ID = ""

	if result := ValidateFAQRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	updated, err := api.manager.Update(c.Request.Context(), req.record(faqID))
	if err != nil {
		SendManagerError(c, "update faq", faqID, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteFAQHandler deletes a specific FAQ by ID
func (api *API) DeleteFAQHandler(c *gin.Context) {
	faqID := c.Param("faqId")
	if result := ValidateFAQID(faqID); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.manager.Delete(c.Request.Context(), faqID); err != nil {
		SendManagerError(c, "delete faq", faqID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "FAQ '" + faqID + "' deleted"})
}

// SeedFAQsHandler loads the built-in FAQ corpus, overwriting records with the same IDs
func (api *API) SeedFAQsHandler(c *gin.Context) {
	if api.seeder == nil {
		SendError(c, http.StatusNotImplemented, ErrorCodeNotConfigured, "Seeding is not available")
		return
	}

	res, err := api.seeder.Seed(c.Request.Context())
	if err != nil {
		SendManagerError(c, "seed faqs", "", err)
		return
	}

	c.JSON(http.StatusOK, res)
}
