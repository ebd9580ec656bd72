package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/metrokids/kidsapp/database"
	"github.com/metrokids/kidsapp/models"
)

type ActivityHandler struct{}

func NewActivityHandler() *ActivityHandler { return &ActivityHandler{} }

type activityPayload struct {
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	Description    string `json:"description"`
	LocationID     uint   `json:"location_id"`
	OrganizationID *uint  `json:"organization_id"`
	AgeGroupID     *uint  `json:"age_group_id"`
	CostCents      int    `json:"cost_cents"`
	CostNote       string `json:"cost_note"`
	Website        string `json:"website"`
	CategoryIDs    []uint `json:"category_ids"`
	TagIDs         []uint `json:"tag_ids"`
}

func (p *activityPayload) normalize() {
	p.Name = strings.Join(strings.Fields(p.Name), " ")
	p.Slug = strings.TrimSpace(p.Slug)
	p.Description = strings.TrimSpace(p.Description)
	p.CostNote = strings.TrimSpace(p.CostNote)
	p.Website = strings.TrimSpace(p.Website)
	if p.Slug == "" {
		p.Slug = slugify(p.Name)
	}
}

func (p *activityPayload) validate() map[string]string {
	errs := map[string]string{}
	if p.Name == "" {
		errs["name"] = "name is required"
	}
	if p.Slug == "" {
		errs["slug"] = "slug is required"
	}
	if p.LocationID == 0 {
		errs["location_id"] = "location is required"
	}
	if p.CostCents < 0 {
		errs["cost_cents"] = "must not be negative"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// activityView decorates an activity with the rendered description for the
// public detail page.
type activityView struct {
	models.Activity
	DescriptionHTML string `json:"description_html,omitempty"`
}

// PublicList backs the activities browse page. Filters: q, category slug,
// city slug (via the hosting location), age-group id.
func (h *ActivityHandler) PublicList(c echo.Context) error {
	q, page, size := listParams(c)
	category := strings.TrimSpace(c.QueryParam("category"))
	city := strings.TrimSpace(c.QueryParam("city"))
	ageGroup := atoiOr(c.QueryParam("age_group"), 0)

	tx := database.DB.Model(&models.Activity{}).
		Preload("Location").Preload("AgeGroup").Preload("Categories")
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(activities.name) LIKE ?", like)
	}
	if city != "" {
		tx = tx.Joins("JOIN locations ON locations.id = activities.location_id").
			Joins("JOIN cities ON cities.id = locations.city_id").
			Where("cities.slug = ?", city)
	}
	if category != "" {
		tx = tx.Joins("JOIN activity_categories ac ON ac.activity_id = activities.id").
			Joins("JOIN categories cat ON cat.id = ac.category_id").
			Where("cat.slug = ?", category)
	}
	if ageGroup > 0 {
		tx = tx.Where("activities.age_group_id = ?", ageGroup)
	}

	// Count on a clone so Distinct doesn't leak into the page query.
	var total int64
	if err := tx.Session(&gorm.Session{}).Distinct("activities.id").Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Activity
	if err := tx.Order("activities.name ASC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":  items,
		"page":  page,
		"size":  size,
		"total": total,
	})
}

// PublicGet backs the activity detail page, addressed by slug.
func (h *ActivityHandler) PublicGet(c echo.Context) error {
	var it models.Activity
	err := database.DB.
		Preload("Location").Preload("Location.City").Preload("Organization").
		Preload("AgeGroup").Preload("Categories").Preload("Tags").
		First(&it, "slug = ?", c.Param("slug")).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, activityView{
		Activity:        it,
		DescriptionHTML: renderMarkdown(it.Description),
	})
}

// ===== Admin =====

func (h *ActivityHandler) List(c echo.Context) error {
	q, page, size := listParams(c)

	tx := database.DB.Model(&models.Activity{}).Preload("Location")
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(slug) LIKE ?", like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Activity
	if err := tx.Order("id DESC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":  items,
		"page":  page,
		"size":  size,
		"total": total,
	})
}

func (h *ActivityHandler) Get(c echo.Context) error {
	var it models.Activity
	err := database.DB.
		Preload("Location").Preload("Organization").Preload("AgeGroup").
		Preload("Categories").Preload("Tags").
		First(&it, "id = ?", c.Param("id")).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, it)
}

func (h *ActivityHandler) Create(c echo.Context) error {
	var p activityPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := p.validate(); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	it := models.Activity{
		Name: p.Name, Slug: p.Slug, Description: p.Description,
		LocationID: p.LocationID, OrganizationID: p.OrganizationID, AgeGroupID: p.AgeGroupID,
		CostCents: p.CostCents, CostNote: p.CostNote, Website: p.Website,
	}
	if err := database.DB.Create(&it).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := replaceCategories(&it, p.CategoryIDs); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := replaceTags(&it, p.TagIDs); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, it)
}

func (h *ActivityHandler) Update(c echo.Context) error {
	if _, err := mustID(c); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var it models.Activity
	if err := database.DB.First(&it, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p activityPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := p.validate(); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	it.Name = p.Name
	it.Slug = p.Slug
	it.Description = p.Description
	it.LocationID = p.LocationID
	it.OrganizationID = p.OrganizationID
	it.AgeGroupID = p.AgeGroupID
	it.CostCents = p.CostCents
	it.CostNote = p.CostNote
	it.Website = p.Website
	if err := database.DB.Save(&it).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := replaceCategories(&it, p.CategoryIDs); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := replaceTags(&it, p.TagIDs); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, it)
}

func (h *ActivityHandler) Delete(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	tx := database.DB.Delete(&models.Activity{}, "id = ?", id)
	if tx.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if tx.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}

func replaceTags(owner any, ids []uint) error {
	if ids == nil {
		return nil
	}
	var tags []models.Tag
	if len(ids) > 0 {
		if err := database.DB.Find(&tags, ids).Error; err != nil {
			return err
		}
	}
	return database.DB.Model(owner).Association("Tags").Replace(&tags)
}
