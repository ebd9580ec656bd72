package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/metrokids/kidsapp/clock"
	"github.com/metrokids/kidsapp/database"
	"github.com/metrokids/kidsapp/models"
	"github.com/metrokids/kidsapp/openhours"
)

type LocationHandler struct {
	clk clock.Clock
	tz  *time.Location
}

func NewLocationHandler(clk clock.Clock, tz *time.Location) *LocationHandler {
	return &LocationHandler{clk: clk, tz: tz}
}

type locationPayload struct {
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	Description    string  `json:"description"`
	Address        string  `json:"address"`
	CityID         uint    `json:"city_id"`
	OrganizationID *uint   `json:"organization_id"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Website        string  `json:"website"`
	Phone          string  `json:"phone"`
	Hours          string  `json:"hours"`
	CategoryIDs    []uint  `json:"category_ids"`
}

func (p *locationPayload) normalize() {
	p.Name = strings.Join(strings.Fields(p.Name), " ")
	p.Slug = strings.TrimSpace(p.Slug)
	p.Description = strings.TrimSpace(p.Description)
	p.Address = strings.TrimSpace(p.Address)
	p.Website = strings.TrimSpace(p.Website)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Hours = strings.TrimSpace(p.Hours)
	if p.Slug == "" {
		p.Slug = slugify(p.Name)
	}
}

func (p *locationPayload) validate() map[string]string {
	errs := map[string]string{}
	if p.Name == "" {
		errs["name"] = "name is required"
	}
	if p.Slug == "" {
		errs["slug"] = "slug is required"
	}
	if p.CityID == 0 {
		errs["city_id"] = "city is required"
	}
	if p.Phone != "" && !orgRePhone.MatchString(p.Phone) {
		errs["phone"] = "invalid phone"
	}
	// The admin form sends hours as a JSON object of weekday -> range. Reads
	// tolerate bad data (treated as closed), but reject it at entry.
	if p.Hours != "" {
		var m map[string]string
		if err := json.Unmarshal([]byte(p.Hours), &m); err != nil {
			errs["hours"] = "must be a JSON object of weekday to \"HH:MM-HH:MM\" or \"closed\""
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// locationView decorates a location with the computed fields the public
// pages need.
type locationView struct {
	models.Location
	OpenNow         bool   `json:"open_now"`
	DescriptionHTML string `json:"description_html,omitempty"`
}

// Options backs the location filter dropdown: id/name/slug ordered by name.
func (h *LocationHandler) Options(c echo.Context) error {
	var items []models.Location
	if err := database.DB.Select("id", "name", "slug").Order("name ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// PublicList backs the locations browse page: optional q/category/city
// filters plus an open-now badge per row.
func (h *LocationHandler) PublicList(c echo.Context) error {
	q, page, size := listParams(c)
	category := strings.TrimSpace(c.QueryParam("category"))
	city := strings.TrimSpace(c.QueryParam("city"))

	tx := database.DB.Model(&models.Location{}).Preload("City").Preload("Categories")
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(locations.name) LIKE ? OR LOWER(locations.address) LIKE ?", like, like)
	}
	if city != "" {
		tx = tx.Joins("JOIN cities ON cities.id = locations.city_id").
			Where("cities.slug = ?", city)
	}
	if category != "" {
		tx = tx.Joins("JOIN location_categories lc ON lc.location_id = locations.id").
			Joins("JOIN categories cat ON cat.id = lc.category_id").
			Where("cat.slug = ?", category)
	}

	// Count on a clone so Distinct doesn't leak into the page query.
	var total int64
	if err := tx.Session(&gorm.Session{}).Distinct("locations.id").Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Location
	if err := tx.Order("locations.name ASC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	now := h.clk.Now().In(h.tz)
	views := make([]locationView, 0, len(items))
	for _, it := range items {
		views = append(views, locationView{
			Location: it,
			OpenNow:  openhours.IsOpen(it.Hours, now),
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":  views,
		"page":  page,
		"size":  size,
		"total": total,
	})
}

// PublicGet backs the location detail page, addressed by slug.
func (h *LocationHandler) PublicGet(c echo.Context) error {
	var it models.Location
	err := database.DB.Preload("City").Preload("Organization").Preload("Categories").
		First(&it, "slug = ?", c.Param("slug")).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	now := h.clk.Now().In(h.tz)
	return c.JSON(http.StatusOK, locationView{
		Location:        it,
		OpenNow:         openhours.IsOpen(it.Hours, now),
		DescriptionHTML: renderMarkdown(it.Description),
	})
}

// ===== Admin =====

func (h *LocationHandler) List(c echo.Context) error {
	q, page, size := listParams(c)

	tx := database.DB.Model(&models.Location{}).Preload("City")
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(slug) LIKE ? OR LOWER(address) LIKE ?", like, like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Location
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

func (h *LocationHandler) Get(c echo.Context) error {
	var it models.Location
	err := database.DB.Preload("City").Preload("Organization").Preload("Categories").
		First(&it, "id = ?", c.Param("id")).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, it)
}

func (h *LocationHandler) Create(c echo.Context) error {
	var p locationPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := p.validate(); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	it := models.Location{
		Name: p.Name, Slug: p.Slug, Description: p.Description, Address: p.Address,
		CityID: p.CityID, OrganizationID: p.OrganizationID,
		Latitude: p.Latitude, Longitude: p.Longitude,
		Website: p.Website, Phone: p.Phone, Hours: p.Hours,
	}
	if err := database.DB.Create(&it).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := replaceCategories(&it, p.CategoryIDs); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, it)
}

func (h *LocationHandler) Update(c echo.Context) error {
	if _, err := mustID(c); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var it models.Location
	if err := database.DB.First(&it, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p locationPayload
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
	it.Address = p.Address
	it.CityID = p.CityID
	it.OrganizationID = p.OrganizationID
	it.Latitude = p.Latitude
	it.Longitude = p.Longitude
	it.Website = p.Website
	it.Phone = p.Phone
	it.Hours = p.Hours
	if err := database.DB.Save(&it).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := replaceCategories(&it, p.CategoryIDs); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, it)
}

func (h *LocationHandler) Delete(c echo.Context) error {
	id, err := mustID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	tx := database.DB.Delete(&models.Location{}, "id = ?", id)
	if tx.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if tx.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}

// replaceCategories sets the m2m category set on a location or activity.
// A nil slice means the form didn't send the field; leave as-is.
func replaceCategories(owner any, ids []uint) error {
	if ids == nil {
		return nil
	}
	var cats []models.Category
	if len(ids) > 0 {
		if err := database.DB.Find(&cats, ids).Error; err != nil {
			return err
		}
	}
	return database.DB.Model(owner).Association("Categories").Replace(&cats)
}
