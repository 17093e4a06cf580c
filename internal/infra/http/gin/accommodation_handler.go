package ginserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	"staybase/internal/app/dto"
	accsvc "staybase/internal/app/services/accommodation"
	domainacc "staybase/internal/domain/accommodations"
	"staybase/internal/domain/shared/daterange"
)

// AccommodationHandler wires the accommodation service to HTTP.
type AccommodationHandler struct {
	Service *accsvc.Service
}

type createAccommodationRequest struct {
	Name        string   `json:"name" binding:"required"`
	Location    string   `json:"location" binding:"required"`
	Amenities   []string `json:"amenities"`
	MinGuests   int      `json:"minGuests" binding:"required"`
	MaxGuests   int      `json:"maxGuests" binding:"required"`
	AutoApprove bool     `json:"autoApprove"`
	IsPerUnit   bool     `json:"isPerUnit"`
	BasePrice   float64  `json:"basePrice"`
}

func (h AccommodationHandler) Create(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req createAccommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	acc, err := h.Service.Create(c.Request.Context(), accsvc.CreateParams{
		Name:        req.Name,
		Location:    req.Location,
		Amenities:   req.Amenities,
		MinGuests:   req.MinGuests,
		MaxGuests:   req.MaxGuests,
		AutoApprove: req.AutoApprove,
		IsPerUnit:   req.IsPerUnit,
		BasePrice:   req.BasePrice,
	}, caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapAccommodation(acc, h.Service.PhotoURL))
}

func (h AccommodationHandler) Get(c *gin.Context) {
	acc, err := h.Service.Get(c.Request.Context(), domainacc.AccommodationID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapAccommodation(acc, h.Service.PhotoURL))
}

func (h AccommodationHandler) Update(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var req createAccommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	acc, err := h.Service.Update(c.Request.Context(), domainacc.AccommodationID(c.Param("id")), domainacc.UpdateParams{
		Name:        req.Name,
		Location:    req.Location,
		Amenities:   req.Amenities,
		MinGuests:   req.MinGuests,
		MaxGuests:   req.MaxGuests,
		AutoApprove: req.AutoApprove,
		IsPerUnit:   req.IsPerUnit,
		BasePrice:   req.BasePrice,
	}, caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapAccommodation(acc, h.Service.PhotoURL))
}

func (h AccommodationHandler) Delete(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), domainacc.AccommodationID(c.Param("id")), caller); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Search lists accommodations matching filters; with checkIn/checkOut it
// excludes unavailable listings and attaches a stay quote to each hit.
func (h AccommodationHandler) Search(c *gin.Context) {
	params := domainacc.SearchParams{
		Location: c.Query("location"),
		Guests:   parseInt(c.Query("guests")),
		Page:     parseInt(c.Query("page")),
		PageSize: parseInt(c.Query("pageSize")),
	}
	checkInRaw := strings.TrimSpace(c.Query("checkIn"))
	checkOutRaw := strings.TrimSpace(c.Query("checkOut"))
	if checkInRaw != "" || checkOutRaw != "" {
		checkIn, err := daterange.ParseDay(checkInRaw)
		if err != nil {
			respondError(c, err)
			return
		}
		checkOut, err := daterange.ParseDay(checkOutRaw)
		if err != nil {
			respondError(c, err)
			return
		}
		stay, err := daterange.NewStayRange(checkIn, checkOut)
		if err != nil {
			respondError(c, err)
			return
		}
		params.CheckIn = stay.CheckIn
		params.CheckOut = stay.CheckOut
	}

	result, err := h.Service.Search(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UploadPhotos accepts a multipart form with up to ten image files under the
// "photos" field. The batch is all-or-nothing.
func (h AccommodationHandler) UploadPhotos(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form expected"})
		return
	}
	headers := form.File["photos"]

	files := make([]accsvc.PhotoFile, 0, len(headers))
	openedAll := true
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			openedAll = false
			break
		}
		defer f.Close()
		files = append(files, accsvc.PhotoFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Reader:      f,
		})
	}
	if !openedAll {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}

	acc, err := h.Service.UploadPhotos(c.Request.Context(), domainacc.AccommodationID(c.Param("id")), files, caller)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapAccommodation(acc, h.Service.PhotoURL))
}

var _ AccommodationHTTP = AccommodationHandler{}

func parseInt(raw string) int {
	value, _ := strconv.Atoi(strings.TrimSpace(raw))
	if value < 0 {
		return 0
	}
	return value
}

func parseDayParam(raw string) (time.Time, error) {
	return daterange.ParseDay(strings.TrimSpace(raw))
}
