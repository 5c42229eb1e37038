package reports

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/icsr/icsr/internal/platform/auth"
	"github.com/icsr/icsr/internal/platform/e2b"
	"github.com/icsr/icsr/internal/platform/encryption"
	"github.com/icsr/icsr/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/reports", h.CreateReport)
	api.GET("/reports", h.ListReports)
	api.GET("/reports/:id", h.GetReport)
	api.GET("/reports/:id/content", h.GetReportContent)
	api.GET("/reports/:id/download", h.DownloadReport)
	api.PUT("/reports/:id", h.UpdateReport)
	api.DELETE("/reports/:id", h.DeleteReport)
}

// reportRequest is the create/update payload: a title plus the case fields.
type reportRequest struct {
	Title string        `json:"title"`
	Data  *e2b.CaseData `json:"data"`
}

func httpError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, ErrNotFound.Error())
	case IsValidation(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, encryption.ErrDecrypt):
		return echo.NewHTTPError(http.StatusInternalServerError, "report content could not be decrypted")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func ownerFromRequest(c echo.Context) (string, error) {
	owner := auth.UserIDFromContext(c.Request().Context())
	if owner == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return owner, nil
}

func reportID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid report id")
	}
	return id, nil
}

func (h *Handler) CreateReport(c echo.Context) error {
	owner, err := ownerFromRequest(c)
	if err != nil {
		return err
	}
	var req reportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rep, err := h.svc.Create(c.Request().Context(), owner, req.Title, req.Data)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, rep)
}

func (h *Handler) ListReports(c echo.Context) error {
	owner, err := ownerFromRequest(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), owner, pg.PageSize, pg.Offset())
	if err != nil {
		return httpError(err)
	}
	if items == nil {
		items = []*Report{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

func (h *Handler) GetReport(c echo.Context) error {
	owner, err := ownerFromRequest(c)
	if err != nil {
		return err
	}
	id, err := reportID(c)
	if err != nil {
		return err
	}
	rep, err := h.svc.Get(c.Request().Context(), id, owner)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *Handler) GetReportContent(c echo.Context) error {
	owner, err := ownerFromRequest(c)
	if err != nil {
		return err
	}
	id, err := reportID(c)
	if err != nil {
		return err
	}
	_, document, err := h.svc.GetContent(c.Request().Context(), id, owner)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"content": document})
}

func (h *Handler) DownloadReport(c echo.Context) error {
	owner, err := ownerFromRequest(c)
	if err != nil {
		return err
	}
	id, err := reportID(c)
	if err != nil {
		return err
	}
	rep, document, err := h.svc.GetContent(c.Request().Context(), id, owner)
	if err != nil {
		return httpError(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s.xml"`, rep.Title))
	return c.Blob(http.StatusOK, "application/xml", []byte(document))
}

func (h *Handler) UpdateReport(c echo.Context) error {
	owner, err := ownerFromRequest(c)
	if err != nil {
		return err
	}
	id, err := reportID(c)
	if err != nil {
		return err
	}
	var req reportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rep, err := h.svc.Update(c.Request().Context(), id, owner, req.Title, req.Data)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *Handler) DeleteReport(c echo.Context) error {
	owner, err := ownerFromRequest(c)
	if err != nil {
		return err
	}
	id, err := reportID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id, owner); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
