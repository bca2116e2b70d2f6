package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"scope-service/internal/auth"
	"scope-service/internal/domain/client"
	"scope-service/internal/domain/project"
	"scope-service/internal/service"
)

type ProjectHandler struct {
	projects *service.ProjectService
}

func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Client      struct {
		Name    string  `json:"name"`
		Email   *string `json:"email"`
		Company *string `json:"company"`
	} `json:"client"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Company *string `json:"company"`
}

func (h *ProjectHandler) Create(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	var req CreateProjectRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	created, err := h.projects.CreateProject(c.Request().Context(), userID, service.CreateProjectParams{
		Name:          req.Name,
		Description:   req.Description,
		ClientName:    req.Client.Name,
		ClientEmail:   req.Client.Email,
		ClientCompany: req.Client.Company,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *ProjectHandler) List(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projects, err := h.projects.ListProjects(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) Get(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.projects.GetProject(c.Request().Context(), projectID, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, detail)
}

func (h *ProjectHandler) Update(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateProjectRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	input := project.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Status != nil {
		status := project.Status(*req.Status)
		input.Status = &status
	}

	updated, err := h.projects.UpdateProject(c.Request().Context(), projectID, userID, input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.projects.DeleteProject(c.Request().Context(), projectID, userID); err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, "project deleted")
}

func (h *ProjectHandler) UpdateClient(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateClientRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	updated, err := h.projects.UpdateClient(c.Request().Context(), projectID, userID, client.UpdateClientInput{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}
