package department

import (
	"net/http"
	"resa/infras/otel"
	"resa/internal/domains/department/model"
	"resa/internal/domains/department/model/dto"
	"resa/internal/domains/department/service"
	"resa/shared/constant"
	gDto "resa/shared/dto"
	"resa/shared/validator"
	"resa/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Department
	otel    otel.Otel
}

func New(service service.Department, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/departments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateDepartment)
		routerGroup.Get("/", handler.GetDepartments)
		routerGroup.Get("/{id}", handler.GetDepartmentByID)
		routerGroup.Patch("/{id}", handler.UpdateDepartment)
		routerGroup.Delete("/{id}", handler.DeleteDepartment)
	})
}

// CreateDepartment handles the creation of a new department.
// @Summary Create a new department
// @Description Create a new department with the provided details. Admin only.
// @Tags Department
// @Accept json
// @Produce json
// @Param request body dto.CreateDepartmentRequest true "Create Department Request"
// @Success 201 {object} response.Message "Department created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/departments [post]
// @Security BearerAuth
func (handler *Handler) CreateDepartment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDepartment")
	defer scope.End()

	req := dto.CreateDepartmentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create department")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Department created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Department created successfully")
}

// GetDepartments retrieves all departments based on query parameters.
// @Summary Get all departments
// @Description Retrieve all departments with optional filtering and pagination.
// @Tags Department
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Success 200 {object} response.Data[dto.GetDepartmentsResponse] "List of departments"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/departments [get]
// @Security BearerAuth
func (handler *Handler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDepartments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	departments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get departments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Departments retrieved successfully")

	response.WithJSON(w, http.StatusOK, departments)
}

// GetDepartmentByID retrieves a department by its ID.
// @Summary Get a department by ID
// @Description Retrieve a department by its unique identifier.
// @Tags Department
// @Accept json
// @Produce json
// @Param id path string true "Department ID"
// @Success 200 {object} response.Data[dto.DepartmentResponse] "Department details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/departments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetDepartmentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDepartmentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	department, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get department by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Department retrieved successfully")

	response.WithJSON(w, http.StatusOK, department)
}

// UpdateDepartment updates an existing department by its ID.
// @Summary Update a department by ID
// @Description Update the details of an existing department. Admin only.
// @Tags Department
// @Accept json
// @Produce json
// @Param id path string true "Department ID"
// @Param request body dto.UpdateDepartmentRequest true "Update Department Request"
// @Success 200 {object} response.Message "Department updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/departments/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDepartment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateDepartmentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update department")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Department updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Department updated successfully")
}

// DeleteDepartment deletes a department by its ID.
// @Summary Delete a department by ID
// @Description Delete a department using its unique identifier. Admin only.
// @Tags Department
// @Accept json
// @Produce json
// @Param id path string true "Department ID"
// @Success 200 {object} response.Message "Department deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/departments/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDepartment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete department")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Department deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Department deleted successfully")
}
