package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saferide/saferide/internal/server/services"
)

func companyParams(req CompanyRequest) services.CompanyParams {
	return services.CompanyParams{
		Name:         req.Name,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
		CenterLat:    req.CenterLat,
		CenterLng:    req.CenterLng,
		RadiusKm:     req.RadiusKm,
		IsActive:     req.IsActive,
	}
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	offset, limit := paginationParams(r)
	activeOnly := r.URL.Query().Get("active_only") == "true"

	companies, err := s.companyService.List(r.Context(), offset, limit, activeOnly)
	if err != nil {
		writeError(w, err)
		return
	}

	result := make([]*CompanyResponse, 0, len(companies))
	for _, c := range companies {
		result = append(result, toCompanyResponse(c))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var req CompanyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	company, err := s.companyService.Create(r.Context(), companyParams(req))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCompanyResponse(company))
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	details, err := s.companyService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCompanyDetailsResponse(details))
}

func (s *Server) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	var req CompanyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	company, err := s.companyService.Update(r.Context(), chi.URLParam(r, "id"), companyParams(req))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCompanyResponse(company))
}

func (s *Server) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	if err := s.companyService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Company deleted"})
}

func (s *Server) handleAssignDriver(w http.ResponseWriter, r *http.Request) {
	details, err := s.companyService.AssignDriver(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "driverID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCompanyDetailsResponse(details))
}

func (s *Server) handleRemoveDriver(w http.ResponseWriter, r *http.Request) {
	details, err := s.companyService.RemoveDriver(r.Context(),
		chi.URLParam(r, "id"), chi.URLParam(r, "driverID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCompanyDetailsResponse(details))
}

func (s *Server) handleAvailableDrivers(w http.ResponseWriter, r *http.Request) {
	offset, limit := paginationParams(r)
	drivers, err := s.companyService.AvailableDrivers(r.Context(), offset, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponses(drivers))
}
