package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saferide/saferide/internal/server/services"
)

func childParams(req ChildRequest) services.ChildParams {
	return services.ChildParams{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		ParentID:         req.ParentID,
		DateOfBirth:      req.DateOfBirth,
		Grade:            req.Grade,
		School:           req.School,
		EmergencyContact: req.EmergencyContact,
		Notes:            req.Notes,
		IsActive:         req.IsActive,
	}
}

func (s *Server) handleListChildren(w http.ResponseWriter, r *http.Request) {
	children, err := s.childService.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toChildResponses(children))
}

func (s *Server) handleCreateChild(w http.ResponseWriter, r *http.Request) {
	var req ChildRequest
	if !decodeBody(w, r, &req) {
		return
	}

	child, err := s.childService.Create(r.Context(), childParams(req))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toChildResponse(child))
}

func (s *Server) handleSearchChildren(w http.ResponseWriter, r *http.Request) {
	children, err := s.childService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toChildResponses(children))
}

func (s *Server) handleChildrenByParent(w http.ResponseWriter, r *http.Request) {
	children, err := s.childService.ListByParent(r.Context(), chi.URLParam(r, "parentID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toChildResponses(children))
}

func (s *Server) handleGetChild(w http.ResponseWriter, r *http.Request) {
	child, err := s.childService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toChildResponse(child))
}

func (s *Server) handleUpdateChild(w http.ResponseWriter, r *http.Request) {
	var req ChildRequest
	if !decodeBody(w, r, &req) {
		return
	}

	child, err := s.childService.Update(r.Context(), chi.URLParam(r, "id"), childParams(req))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toChildResponse(child))
}

func (s *Server) handleDeleteChild(w http.ResponseWriter, r *http.Request) {
	if err := s.childService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Child deleted"})
}
