package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saferide/saferide/internal/server/services"
)

func relationshipParams(req RelationshipRequest) services.RelationshipParams {
	return services.RelationshipParams{
		ParentID: req.ParentID,
		ChildID:  req.ChildID,
		EscortID: req.EscortID,
		Type:     req.Type,
		Notes:    req.Notes,
		IsActive: req.IsActive,
	}
}

// handleListRelationships returns the relationships the calling user
// participates in, as parent or as escort.
func (s *Server) handleListRelationships(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeErrorDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	rels, err := s.relationshipService.ListForUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRelationshipResponses(rels))
}

func (s *Server) handleCreateRelationship(w http.ResponseWriter, r *http.Request) {
	var req RelationshipRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rel, err := s.relationshipService.Create(r.Context(), relationshipParams(req))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRelationshipResponse(rel))
}

func (s *Server) handleRelationshipsByUser(w http.ResponseWriter, r *http.Request) {
	rels, err := s.relationshipService.ListForUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRelationshipResponses(rels))
}

func (s *Server) handleGetRelationship(w http.ResponseWriter, r *http.Request) {
	rel, err := s.relationshipService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRelationshipResponse(rel))
}

func (s *Server) handleUpdateRelationship(w http.ResponseWriter, r *http.Request) {
	var req RelationshipRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rel, err := s.relationshipService.Update(r.Context(), chi.URLParam(r, "id"), relationshipParams(req))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRelationshipResponse(rel))
}

func (s *Server) handleDeleteRelationship(w http.ResponseWriter, r *http.Request) {
	if err := s.relationshipService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Relationship deleted"})
}
