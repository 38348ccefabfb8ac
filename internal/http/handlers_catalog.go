package http

import (
	"net/http"
)

type categoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type tagRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().JSON(s.ledger.CategoryStats()).Write(w)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	c, err := s.ledger.CreateCategory(r.Context(), sanitizeInput(req.Name), sanitizeInput(req.Color))
	if err != nil {
		s.writeServiceError(w, r, "create category", err)
		return
	}
	NewJSONResponse().Status(http.StatusCreated).JSON(c).Write(w)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, "delete category", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().JSON(s.ledger.TagStats()).Write(w)
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	tag, err := s.ledger.CreateTag(r.Context(), sanitizeInput(req.Name))
	if err != nil {
		s.writeServiceError(w, r, "create tag", err)
		return
	}
	NewJSONResponse().Status(http.StatusCreated).JSON(tag).Write(w)
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteTag(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, "delete tag", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
