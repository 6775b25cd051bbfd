package dto

import "moviehub/internal/api/models"

// ActorDTO is the actor reference carried inside movie payloads.
// ID 0 asks for a new actor to be created with Name.
type ActorDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateActorDTO for POST /api/actor
type CreateActorDTO struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UpdateActorDTO for PUT /api/actor/:id
type UpdateActorDTO struct {
	Name string `json:"name" binding:"required,max=100"`
}

type ActorResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func ToActorResponse(a models.Actor) ActorResponse {
	return ActorResponse{
		ID:   a.ID,
		Name: a.Name,
	}
}

func ActorsFromModels(list []models.Actor) []ActorResponse {
	resp := make([]ActorResponse, 0, len(list))
	for _, a := range list {
		resp = append(resp, ToActorResponse(a))
	}
	return resp
}

// ActorRefsFromModels maps actors to the reference shape accepted by movie updates.
func ActorRefsFromModels(list []models.Actor) []ActorDTO {
	refs := make([]ActorDTO, 0, len(list))
	for _, a := range list {
		refs = append(refs, ActorDTO{ID: a.ID, Name: a.Name})
	}
	return refs
}
