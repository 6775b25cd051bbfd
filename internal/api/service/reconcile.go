package service

import (
	"context"
	"fmt"

	"moviehub/internal/api/dto"
	"moviehub/internal/api/models"
	"moviehub/internal/api/repository"
)

// idDiff compares a current collection with a desired target by id.
// Targets with id 0 are never persisted yet, so they are always adds.
// Duplicate target ids are added once.
func idDiff[C, T any](current []C, target []T, currentID func(C) int64, targetID func(T) int64) (adds []T, removes []C) {
	have := make(map[int64]struct{}, len(current))
	for _, c := range current {
		have[currentID(c)] = struct{}{}
	}

	want := make(map[int64]struct{}, len(target))
	for _, t := range target {
		id := targetID(t)
		if id == 0 {
			adds = append(adds, t)
			continue
		}
		if _, seen := want[id]; seen {
			continue
		}
		want[id] = struct{}{}
		if _, ok := have[id]; !ok {
			adds = append(adds, t)
		}
	}

	for _, c := range current {
		if _, ok := want[currentID(c)]; !ok {
			removes = append(removes, c)
		}
	}
	return adds, removes
}

func actorID(a models.Actor) int64 { return a.ID }
func actorRefID(a dto.ActorDTO) int64 { return a.ID }
func ratingID(r models.Rating) int64 { return r.ID }
func ratingDTOID(r dto.RatingDTO) int64 { return r.ID }

// reconcileActors brings movie.Actors in line with target and flushes the
// association rows. Detached actors are kept in the store.
func reconcileActors(ctx context.Context, tx *repository.MovieRepo, movie *models.Movie, target []dto.ActorDTO) error {
	adds, removes := idDiff(movie.Actors, target, actorID, actorRefID)

	var existingIDs []int64
	var attach []models.Actor
	for _, ref := range adds {
		if ref.ID != 0 {
			existingIDs = append(existingIDs, ref.ID)
			continue
		}
		a, err := models.NewActor(ref.Name)
		if err != nil {
			return err
		}
		if !a.IsValid() {
			return fmt.Errorf("%w: %q", models.ErrInvalidActor, ref.Name)
		}
		if err := tx.CreateActor(ctx, a); err != nil {
			return err
		}
		attach = append(attach, *a)
	}

	if len(existingIDs) > 0 {
		found, err := tx.FindActorsByIDs(ctx, existingIDs)
		if err != nil {
			return err
		}
		if missing := missingID(existingIDs, found); missing != 0 {
			return fmt.Errorf("%w: id %d", ErrActorNotFound, missing)
		}
		attach = append(attach, found...)
	}

	if err := tx.DetachActors(ctx, movie, removes); err != nil {
		return err
	}
	if err := tx.AttachActors(ctx, movie, attach); err != nil {
		return err
	}

	kept := movie.Actors[:0]
	for _, a := range movie.Actors {
		if !containsActor(removes, a) {
			kept = append(kept, a)
		}
	}
	movie.Actors = append(kept, attach...)
	return nil
}

// reconcileRatings applies ownership semantics: new ratings are attached,
// dropped ones are deleted, and ratings of other movies are rejected.
func reconcileRatings(ctx context.Context, tx *repository.MovieRepo, movie *models.Movie, target []dto.RatingDTO) error {
	adds, removes := idDiff(movie.Ratings, target, ratingID, ratingDTOID)

	var created []models.Rating
	for _, d := range adds {
		// every rating owned by this movie is already in the current set
		if d.ID != 0 {
			return fmt.Errorf("%w: id %d", ErrRatingNotOwned, d.ID)
		}
		r, err := d.ToModel()
		if err != nil {
			return err
		}
		if err := tx.AddRating(ctx, movie.ID, r); err != nil {
			return err
		}
		created = append(created, *r)
	}

	removed := make(map[int64]struct{}, len(removes))
	for i := range removes {
		if err := tx.DeleteRating(ctx, &removes[i]); err != nil {
			return err
		}
		removed[removes[i].ID] = struct{}{}
	}

	kept := movie.Ratings[:0]
	for _, r := range movie.Ratings {
		if _, gone := removed[r.ID]; !gone {
			kept = append(kept, r)
		}
	}
	movie.Ratings = append(kept, created...)
	return nil
}

func containsActor(list []models.Actor, a models.Actor) bool {
	for _, b := range list {
		if models.SameActor(a, b) {
			return true
		}
	}
	return false
}

// missingID returns the first requested id absent from found, or 0.
func missingID(requested []int64, found []models.Actor) int64 {
	ok := make(map[int64]struct{}, len(found))
	for _, a := range found {
		ok[a.ID] = struct{}{}
	}
	for _, id := range requested {
		if _, hit := ok[id]; !hit {
			return id
		}
	}
	return 0
}
