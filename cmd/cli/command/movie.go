package command

import (
	"fmt"
	"strconv"
	"strings"

	"moviehub/cmd/cli/command/client"
	"moviehub/internal/api/dto"

	"github.com/spf13/cobra"
)

func newMovieCmd(opts *globalOptions) *cobra.Command {
	movieCmd := &cobra.Command{
		Use:   "movie",
		Short: "Movie management commands",
		Long:  `Manage movies: list, view, search, create, update and delete, including cast and ratings`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all movies",
		RunE: func(cmd *cobra.Command, args []string) error {
			movies, err := opts.publicClient().ListMovies()
			if err != nil {
				return fmt.Errorf("failed to get movie list: %w", err)
			}
			printMovies(cmd.OutOrStdout(), movies, "No movies found.")
			return nil
		},
	}

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Get a movie with its actors and ratings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			movie, err := opts.publicClient().GetMovie(id)
			if err != nil {
				return fmt.Errorf("failed to get movie: %w", err)
			}
			printMovie(cmd.OutOrStdout(), *movie)
			return nil
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search movies by title (case-sensitive substring)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			movies, err := opts.publicClient().SearchMovies(query)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			printMovies(cmd.OutOrStdout(), movies, fmt.Sprintf("No movies matching '%s'.", query))
			return nil
		},
	}

	actorsCmd := &cobra.Command{
		Use:   "actors [id]",
		Short: "List the actors of a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			actors, err := opts.publicClient().MovieActors(id)
			if err != nil {
				return fmt.Errorf("failed to get actors: %w", err)
			}
			printActors(cmd.OutOrStdout(), actors, "No actors in this movie.")
			return nil
		},
	}

	movieCmd.AddCommand(listCmd, getCmd, searchCmd, actorsCmd,
		newCreateMovieCmd(opts), newUpdateMovieCmd(opts), newDeleteMovieCmd(opts))
	return movieCmd
}

func newCreateMovieCmd(opts *globalOptions) *cobra.Command {
	var (
		title      string
		year       int
		actorIDs   []int64
		actorNames []string
		ratings    []string
	)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new movie",
		Example: `  moviehub movie create --title Inception --year 2010 \
    --actor-id 3 --actor "Elliot Page" --rating "9:Dream within a dream"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			request := dto.CreateMovieDTO{Title: title, Year: year}
			request.Actors = appendActors(nil, actorIDs, actorNames)
			parsed, err := parseRatings(ratings)
			if err != nil {
				return err
			}
			request.Ratings = parsed

			httpClient, err := opts.authedClient()
			if err != nil {
				return err
			}
			movie, err := httpClient.CreateMovie(request)
			if err != nil {
				return fmt.Errorf("failed to create movie: %w", err)
			}

			success(cmd.OutOrStdout(), "Movie created successfully!")
			printMovie(cmd.OutOrStdout(), *movie)
			return nil
		},
	}

	createCmd.Flags().StringVarP(&title, "title", "t", "", "Movie title")
	createCmd.Flags().IntVarP(&year, "year", "y", 0, "Release year")
	createCmd.Flags().Int64SliceVar(&actorIDs, "actor-id", nil, "Existing actor id (repeatable)")
	createCmd.Flags().StringArrayVar(&actorNames, "actor", nil, "New actor name (repeatable)")
	createCmd.Flags().StringArrayVar(&ratings, "rating", nil, `Rating as "score:review" (repeatable)`)
	_ = createCmd.MarkFlagRequired("title")
	_ = createCmd.MarkFlagRequired("year")
	return createCmd
}

func newUpdateMovieCmd(opts *globalOptions) *cobra.Command {
	var (
		title           string
		year            int
		addActorIDs     []int64
		addActorNames   []string
		removeActorIDs  []int64
		addRatings      []string
		removeRatingIDs []int64
	)

	updateCmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a movie",
		Long: `Update a movie. The current movie is fetched first and the flags are applied
on top of it, so only the fields and relations you name change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			httpClient, err := opts.authedClient()
			if err != nil {
				return err
			}

			current, err := httpClient.GetMovie(id)
			if err != nil {
				return fmt.Errorf("failed to get movie: %w", err)
			}

			request := dto.UpdateMovieDTO{Title: current.Title, Year: current.Year}
			if cmd.Flags().Changed("title") {
				request.Title = title
			}
			if cmd.Flags().Changed("year") {
				request.Year = year
			}

			for _, a := range current.Actors {
				if !containsID(removeActorIDs, a.ID) {
					request.Actors = append(request.Actors, dto.ActorDTO{ID: a.ID, Name: a.Name})
				}
			}
			request.Actors = appendActors(request.Actors, addActorIDs, addActorNames)

			for _, r := range current.Ratings {
				if !containsID(removeRatingIDs, r.ID) {
					request.Ratings = append(request.Ratings, r)
				}
			}
			parsed, err := parseRatings(addRatings)
			if err != nil {
				return err
			}
			request.Ratings = append(request.Ratings, parsed...)

			if err := httpClient.UpdateMovie(id, request); err != nil {
				return fmt.Errorf("failed to update movie: %w", err)
			}
			success(cmd.OutOrStdout(), "Movie %d updated successfully!", id)
			return nil
		},
	}

	updateCmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	updateCmd.Flags().IntVarP(&year, "year", "y", 0, "New release year")
	updateCmd.Flags().Int64SliceVar(&addActorIDs, "add-actor-id", nil, "Attach an existing actor (repeatable)")
	updateCmd.Flags().StringArrayVar(&addActorNames, "add-actor", nil, "Create and attach a new actor (repeatable)")
	updateCmd.Flags().Int64SliceVar(&removeActorIDs, "remove-actor-id", nil, "Detach an actor (repeatable)")
	updateCmd.Flags().StringArrayVar(&addRatings, "add-rating", nil, `Add a rating as "score:review" (repeatable)`)
	updateCmd.Flags().Int64SliceVar(&removeRatingIDs, "remove-rating-id", nil, "Delete a rating (repeatable)")
	return updateCmd
}

func newDeleteMovieCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a movie and its ratings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			httpClient, err := opts.authedClient()
			if err != nil {
				return err
			}
			if err := httpClient.DeleteMovie(id); err != nil {
				if client.IsNotFound(err) {
					warn(cmd.OutOrStdout(), fmt.Sprintf("Movie %d does not exist.", id))
					return nil
				}
				return fmt.Errorf("failed to delete movie: %w", err)
			}
			success(cmd.OutOrStdout(), "Movie %d deleted.", id)
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// parseRatings reads "score:review" pairs. The review may itself contain colons.
func parseRatings(values []string) ([]dto.RatingDTO, error) {
	out := make([]dto.RatingDTO, 0, len(values))
	for _, v := range values {
		score, review, ok := strings.Cut(v, ":")
		if !ok || strings.TrimSpace(review) == "" {
			return nil, fmt.Errorf("invalid rating %q, want \"score:review\"", v)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(score), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid rating score %q", score)
		}
		out = append(out, dto.RatingDTO{Rating: f, Review: strings.TrimSpace(review)})
	}
	return out, nil
}

func appendActors(actors []dto.ActorDTO, ids []int64, names []string) []dto.ActorDTO {
	for _, id := range ids {
		actors = append(actors, dto.ActorDTO{ID: id})
	}
	for _, name := range names {
		actors = append(actors, dto.ActorDTO{Name: name})
	}
	return actors
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
