package command

import (
	"fmt"
	"strings"

	"moviehub/internal/api/service"

	"github.com/spf13/cobra"
)

func newActorCmd(opts *globalOptions) *cobra.Command {
	actorCmd := &cobra.Command{
		Use:   "actor",
		Short: "Actor management commands",
	}

	var page, pageSize int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List actors, one page at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.publicClient().ListActors(page, pageSize)
			if err != nil {
				return fmt.Errorf("failed to get actor list: %w", err)
			}
			w := cmd.OutOrStdout()
			printActors(w, result.Actors, "No actors found.")
			p, size := service.NormalizePage(page, pageSize)
			fmt.Fprintf(w, "\nPage %d (%d per page), %d actor(s) in total\n", p, size, result.Total)
			return nil
		},
	}
	listCmd.Flags().IntVar(&page, "page", 1, "Page number")
	listCmd.Flags().IntVar(&pageSize, "page-size", service.DefaultPageSize, "Actors per page")

	getCmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Get an actor by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			actor, err := opts.publicClient().GetActor(id)
			if err != nil {
				return fmt.Errorf("failed to get actor: %w", err)
			}
			printActor(cmd.OutOrStdout(), *actor)
			return nil
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search actors by name (case-sensitive substring)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			actors, err := opts.publicClient().SearchActors(query)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			printActors(cmd.OutOrStdout(), actors, fmt.Sprintf("No actors matching '%s'.", query))
			return nil
		},
	}

	moviesCmd := &cobra.Command{
		Use:   "movies [id]",
		Short: "List the movies an actor appears in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			movies, err := opts.publicClient().ActorMovies(id)
			if err != nil {
				return fmt.Errorf("failed to get movies: %w", err)
			}
			printMovies(cmd.OutOrStdout(), movies, "This actor is not in any movie.")
			return nil
		},
	}

	createCmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create an actor",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			httpClient, err := opts.authedClient()
			if err != nil {
				return err
			}
			actor, err := httpClient.CreateActor(strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("failed to create actor: %w", err)
			}
			success(cmd.OutOrStdout(), "Actor created with ID %d", actor.ID)
			return nil
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update [id] [name]",
		Short: "Rename an actor",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			httpClient, err := opts.authedClient()
			if err != nil {
				return err
			}
			actor, err := httpClient.UpdateActor(id, strings.Join(args[1:], " "))
			if err != nil {
				return fmt.Errorf("failed to update actor: %w", err)
			}
			success(cmd.OutOrStdout(), "Actor %d renamed to %s", actor.ID, actor.Name)
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an actor and remove it from every movie",
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
			actor, err := httpClient.DeleteActor(id)
			if err != nil {
				return fmt.Errorf("failed to delete actor: %w", err)
			}
			success(cmd.OutOrStdout(), "Actor %s deleted.", actor.Name)
			return nil
		},
	}

	actorCmd.AddCommand(listCmd, getCmd, searchCmd, moviesCmd, createCmd, updateCmd, deleteCmd)
	return actorCmd
}
