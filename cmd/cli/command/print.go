package command

import (
	"fmt"
	"io"
	"strings"

	"moviehub/internal/api/dto"

	"github.com/fatih/color"
)

var (
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	titleColor = color.New(color.FgCyan, color.Bold)
)

func success(w io.Writer, format string, a ...any) {
	okColor.Fprintf(w, "✓ "+format+"\n", a...)
}

func warn(w io.Writer, msg string) {
	warnColor.Fprintln(w, msg)
}

func separator(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("-", 50))
}

func printMovie(w io.Writer, m dto.MovieResponse) {
	titleColor.Fprintf(w, "%s (%d)\n", m.Title, m.Year)
	fmt.Fprintf(w, "ID: %d\n", m.ID)
	if len(m.Actors) > 0 {
		names := make([]string, 0, len(m.Actors))
		for _, a := range m.Actors {
			names = append(names, fmt.Sprintf("%s [%d]", a.Name, a.ID))
		}
		fmt.Fprintf(w, "Actors: %s\n", strings.Join(names, ", "))
	}
	for _, r := range m.Ratings {
		fmt.Fprintf(w, "  [%d] %.1f/10 %s\n", r.ID, r.Rating, r.Review)
	}
}

func printMovies(w io.Writer, movies []dto.MovieResponse, empty string) {
	if len(movies) == 0 {
		warn(w, empty)
		return
	}
	fmt.Fprintf(w, "Found %d movie(s):\n\n", len(movies))
	for _, m := range movies {
		printMovie(w, m)
		separator(w)
	}
}

func printActor(w io.Writer, a dto.ActorResponse) {
	fmt.Fprintf(w, "%-6d %s\n", a.ID, a.Name)
}

func printActors(w io.Writer, actors []dto.ActorResponse, empty string) {
	if len(actors) == 0 {
		warn(w, empty)
		return
	}
	for _, a := range actors {
		printActor(w, a)
	}
}
