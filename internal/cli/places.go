package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukerupert/hbnb/internal/model"
	"github.com/dukerupert/hbnb/internal/view"
)

func newPlacesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "places",
		Short: "List places",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.tokens().Get()
			if err != nil {
				return err
			}
			if token == "" {
				app.notice("Log in with `hbnbctl login` to browse places.")
				return nil
			}

			client, err := app.client()
			if err != nil {
				return err
			}
			places, err := client.ListPlaces(cmd.Context(), token)
			if err != nil {
				return app.fail(view.PlacesFailed, err)
			}

			if len(places) == 0 {
				fmt.Fprintln(app.Out, "No places yet.")
				return nil
			}
			fmt.Fprintln(app.Out, renderCards(view.Cards(places)))
			return nil
		},
	}
}

func newPlaceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "place <place-id>",
		Short: "Show a place with its amenities and reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.tokens().Get()
			if err != nil {
				return err
			}
			client, err := app.client()
			if err != nil {
				return err
			}

			place, err := client.GetPlace(cmd.Context(), token, args[0])
			if err != nil {
				return app.fail(view.PlaceDetailFailed, err)
			}
			detail, err := view.NewPlaceDetail(place)
			if err != nil {
				return fmt.Errorf("%s: %w", view.PlaceDetailFailed, err)
			}

			fmt.Fprintln(app.Out, renderDetail(detail))
			if token != "" {
				fmt.Fprintf(app.Out, "\nAdd a review: hbnbctl review %s --comment \"...\" --rating 5\n", args[0])
			}
			return nil
		},
	}
}

func newReviewCmd(app *App) *cobra.Command {
	var comment, rating string
	cmd := &cobra.Command{
		Use:   "review <place-id>",
		Short: "Post a review for a place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.tokens().Get()
			if err != nil {
				return err
			}
			if token == "" {
				return errLoginRequired
			}

			client, err := app.client()
			if err != nil {
				return err
			}
			in := model.ReviewInput{
				Comment: comment,
				Rating:  model.ParseRating(rating),
			}
			if err := client.SubmitReview(cmd.Context(), token, args[0], in); err != nil {
				return app.fail(view.ReviewSubmitFailed, err)
			}

			app.success(view.ReviewSubmitted)
			return nil
		},
	}
	cmd.Flags().StringVarP(&comment, "comment", "c", "", "review text")
	cmd.Flags().StringVarP(&rating, "rating", "r", "", "rating from 1 to 5")
	cmd.MarkFlagRequired("comment")
	cmd.MarkFlagRequired("rating")
	return cmd
}
