package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the hbnbctl command tree bound to app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "hbnbctl",
		Short: "Browse and review HBnB places from the terminal",
		Long: `hbnbctl talks to the HBnB REST API. Log in once, then list places,
inspect a place with its amenities and reviews, and post reviews.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(app.Out)
	root.SetErr(app.Err)
	root.SetIn(app.In)

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newPlacesCmd(app),
		newPlaceCmd(app),
		newReviewCmd(app),
		newConfigCmd(app),
	)
	return root
}
