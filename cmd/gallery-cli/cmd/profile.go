package cmd

import (
	"fmt"
	"io"

	"github.com/nfrund/gallery/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(opts *options) *cobra.Command {
	profile := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the signed-in user's profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			p, err := client.FetchProfile(cmd.Context())
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		},
	}

	var input domain.ProfileInput
	edit := &cobra.Command{
		Use:   "edit",
		Short: "Change the name and description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := domain.Validate(input); err != nil {
				return err
			}
			client, err := opts.client()
			if err != nil {
				return err
			}
			p, err := client.UpdateProfile(cmd.Context(), input)
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		},
	}
	edit.Flags().StringVar(&input.Name, "name", "", "display name")
	edit.Flags().StringVar(&input.About, "about", "", "short description")
	_ = edit.MarkFlagRequired("name")
	_ = edit.MarkFlagRequired("about")

	profile.AddCommand(show, edit)
	return profile
}

func newAvatarCmd(opts *options) *cobra.Command {
	avatar := &cobra.Command{
		Use:   "avatar",
		Short: "Manage the profile avatar",
	}
	avatar.AddCommand(&cobra.Command{
		Use:   "set <image-url>",
		Short: "Point the avatar at an image URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := domain.Validate(domain.AvatarInput{AvatarURL: args[0]}); err != nil {
				return err
			}
			client, err := opts.client()
			if err != nil {
				return err
			}
			p, err := client.UpdateAvatar(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		},
	})
	return avatar
}

func printProfile(w io.Writer, p domain.UserProfile) {
	fmt.Fprintf(w, "id:     %s\nname:   %s\nabout:  %s\navatar: %s\n", p.ID, p.Name, p.About, p.AvatarURL)
}
