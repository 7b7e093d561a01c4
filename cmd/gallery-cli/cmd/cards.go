package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/nfrund/gallery/internal/domain"
	"github.com/nfrund/gallery/internal/gallery"
	"github.com/nfrund/gallery/internal/remote"
	"github.com/spf13/cobra"
)

func newCardsCmd(opts *options) *cobra.Command {
	cards := &cobra.Command{
		Use:   "cards",
		Short: "List and change cards",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List cards in server order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			me, err := client.FetchProfile(cmd.Context())
			if err != nil {
				return err
			}
			all, err := client.FetchCards(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tLIKES\tLIKED\tMINE")
			for _, v := range gallery.NewCardViews(all, me.ID) {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", v.ID, v.Name, v.LikeCount, yesNo(v.Liked), yesNo(v.CanDelete))
			}
			return tw.Flush()
		},
	}

	var input domain.CardInput
	add := &cobra.Command{
		Use:   "add",
		Short: "Publish a new card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := domain.Validate(input); err != nil {
				return err
			}
			client, err := opts.client()
			if err != nil {
				return err
			}
			card, err := client.CreateCard(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), card.ID)
			return nil
		},
	}
	add.Flags().StringVar(&input.Name, "name", "", "card title")
	add.Flags().StringVar(&input.ImageURL, "link", "", "image URL")
	_ = add.MarkFlagRequired("name")
	_ = add.MarkFlagRequired("link")

	del := cardIDCmd(opts, "delete", "Delete a card you own", func(ctx context.Context, c *remote.Client, id string) (string, error) {
		if err := c.DeleteCard(ctx, id); err != nil {
			return "", err
		}
		return "deleted " + id, nil
	})
	like := cardIDCmd(opts, "like", "Like a card", func(ctx context.Context, c *remote.Client, id string) (string, error) {
		card, err := c.LikeCard(ctx, id)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s likes: %d", card.ID, card.LikedBy.Len()), nil
	})
	unlike := cardIDCmd(opts, "unlike", "Remove your like from a card", func(ctx context.Context, c *remote.Client, id string) (string, error) {
		card, err := c.UnlikeCard(ctx, id)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s likes: %d", card.ID, card.LikedBy.Len()), nil
	})

	cards.AddCommand(list, add, del, like, unlike)
	return cards
}

// cardIDCmd builds a command that takes one card id and prints the result
// of run.
func cardIDCmd(opts *options, use, short string, run func(context.Context, *remote.Client, string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <card-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			out, err := run(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
