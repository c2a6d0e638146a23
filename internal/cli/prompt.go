package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	postapp "github.com/GintasS/social-media-post-generator/internal/features/posts/application"
	"github.com/GintasS/social-media-post-generator/internal/features/posts/domain"
)

// newPromptCmd prints the prompt a generation request would send, without
// calling any model.
func newPromptCmd(a *app) *cobra.Command {
	req := domain.NewGenerationRequest()

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Render the compiled prompt for a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.GenerateOptions.NumberOfPosts < 1 || req.GenerateOptions.NumberOfPosts > 10 {
				return fmt.Errorf("--posts must be between 1 and 10")
			}

			registry, closeStore, err := a.localRegistry(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			compiler := postapp.NewPromptCompiler(registry, postapp.FileTemplate{Path: a.settings.Static.Prompt})
			prompt, err := compiler.Compile(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), prompt)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.ProductName, "name", "", "product name")
	cmd.Flags().StringVar(&req.Description, "description", "", "product description")
	cmd.Flags().Float64Var(&req.Price, "price", 0, "product price")
	cmd.Flags().StringVar(&req.Category, "category", "", "product category")
	cmd.Flags().StringSliceVar(&req.GenerateOptions.Platforms, "platform", domain.DefaultPlatforms(), "target platform, repeatable")
	cmd.Flags().IntVar(&req.GenerateOptions.NumberOfPosts, "posts", domain.DefaultNumberOfPosts, "number of posts")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}
