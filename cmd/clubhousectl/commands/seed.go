package commands

import (
	"fmt"

	"github.com/clubhousefc/backend/internal/repositories"
	"github.com/clubhousefc/backend/internal/router"
	"github.com/clubhousefc/backend/internal/seed"
	"github.com/spf13/cobra"
)

var (
	// Seed flags
	seedPassword string
	fakeMembers  int
	postsPerUser int
	randomSeed   int64
	migrateFirst bool
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert founding members and optional generated activity",
	Long: `Upsert the founding members by email. With --fake-members, also create
generated members with posts, follows, likes, comments and the notifications
they produce.

Examples:
  clubhousectl seed                                 # Founding members only
  clubhousectl seed --fake-members 20 --posts 3     # Plus generated activity
  clubhousectl seed --fake-members 20 --seed 7      # Reproducible data`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB(db)

		if migrateFirst {
			if err := router.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}

		res, err := seed.Run(cmd.Context(), repositories.NewPostgresStore(db), nil, seed.Options{
			Password:     seedPassword,
			FakeMembers:  fakeMembers,
			PostsPerUser: postsPerUser,
			Seed:         randomSeed,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seed complete: %s\n", res)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedPassword, "password", "clubhouse123", "Password for every seeded account")
	seedCmd.Flags().IntVar(&fakeMembers, "fake-members", 0, "Number of generated members")
	seedCmd.Flags().IntVar(&postsPerUser, "posts", 2, "Posts per member when generating activity")
	seedCmd.Flags().Int64Var(&randomSeed, "seed", 0, "Random seed for generated data (0 is random)")
	seedCmd.Flags().BoolVar(&migrateFirst, "migrate", true, "Run migrations before seeding")
	rootCmd.AddCommand(seedCmd)
}
