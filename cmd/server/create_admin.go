package main

import (
	"fmt"
	"os"

	"jewelry_store/internal/config"
	"jewelry_store/internal/model"
	"jewelry_store/internal/ratelimit"
	"jewelry_store/internal/repository"
	"jewelry_store/internal/service"
	"jewelry_store/internal/utils"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createAdminCmd)
	createAdminCmd.Flags().StringP("phone", "p", "", "Phone number of the new admin")
	createAdminCmd.Flags().String("password", "", "Password (defaults to $ADMIN_PASSWORD)")
	_ = createAdminCmd.MarkFlagRequired("phone")
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account from the command line",
	Long: `Create an admin account directly in the database. Useful for the first
login on a fresh install when INITIAL_ADMIN_PHONE was not set.`,
	RunE: runCreateAdmin,
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	phone, _ := cmd.Flags().GetString("phone")
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = os.Getenv("ADMIN_PASSWORD")
	}
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}

	appCfg, err := config.LoadAppConfig()
	if err != nil {
		return err
	}
	dbPool, err := openDB(cmd.Context())
	if err != nil {
		return err
	}
	defer dbPool.Close()

	authService := service.NewAuthService(
		repository.NewUserRepository(dbPool),
		utils.NewJWTUtil(appCfg.JWTSecret, appCfg.JWTExpHours),
		ratelimit.New(ratelimit.NewMemoryStore(), appCfg.LoginMaxAttempts, appCfg.LoginWindow),
		service.AuthOptions{PhoneRegion: appCfg.PhoneRegion},
	)
	// the command line acts with admin rights
	user, err := authService.CreateUser(cmd.Context(), model.RoleAdmin, phone, password, model.RoleAdmin)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "admin %s created with id %d\n", user.Phone, user.ID)
	return nil
}
