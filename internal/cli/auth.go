package cli

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/stonklab/stonk/config"
	"github.com/stonklab/stonk/internal/api"
	"github.com/stonklab/stonk/internal/store"
)

// newAuthCmds creates the account commands.
func newAuthCmds(cfg *config.Config) []*cobra.Command {
	return []*cobra.Command{
		newLoginCmd(cfg),
		newSignupCmd(cfg),
		newLogoutCmd(cfg),
		newForgotPasswordCmd(cfg),
		newResetPasswordCmd(cfg),
		newProfileCmd(cfg),
	}
}

func newLoginCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to your account",
		Long: `Sign in with email and password, or with a Google ID token.
With --google, paste the credential issued by Google's sign-in flow; the
backend exchanges it for a session the same way the email flow does.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			var session *api.Session
			if google, _ := cmd.Flags().GetBool("google"); google {
				var credential string
				if err := survey.AskOne(&survey.Password{Message: "Google ID token:"}, &credential, survey.WithValidator(survey.Required)); err != nil {
					return err
				}
				session, err = app.Client.GoogleLogin(context.Background(), credential)
			} else {
				email, password, perr := PromptForCredentials()
				if perr != nil {
					return perr
				}
				session, err = app.Client.Login(context.Background(), email, password)
			}
			if err != nil {
				return err
			}
			if err := saveSession(app, session); err != nil {
				return err
			}

			DisplaySuccess(fmt.Sprintf("Welcome back, %s!", session.User.Name))
			app.Tracker.FeatureUse("login", nil)
			return nil
		},
	}

	cmd.Flags().Bool("google", false, "Sign in with a pasted Google ID token")
	return cmd
}

func newForgotPasswordCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password",
		Short: "Email yourself a password reset token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			var email string
			if err := survey.AskOne(&survey.Input{Message: "Email:"}, &email, survey.WithValidator(survey.Required)); err != nil {
				return err
			}

			if err := app.Client.ForgotPassword(context.Background(), email); err != nil {
				return err
			}
			DisplaySuccess("If that account exists, a reset token is on its way. Use 'stonk reset-password' once it arrives.")
			return nil
		},
	}
}

func newResetPasswordCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password using an emailed reset token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			var token string
			if err := survey.AskOne(&survey.Input{Message: "Reset token:"}, &token, survey.WithValidator(survey.Required)); err != nil {
				return err
			}
			var password string
			if err := survey.AskOne(&survey.Password{Message: "New password:"}, &password, survey.WithValidator(survey.Required)); err != nil {
				return err
			}

			if err := app.Client.ResetPassword(context.Background(), token, password); err != nil {
				return err
			}
			DisplaySuccess("Password reset. Sign in with 'stonk login'.")
			return nil
		},
	}
}

func newSignupCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			name, err := PromptForName()
			if err != nil {
				return err
			}
			email, password, err := PromptForCredentials()
			if err != nil {
				return err
			}

			session, err := app.Client.Signup(context.Background(), email, password, name)
			if err != nil {
				return err
			}
			if err := saveSession(app, session); err != nil {
				return err
			}

			DisplaySuccess(fmt.Sprintf("Account created. Welcome, %s!", session.User.Name))
			app.Tracker.FeatureUse("signup", nil)
			return nil
		},
	}
}

func newLogoutCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Store.Remove(store.KeyAuthToken); err != nil {
				return err
			}
			if err := app.Store.Remove(store.KeyUser); err != nil {
				return err
			}

			DisplaySuccess("Signed out.")
			return nil
		},
	}
}

func newProfileCmd(cfg *config.Config) *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.Client.Me(context.Background())
			if err != nil {
				return err
			}

			fmt.Println("👤 Account")
			fmt.Printf("  Name:   %s\n", user.Name)
			fmt.Printf("  Email:  %s\n", user.Email)
			if user.CreatedAt != "" {
				fmt.Printf("  Since:  %s\n", user.CreatedAt)
			}
			return nil
		},
	}

	profileCmd.AddCommand(&cobra.Command{
		Use:   "rename NAME",
		Short: "Change your display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.Client.UpdateProfile(context.Background(), args[0])
			if err != nil {
				return err
			}
			if err := app.Store.Set(store.KeyUser, user); err != nil {
				return err
			}

			DisplaySuccess(fmt.Sprintf("Name updated to %s.", user.Name))
			return nil
		},
	})

	profileCmd.AddCommand(&cobra.Command{
		Use:   "password",
		Short: "Change your password",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			var current, next string
			if err := survey.AskOne(&survey.Password{Message: "Current password:"}, &current, survey.WithValidator(survey.Required)); err != nil {
				return err
			}
			if err := survey.AskOne(&survey.Password{Message: "New password:"}, &next, survey.WithValidator(survey.Required)); err != nil {
				return err
			}

			if err := app.Client.ChangePassword(context.Background(), current, next); err != nil {
				return err
			}
			DisplaySuccess("Password changed.")
			return nil
		},
	})

	return profileCmd
}

func saveSession(app *App, session *api.Session) error {
	if err := app.Store.Set(store.KeyAuthToken, session.Token); err != nil {
		return err
	}
	return app.Store.Set(store.KeyUser, session.User)
}
