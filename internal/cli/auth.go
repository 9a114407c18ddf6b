package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"foundation/internal/app"
)

type authOptions struct {
	User string
}

type authCheckOptions struct {
	Role string
	All  []string
	Any  []string
}

func newAuthCommand() *cobra.Command {
	opts := &authOptions{}
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Inspect roles and the stored session token",
	}
	cmd.PersistentFlags().StringVar(&opts.User, "user", "", "User record file (yaml, toml or json)")
	_ = viper.BindPFlag("user", cmd.PersistentFlags().Lookup("user"))

	cmd.AddCommand(newAuthRolesCommand())
	cmd.AddCommand(newAuthCheckCommand(opts))
	cmd.AddCommand(newAuthAppCommand(opts))
	cmd.AddCommand(newAuthTokenCommand())
	return cmd
}

func newAuthRolesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List the known roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := newAppService()
			if err != nil {
				return err
			}
			for _, role := range service.ListRoles() {
				fmt.Printf("%s\t%s\n", role.Name, role.Description)
			}
			return nil
		},
	}
}

func newAuthCheckCommand(parent *authOptions) *cobra.Command {
	opts := authCheckOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the user's roles; exits 3 when the check fails",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAuthCheck(cmd.Context(), cmd, *parent, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Role, "role", "", "Require this single role")
	cmd.Flags().StringSliceVar(&opts.All, "all", nil, "Require exactly these roles")
	cmd.Flags().StringSliceVar(&opts.Any, "any", nil, "Require either role set to contain the other")
	return cmd
}

func runAuthCheck(ctx context.Context, cmd *cobra.Command, parent authOptions, opts authCheckOptions) error {
	service, err := newAppService()
	if err != nil {
		return err
	}
	req := app.AuthCheckRequest{
		UserPath: resolveString(cmd, parent.User, "user", "user"),
		Role:     opts.Role,
	}
	if flagChanged(cmd, "all") {
		req.All = nonNil(opts.All)
	}
	if flagChanged(cmd, "any") {
		req.Any = nonNil(opts.Any)
	}
	result, err := service.CheckRoles(ctx, req)
	if err != nil {
		return err
	}
	if !result.Allowed {
		return errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg(fmt.Sprintf("%s check failed for %s (held: %s)",
				result.Mode,
				strings.Join(result.Requested, ","),
				strings.Join(result.Held, ",")))
	}
	fmt.Printf("allowed: %s %s\n", result.Mode, strings.Join(result.Requested, ","))
	return nil
}

func newAuthAppCommand(parent *authOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "app",
		Short: "Print the application route for the user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := newAppService()
			if err != nil {
				return err
			}
			result, err := service.UserApp(cmd.Context(), app.UserAppRequest{
				UserPath: resolveString(cmd, parent.User, "user", "user"),
			})
			if err != nil {
				return err
			}
			fmt.Println(result.App)
			return nil
		},
	}
}

func newAuthTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored session token",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <token>",
		Short: "Store a session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := newAppService()
			if err != nil {
				return err
			}
			return service.SetToken(cmd.Context(), args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := newAppService()
			if err != nil {
				return err
			}
			return service.ClearToken(cmd.Context())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether a session token is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := newAppService()
			if err != nil {
				return err
			}
			if service.TokenStatus(cmd.Context()).Present {
				fmt.Println("token: present")
			} else {
				fmt.Println("token: absent")
			}
			return nil
		},
	})
	return cmd
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
