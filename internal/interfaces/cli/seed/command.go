// Package seed bootstraps an empty installation from a YAML file.
package seed

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/infrastructure/auth"
	"github.com/orris-inc/helpdesk/internal/infrastructure/identity"
	permissionInfra "github.com/orris-inc/helpdesk/internal/infrastructure/permission"
	"github.com/orris-inc/helpdesk/internal/infrastructure/repository"
	"github.com/orris-inc/helpdesk/internal/interfaces/cli/bootstrap"
)

var (
	opts     bootstrap.Options
	file     string
	noPrompt bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the superadmin, clients and users from a seed file",
		Long: `Apply a YAML seed file. Records that already exist are skipped, so the
command can be re-run safely. When the superadmin has no password in the file
and stdin is a terminal, the password is prompted for.`,
		RunE: run,
	}

	opts.BindFlags(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "seed.yaml", "Path to the seed file")
	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "Never prompt; generate missing passwords instead")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	f, err := LoadFile(file)
	if err != nil {
		return err
	}

	if f.Superadmin != nil && f.Superadmin.Password == "" && !noPrompt {
		password, err := promptPassword(f.Superadmin.Email)
		if err != nil {
			return err
		}
		f.Superadmin.Password = password
	}

	rt, err := bootstrap.Init(opts, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	authorizer, err := newAuthorizer(rt)
	if err != nil {
		return err
	}

	hasher := auth.NewBcryptPasswordHasher(rt.Config.Auth.Password.BcryptCost)
	seeder := NewSeeder(
		repository.NewUserRepository(rt.DB, rt.Log),
		repository.NewClientRepository(rt.DB, rt.Log),
		repository.NewServiceTagRepository(rt.DB, rt.Log),
		identity.NewLocalProvider(rt.DB, hasher, rt.Log),
		authorizer,
		rt.Log,
	)

	report, err := seeder.Run(cmd.Context(), f)
	if report != nil {
		printReport(cmd, report)
	}
	return err
}

// newAuthorizer mirrors the server so a persisted policy set gets seeded too.
func newAuthorizer(rt *bootstrap.Runtime) (permission.Authorizer, error) {
	var policyDB *gorm.DB
	if rt.Config.Auth.CasbinPersist {
		policyDB = rt.DB
	}

	enforcer, err := permissionInfra.NewEnforcer(policyDB, rt.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize permissions: %w", err)
	}
	if err := enforcer.SyncRules(permission.Rules()); err != nil {
		return nil, fmt.Errorf("failed to sync permission rules: %w", err)
	}
	return permission.NewEnforcerAuthorizer(enforcer), nil
}

// promptPassword reads the superadmin password without echo. Off a terminal
// it returns an empty password so one is generated.
func promptPassword(email string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", nil
	}

	fmt.Fprintf(os.Stderr, "Password for %s (empty to generate): ", email)
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if len(first) == 0 {
		return "", nil
	}

	fmt.Fprint(os.Stderr, "Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(first), nil
}

func printReport(cmd *cobra.Command, r *Report) {
	w := bufio.NewWriter(cmd.OutOrStdout())
	defer w.Flush()

	fmt.Fprintf(w, "\nSeed summary:\n")
	fmt.Fprintf(w, "  Clients created: %d\n", r.ClientsCreated)
	fmt.Fprintf(w, "  Tags created:    %d\n", r.TagsCreated)
	fmt.Fprintf(w, "  Users created:   %d\n", r.UsersCreated)
	fmt.Fprintf(w, "  Skipped:         %d\n", r.Skipped)

	if len(r.GeneratedPasswords) == 0 {
		return
	}
	emails := make([]string, 0, len(r.GeneratedPasswords))
	for email := range r.GeneratedPasswords {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	fmt.Fprintf(w, "\nGenerated passwords (shown once):\n")
	for _, email := range emails {
		fmt.Fprintf(w, "  %-32s %s\n", email, r.GeneratedPasswords[email])
	}
	fmt.Fprintln(w, strings.Repeat("-", 48))
}
