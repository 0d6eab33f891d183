package seed

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	clientUsecases "github.com/orris-inc/helpdesk/internal/application/client/usecases"
	serviceTagUsecases "github.com/orris-inc/helpdesk/internal/application/servicetag/usecases"
	userUsecases "github.com/orris-inc/helpdesk/internal/application/user/usecases"
	"github.com/orris-inc/helpdesk/internal/domain/client"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/servicetag"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// File is the bootstrap data read from seed.yaml.
type File struct {
	Superadmin *Account  `yaml:"superadmin"`
	Clients    []Client  `yaml:"clients"`
	Users      []Account `yaml:"users"`
}

type Account struct {
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
	// Role is ignored for the superadmin entry.
	Role string `yaml:"role"`
	// CompanyName binds a client-role account to a seeded or existing client.
	CompanyName string `yaml:"company_name"`
	// Password is generated when empty.
	Password string `yaml:"password"`
}

type Client struct {
	CompanyName string       `yaml:"company_name"`
	ContactName string       `yaml:"contact_name"`
	Email       string       `yaml:"email"`
	Phone       string       `yaml:"phone"`
	Address     string       `yaml:"address"`
	ServiceTags []ServiceTag `yaml:"service_tags"`
}

type ServiceTag struct {
	Tag          string `yaml:"tag"`
	Description  string `yaml:"description"`
	HardwareType string `yaml:"hardware_type"`
	Location     string `yaml:"location"`
}

// LoadFile parses a seed file from disk.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseFile(data)
}

func ParseFile(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if f.Superadmin != nil && strings.TrimSpace(f.Superadmin.Email) == "" {
		return nil, fmt.Errorf("superadmin.email is required")
	}
	for i, c := range f.Clients {
		if strings.TrimSpace(c.CompanyName) == "" {
			return nil, fmt.Errorf("clients[%d].company_name is required", i)
		}
	}
	for i, u := range f.Users {
		if strings.TrimSpace(u.Email) == "" {
			return nil, fmt.Errorf("users[%d].email is required", i)
		}
	}
	return &f, nil
}

// Report summarizes one seeding run. Existing records are skipped, never updated.
type Report struct {
	ClientsCreated int
	TagsCreated    int
	UsersCreated   int
	Skipped        int
	// GeneratedPasswords maps email to the password generated for it.
	GeneratedPasswords map[string]string
}

type lookups struct {
	users   user.Repository
	clients client.Repository
	tags    servicetag.Repository
}

// Seeder applies a seed file through the same use cases the API uses, acting
// as a synthetic superadmin.
type Seeder struct {
	lookups
	createUser   *userUsecases.CreateUserUseCase
	createClient *clientUsecases.CreateClientUseCase
	createTag    *serviceTagUsecases.CreateServiceTagUseCase
	caller       *permission.Principal
	logger       logger.Interface
}

func NewSeeder(
	users user.Repository,
	clients client.Repository,
	tags servicetag.Repository,
	identity user.IdentityProvider,
	authorizer permission.Authorizer,
	log logger.Interface,
) *Seeder {
	return &Seeder{
		lookups:      lookups{users: users, clients: clients, tags: tags},
		createUser:   userUsecases.NewCreateUserUseCase(users, clients, identity, authorizer, log),
		createClient: clientUsecases.NewCreateClientUseCase(clients, authorizer, log),
		createTag:    serviceTagUsecases.NewCreateServiceTagUseCase(tags, clients, authorizer, log),
		caller:       &permission.Principal{UserID: "seed", Name: "seed", Role: permission.RoleSuperadmin},
		logger:       log.Named("seed"),
	}
}

// Run creates the superadmin, then clients with their tags, then the other users.
func (s *Seeder) Run(ctx context.Context, f *File) (*Report, error) {
	report := &Report{GeneratedPasswords: map[string]string{}}

	if f.Superadmin != nil {
		admin := *f.Superadmin
		admin.Role = permission.RoleSuperadmin.String()
		admin.CompanyName = ""
		if err := s.seedUser(ctx, admin, report); err != nil {
			return report, err
		}
	}

	for _, c := range f.Clients {
		clientID, err := s.seedClient(ctx, c, report)
		if err != nil {
			return report, err
		}
		for _, tag := range c.ServiceTags {
			if err := s.seedTag(ctx, clientID, tag, report); err != nil {
				return report, err
			}
		}
	}

	for _, u := range f.Users {
		if err := s.seedUser(ctx, u, report); err != nil {
			return report, err
		}
	}

	return report, nil
}

func (s *Seeder) seedClient(ctx context.Context, c Client, report *Report) (string, error) {
	existing, err := s.clients.GetByCompanyName(ctx, client.NormalizeCompanyName(c.CompanyName))
	if err != nil {
		return "", fmt.Errorf("failed to look up client %q: %w", c.CompanyName, err)
	}
	if existing != nil {
		report.Skipped++
		s.logger.Infow("client exists, skipping", "company_name", existing.CompanyName())
		return existing.ID(), nil
	}

	created, err := s.createClient.Execute(ctx, clientUsecases.CreateClientCommand{
		Caller:      s.caller,
		ContactName: c.ContactName,
		CompanyName: c.CompanyName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create client %q: %w", c.CompanyName, err)
	}
	report.ClientsCreated++
	return created.ID, nil
}

func (s *Seeder) seedTag(ctx context.Context, clientID string, t ServiceTag, report *Report) error {
	existing, err := s.tags.GetByClientAndTag(ctx, clientID, t.Tag)
	if err != nil {
		return fmt.Errorf("failed to look up service tag %q: %w", t.Tag, err)
	}
	if existing != nil {
		report.Skipped++
		return nil
	}

	if _, err := s.createTag.Execute(ctx, serviceTagUsecases.CreateServiceTagCommand{
		Caller:       s.caller,
		ClientID:     clientID,
		Tag:          t.Tag,
		Description:  t.Description,
		HardwareType: t.HardwareType,
		Location:     t.Location,
	}); err != nil {
		return fmt.Errorf("failed to create service tag %q: %w", t.Tag, err)
	}
	report.TagsCreated++
	return nil
}

func (s *Seeder) seedUser(ctx context.Context, a Account, report *Report) error {
	email := strings.ToLower(strings.TrimSpace(a.Email))

	var clientID *string
	if a.CompanyName != "" {
		owner, err := s.clients.GetByCompanyName(ctx, client.NormalizeCompanyName(a.CompanyName))
		if err != nil {
			return fmt.Errorf("failed to look up client %q: %w", a.CompanyName, err)
		}
		if owner == nil {
			return fmt.Errorf("user %s references unknown client %q", email, a.CompanyName)
		}
		id := owner.ID()
		clientID = &id
	}

	result, err := s.createUser.Execute(ctx, userUsecases.CreateUserCommand{
		Caller:   s.caller,
		Email:    email,
		Name:     a.Name,
		Role:     a.Role,
		ClientID: clientID,
		Password: a.Password,
	})
	if err != nil {
		if errors.IsConflictError(err) {
			report.Skipped++
			s.logger.Infow("user exists, skipping", "email", email)
			return nil
		}
		return fmt.Errorf("failed to create user %s: %w", email, err)
	}

	report.UsersCreated++
	if result.GeneratedPassword != "" {
		report.GeneratedPasswords[result.User.Email] = result.GeneratedPassword
	}
	return nil
}
