package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/orris-inc/helpdesk/internal/application/user/dto"
	"github.com/orris-inc/helpdesk/internal/domain/client"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	domainUser "github.com/orris-inc/helpdesk/internal/domain/user"
	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/goroutine"
	"github.com/orris-inc/helpdesk/internal/shared/id"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

const (
	MinPasswordLength = 8
	welcomeTimeout    = 30 * time.Second
)

type CreateUserCommand struct {
	Caller   *permission.Principal
	Email    string
	Name     string
	Role     string
	ClientID *string
	// Password is generated when empty.
	Password         string
	SendWelcomeEmail bool
}

type CreateUserResult struct {
	User *dto.UserDTO `json:"user"`
	// GeneratedPassword is only set when the password was generated server-side.
	GeneratedPassword string `json:"generated_password,omitempty"`
}

type CreateUserUseCase struct {
	userRepo   domainUser.Repository
	clientRepo client.Repository
	identity   domainUser.IdentityProvider
	authorizer permission.Authorizer
	notifier   WelcomeNotifier
	genLength  int
	logger     logger.Interface
}

func NewCreateUserUseCase(
	userRepo domainUser.Repository,
	clientRepo client.Repository,
	identity domainUser.IdentityProvider,
	authorizer permission.Authorizer,
	logger logger.Interface,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo:   userRepo,
		clientRepo: clientRepo,
		identity:   identity,
		authorizer: authorizer,
		genLength:  id.DefaultPasswordLength,
		logger:     logger,
	}
}

// SetWelcomeNotifier sets the optional welcome email notifier.
func (uc *CreateUserUseCase) SetWelcomeNotifier(notifier WelcomeNotifier) {
	uc.notifier = notifier
}

// SetGeneratedPasswordLength overrides the length of server-generated passwords.
func (uc *CreateUserUseCase) SetGeneratedPasswordLength(n int) {
	if n >= MinPasswordLength {
		uc.genLength = n
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*CreateUserResult, error) {
	if err := authorize(uc.authorizer, cmd.Caller, permission.ActionUsersCreate); err != nil {
		return nil, err
	}

	role, err := permission.ParseRole(cmd.Role)
	if err != nil {
		return nil, errors.NewValidationError("invalid role", cmd.Role)
	}
	if role.IsSuperadmin() {
		if err := uc.authorizer.Authorize(cmd.Caller.Role, permission.ActionUsersAssignSuperadmin); err != nil {
			return nil, err
		}
	}
	if cmd.SendWelcomeEmail {
		if err := uc.authorizer.Authorize(cmd.Caller.Role, permission.ActionEmailSendAccess); err != nil {
			return nil, err
		}
	}

	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewValidationError("invalid email", err.Error())
	}

	clientID := normalizeClientID(cmd.ClientID)
	entity, err := domainUser.NewUser(email, cmd.Name, role, clientID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var owner *client.Client
	if role.IsClient() {
		owner, err = uc.loadClient(ctx, *clientID)
		if err != nil {
			return nil, err
		}
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to check existing user", "email", email.String(), "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}
	if existing != nil {
		return nil, errors.NewConflictError("user with this email already exists", email.String())
	}

	password, generated, err := resolvePassword(cmd.Password, uc.genLength)
	if err != nil {
		return nil, err
	}

	identityID, err := uc.identity.CreateIdentity(ctx, domainUser.NewIdentity{
		Email:    email.String(),
		Password: password,
		Name:     entity.Name(),
		Role:     role,
		ClientID: entity.ClientID(),
	})
	if err != nil {
		if stderrors.Is(err, domainUser.ErrIdentityExists) {
			return nil, errors.NewConflictError("user with this email already exists", email.String())
		}
		uc.logger.Errorw("failed to create identity", "email", email.String(), "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}

	if err := entity.SetID(identityID); err != nil {
		uc.rollbackIdentity(ctx, identityID)
		uc.logger.Errorw("identity provider returned an unusable id", "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}
	if err := uc.userRepo.Create(ctx, entity); err != nil {
		uc.rollbackIdentity(ctx, identityID)
		uc.logger.Errorw("failed to persist user", "user_id", identityID, "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}

	uc.logger.Infow("user created",
		"user_id", entity.ID(),
		"role", role,
		"created_by", cmd.Caller.UserID,
	)

	if cmd.SendWelcomeEmail {
		uc.dispatchWelcome(entity, password, owner)
	}

	result := &CreateUserResult{User: dto.ToUserDTO(entity)}
	if generated {
		result.GeneratedPassword = password
	}
	return result, nil
}

func (uc *CreateUserUseCase) loadClient(ctx context.Context, clientID string) (*client.Client, error) {
	if !id.IsUUID(clientID) {
		return nil, errors.NewValidationError("invalid client ID", clientID)
	}
	c, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		uc.logger.Errorw("failed to get client", "client_id", clientID, "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}
	if c == nil {
		return nil, errors.NewNotFoundError("client not found", clientID)
	}
	return c, nil
}

func (uc *CreateUserUseCase) rollbackIdentity(ctx context.Context, identityID string) {
	if err := uc.identity.DeleteIdentity(ctx, identityID); err != nil {
		uc.logger.Errorw("failed to roll back identity", "identity_id", identityID, "error", err)
	}
}

// dispatchWelcome sends the welcome email without blocking the response. Failures are logged only.
func (uc *CreateUserUseCase) dispatchWelcome(u *domainUser.User, password string, owner *client.Client) {
	if uc.notifier == nil {
		return
	}
	n := WelcomeNotification{
		Email:    u.Email().String(),
		Password: password,
	}
	if owner != nil {
		n.CompanyName = owner.CompanyName()
		n.ClientName = owner.ContactName()
	}

	userID := u.ID()
	goroutine.Detach(uc.logger, "welcome-email", welcomeTimeout, func(ctx context.Context) error {
		if err := uc.notifier.NotifyWelcome(ctx, n); err != nil {
			return fmt.Errorf("welcome email for user %s: %w", userID, err)
		}
		return nil
	})
}

func normalizeClientID(clientID *string) *string {
	if clientID == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*clientID)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func resolvePassword(password string, genLength int) (string, bool, error) {
	if password == "" {
		generated, err := id.GeneratePassword(genLength)
		if err != nil {
			return "", false, errors.NewInternalError("failed to generate password")
		}
		return generated, true, nil
	}
	if len(password) < MinPasswordLength {
		return "", false, errors.NewValidationError("password is too short", "password must be at least 8 characters")
	}
	return password, false, nil
}
