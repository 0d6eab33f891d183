package http

import (
	clientUsecases "github.com/orris-inc/helpdesk/internal/application/client/usecases"
	notificationUsecases "github.com/orris-inc/helpdesk/internal/application/notification/usecases"
	serviceTagUsecases "github.com/orris-inc/helpdesk/internal/application/servicetag/usecases"
	ticketUsecases "github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	userUsecases "github.com/orris-inc/helpdesk/internal/application/user/usecases"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	"github.com/orris-inc/helpdesk/internal/infrastructure/adapters"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/services/markdown"
)

// allUseCases holds all use case instances used by the HTTP handlers.
type allUseCases struct {
	// Auth & users
	login          *userUsecases.LoginUseCase
	refreshToken   *userUsecases.RefreshTokenUseCase
	getMe          *userUsecases.GetMeUseCase
	initiateOAuth  *userUsecases.InitiateOAuthLoginUseCase
	handleOAuth    *userUsecases.HandleOAuthCallbackUseCase
	listUsers      *userUsecases.ListUsersUseCase
	listStaff      *userUsecases.ListStaffUseCase
	getUser        *userUsecases.GetUserUseCase
	createUser     *userUsecases.CreateUserUseCase
	updateUser     *userUsecases.UpdateUserUseCase
	deleteUser     *userUsecases.DeleteUserUseCase
	sendAccessMail *notificationUsecases.SendAccessEmailUseCase

	// Clients & service tags
	getClient    *clientUsecases.GetClientUseCase
	listClients  *clientUsecases.ListClientsUseCase
	createClient *clientUsecases.CreateClientUseCase
	updateClient *clientUsecases.UpdateClientUseCase
	deleteClient *clientUsecases.DeleteClientUseCase
	listTags     *serviceTagUsecases.ListServiceTagsUseCase
	createTag    *serviceTagUsecases.CreateServiceTagUseCase
	updateTag    *serviceTagUsecases.UpdateServiceTagUseCase
	deleteTag    *serviceTagUsecases.DeleteServiceTagUseCase

	// Tickets
	createTicket   *ticketUsecases.CreateTicketUseCase
	submitPublic   *ticketUsecases.SubmitPublicTicketUseCase
	getTicket      *ticketUsecases.GetTicketUseCase
	listTickets    *ticketUsecases.ListTicketsUseCase
	listMine       *ticketUsecases.ListTicketsUseCase
	listPending    *ticketUsecases.ListTicketsUseCase
	updateTicket   *ticketUsecases.UpdateTicketUseCase
	deleteTicket   *ticketUsecases.DeleteTicketUseCase
	approveTicket  *ticketUsecases.ApproveTicketUseCase
	listUpdates    *ticketUsecases.ListUpdatesUseCase
	serviceTagLink *ticketUsecases.ServiceTagLinkUseCase
	addComment     *ticketUsecases.AddCommentUseCase
	listComments   *ticketUsecases.ListCommentsUseCase
	deleteComment  *ticketUsecases.DeleteCommentUseCase
}

// useCaseDeps collects the infrastructure the use cases are built from.
type useCaseDeps struct {
	repos       *repositories
	identity    user.IdentityProvider
	tokens      userUsecases.TokenIssuer
	oauthClient userUsecases.OAuthClient
	stateStore  userUsecases.StateStore
	authorizer  permission.Authorizer
	mailer      notificationUsecases.AccessMailer
	storage     ticketUsecases.AttachmentStorage
	settings    ticketUsecases.Settings
	loginURL    string
	passwordLen int
}

func newUseCases(d useCaseDeps, log logger.Interface) *allUseCases {
	r := d.repos
	uc := &allUseCases{}

	// Auth & users
	uc.login = userUsecases.NewLoginUseCase(r.userRepo, d.identity, d.tokens, log)
	uc.refreshToken = userUsecases.NewRefreshTokenUseCase(r.userRepo, d.tokens, log)
	uc.getMe = userUsecases.NewGetMeUseCase(r.userRepo, log)
	uc.initiateOAuth = userUsecases.NewInitiateOAuthLoginUseCase(d.oauthClient, d.stateStore, log)
	uc.handleOAuth = userUsecases.NewHandleOAuthCallbackUseCase(d.oauthClient, d.stateStore, r.userRepo, d.tokens, log)
	uc.listUsers = userUsecases.NewListUsersUseCase(r.userRepo, d.authorizer, log)
	uc.listStaff = userUsecases.NewListStaffUseCase(r.userRepo, d.authorizer, log)
	uc.getUser = userUsecases.NewGetUserUseCase(r.userRepo, d.authorizer, log)
	uc.createUser = userUsecases.NewCreateUserUseCase(r.userRepo, r.clientRepo, d.identity, d.authorizer, log)
	uc.createUser.SetGeneratedPasswordLength(d.passwordLen)
	uc.updateUser = userUsecases.NewUpdateUserUseCase(r.userRepo, d.identity, d.authorizer, log)
	uc.deleteUser = userUsecases.NewDeleteUserUseCase(r.userRepo, r.ticketRepo, d.identity, d.authorizer, log)

	uc.sendAccessMail = notificationUsecases.NewSendAccessEmailUseCase(d.mailer, d.loginURL, log)
	if d.mailer != nil {
		uc.createUser.SetWelcomeNotifier(adapters.NewWelcomeNotifierAdapter(uc.sendAccessMail))
	}

	// Clients & service tags
	uc.getClient = clientUsecases.NewGetClientUseCase(r.clientRepo, d.authorizer, log)
	uc.listClients = clientUsecases.NewListClientsUseCase(r.clientRepo, d.authorizer, log)
	uc.createClient = clientUsecases.NewCreateClientUseCase(r.clientRepo, d.authorizer, log)
	uc.updateClient = clientUsecases.NewUpdateClientUseCase(r.clientRepo, d.authorizer, log)
	uc.deleteClient = clientUsecases.NewDeleteClientUseCase(r.clientRepo, r.ticketRepo, r.serviceTagRepo, r.userRepo, d.authorizer, log)
	uc.listTags = serviceTagUsecases.NewListServiceTagsUseCase(r.serviceTagRepo, r.clientRepo, d.authorizer, log)
	uc.createTag = serviceTagUsecases.NewCreateServiceTagUseCase(r.serviceTagRepo, r.clientRepo, d.authorizer, log)
	uc.updateTag = serviceTagUsecases.NewUpdateServiceTagUseCase(r.serviceTagRepo, d.authorizer, log)
	uc.deleteTag = serviceTagUsecases.NewDeleteServiceTagUseCase(r.serviceTagRepo, r.ticketRepo, d.authorizer, log)

	// Tickets
	assembler := ticketUsecases.NewAssembler(r.clientRepo, r.userRepo, r.serviceTagRepo, markdown.NewRenderer(), log)

	uc.createTicket = ticketUsecases.NewCreateTicketUseCase(
		r.ticketRepo, r.updateRepo, r.clientRepo, r.serviceTagRepo, r.ticketNumbers,
		r.txMgr, d.authorizer, assembler, d.settings, log,
	)
	uc.submitPublic = ticketUsecases.NewSubmitPublicTicketUseCase(
		r.ticketRepo, r.updateRepo, r.clientRepo, r.serviceTagRepo, r.ticketNumbers,
		r.txMgr, d.settings, log,
	)
	uc.getTicket = ticketUsecases.NewGetTicketUseCase(r.ticketRepo, assembler, log)
	uc.listTickets = ticketUsecases.NewListTicketsUseCase(r.ticketRepo, d.authorizer, assembler, log)
	uc.listMine = ticketUsecases.NewListMyTicketsUseCase(r.ticketRepo, d.authorizer, assembler, log)
	uc.listPending = ticketUsecases.NewListPendingTicketsUseCase(r.ticketRepo, d.authorizer, assembler, log)
	uc.updateTicket = ticketUsecases.NewUpdateTicketUseCase(
		r.ticketRepo, r.updateRepo, r.userRepo, r.serviceTagRepo,
		r.txMgr, d.authorizer, assembler, d.settings, log,
	)
	uc.deleteTicket = ticketUsecases.NewDeleteTicketUseCase(r.ticketRepo, d.authorizer, log)
	uc.approveTicket = ticketUsecases.NewApproveTicketUseCase(r.ticketRepo, r.updateRepo, r.txMgr, d.authorizer, assembler, log)
	uc.listUpdates = ticketUsecases.NewListUpdatesUseCase(r.ticketRepo, r.updateRepo, assembler, log)
	uc.serviceTagLink = ticketUsecases.NewServiceTagLinkUseCase(r.ticketRepo, r.updateRepo, r.serviceTagRepo, r.txMgr, d.authorizer, log)
	uc.addComment = ticketUsecases.NewAddCommentUseCase(
		r.ticketRepo, r.commentRepo, r.updateRepo, d.storage,
		r.txMgr, assembler, d.settings, log,
	)
	uc.listComments = ticketUsecases.NewListCommentsUseCase(r.ticketRepo, r.commentRepo, assembler, log)
	uc.deleteComment = ticketUsecases.NewDeleteCommentUseCase(r.ticketRepo, r.commentRepo, d.authorizer, log)

	return uc
}
