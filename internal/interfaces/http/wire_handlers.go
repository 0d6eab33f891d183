package http

import (
	"github.com/orris-inc/helpdesk/internal/interfaces/http/handlers"
	clientHandlers "github.com/orris-inc/helpdesk/internal/interfaces/http/handlers/client"
	ticketHandlers "github.com/orris-inc/helpdesk/internal/interfaces/http/handlers/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	// User & Auth
	userHandler        *handlers.UserHandler
	authHandler        *handlers.AuthHandler
	emailAccessHandler *handlers.EmailAccessHandler

	// Client
	clientHandler     *clientHandlers.ClientHandler
	serviceTagHandler *clientHandlers.ServiceTagHandler

	// Ticket
	ticketHandler       *ticketHandlers.TicketHandler
	commentHandler      *ticketHandlers.CommentHandler
	publicTicketHandler *ticketHandlers.PublicTicketHandler
}

func newHandlers(uc *allUseCases, frontendURL string, log logger.Interface) *allHandlers {
	return &allHandlers{
		userHandler: handlers.NewUserHandler(
			uc.listUsers, uc.listStaff, uc.getUser,
			uc.createUser, uc.updateUser, uc.deleteUser,
			log,
		),
		authHandler: handlers.NewAuthHandler(
			uc.login, uc.refreshToken, uc.getMe,
			uc.initiateOAuth, uc.handleOAuth,
			log, frontendURL,
		),
		emailAccessHandler: handlers.NewEmailAccessHandler(uc.sendAccessMail, log),

		clientHandler: clientHandlers.NewClientHandler(
			uc.getClient, uc.listClients, uc.createClient, uc.updateClient, uc.deleteClient,
			log,
		),
		serviceTagHandler: clientHandlers.NewServiceTagHandler(
			uc.listTags, uc.createTag, uc.updateTag, uc.deleteTag,
			log,
		),

		ticketHandler: ticketHandlers.NewTicketHandler(
			uc.createTicket, uc.getTicket,
			uc.listTickets, uc.listMine, uc.listPending,
			uc.updateTicket, uc.deleteTicket, uc.approveTicket,
			uc.listUpdates, uc.serviceTagLink,
			log,
		),
		commentHandler:      ticketHandlers.NewCommentHandler(uc.addComment, uc.listComments, uc.deleteComment, log),
		publicTicketHandler: ticketHandlers.NewPublicTicketHandler(uc.submitPublic, log),
	}
}
