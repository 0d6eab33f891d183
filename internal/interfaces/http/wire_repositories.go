package http

import (
	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/infrastructure/repository"
	"github.com/orris-inc/helpdesk/internal/infrastructure/services"
	shareddb "github.com/orris-inc/helpdesk/internal/shared/db"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
// Concrete types are kept because the counting and purge ports are served
// by the same structs.
type repositories struct {
	userRepo       *repository.UserRepository
	clientRepo     *repository.ClientRepository
	serviceTagRepo *repository.ServiceTagRepository
	ticketRepo     *repository.TicketRepository
	commentRepo    *repository.CommentRepository
	updateRepo     *repository.TicketUpdateRepository

	ticketNumbers *services.TicketNumberGenerator
	txMgr         *shareddb.TransactionManager
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:       repository.NewUserRepository(db, log),
		clientRepo:     repository.NewClientRepository(db, log),
		serviceTagRepo: repository.NewServiceTagRepository(db, log),
		ticketRepo:     repository.NewTicketRepository(db, log),
		commentRepo:    repository.NewCommentRepository(db),
		updateRepo:     repository.NewTicketUpdateRepository(db),
		ticketNumbers:  services.NewTicketNumberGenerator(db),
		txMgr:          shareddb.NewTransactionManager(db),
	}
}
