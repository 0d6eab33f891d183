package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/orris-inc/helpdesk/internal/domain/client"
	"github.com/orris-inc/helpdesk/internal/domain/permission"
	"github.com/orris-inc/helpdesk/internal/domain/servicetag"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	uservo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/infrastructure/migration"
	"github.com/orris-inc/helpdesk/internal/shared/config"
	"github.com/orris-inc/helpdesk/internal/shared/id"
	applog "github.com/orris-inc/helpdesk/internal/shared/logger"
)

// setupTestDB opens a private in-memory database with the real schema applied.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.Exec("PRAGMA foreign_keys = ON").Error)

	mgr, err := migration.NewManager(gdb, config.DriverSQLite, applog.NewNop())
	require.NoError(t, err)
	require.NoError(t, mgr.Up(context.Background()))

	return gdb
}

func seedClient(t *testing.T, repo *ClientRepository, company string) *client.Client {
	t.Helper()
	c, err := client.NewClient("Jane Doe", company, "jane@example.com", "555-0100", "1 Main St")
	require.NoError(t, err)
	require.NoError(t, c.SetID(id.NewUUID()))
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func seedUser(t *testing.T, repo *UserRepository, email string, role permission.Role, clientID *string) *user.User {
	t.Helper()
	addr, err := uservo.NewEmail(email)
	require.NoError(t, err)
	u, err := user.NewUser(addr, "Test "+role.String(), role, clientID)
	require.NoError(t, err)
	require.NoError(t, u.SetID(id.NewUUID()))
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func seedTag(t *testing.T, repo *ServiceTagRepository, clientID, tag string) *servicetag.ServiceTag {
	t.Helper()
	s, err := servicetag.NewServiceTag(clientID, tag, "", "Printer", "Front desk")
	require.NoError(t, err)
	require.NoError(t, s.SetID(id.NewUUID()))
	require.NoError(t, repo.Create(context.Background(), s))
	return s
}

func newOpenTicket(t *testing.T, ticketID, clientID, reporterID, title string) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(title, "Something is broken", vo.PriorityMedium, vo.SourceWeb, clientID, reporterID)
	require.NoError(t, err)
	require.NoError(t, tk.SetID(ticketID))
	return tk
}

func newPendingTicket(t *testing.T, ticketID, clientID string) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewPublicTicket("Printer jammed", "Paper stuck in tray 2", vo.PriorityMedium, vo.SourceWeb, clientID,
		ticket.Contact{Name: "Sam", Email: "sam@example.com"}, "https://cdn.example.com/p.jpg")
	require.NoError(t, err)
	require.NoError(t, tk.SetID(ticketID))
	return tk
}
